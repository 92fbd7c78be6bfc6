package routes

import (
	"net/http"
	"strconv"

	"stationboard/models"
	"stationboard/routes/rutil"
	"stationboard/util"

	"github.com/go-chi/chi/v5"
)

func TripShow(w http.ResponseWriter, r *http.Request) {
	tripIdInt, err := strconv.ParseInt(chi.URLParam(r, "tripId"), 10, 64)
	if err != nil {
		util.HttpPanic(http.StatusBadRequest, "trip id must be an integer")
	}
	tripId := models.TripId(tripIdInt)

	conn := mustAcquire(r)
	defer conn.Release()

	stops, err := models.Trip_FetchStops(conn, tripId)
	if err != nil {
		panic(err)
	}
	if len(stops) == 0 {
		util.HttpPanic(http.StatusNotFound, "trip not found")
	}

	type tripStopResult struct {
		Stop      string `json:"stop"`
		Arrival   string `json:"arrival"`
		Departure string `json:"departure"`
	}
	result := make([]tripStopResult, 0, len(stops))
	for _, stop := range stops {
		result = append(result, tripStopResult{
			Stop:      stop.StopName,
			Arrival:   stop.ArrivalTime.String(),
			Departure: stop.DepartureTime.String(),
		})
	}
	rutil.MustWriteJson(w, http.StatusOK, result)
}
