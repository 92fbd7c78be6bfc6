package routes

import (
	"net/http"
	"time"

	"stationboard/models"
	"stationboard/routes/rutil"
	"stationboard/util"

	"github.com/go-chi/chi/v5"
)

func StationIndex(w http.ResponseWriter, r *http.Request) {
	conn := mustAcquire(r)
	defer conn.Release()

	stations, err := models.Station_Search(conn, r.URL.Query().Get("q"))
	if err != nil {
		panic(err)
	}

	type stationResult struct {
		Id   string `json:"id"`
		Name string `json:"name"`
	}
	result := make([]stationResult, 0, len(stations))
	for _, station := range stations {
		result = append(result, stationResult{
			Id:   string(station.Id),
			Name: station.Name,
		})
	}
	rutil.MustWriteJson(w, http.StatusOK, result)
}

func StationBoard(w http.ResponseWriter, r *http.Request) {
	stationId := models.StationId(chi.URLParam(r, "stationId"))

	at := time.Now()
	if atParam := r.URL.Query().Get("at"); atParam != "" {
		var err error
		at, err = time.Parse(time.RFC3339, atParam)
		if err != nil {
			util.HttpPanic(http.StatusBadRequest, "at must be a RFC3339 timestamp")
		}
	}

	board := models.BoardDepartures
	switch r.URL.Query().Get("board") {
	case "", "departures":
	case "arrivals":
		board = models.BoardArrivals
	default:
		util.HttpPanic(http.StatusBadRequest, "board must be departures or arrivals")
	}

	conn := mustAcquire(r)
	defer conn.Release()

	stops, err := models.Stop_FetchDepartures(conn, services, stationId, board, at)
	if err != nil {
		panic(err)
	}

	type stopResult struct {
		TripId    int64  `json:"trip_id"`
		Line      string `json:"line"`
		Headsign  string `json:"headsign"`
		Arrival   string `json:"arrival"`
		Departure string `json:"departure"`
		Time      string `json:"time"`
	}
	result := make([]stopResult, 0, len(stops))
	for _, stop := range stops {
		result = append(result, stopResult{
			TripId:    int64(stop.TripId),
			Line:      stop.ShortName,
			Headsign:  stop.Headsign,
			Arrival:   stop.ArrivalTime.String(),
			Departure: stop.DepartureTime.String(),
			Time:      stop.BoardDateTime(board, at).Format(time.RFC3339),
		})
	}
	rutil.MustWriteJson(w, http.StatusOK, result)
}
