package models

import (
	"fmt"
	"sort"
	"time"

	"stationboard/db/pgw"
	"stationboard/oops"
)

type TripId int64

// DayTime is seconds since midnight of the service day. GTFS clock values exceed 24:00:00 for trips that
// run past midnight, so this is not a time of day.
type DayTime int

func (t DayTime) DayOffset() int {
	return int(t) / (24 * 60 * 60)
}

func (t DayTime) On(serviceDate time.Time) time.Time {
	return Midnight(serviceDate).Add(time.Duration(t) * time.Second)
}

func (t DayTime) String() string {
	seconds := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

type BoardType int

const (
	BoardDepartures BoardType = iota
	BoardArrivals
)

type Stop struct {
	TripId        TripId
	ServiceId     ServiceId
	ShortName     string
	Headsign      string
	ArrivalTime   DayTime
	DepartureTime DayTime
}

func (s *Stop) BoardTime(board BoardType) DayTime {
	if board == BoardArrivals {
		return s.ArrivalTime
	}
	return s.DepartureTime
}

// ServiceDate is the day the trip started on. A stop reached at 25:10 and queried at 01:00 belongs to
// yesterday's service.
func (s *Stop) ServiceDate(board BoardType, at time.Time) time.Time {
	return Midnight(at).AddDate(0, 0, -s.BoardTime(board).DayOffset())
}

func (s *Stop) BoardDateTime(board BoardType, at time.Time) time.Time {
	return s.BoardTime(board).On(s.ServiceDate(board, at))
}

// Stop_FetchDepartures returns the board of a station at the given time: every stop on one of the
// station's platforms whose service runs that day and whose time is not in the past, soonest first.
// Platform stop ids are prefixed with the station id in the feed.
func Stop_FetchDepartures(
	tx pgw.Queryable, services map[ServiceId]*Service, stationId StationId, board BoardType, at time.Time,
) ([]Stop, error) {
	if stationId == "" {
		return nil, nil
	}

	rows, err := tx.Query(`
		select st.arrival_time, st.departure_time, t.id, t.service_id, t.short_name, t.headsign
		from stop_times st
		join trips t on t.id = st.trip_id
		where st.stop_id like $1
	`, string(stationId)+"%")
	if err != nil {
		return nil, oops.Wrap(err)
	}
	defer rows.Close()

	var stops []Stop
	for rows.Next() {
		var stop Stop
		var maybeShortName, maybeHeadsign *string
		err := rows.Scan(
			&stop.ArrivalTime, &stop.DepartureTime, &stop.TripId, &stop.ServiceId,
			&maybeShortName, &maybeHeadsign,
		)
		if err != nil {
			return nil, oops.Wrap(err)
		}
		if maybeShortName != nil {
			stop.ShortName = *maybeShortName
		}
		if maybeHeadsign != nil {
			stop.Headsign = *maybeHeadsign
		}

		service, ok := services[stop.ServiceId]
		if !ok {
			return nil, oops.Newf("Trip %d references unknown service %d", stop.TripId, stop.ServiceId)
		}
		if !service.IsAvailableOn(stop.ServiceDate(board, at)) {
			continue
		}
		if stop.BoardDateTime(board, at).Before(at) {
			continue
		}

		stops = append(stops, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Wrap(err)
	}

	sort.Slice(stops, func(i, j int) bool {
		return stops[i].BoardDateTime(board, at).Before(stops[j].BoardDateTime(board, at))
	})

	return stops, nil
}

type TripStop struct {
	StopName      string
	ArrivalTime   DayTime
	DepartureTime DayTime
}

// Trip_FetchStops returns every stop of a trip in travel order.
func Trip_FetchStops(tx pgw.Queryable, tripId TripId) ([]TripStop, error) {
	rows, err := tx.Query(`
		select st.arrival_time, st.departure_time, s.name
		from stop_times st
		join stops s on s.id = st.stop_id
		where st.trip_id = $1
		order by st.stop_sequence
	`, tripId)
	if err != nil {
		return nil, oops.Wrap(err)
	}
	defer rows.Close()

	var stops []TripStop
	for rows.Next() {
		var stop TripStop
		if err := rows.Scan(&stop.ArrivalTime, &stop.DepartureTime, &stop.StopName); err != nil {
			return nil, oops.Wrap(err)
		}
		stops = append(stops, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Wrap(err)
	}

	return stops, nil
}
