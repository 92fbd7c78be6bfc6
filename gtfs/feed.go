// Readers for GTFS feeds preprocessed into sqlite.
package gtfs

import (
	"database/sql"
	"regexp"
	"strconv"
	"time"

	"stationboard/models"
	"stationboard/oops"

	om "github.com/wk8/go-ordered-map/v2"
	_ "modernc.org/sqlite"
)

var clockRegex = regexp.MustCompile(`^(\d{1,2}):([0-5]\d):([0-5]\d)$`)

// ParseClock parses a GTFS clock value like "08:15:00". Hours past midnight of the service day keep
// counting up, "25:10:00" is valid.
func ParseClock(value string) (models.DayTime, error) {
	groups := clockRegex.FindStringSubmatch(value)
	if groups == nil {
		return 0, oops.Newf("Bad clock value: %q", value)
	}

	hours, _ := strconv.Atoi(groups[1])
	minutes, _ := strconv.Atoi(groups[2])
	seconds, _ := strconv.Atoi(groups[3])
	return models.DayTime(hours*3600 + minutes*60 + seconds), nil
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse("20060102", value)
	if err != nil {
		return time.Time{}, oops.Wrapf(err, "Bad date value: %q", value)
	}
	return date, nil
}

// collectStations dedupes platforms into stations: one station per distinct stop name, keeping the
// smallest stop id. Insertion order of the ordered map preserves the id ordering for stable imports.
func collectStations(feed *sql.DB) ([]models.Station, error) {
	rows, err := feed.Query("select stop_id, name from stop order by stop_id")
	if err != nil {
		return nil, oops.Wrap(err)
	}
	defer rows.Close()

	byName := om.New[string, models.Station]()
	for rows.Next() {
		var stopId, name string
		if err := rows.Scan(&stopId, &name); err != nil {
			return nil, oops.Wrap(err)
		}
		if _, ok := byName.Get(name); ok {
			continue
		}
		byName.Set(name, models.Station{Id: models.StationId(stopId), Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Wrap(err)
	}

	var stations []models.Station
	for pair := byName.Oldest(); pair != nil; pair = pair.Next() {
		stations = append(stations, pair.Value)
	}
	return stations, nil
}

type feedStop struct {
	Id   string
	Name string
}

func readStops(feed *sql.DB) ([]feedStop, error) {
	rows, err := feed.Query("select stop_id, name from stop")
	if err != nil {
		return nil, oops.Wrap(err)
	}
	defer rows.Close()

	var stops []feedStop
	for rows.Next() {
		var stop feedStop
		if err := rows.Scan(&stop.Id, &stop.Name); err != nil {
			return nil, oops.Wrap(err)
		}
		stops = append(stops, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Wrap(err)
	}
	return stops, nil
}

type feedService struct {
	Id        models.ServiceId
	Weekdays  [7]bool
	StartDate time.Time
	EndDate   time.Time
}

func readServices(feed *sql.DB) ([]feedService, error) {
	rows, err := feed.Query(`
		select service_id, monday, tuesday, wednesday, thursday, friday, saturday, sunday,
			start_date, end_date
		from service
	`)
	if err != nil {
		return nil, oops.Wrap(err)
	}
	defer rows.Close()

	var services []feedService
	for rows.Next() {
		var service feedService
		var weekdays [7]int
		var startDate, endDate string
		err := rows.Scan(
			&service.Id, &weekdays[0], &weekdays[1], &weekdays[2], &weekdays[3], &weekdays[4],
			&weekdays[5], &weekdays[6], &startDate, &endDate,
		)
		if err != nil {
			return nil, oops.Wrap(err)
		}
		for i, operating := range weekdays {
			service.Weekdays[i] = operating != 0
		}
		if service.StartDate, err = parseDate(startDate); err != nil {
			return nil, err
		}
		if service.EndDate, err = parseDate(endDate); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Wrap(err)
	}
	return services, nil
}

type feedException struct {
	ServiceId models.ServiceId
	Date      time.Time
	Type      models.ExceptionType
}

func readExceptions(feed *sql.DB) ([]feedException, error) {
	rows, err := feed.Query("select service_id, service_date, exception_type from service_exception")
	if err != nil {
		return nil, oops.Wrap(err)
	}
	defer rows.Close()

	var exceptions []feedException
	for rows.Next() {
		var exception feedException
		var date string
		if err := rows.Scan(&exception.ServiceId, &date, &exception.Type); err != nil {
			return nil, oops.Wrap(err)
		}
		var err error
		if exception.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		exceptions = append(exceptions, exception)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Wrap(err)
	}
	return exceptions, nil
}

type feedTrip struct {
	Id             models.TripId
	ServiceId      models.ServiceId
	MaybeShortName *string
	MaybeHeadsign  *string
}

func readTrips(feed *sql.DB) ([]feedTrip, error) {
	rows, err := feed.Query("select trip_id, service_id, short_name, headsign from trip")
	if err != nil {
		return nil, oops.Wrap(err)
	}
	defer rows.Close()

	var trips []feedTrip
	for rows.Next() {
		var trip feedTrip
		err := rows.Scan(&trip.Id, &trip.ServiceId, &trip.MaybeShortName, &trip.MaybeHeadsign)
		if err != nil {
			return nil, oops.Wrap(err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Wrap(err)
	}
	return trips, nil
}

type feedStopTime struct {
	TripId        models.TripId
	StopId        string
	StopSequence  int
	ArrivalTime   models.DayTime
	DepartureTime models.DayTime
}

func readStopTimes(feed *sql.DB) ([]feedStopTime, error) {
	rows, err := feed.Query(`
		select trip_id, stop_id, stop_sequence, arrival_time, departure_time from stop_time
	`)
	if err != nil {
		return nil, oops.Wrap(err)
	}
	defer rows.Close()

	var stopTimes []feedStopTime
	for rows.Next() {
		var stopTime feedStopTime
		var arrival, departure string
		err := rows.Scan(
			&stopTime.TripId, &stopTime.StopId, &stopTime.StopSequence, &arrival, &departure,
		)
		if err != nil {
			return nil, oops.Wrap(err)
		}
		if stopTime.ArrivalTime, err = ParseClock(arrival); err != nil {
			return nil, err
		}
		if stopTime.DepartureTime, err = ParseClock(departure); err != nil {
			return nil, err
		}
		stopTimes = append(stopTimes, stopTime)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Wrap(err)
	}
	return stopTimes, nil
}
