package gtfs

import (
	"database/sql"

	"stationboard/db"
	"stationboard/db/pgw"
	"stationboard/log"
	"stationboard/oops"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var GtfsCmd *cobra.Command

func init() {
	GtfsCmd = &cobra.Command{
		Use: "gtfs",
	}

	importCmd := &cobra.Command{
		Use:  "import <feed.db>",
		Args: cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			conn, err := db.Pool.AcquireBackground()
			if err != nil {
				panic(err)
			}
			defer conn.Release()

			if err := importFeed(conn, args[0]); err != nil {
				panic(err)
			}
		},
	}

	GtfsCmd.AddCommand(importCmd)
}

// importFeed replaces the timetable with the feed's contents in one transaction, so the server can keep
// answering queries off the old timetable until the import commits.
func importFeed(conn *pgw.Conn, feedPath string) error {
	feed, err := sql.Open("sqlite", feedPath)
	if err != nil {
		return oops.Wrap(err)
	}
	defer func() {
		if err := feed.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close the feed")
		}
	}()

	stations, err := collectStations(feed)
	if err != nil {
		return err
	}
	stops, err := readStops(feed)
	if err != nil {
		return err
	}
	services, err := readServices(feed)
	if err != nil {
		return err
	}
	exceptions, err := readExceptions(feed)
	if err != nil {
		return err
	}
	trips, err := readTrips(feed)
	if err != nil {
		return err
	}
	stopTimes, err := readStopTimes(feed)
	if err != nil {
		return err
	}

	tx, err := conn.Begin()
	if err != nil {
		return oops.Wrap(err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Error().Err(err).Msg("Rollback error")
		}
	}()

	// Children before parents
	for _, table := range []string{
		"stop_times", "trips", "service_exceptions", "services", "stops", "stations",
	} {
		if _, err := tx.Exec("delete from " + table); err != nil {
			return oops.Wrap(err)
		}
	}

	batch := &pgx.Batch{}
	for _, station := range stations {
		batch.Queue("insert into stations (id, name) values ($1, $2)", station.Id, station.Name)
	}
	for _, stop := range stops {
		batch.Queue("insert into stops (id, name) values ($1, $2)", stop.Id, stop.Name)
	}
	for _, service := range services {
		batch.Queue(`
			insert into services (
				id, monday, tuesday, wednesday, thursday, friday, saturday, sunday,
				start_date, end_date
			) values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			service.Id, service.Weekdays[0], service.Weekdays[1], service.Weekdays[2],
			service.Weekdays[3], service.Weekdays[4], service.Weekdays[5], service.Weekdays[6],
			service.StartDate, service.EndDate,
		)
	}
	for _, exception := range exceptions {
		batch.Queue(`
			insert into service_exceptions (service_id, exception_date, exception_type)
			values ($1, $2, $3)
		`, exception.ServiceId, exception.Date, exception.Type)
	}
	for _, trip := range trips {
		batch.Queue(
			"insert into trips (id, service_id, short_name, headsign) values ($1, $2, $3, $4)",
			trip.Id, trip.ServiceId, trip.MaybeShortName, trip.MaybeHeadsign,
		)
	}
	for _, stopTime := range stopTimes {
		batch.Queue(`
			insert into stop_times (trip_id, stop_id, stop_sequence, arrival_time, departure_time)
			values ($1, $2, $3, $4, $5)
		`, stopTime.TripId, stopTime.StopId, stopTime.StopSequence,
			stopTime.ArrivalTime, stopTime.DepartureTime,
		)
	}

	if err := tx.SendBatch(batch).Close(); err != nil {
		return oops.Wrap(err)
	}
	if err := tx.Commit(); err != nil {
		return oops.Wrap(err)
	}

	log.Info().
		Int("stations", len(stations)).
		Int("stops", len(stops)).
		Int("services", len(services)).
		Int("trips", len(trips)).
		Int("stop_times", len(stopTimes)).
		Msg("Imported feed")
	return nil
}
