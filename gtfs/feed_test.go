package gtfs

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"stationboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestParseClock(t *testing.T) {
	daytime, err := ParseClock("08:15:00")
	require.NoError(t, err)
	assert.Equal(t, models.DayTime(8*3600+15*60), daytime)

	daytime, err = ParseClock("25:10:30")
	require.NoError(t, err)
	assert.Equal(t, models.DayTime(25*3600+10*60+30), daytime)
	assert.Equal(t, 1, daytime.DayOffset())

	daytime, err = ParseClock("7:05:00")
	require.NoError(t, err)
	assert.Equal(t, models.DayTime(7*3600+5*60), daytime)

	for _, value := range []string{"", "12:60:00", "12:00", "noon", "12:00:0"} {
		_, err := ParseClock(value)
		assert.Error(t, err, "value: %q", value)
	}
}

func TestParseDate(t *testing.T) {
	date, err := parseDate("20240603")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), date)

	_, err = parseDate("2024-06-03")
	assert.Error(t, err)
}

func newTestFeed(t *testing.T) *sql.DB {
	t.Helper()
	feed, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "feed.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, feed.Close())
	})
	return feed
}

func TestCollectStations(t *testing.T) {
	feed := newTestFeed(t)
	_, err := feed.Exec("create table stop (stop_id text primary key, name text not null)")
	require.NoError(t, err)
	for _, row := range [][2]string{
		{"8000105:2", "Frankfurt(Main)Hbf"},
		{"8000105:1", "Frankfurt(Main)Hbf"},
		{"8000001:1", "Aachen Hbf"},
		{"8000002:1", "Aalen Hbf"},
	} {
		_, err := feed.Exec("insert into stop (stop_id, name) values (?, ?)", row[0], row[1])
		require.NoError(t, err)
	}

	stations, err := collectStations(feed)
	require.NoError(t, err)
	assert.Equal(t, []models.Station{
		{Id: "8000001:1", Name: "Aachen Hbf"},
		{Id: "8000002:1", Name: "Aalen Hbf"},
		{Id: "8000105:1", Name: "Frankfurt(Main)Hbf"},
	}, stations)
}

func TestReadServices(t *testing.T) {
	feed := newTestFeed(t)
	_, err := feed.Exec(`
		create table service (
			service_id integer primary key,
			monday int, tuesday int, wednesday int, thursday int, friday int, saturday int, sunday int,
			start_date text, end_date text
		)
	`)
	require.NoError(t, err)
	_, err = feed.Exec(`
		insert into service values (7, 1, 1, 1, 1, 1, 0, 0, '20240601', '20241214')
	`)
	require.NoError(t, err)

	services, err := readServices(feed)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, models.ServiceId(7), services[0].Id)
	assert.Equal(t, [7]bool{true, true, true, true, true, false, false}, services[0].Weekdays)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), services[0].StartDate)
	assert.Equal(t, time.Date(2024, time.December, 14, 0, 0, 0, 0, time.UTC), services[0].EndDate)
}

func TestReadStopTimes(t *testing.T) {
	feed := newTestFeed(t)
	_, err := feed.Exec(`
		create table stop_time (
			trip_id integer, stop_id text, stop_sequence integer,
			arrival_time text, departure_time text
		)
	`)
	require.NoError(t, err)
	_, err = feed.Exec(`
		insert into stop_time values (42, '8000105:1', 3, '23:58:00', '25:01:00')
	`)
	require.NoError(t, err)

	stopTimes, err := readStopTimes(feed)
	require.NoError(t, err)
	require.Len(t, stopTimes, 1)
	assert.Equal(t, models.TripId(42), stopTimes[0].TripId)
	assert.Equal(t, "8000105:1", stopTimes[0].StopId)
	assert.Equal(t, 3, stopTimes[0].StopSequence)
	assert.Equal(t, models.DayTime(23*3600+58*60), stopTimes[0].ArrivalTime)
	assert.Equal(t, models.DayTime(25*3600+60), stopTimes[0].DepartureTime)
}
