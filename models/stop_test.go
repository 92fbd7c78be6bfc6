package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayTime(t *testing.T) {
	afternoon := DayTime(13*3600 + 45*60 + 30)
	assert.Equal(t, 0, afternoon.DayOffset())
	assert.Equal(t, "13:45:30", afternoon.String())

	pastMidnight := DayTime(25*3600 + 10*60)
	assert.Equal(t, 1, pastMidnight.DayOffset())
	assert.Equal(t, "25:10:00", pastMidnight.String())

	serviceDate := date(2024, time.June, 3)
	assert.Equal(
		t, time.Date(2024, time.June, 4, 1, 10, 0, 0, time.UTC), pastMidnight.On(serviceDate),
	)
}

func TestStopBoardTime(t *testing.T) {
	stop := Stop{ArrivalTime: DayTime(10 * 3600), DepartureTime: DayTime(10*3600 + 120)}
	assert.Equal(t, stop.ArrivalTime, stop.BoardTime(BoardArrivals))
	assert.Equal(t, stop.DepartureTime, stop.BoardTime(BoardDepartures))
}

func TestStopAcrossMidnight(t *testing.T) {
	// Departs at 25:10 on its service day, which is 01:10 the next calendar day
	stop := Stop{ArrivalTime: DayTime(25*3600 + 8*60), DepartureTime: DayTime(25*3600 + 10*60)}

	at := time.Date(2024, time.June, 4, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2024, time.June, 3), stop.ServiceDate(BoardDepartures, at))
	boardDateTime := stop.BoardDateTime(BoardDepartures, at)
	assert.Equal(t, time.Date(2024, time.June, 4, 1, 10, 0, 0, time.UTC), boardDateTime)
	assert.False(t, boardDateTime.Before(at))
}

func TestStopSameDay(t *testing.T) {
	stop := Stop{ArrivalTime: DayTime(9 * 3600), DepartureTime: DayTime(9*3600 + 60)}

	at := time.Date(2024, time.June, 4, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2024, time.June, 4), stop.ServiceDate(BoardDepartures, at))
	assert.Equal(
		t,
		time.Date(2024, time.June, 4, 9, 1, 0, 0, time.UTC),
		stop.BoardDateTime(BoardDepartures, at),
	)

	afterDeparture := time.Date(2024, time.June, 4, 10, 0, 0, 0, time.UTC)
	assert.True(t, stop.BoardDateTime(BoardDepartures, afterDeparture).Before(afterDeparture))
}
