package routes

import (
	"net/http"

	"stationboard/db"
	"stationboard/db/pgw"
	"stationboard/models"
)

// The timetable only changes on feed imports, so services are loaded once.
// TODO: reload services after a feed import without restarting the server
var services map[models.ServiceId]*models.Service

func MustInit(conn *pgw.Conn) {
	var err error
	services, err = models.Service_FetchAll(conn)
	if err != nil {
		panic(err)
	}
}

func mustAcquire(r *http.Request) *pgw.Conn {
	conn, err := db.Pool.Acquire(r.Context())
	if err != nil {
		panic(err)
	}
	return conn
}
