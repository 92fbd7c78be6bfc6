package main

import (
	"fmt"
	"net/http"

	"stationboard/config"
	"stationboard/db"
	"stationboard/gtfs"
	"stationboard/log"
	sbmiddleware "stationboard/middleware"
	"stationboard/routes"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use: "stationboard",
		Run: func(_ *cobra.Command, _ []string) {
			runServer()
		},
	}
	rootCmd.AddCommand(db.DbCmd)
	rootCmd.AddCommand(gtfs.GtfsCmd)

	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}

func runServer() {
	if err := db.EnsureLatestMigration(); err != nil {
		panic(err)
	}

	conn, err := db.Pool.AcquireBackground()
	if err != nil {
		panic(err)
	}
	routes.MustInit(conn)
	conn.Release()

	r := chi.NewRouter()
	r.Use(sbmiddleware.Logger)
	r.Use(middleware.Compress(5))
	r.Use(sbmiddleware.Recoverer)
	r.Use(middleware.GetHead)

	r.Get("/api/stations", routes.StationIndex)
	r.Get("/api/stations/{stationId}/board", routes.StationBoard)
	r.Get("/api/trips/{tripId}", routes.TripShow)

	log.Info().Msg("Started")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", config.Cfg.Port), r); err != nil {
		panic(err)
	}
}
