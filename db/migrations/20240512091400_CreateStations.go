package migrations

import (
	"stationboard/db/pgw"
	"stationboard/db/schema"
)

type CreateStations struct{}

func init() {
	registerMigration(&CreateStations{})
}

func (m *CreateStations) Version() string {
	return "20240512091400"
}

// Station ids come from the GTFS feed, so the primary key is a string, not a serial.
var stationsChange = schema.Change{
	CreateTable: schema.Table{
		Name: "stations",
		Columns: []schema.Column{
			{Name: "id", Type: schema.TypeString, PrimaryKey: true},
			{Name: "name", Type: schema.TypeString, Nullable: true},
		},
	},
}

func (m *CreateStations) Up(tx *pgw.Tx) {
	stationsChange.MustApply(tx)
}

func (m *CreateStations) Down(tx *pgw.Tx) {
	stationsChange.MustRevert(tx)
}
