package migrations

import (
	"stationboard/db/pgw"
)

type AddStopNameIndex struct{}

func init() {
	registerMigration(&AddStopNameIndex{})
}

func (m *AddStopNameIndex) Version() string {
	return "20240618003151"
}

func (m *AddStopNameIndex) Up(tx *pgw.Tx) {
	tx.MustExec(`create index stops_name on stops (name)`)
}

func (m *AddStopNameIndex) Down(tx *pgw.Tx) {
	tx.MustExec(`drop index stops_name`)
}
