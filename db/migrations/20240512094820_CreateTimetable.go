package migrations

import (
	"stationboard/db/pgw"
	"stationboard/db/schema"
)

type CreateTimetable struct{}

func init() {
	registerMigration(&CreateTimetable{})
}

func (m *CreateTimetable) Version() string {
	return "20240512094820"
}

var timetableChanges = []schema.Change{
	{
		CreateTable: schema.Table{
			Name: "services",
			Columns: []schema.Column{
				{Name: "id", Type: schema.TypeInt, PrimaryKey: true},
				{Name: "monday", Type: schema.TypeBool},
				{Name: "tuesday", Type: schema.TypeBool},
				{Name: "wednesday", Type: schema.TypeBool},
				{Name: "thursday", Type: schema.TypeBool},
				{Name: "friday", Type: schema.TypeBool},
				{Name: "saturday", Type: schema.TypeBool},
				{Name: "sunday", Type: schema.TypeBool},
				{Name: "start_date", Type: schema.TypeDate},
				{Name: "end_date", Type: schema.TypeDate},
			},
		},
	},
	{
		CreateTable: schema.Table{
			Name: "stops",
			Columns: []schema.Column{
				{Name: "id", Type: schema.TypeString, PrimaryKey: true},
				{Name: "name", Type: schema.TypeString},
			},
		},
	},
}

func (m *CreateTimetable) Up(tx *pgw.Tx) {
	for _, change := range timetableChanges {
		change.MustApply(tx)
	}

	tx.MustExec(`
		create table service_exceptions (
			service_id bigint not null references services (id),
			exception_date date not null,
			exception_type int not null,
			primary key (service_id, exception_date)
		)
	`)
	tx.MustExec(`
		create table trips (
			id bigint primary key,
			service_id bigint not null references services (id),
			short_name text,
			headsign text
		)
	`)
	tx.MustExec(`
		create table stop_times (
			trip_id bigint not null references trips (id),
			stop_id text not null references stops (id),
			stop_sequence int not null,
			arrival_time bigint not null,
			departure_time bigint not null,
			primary key (trip_id, stop_sequence)
		)
	`)
	tx.MustExec(`create index stop_times_stop_id on stop_times (stop_id)`)
}

func (m *CreateTimetable) Down(tx *pgw.Tx) {
	tx.MustExec(`drop table stop_times`)
	tx.MustExec(`drop table trips`)
	tx.MustExec(`drop table service_exceptions`)
	for i := len(timetableChanges) - 1; i >= 0; i-- {
		timetableChanges[i].MustRevert(tx)
	}
}
