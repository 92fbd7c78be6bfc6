package schema

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var stationsChange = Change{
	CreateTable: Table{
		Name: "stations",
		Columns: []Column{
			{Name: "id", Type: TypeString, PrimaryKey: true},
			{Name: "name", Type: TypeString, Nullable: true},
		},
	},
}

type testQueryable struct {
	db *sql.DB
}

func (q testQueryable) Exec(query string, args ...any) (pgconn.CommandTag, error) {
	_, err := q.db.Exec(query, args...)
	return pgconn.CommandTag{}, err
}

func newTestDB(t *testing.T) testQueryable {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return testQueryable{db}
}

func tableNames(t *testing.T, q testQueryable) []string {
	t.Helper()
	rows, err := q.db.Query(`
		select name from sqlite_master
		where type = 'table' and name not like 'sqlite_%'
		order by name
	`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

type columnInfo struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

func tableColumns(t *testing.T, q testQueryable, table string) []columnInfo {
	t.Helper()
	rows, err := q.db.Query(`select name, type, "notnull", pk from pragma_table_info(?) order by cid`, table)
	require.NoError(t, err)
	defer rows.Close()

	var columns []columnInfo
	for rows.Next() {
		var column columnInfo
		var notNull, pk int
		require.NoError(t, rows.Scan(&column.Name, &column.Type, &notNull, &pk))
		// sqlite reports declared types uppercased
		column.Type = strings.ToLower(column.Type)
		column.NotNull = notNull != 0
		column.PrimaryKey = pk != 0
		columns = append(columns, column)
	}
	require.NoError(t, rows.Err())
	return columns
}

func TestApplyCreatesStations(t *testing.T) {
	q := newTestDB(t)

	require.NoError(t, stationsChange.Apply(q))

	require.Equal(t, []string{"stations"}, tableNames(t, q))
	require.Equal(t, []columnInfo{
		{Name: "id", Type: "text", NotNull: false, PrimaryKey: true},
		{Name: "name", Type: "text", NotNull: false, PrimaryKey: false},
	}, tableColumns(t, q, "stations"))
}

func TestApplyTwiceFailsWithConflict(t *testing.T) {
	q := newTestDB(t)

	require.NoError(t, stationsChange.Apply(q))

	err := stationsChange.Apply(q)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Equal(t, "stations", conflictErr.Table)
}

func TestRevertRemovesTable(t *testing.T) {
	q := newTestDB(t)

	require.NoError(t, stationsChange.Apply(q))
	require.NoError(t, stationsChange.Revert(q))

	require.Empty(t, tableNames(t, q))
}

func TestRevertWithoutApplyFailsWithNotFound(t *testing.T) {
	q := newTestDB(t)

	err := stationsChange.Revert(q)
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	require.Equal(t, "stations", notFoundErr.Table)
}

func TestApplyRevertRoundTrip(t *testing.T) {
	q := newTestDB(t)
	_, err := q.db.Exec(`create table other ("k" bigint primary key, "v" text)`)
	require.NoError(t, err)
	namesBefore := tableNames(t, q)
	otherColumnsBefore := tableColumns(t, q, "other")

	require.NoError(t, stationsChange.Apply(q))
	require.NoError(t, stationsChange.Revert(q))

	require.Equal(t, namesBefore, tableNames(t, q))
	require.Equal(t, otherColumnsBefore, tableColumns(t, q, "other"))
}

func TestCreateSQL(t *testing.T) {
	require.Equal(
		t,
		`create table "stations" ("id" text primary key, "name" text)`,
		stationsChange.CreateTable.CreateSQL(),
	)

	change := Change{
		CreateTable: Table{
			Name: "services",
			Columns: []Column{
				{Name: "id", Type: TypeInt, PrimaryKey: true},
				{Name: "monday", Type: TypeBool},
				{Name: "start_date", Type: TypeDate},
			},
		},
	}
	require.Equal(
		t,
		`create table "services" ("id" bigint primary key, "monday" boolean not null, `+
			`"start_date" date not null)`,
		change.CreateTable.CreateSQL(),
	)
}

func TestClassifyPostgresErrors(t *testing.T) {
	conflict := classify(&pgconn.PgError{Code: "42P07"}, "stations")
	var conflictErr *ConflictError
	require.ErrorAs(t, conflict, &conflictErr)

	notFound := classify(&pgconn.PgError{Code: "42P01"}, "stations")
	var notFoundErr *NotFoundError
	require.ErrorAs(t, notFound, &notFoundErr)

	other := &pgconn.PgError{Code: "42601"}
	require.Equal(t, error(other), classify(other, "stations"))
}
