package migrations

import (
	"testing"

	"stationboard/db/schema"

	"github.com/stretchr/testify/require"
)

func TestVersionsAreSortedAndUnique(t *testing.T) {
	require.NotEmpty(t, All)
	seen := make(map[string]bool)
	var prev string
	for _, migration := range All {
		version := migration.Version()
		require.Len(t, version, 14)
		require.False(t, seen[version], "duplicate version: %s", version)
		require.Greater(t, version, prev)
		seen[version] = true
		prev = version
	}
}

func TestStationsChange(t *testing.T) {
	require.Equal(t, &CreateStations{}, All[0])

	table := stationsChange.CreateTable
	require.Equal(t, "stations", table.Name)
	require.Equal(t, []schema.Column{
		{Name: "id", Type: schema.TypeString, PrimaryKey: true, Nullable: false},
		{Name: "name", Type: schema.TypeString, PrimaryKey: false, Nullable: true},
	}, table.Columns)
	require.Equal(t, `create table "stations" ("id" text primary key, "name" text)`, table.CreateSQL())
}
