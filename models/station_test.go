package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldName(t *testing.T) {
	assert.Equal(t, "munchen hbf", FoldName("München Hbf"))
	assert.Equal(t, "koln messe/deutz", FoldName("Köln Messe/Deutz"))
	assert.Equal(t, "weissenfels", FoldName("Weißenfels"))
	assert.Equal(t, "berlin", FoldName("Berlin"))
	assert.Equal(t, "", FoldName(""))
}

func TestStationMatchesEmptyQueryListsMainStations(t *testing.T) {
	assert.True(t, station_Matches("Frankfurt(Main)Hbf", ""))
	assert.True(t, station_Matches("Leipzig Hauptbahnhof", ""))
	assert.False(t, station_Matches("Berlin Ostbahnhof", ""))
	assert.False(t, station_Matches("Frankfurt(M) Flughafen Fernbf", ""))
	assert.False(t, station_Matches("Hbf Kiosk", ""))
}

func TestStationMatchesSubstring(t *testing.T) {
	assert.True(t, station_Matches("München Hbf", "munchen"))
	assert.True(t, station_Matches("München Hbf", "MÜNCHEN"))
	assert.True(t, station_Matches("Köln Messe/Deutz", "deutz"))
	assert.True(t, station_Matches("Weißenfels", "weiss"))
	assert.False(t, station_Matches("Berlin Hbf", "munchen"))
}
