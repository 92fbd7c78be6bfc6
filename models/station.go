package models

import (
	"strings"
	"unicode"

	"stationboard/db/pgw"
	"stationboard/oops"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type StationId string

type Station struct {
	Id   StationId
	Name string
}

// Station_Search returns one row per station name, ordered by name. An empty query lists the main
// stations, the German convention for which is a name ending in "Hbf" or "Hauptbahnhof".
func Station_Search(tx pgw.Queryable, query string) ([]Station, error) {
	stations, err := station_FetchAll(tx)
	if err != nil {
		return nil, err
	}

	var matching []Station
	for _, station := range stations {
		if station_Matches(station.Name, query) {
			matching = append(matching, station)
		}
	}
	return matching, nil
}

func station_Matches(name string, query string) bool {
	if query == "" {
		return strings.HasSuffix(name, "Hbf") || strings.HasSuffix(name, "Hauptbahnhof")
	}
	return strings.Contains(FoldName(name), FoldName(query))
}

func station_FetchAll(tx pgw.Queryable) ([]Station, error) {
	rows, err := tx.Query("select id, name from stations order by name")
	if err != nil {
		return nil, oops.Wrap(err)
	}
	defer rows.Close()

	var stations []Station
	for rows.Next() {
		var station Station
		if err := rows.Scan(&station.Id, &station.Name); err != nil {
			return nil, oops.Wrap(err)
		}
		stations = append(stations, station)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Wrap(err)
	}

	return stations, nil
}

// FoldName lowercases and strips diacritics so that "munchen" matches "München". The German sharp s folds
// to "ss" which NFD decomposition doesn't cover.
func FoldName(name string) string {
	name = strings.ReplaceAll(name, "ß", "ss")
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, name)
	if err != nil {
		return strings.ToLower(name)
	}
	return strings.ToLower(folded)
}
