// SPDX-License-Identifier: MIT

package openapi_server

import "github.com/natevvv/smartpath-rail/pkg/graph"

type Cities struct {
	Cities []string `json:"cities"`
}

type CityStations struct {
	City     string             `json:"city"`
	Stations []graph.StationRef `json:"stations"`
}

type Connection struct {
	Code       string  `json:"code"`
	Name       string  `json:"name,omitempty"`
	DistanceKm float64 `json:"distance_km"`
}

type StationDetails struct {
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	City        string       `json:"city"`
	Lat         float64      `json:"lat"`
	Lon         float64      `json:"lon"`
	Connections []Connection `json:"connections"`
}

// NearestQuery holds the query parameters of the nearest station lookup.
type NearestQuery struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lon float64 `json:"lon" validate:"longitude"`
}

// AssertNearestQueryRequired checks the coordinates are within WGS84 bounds
func AssertNearestQueryRequired(obj NearestQuery) error {
	return assertValid(obj)
}

type NearestStation struct {
	StationDetails
	DistanceKm float64 `json:"distance_km"`
}

type StatisticsSummary struct {
	graph.Statistics
	TopCities       []graph.CityCount          `json:"top_cities"`
	BusiestStations []graph.StationConnections `json:"busiest_stations"`
}
