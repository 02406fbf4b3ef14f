package graph

import (
	"cmp"
	"math"
	"slices"
)

type Statistics struct {
	TotalStations            int     `json:"total_stations"`
	TotalConnections         int     `json:"total_connections"`
	TotalCities              int     `json:"total_cities"`
	AvgConnectionsPerStation float64 `json:"avg_connections_per_station"`
}

type CityCount struct {
	City     string `json:"city"`
	Stations int    `json:"stations"`
}

type StationConnections struct {
	Station     StationRef `json:"station"`
	Connections int        `json:"connections"`
}

func (g *RailGraph) Statistics() Statistics {
	stats := Statistics{
		TotalStations:    g.StationCount(),
		TotalConnections: g.ArcCount(),
		TotalCities:      len(g.Cities()),
	}
	if stats.TotalStations > 0 {
		stats.AvgConnectionsPerStation = round2(float64(stats.TotalConnections) / float64(stats.TotalStations))
	}
	return stats
}

// TopCities returns up to n cities with the most stations. n <= 0 returns all.
func (g *RailGraph) TopCities(n int) []CityCount {
	counts := make(map[string]int)
	for _, s := range g.stations {
		counts[s.City]++
	}
	result := make([]CityCount, 0, len(counts))
	for city, c := range counts {
		result = append(result, CityCount{City: city, Stations: c})
	}
	slices.SortFunc(result, func(a, b CityCount) int {
		if c := cmp.Compare(b.Stations, a.Stations); c != 0 {
			return c
		}
		return cmp.Compare(a.City, b.City)
	})
	return limit(result, n)
}

// BusiestStations returns up to n edge sources with the most outgoing arcs.
// Sources that are not known stations are reported with an empty name.
func (g *RailGraph) BusiestStations(n int) []StationConnections {
	result := make([]StationConnections, 0, len(g.arcs))
	for code, arcs := range g.arcs {
		ref := StationRef{Code: code}
		if s, ok := g.stations[code]; ok {
			ref = s.Ref()
		}
		result = append(result, StationConnections{Station: ref, Connections: len(arcs)})
	}
	slices.SortFunc(result, func(a, b StationConnections) int {
		if c := cmp.Compare(b.Connections, a.Connections); c != 0 {
			return c
		}
		return cmp.Compare(a.Station.Code, b.Station.Code)
	})
	return limit(result, n)
}

func limit[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// round2 rounds to cents, halves to even: 0.125 -> 0.12, 0.375 -> 0.38.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
