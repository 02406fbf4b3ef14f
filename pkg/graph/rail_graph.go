package graph

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/natevvv/smartpath-rail/pkg/geometry"
)

// RailGraph is the station store. Stations are keyed by code; the adjacency
// keeps arcs per source code in insertion order, which the search strategies
// rely on for tie-breaking.
type RailGraph struct {
	stations map[string]Station
	arcs     map[string][]Arc // a key exists once the code was used as an edge source
	arcCount int
	frozen   bool
}

func NewRailGraph() *RailGraph {
	return &RailGraph{
		stations: make(map[string]Station),
		arcs:     make(map[string][]Arc),
	}
}

// AddStation inserts the station or overwrites an existing one with the same code.
func (g *RailGraph) AddStation(code, name, city string, lat, lon float64) error {
	if g.frozen {
		return ErrGraphFrozen
	}
	g.stations[code] = Station{Code: code, Name: name, City: city, Location: geometry.MakePoint(lat, lon)}
	return nil
}

// AddEdge appends a directed arc to the adjacency of source. Neither endpoint
// has to be a known station and parallel arcs are kept.
func (g *RailGraph) AddEdge(source, target string, distance float64) error {
	if g.frozen {
		return ErrGraphFrozen
	}
	if distance < 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return fmt.Errorf("%s -> %s: %w", source, target, ErrInvalidDistance)
	}
	g.arcs[source] = append(g.arcs[source], MakeArc(target, distance))
	g.arcCount++
	return nil
}

// Freeze makes the graph read-only.
func (g *RailGraph) Freeze() {
	g.frozen = true
}

func (g *RailGraph) IsFrozen() bool {
	return g.frozen
}

func (g *RailGraph) GetStation(code string) (Station, bool) {
	s, ok := g.stations[code]
	return s, ok
}

// Return the arcs leaving the given station. Unknown codes yield nil.
func (g *RailGraph) GetArcsFrom(code string) []Arc {
	return g.arcs[code]
}

// HasArcs reports whether code was ever used as an edge source.
func (g *RailGraph) HasArcs(code string) bool {
	_, ok := g.arcs[code]
	return ok
}

func (g *RailGraph) StationCount() int {
	return len(g.stations)
}

func (g *RailGraph) ArcCount() int {
	return g.arcCount
}

func (g *RailGraph) AsString() string {
	return GraphAsString(g)
}

// Stations returns all stations ordered by code.
func (g *RailGraph) Stations() []Station {
	stations := make([]Station, 0, len(g.stations))
	for _, s := range g.stations {
		stations = append(stations, s)
	}
	slices.SortFunc(stations, func(a, b Station) int { return cmp.Compare(a.Code, b.Code) })
	return stations
}

// Cities returns the distinct city names in ascending order.
func (g *RailGraph) Cities() []string {
	seen := make(map[string]struct{})
	cities := make([]string, 0)
	for _, s := range g.stations {
		if _, ok := seen[s.City]; ok {
			continue
		}
		seen[s.City] = struct{}{}
		cities = append(cities, s.City)
	}
	slices.Sort(cities)
	return cities
}

// StationsInCity returns the stations of a city ordered by name, then code.
func (g *RailGraph) StationsInCity(city string) []StationRef {
	refs := make([]StationRef, 0)
	for _, s := range g.stations {
		if s.City == city {
			refs = append(refs, s.Ref())
		}
	}
	slices.SortFunc(refs, func(a, b StationRef) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Code, b.Code)
	})
	return refs
}

// NearestStation returns the station closest to p by great-circle distance.
func (g *RailGraph) NearestStation(p geometry.Point) (Station, bool) {
	minDist := math.MaxFloat64
	var nearest Station
	found := false
	for _, s := range g.Stations() {
		if dist := p.DistanceTo(s.Location); dist < minDist {
			minDist = dist
			nearest = s
			found = true
		}
	}
	return nearest, found
}

// source codes in ascending order
func (g *RailGraph) sources() []string {
	sources := make([]string, 0, len(g.arcs))
	for code := range g.arcs {
		sources = append(sources, code)
	}
	slices.Sort(sources)
	return sources
}
