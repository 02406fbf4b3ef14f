// Package graph holds the railway network: stations indexed by code and a
// directed adjacency of weighted arcs.
//
// A RailGraph is built once (AddStation/AddEdge), then frozen. After Freeze it
// is read-only and may be queried from any number of goroutines.
package graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrGraphFrozen     = errors.New("graph is frozen and cannot be modified")
	ErrMissingColumn   = errors.New("missing required column")
	ErrInvalidDistance = errors.New("distance must be a finite non-negative number")
)

// Graph is the read surface the path search strategies need.
type Graph interface {
	GetStation(code string) (Station, bool)
	GetArcsFrom(code string) []Arc
	HasArcs(code string) bool
	StationCount() int
	ArcCount() int
}

// Network adds the city level lookups used by the route resolver.
type Network interface {
	Graph
	Cities() []string
	StationsInCity(city string) []StationRef
}

// Edge is a directed connection as it appears in the source records.
type Edge struct {
	From     string
	To       string
	Distance float64 // kilometres
}

func MakeEdge(from, to string, distance float64) Edge {
	return Edge{From: from, To: to, Distance: distance}
}

func GraphAsString(g *RailGraph) string {
	var sb strings.Builder

	// number of stations and number of arcs
	sb.WriteString(fmt.Sprintf("%v\n", g.StationCount()))
	sb.WriteString(fmt.Sprintf("%v\n", g.ArcCount()))

	// list all stations structured as "code lat lon"
	stations := g.Stations()
	for _, s := range stations {
		sb.WriteString(fmt.Sprintf("%v %v %v\n", s.Code, s.Location.Lat(), s.Location.Lon()))
	}

	// list all arcs structured as "source target distance", grouped by source code
	for _, source := range g.sources() {
		for _, arc := range g.GetArcsFrom(source) {
			sb.WriteString(fmt.Sprintf("%v %v %v\n", source, arc.Destination(), arc.Cost()))
		}
	}
	return sb.String()
}
