// Package itinerary turns a path of station codes into per-stop records and
// derives price and travel time estimates.
package itinerary

import (
	"fmt"
	"math"

	"github.com/natevvv/smartpath-rail/pkg/graph"
	"github.com/natevvv/smartpath-rail/pkg/graph/path"
)

const (
	BaseFare        = 5.0  // GBP
	RatePerKm       = 0.15 // GBP per km
	AverageSpeedKmh = 80.0
	DwellHours      = 0.05 // 3 minutes per intermediate stop
)

// Step is one station of an itinerary. DistanceToNext is nil for the last
// station and whenever no arc to the next station is recorded.
type Step struct {
	Step           int      `json:"step"`
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	City           string   `json:"city"`
	Lat            float64  `json:"lat"`
	Lon            float64  `json:"lon"`
	DistanceToNext *float64 `json:"distance_to_next,omitempty"`
}

// Trip is a route annotated for display.
type Trip struct {
	Steps           []Step  `json:"steps"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	NumStops        int     `json:"num_stops"`
	Price           float64 `json:"price"`
	Hours           float64 `json:"hours"`
	Duration        string  `json:"duration"`
}

// RouteDetails expands a path into steps. Step numbers follow the position in
// the path; codes that are not known stations are left out. The leg distance
// is taken from the first matching arc.
func RouteDetails(g graph.Graph, route []string) []Step {
	steps := make([]Step, 0, len(route))
	for i, code := range route {
		station, ok := g.GetStation(code)
		if !ok {
			continue
		}
		step := Step{
			Step: i + 1,
			Code: code,
			Name: station.Name,
			City: station.City,
			Lat:  station.Lat(),
			Lon:  station.Lon(),
		}
		if i < len(route)-1 {
			next := route[i+1]
			for _, arc := range g.GetArcsFrom(code) {
				if arc.Destination() == next {
					distance := arc.Cost()
					step.DistanceToNext = &distance
					break
				}
			}
		}
		steps = append(steps, step)
	}
	return steps
}

// TotalDistance sums the recorded leg distances.
func TotalDistance(steps []Step) float64 {
	total := 0.0
	for _, s := range steps {
		if s.DistanceToNext != nil {
			total += *s.DistanceToNext
		}
	}
	return total
}

func Price(totalDistanceKm float64) float64 {
	return round2(BaseFare + totalDistanceKm*RatePerKm)
}

// Time is the estimated travel time in hours. numStops counts every station
// of the route, so the dwell applies to numStops-1 stops.
func Time(totalDistanceKm float64, numStops int) float64 {
	dwell := 0.0
	if numStops > 1 {
		dwell = float64(numStops-1) * DwellHours
	}
	return round2(totalDistanceKm/AverageSpeedKmh + dwell)
}

// FormatDuration renders hours as "2h 42min", or "42min" below one hour.
func FormatDuration(hours float64) string {
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	if h > 0 {
		return fmt.Sprintf("%dh %dmin", h, m)
	}
	return fmt.Sprintf("%dmin", m)
}

// Annotate builds the trip for a route found with the given strategy. For BFS
// the metric is a stop count, so the distance is summed from the legs.
func Annotate(g graph.Graph, strategy path.Strategy, route []string, metric float64) Trip {
	steps := RouteDetails(g, route)

	total := metric
	if strategy == path.StrategyBFS {
		total = TotalDistance(steps)
	}

	hours := Time(total, len(route))
	return Trip{
		Steps:           steps,
		TotalDistanceKm: total,
		NumStops:        len(route),
		Price:           Price(total),
		Hours:           hours,
		Duration:        FormatDuration(hours),
	}
}

// round2 rounds to cents, halves to even: 0.125 -> 0.12, 0.375 -> 0.38.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
