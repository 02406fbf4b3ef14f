package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Point is a WGS84 coordinate. Internally it is stored as an orb.Point, which is
// ordered (lon, lat).
type Point orb.Point

func MakePoint(lat, lon float64) Point {
	return Point{lon, lat}
}

func (p Point) Lat() float64 { return p[1] }
func (p Point) Lon() float64 { return p[0] }

func (p Point) Orb() orb.Point { return orb.Point(p) }

// EuclideanDistance returns the straight-line distance in degree space.
// It is not a distance in kilometres.
func (p Point) EuclideanDistance(other Point) float64 {
	return planar.Distance(p.Orb(), other.Orb())
}

// DistanceTo returns the great-circle distance in kilometres.
func (p Point) DistanceTo(other Point) float64 {
	return geo.DistanceHaversine(p.Orb(), other.Orb()) / 1000
}

func (p Point) String() string {
	return fmt.Sprintf("(%v, %v)", p.Lat(), p.Lon())
}
