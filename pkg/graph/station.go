package graph

import "github.com/natevvv/smartpath-rail/pkg/geometry"

// UnknownCity replaces a missing city in the station records.
const UnknownCity = "Unknown"

type Station struct {
	Code     string
	Name     string
	City     string
	Location geometry.Point
}

// StationRef is the short descriptor used in route results and city listings.
type StationRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (s Station) Ref() StationRef {
	return StationRef{Code: s.Code, Name: s.Name}
}

func (s Station) Lat() float64 { return s.Location.Lat() }
func (s Station) Lon() float64 { return s.Location.Lon() }
