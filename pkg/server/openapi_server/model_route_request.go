// SPDX-License-Identifier: MIT

package openapi_server

// CityRouteRequest asks for the best route between any station of two cities.
type CityRouteRequest struct {
	OriginCity      string `json:"origin_city" validate:"required"`
	DestinationCity string `json:"destination_city" validate:"required"`
	// bfs or dijkstra, defaults to dijkstra
	Algorithm string `json:"algorithm,omitempty"`
}

// AssertCityRouteRequestRequired checks if the required fields are not zero-ed
func AssertCityRouteRequestRequired(obj CityRouteRequest) error {
	return assertValid(obj)
}

// StationRouteRequest asks for the A* route between two station codes.
type StationRouteRequest struct {
	OriginCode      string `json:"origin_code" validate:"required"`
	DestinationCode string `json:"destination_code" validate:"required"`
	// a_star, the default
	Algorithm string `json:"algorithm,omitempty"`
}

// AssertStationRouteRequestRequired checks if the required fields are not zero-ed
func AssertStationRouteRequestRequired(obj StationRouteRequest) error {
	return assertValid(obj)
}
