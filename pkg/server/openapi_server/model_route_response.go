// SPDX-License-Identifier: MIT

package openapi_server

import (
	"github.com/natevvv/smartpath-rail/pkg/itinerary"
	"github.com/natevvv/smartpath-rail/pkg/routing"
)

// RouteResponse is a route result plus, when a route exists, its itinerary.
type RouteResponse struct {
	routing.RouteResult
	AlgorithmName string          `json:"algorithm_name"`
	Trip          *itinerary.Trip `json:"trip,omitempty"`
}
