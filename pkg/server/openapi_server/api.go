// SPDX-License-Identifier: MIT

package openapi_server

import (
	"context"
	"net/http"
)

// DefaultApiRouter defines the required methods for binding the api requests to a responses for the DefaultApi
// The DefaultApiRouter implementation should parse necessary information from the http request,
// pass the data to a DefaultApiServicer to perform the required actions, then write the service results to the http response.
type DefaultApiRouter interface {
	GetCities(http.ResponseWriter, *http.Request)
	GetCityStations(http.ResponseWriter, *http.Request)
	GetStation(http.ResponseWriter, *http.Request)
	GetNearestStation(http.ResponseWriter, *http.Request)
	GetStatistics(http.ResponseWriter, *http.Request)
	ComputeCityRoute(http.ResponseWriter, *http.Request)
	ComputeStationRoute(http.ResponseWriter, *http.Request)
}

// DefaultApiServicer defines the api actions for the DefaultApi service
// This interface intended to stay up to date with the openapi yaml used to generate it,
// while the service implementation can ignored with the .openapi-generator-ignore file
// and updated with the logic required for the API.
type DefaultApiServicer interface {
	GetCities(context.Context) (ImplResponse, error)
	GetCityStations(context.Context, string) (ImplResponse, error)
	GetStation(context.Context, string) (ImplResponse, error)
	GetNearestStation(context.Context, NearestQuery) (ImplResponse, error)
	GetStatistics(context.Context, int) (ImplResponse, error)
	ComputeCityRoute(context.Context, CityRouteRequest) (ImplResponse, error)
	ComputeStationRoute(context.Context, StationRouteRequest) (ImplResponse, error)
}
