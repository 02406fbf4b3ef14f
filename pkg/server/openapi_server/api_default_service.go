package openapi_server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/natevvv/smartpath-rail/pkg/geometry"
	"github.com/natevvv/smartpath-rail/pkg/graph"
	"github.com/natevvv/smartpath-rail/pkg/graph/path"
	"github.com/natevvv/smartpath-rail/pkg/itinerary"
	"github.com/natevvv/smartpath-rail/pkg/routing"
)

const (
	DefaultCacheTTL             = 10 * time.Minute
	DefaultCacheCleanupInterval = 20 * time.Minute
)

var routeCacheHits = promauto.NewCounter(prometheus.CounterOpts{
	Name: "smartpath_route_cache_hits_total",
	Help: "Route responses served from the response cache",
})

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
// Include any external packages or services that will be required by this service.
type DefaultApiService struct {
	network *graph.RailGraph
	router  *routing.Router
	routes  *cache.Cache
	logger  *slog.Logger
}

type ServiceOption func(*DefaultApiService)

// WithRouteCache sets the expiry of cached route responses.
func WithRouteCache(ttl, cleanupInterval time.Duration) ServiceOption {
	return func(s *DefaultApiService) {
		s.routes = cache.New(ttl, cleanupInterval)
	}
}

func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *DefaultApiService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewDefaultApiService creates a default api service
func NewDefaultApiService(network *graph.RailGraph, router *routing.Router, opts ...ServiceOption) *DefaultApiService {
	s := &DefaultApiService{
		network: network,
		router:  router,
		routes:  cache.New(DefaultCacheTTL, DefaultCacheCleanupInterval),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DefaultApiService) GetCities(ctx context.Context) (ImplResponse, error) {
	return Response(http.StatusOK, Cities{Cities: s.network.Cities()}), nil
}

func (s *DefaultApiService) GetCityStations(ctx context.Context, city string) (ImplResponse, error) {
	stations := s.network.StationsInCity(city)
	if len(stations) == 0 {
		return Response(http.StatusNotFound, nil), fmt.Errorf("no stations found in city %q", city)
	}
	return Response(http.StatusOK, CityStations{City: city, Stations: stations}), nil
}

func (s *DefaultApiService) GetStation(ctx context.Context, code string) (ImplResponse, error) {
	station, ok := s.network.GetStation(code)
	if !ok {
		return Response(http.StatusNotFound, nil), fmt.Errorf("station not found: %s", code)
	}
	return Response(http.StatusOK, s.stationDetails(station)), nil
}

func (s *DefaultApiService) GetNearestStation(ctx context.Context, query NearestQuery) (ImplResponse, error) {
	p := geometry.MakePoint(query.Lat, query.Lon)
	station, ok := s.network.NearestStation(p)
	if !ok {
		return Response(http.StatusNotFound, nil), fmt.Errorf("no stations loaded")
	}
	return Response(http.StatusOK, NearestStation{
		StationDetails: s.stationDetails(station),
		DistanceKm:     p.DistanceTo(station.Location),
	}), nil
}

func (s *DefaultApiService) GetStatistics(ctx context.Context, top int) (ImplResponse, error) {
	return Response(http.StatusOK, StatisticsSummary{
		Statistics:      s.network.Statistics(),
		TopCities:       s.network.TopCities(top),
		BusiestStations: s.network.BusiestStations(top),
	}), nil
}

// ComputeCityRoute - Compute the best route between two cities
func (s *DefaultApiService) ComputeCityRoute(ctx context.Context, req CityRouteRequest) (ImplResponse, error) {
	strategy, err := parseAlgorithm(req.Algorithm, path.StrategyDijkstra)
	if err != nil {
		return Response(http.StatusUnprocessableEntity, nil), err
	}
	return s.cachedRoute(cacheKey("cities", req.OriginCity, req.DestinationCity, strategy), func() (routing.RouteResult, error) {
		return s.router.BestRouteBetweenCities(ctx, req.OriginCity, req.DestinationCity, strategy)
	})
}

// ComputeStationRoute - Compute the route between two stations
func (s *DefaultApiService) ComputeStationRoute(ctx context.Context, req StationRouteRequest) (ImplResponse, error) {
	strategy, err := parseAlgorithm(req.Algorithm, path.StrategyAStar)
	if err != nil {
		return Response(http.StatusUnprocessableEntity, nil), err
	}
	return s.cachedRoute(cacheKey("stations", req.OriginCode, req.DestinationCode, strategy), func() (routing.RouteResult, error) {
		return s.router.BestRouteBetweenStations(ctx, req.OriginCode, req.DestinationCode, strategy)
	})
}

func (s *DefaultApiService) cachedRoute(key string, resolve func() (routing.RouteResult, error)) (ImplResponse, error) {
	if cached, ok := s.routes.Get(key); ok {
		routeCacheHits.Inc()
		return Response(http.StatusOK, cached), nil
	}

	result, err := resolve()
	if err != nil {
		return Response(http.StatusInternalServerError, nil), err
	}

	response := RouteResponse{RouteResult: result, AlgorithmName: result.Strategy.Description()}
	if result.Found {
		trip := itinerary.Annotate(s.network, result.Strategy, result.Path, result.Metric)
		response.Trip = &trip
	}
	s.routes.SetDefault(key, response)
	s.logger.Debug("route cached", "key", key, "found", result.Found)
	return Response(http.StatusOK, response), nil
}

func (s *DefaultApiService) stationDetails(station graph.Station) StationDetails {
	details := StationDetails{
		Code:        station.Code,
		Name:        station.Name,
		City:        station.City,
		Lat:         station.Lat(),
		Lon:         station.Lon(),
		Connections: make([]Connection, 0),
	}
	for _, arc := range s.network.GetArcsFrom(station.Code) {
		conn := Connection{Code: arc.Destination(), DistanceKm: arc.Cost()}
		if target, ok := s.network.GetStation(arc.Destination()); ok {
			conn.Name = target.Name
		}
		details.Connections = append(details.Connections, conn)
	}
	return details
}

func parseAlgorithm(name string, fallback path.Strategy) (path.Strategy, error) {
	if name == "" {
		return fallback, nil
	}
	return path.ParseStrategy(name)
}

// cacheKey joins the parts with NUL, which cannot occur in station or city names.
func cacheKey(prefix string, params ...interface{}) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, prefix)
	for _, param := range params {
		parts = append(parts, fmt.Sprintf("%v", param))
	}
	return strings.Join(parts, "\x00")
}
