package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/natevvv/smartpath-rail/pkg/graph"
	"github.com/natevvv/smartpath-rail/pkg/graph/path"
)

// ErrUnsupportedStrategy is returned when a query asks for a strategy its entry
// point does not offer. City queries take BFS or Dijkstra, station queries A*.
var ErrUnsupportedStrategy = errors.New("strategy not supported for this query")

// RouteResult is the uniform answer of both resolver entry points. When Found
// is false only Message, Strategy and Searches are meaningful.
type RouteResult struct {
	Found              bool              `json:"found"`
	Message            string            `json:"message,omitempty"`
	OriginStation      *graph.StationRef `json:"origin_station,omitempty"`
	DestinationStation *graph.StationRef `json:"destination_station,omitempty"`
	Path               []string          `json:"path,omitempty"`
	Metric             float64           `json:"metric"`
	Strategy           path.Strategy     `json:"algorithm"`
	Searches           int               `json:"searches"` // number of underlying searches
	KPIs               path.SearchKPIs   `json:"kpis"`     // summed over all searches
}

func notFound(strategy path.Strategy, searches int, format string, args ...any) RouteResult {
	return RouteResult{Strategy: strategy, Searches: searches, Message: fmt.Sprintf(format, args...)}
}

// Router resolves city-to-city and station-to-station queries on a frozen network.
type Router struct {
	network    graph.Network
	navigators map[path.Strategy]path.Navigator
	workers    int
	logger     *slog.Logger
}

type Option func(*Router)

// WithWorkers bounds the number of concurrent pair searches of a city query.
func WithWorkers(n int) Option {
	return func(r *Router) {
		if n > 0 {
			r.workers = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithNavigator replaces the navigator used for nav.Strategy().
func WithNavigator(nav path.Navigator) Option {
	return func(r *Router) {
		r.navigators[nav.Strategy()] = nav
	}
}

func NewRouter(network graph.Network, opts ...Option) *Router {
	r := &Router{
		network:    network,
		navigators: make(map[path.Strategy]path.Navigator, len(path.Strategies)),
		workers:    runtime.GOMAXPROCS(0),
		logger:     slog.Default(),
	}
	for _, s := range path.Strategies {
		nav, _ := path.NewNavigator(s, network)
		r.navigators[s] = nav
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Navigator returns the navigator for the strategy.
func (r *Router) Navigator(strategy path.Strategy) (path.Navigator, error) {
	nav, ok := r.navigators[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", path.ErrUnknownStrategy, strategy)
	}
	return nav, nil
}

// BestRouteBetweenCities searches every (origin station, destination station)
// pair of the two cities and keeps the result with the smallest metric. Pairs
// are ranked origin-outer, destination-inner with both sides ordered by station
// name, and the first pair wins a tie.
func (r *Router) BestRouteBetweenCities(ctx context.Context, originCity, destinationCity string, strategy path.Strategy) (RouteResult, error) {
	start := time.Now()
	nav, err := r.Navigator(strategy)
	if err != nil {
		return RouteResult{}, err
	}
	if strategy != path.StrategyBFS && strategy != path.StrategyDijkstra {
		return RouteResult{}, fmt.Errorf("%w: %v between cities", ErrUnsupportedStrategy, strategy)
	}

	origins := r.network.StationsInCity(originCity)
	destinations := r.network.StationsInCity(destinationCity)
	if len(origins) == 0 || len(destinations) == 0 {
		observeQuery(strategy, resultNotFound, start)
		return notFound(strategy, 0, "no stations found in one or both cities (%s, %s)", originCity, destinationCity), nil
	}

	results := make([]path.Result, len(origins)*len(destinations))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.workers)
	for i, origin := range origins {
		for j, destination := range destinations {
			origin, destination := origin, destination
			idx := i*len(destinations) + j
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				results[idx] = nav.ComputeShortestPath(origin.Code, destination.Code)
				searchesTotal.WithLabelValues(strategy.String()).Inc()
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		observeQuery(strategy, resultCancelled, start)
		return RouteResult{}, err
	}

	var kpis path.SearchKPIs
	best := -1
	bestMetric := math.Inf(1)
	for idx, result := range results {
		addKPIs(&kpis, result.KPIs)
		if result.Found() && result.Metric < bestMetric {
			best = idx
			bestMetric = result.Metric
		}
	}

	r.logger.Debug("resolved city route",
		"origin", originCity, "destination", destinationCity, "strategy", strategy,
		"pairs", len(results), "found", best >= 0, "elapsed", time.Since(start))

	if best < 0 {
		observeQuery(strategy, resultNotFound, start)
		result := notFound(strategy, len(results), "no route found between %s and %s", originCity, destinationCity)
		result.KPIs = kpis
		return result, nil
	}

	observeQuery(strategy, resultFound, start)
	origin := origins[best/len(destinations)]
	destination := destinations[best%len(destinations)]
	return RouteResult{
		Found:              true,
		OriginStation:      &origin,
		DestinationStation: &destination,
		Path:               results[best].Path,
		Metric:             results[best].Metric,
		Strategy:           strategy,
		Searches:           len(results),
		KPIs:               kpis,
	}, nil
}

// BestRouteBetweenStations runs a single A* search between two station codes.
func (r *Router) BestRouteBetweenStations(ctx context.Context, originCode, destinationCode string, strategy path.Strategy) (RouteResult, error) {
	start := time.Now()
	nav, err := r.Navigator(strategy)
	if err != nil {
		return RouteResult{}, err
	}
	if strategy != path.StrategyAStar {
		return RouteResult{}, fmt.Errorf("%w: %v between stations", ErrUnsupportedStrategy, strategy)
	}
	if err := ctx.Err(); err != nil {
		return RouteResult{}, err
	}

	origin, ok := r.network.GetStation(originCode)
	if !ok {
		observeQuery(strategy, resultNotFound, start)
		return notFound(strategy, 0, "station not found: %s", originCode), nil
	}
	destination, ok := r.network.GetStation(destinationCode)
	if !ok {
		observeQuery(strategy, resultNotFound, start)
		return notFound(strategy, 0, "station not found: %s", destinationCode), nil
	}

	result := nav.ComputeShortestPath(originCode, destinationCode)
	searchesTotal.WithLabelValues(strategy.String()).Inc()

	r.logger.Debug("resolved station route",
		"origin", originCode, "destination", destinationCode, "strategy", strategy,
		"found", result.Found(), "elapsed", time.Since(start))

	if !result.Found() {
		observeQuery(strategy, resultNotFound, start)
		res := notFound(strategy, 1, "no route found between %s and %s", origin.Name, destination.Name)
		res.KPIs = result.KPIs
		return res, nil
	}

	observeQuery(strategy, resultFound, start)
	originRef, destinationRef := origin.Ref(), destination.Ref()
	return RouteResult{
		Found:              true,
		OriginStation:      &originRef,
		DestinationStation: &destinationRef,
		Path:               result.Path,
		Metric:             result.Metric,
		Strategy:           strategy,
		Searches:           1,
		KPIs:               result.KPIs,
	}, nil
}

func addKPIs(sum *path.SearchKPIs, k path.SearchKPIs) {
	sum.PqPops += k.PqPops
	sum.RelaxationAttempts += k.RelaxationAttempts
	sum.RelaxedEdges += k.RelaxedEdges
	sum.SettledNodes += k.SettledNodes
}
