package path

import (
	"errors"
	"fmt"
	"strings"

	"github.com/natevvv/smartpath-rail/pkg/graph"
)

var ErrUnknownStrategy = errors.New("unknown search strategy")

// Strategy identifies a search algorithm.
type Strategy string

const (
	StrategyBFS      Strategy = "bfs"      // fewest stops
	StrategyDijkstra Strategy = "dijkstra" // shortest distance
	StrategyAStar    Strategy = "a_star"   // shortest distance, guided by a straight-line estimate
)

// Strategies lists every known strategy.
var Strategies = []Strategy{StrategyBFS, StrategyDijkstra, StrategyAStar}

func (s Strategy) String() string { return string(s) }

// Description is the human readable label of the strategy.
func (s Strategy) Description() string {
	switch s {
	case StrategyBFS:
		return "BFS (fewest stops)"
	case StrategyDijkstra:
		return "Dijkstra (shortest distance)"
	case StrategyAStar:
		return "A* (shortest distance + heuristic)"
	default:
		return "unknown"
	}
}

func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs":
		return StrategyBFS, nil
	case "dijkstra":
		return StrategyDijkstra, nil
	case "a_star", "astar", "a*":
		return StrategyAStar, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// SearchKPIs describe the effort of a single search.
type SearchKPIs struct {
	PqPops             int `json:"pq_pops"`             // frontier pops, stale entries included
	RelaxationAttempts int `json:"relaxation_attempts"` // arcs looked at
	RelaxedEdges       int `json:"relaxed_edges"`       // arcs that improved a label
	SettledNodes       int `json:"settled_nodes"`
}

// Result of a search. An empty path means no route; Metric is then 0.
type Result struct {
	Path   []string
	Metric float64 // stop count for BFS, kilometres otherwise
	KPIs   SearchKPIs
}

func (r Result) Found() bool { return len(r.Path) > 0 }

// Navigator is implemented by every search strategy. Implementations hold no
// per-query state, so one instance may serve concurrent searches on a frozen graph.
type Navigator interface {
	ComputeShortestPath(origin, destination string) Result // Compute the best path from origin to destination
	Strategy() Strategy                                    // The strategy implemented
	GetGraph() graph.Graph                                 // Get the used graph
}

func NewNavigator(strategy Strategy, g graph.Graph) (Navigator, error) {
	switch strategy {
	case StrategyBFS:
		return NewBFS(g), nil
	case StrategyDijkstra:
		return NewDijkstra(g), nil
	case StrategyAStar:
		return NewAStar(g), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// trivialResult handles the cases every strategy shares. done is false when a
// real search is needed.
func trivialResult(g graph.Graph, origin, destination string) (result Result, done bool) {
	if _, ok := g.GetStation(origin); !ok {
		return notFound(SearchKPIs{}), true
	}
	if _, ok := g.GetStation(destination); !ok {
		return notFound(SearchKPIs{}), true
	}
	if origin == destination {
		return Result{Path: []string{origin}}, true
	}
	if !g.HasArcs(origin) {
		return notFound(SearchKPIs{}), true
	}
	return Result{}, false
}

func notFound(kpis SearchKPIs) Result {
	return Result{Path: []string{}, KPIs: kpis}
}
