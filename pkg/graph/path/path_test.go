package path

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/smartpath-rail/pkg/graph"
)

// 3x3 grid with unit distances plus N9 hanging off N8
func gridGraph() *graph.RailGraph {
	g := graph.NewRailGraph()
	coords := [][2]float64{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}, {3, 3}}
	for i, c := range coords {
		g.AddStation(fmt.Sprintf("N%d", i), fmt.Sprintf("Node %d", i), "Grid", c[0], c[1])
	}
	edges := [][2]int{
		{0, 1}, {0, 3}, {1, 0}, {1, 2}, {1, 4}, {2, 1}, {2, 5}, {3, 0}, {3, 4}, {3, 6},
		{4, 1}, {4, 3}, {4, 5}, {4, 7}, {5, 2}, {5, 4}, {5, 8}, {6, 3}, {6, 7}, {7, 4},
		{7, 6}, {7, 8}, {8, 5}, {8, 7}, {8, 9}, {9, 8},
	}
	for _, e := range edges {
		g.AddEdge(fmt.Sprintf("N%d", e[0]), fmt.Sprintf("N%d", e[1]), 1)
	}
	g.Freeze()
	return g
}

func lineGraph() *graph.RailGraph {
	g := graph.NewRailGraph()
	g.AddStation("A", "Alpha", "X", 0, 0)
	g.AddStation("B", "Bravo", "X", 0, 1)
	g.AddStation("C", "Charlie", "Y", 0, 2)
	g.AddEdge("A", "B", 10)
	g.AddEdge("B", "C", 10)
	g.Freeze()
	return g
}

func allNavigators(g graph.Graph) []Navigator {
	return []Navigator{NewBFS(g), NewDijkstra(g), NewAStar(g)}
}

func TestLineExample(t *testing.T) {
	g := lineGraph()

	d := NewDijkstra(g).ComputeShortestPath("A", "C")
	assert.Equal(t, []string{"A", "B", "C"}, d.Path)
	assert.Equal(t, 20.0, d.Metric)

	b := NewBFS(g).ComputeShortestPath("A", "C")
	assert.Equal(t, []string{"A", "B", "C"}, b.Path)
	assert.Equal(t, 2.0, b.Metric)

	a := NewAStar(g).ComputeShortestPath("A", "C")
	assert.Equal(t, []string{"A", "B", "C"}, a.Path)
	assert.Equal(t, 20.0, a.Metric)
}

func TestPlainDijkstra(t *testing.T) {
	result := NewDijkstra(gridGraph()).ComputeShortestPath("N0", "N9")
	pathReference := []string{"N0", "N1", "N2", "N5", "N8", "N9"}
	if result.Metric != 5 {
		t.Errorf("length is %v. Should be %v\n", result.Metric, 5)
	}
	assert.Equal(t, pathReference, result.Path)
}

func TestPlainBFS(t *testing.T) {
	result := NewBFS(gridGraph()).ComputeShortestPath("N0", "N9")
	assert.Equal(t, []string{"N0", "N1", "N2", "N5", "N8", "N9"}, result.Path)
	assert.Equal(t, 5.0, result.Metric)
}

func TestAStarDijkstra(t *testing.T) {
	g := gridGraph()
	dijkstra := NewDijkstra(g).ComputeShortestPath("N0", "N9")
	astar := NewAStar(g).ComputeShortestPath("N0", "N9")
	if dijkstra.Metric != astar.Metric {
		t.Errorf("Length does not match. Is %v, should be %v", astar.Metric, dijkstra.Metric)
	}
	assert.Equal(t, []string{"N0", "N1", "N4", "N5", "N8", "N9"}, astar.Path)
	assert.LessOrEqual(t, astar.KPIs.SettledNodes, dijkstra.KPIs.SettledNodes)
}

func TestSameOriginAndDestination(t *testing.T) {
	g := graph.NewRailGraph()
	g.AddStation("A", "Alpha", "X", 0, 0)
	g.AddStation("LONE", "Lonely", "X", 5, 5) // no outgoing arcs
	g.AddEdge("A", "LONE", 3)
	g.Freeze()

	for _, nav := range allNavigators(g) {
		for _, code := range []string{"A", "LONE"} {
			result := nav.ComputeShortestPath(code, code)
			assert.Equal(t, []string{code}, result.Path, nav.Strategy())
			assert.Zero(t, result.Metric, nav.Strategy())
		}
	}
}

func TestUnknownStations(t *testing.T) {
	g := lineGraph()
	for _, nav := range allNavigators(g) {
		for _, pair := range [][2]string{{"A", "NOPE"}, {"NOPE", "C"}, {"NOPE", "NOPE"}} {
			result := nav.ComputeShortestPath(pair[0], pair[1])
			assert.Empty(t, result.Path, "%v %v", nav.Strategy(), pair)
			assert.NotNil(t, result.Path)
			assert.Zero(t, result.Metric)
			assert.False(t, result.Found())
		}
	}
}

func TestOriginWithoutArcs(t *testing.T) {
	g := lineGraph()
	for _, nav := range allNavigators(g) {
		result := nav.ComputeShortestPath("C", "A")
		assert.Empty(t, result.Path, nav.Strategy())
		assert.Zero(t, result.Metric)
	}
}

func TestNoReverseArcs(t *testing.T) {
	g := graph.NewRailGraph()
	g.AddStation("A", "Alpha", "X", 0, 0)
	g.AddStation("B", "Bravo", "X", 0, 1)
	g.AddStation("C", "Charlie", "X", 0, 2)
	g.AddEdge("A", "B", 1)
	g.AddEdge("C", "B", 1)
	g.Freeze()

	for _, nav := range allNavigators(g) {
		result := nav.ComputeShortestPath("A", "C")
		assert.False(t, result.Found(), nav.Strategy())
		assert.Zero(t, result.Metric)
	}
}

func TestFewestStopsVersusShortestDistance(t *testing.T) {
	g := graph.NewRailGraph()
	g.AddStation("A", "Alpha", "X", 0, 0)
	g.AddStation("B", "Bravo", "X", 0, 0.1)
	g.AddStation("C", "Charlie", "X", 0, 0.2)
	g.AddStation("D", "Delta", "X", 0, 0.3)
	g.AddEdge("A", "D", 100)
	g.AddEdge("A", "B", 10)
	g.AddEdge("B", "C", 10)
	g.AddEdge("C", "D", 10)
	g.Freeze()

	bfs := NewBFS(g).ComputeShortestPath("A", "D")
	assert.Equal(t, []string{"A", "D"}, bfs.Path)
	assert.Equal(t, 1.0, bfs.Metric)

	dijkstra := NewDijkstra(g).ComputeShortestPath("A", "D")
	assert.Equal(t, []string{"A", "B", "C", "D"}, dijkstra.Path)
	assert.Equal(t, 30.0, dijkstra.Metric)

	astar := NewAStar(g).ComputeShortestPath("A", "D")
	assert.Equal(t, dijkstra.Path, astar.Path)
	assert.Equal(t, 30.0, astar.Metric)
}

func tieGraph() *graph.RailGraph {
	g := graph.NewRailGraph()
	g.AddStation("A", "Alpha", "X", 0, 0)
	g.AddStation("B", "Bravo", "X", 1, 1)
	g.AddStation("C", "Charlie", "X", 1, -1)
	g.AddStation("D", "Delta", "X", 2, 0)
	g.AddEdge("A", "C", 2)
	g.AddEdge("A", "B", 2)
	g.AddEdge("B", "D", 2)
	g.AddEdge("C", "D", 2)
	g.Freeze()
	return g
}

func TestDijkstraTieBreakByInsertionOrder(t *testing.T) {
	g := tieGraph()
	for i := 0; i < 20; i++ {
		result := NewDijkstra(g).ComputeShortestPath("A", "D")
		require.Equal(t, []string{"A", "C", "D"}, result.Path)
		require.Equal(t, 4.0, result.Metric)
	}
}

func TestBFSTieBreakByInsertionOrder(t *testing.T) {
	result := NewBFS(tieGraph()).ComputeShortestPath("A", "D")
	assert.Equal(t, []string{"A", "C", "D"}, result.Path)
}

func TestAStarTieBreakByCode(t *testing.T) {
	g := tieGraph()
	for i := 0; i < 20; i++ {
		result := NewAStar(g).ComputeShortestPath("A", "D")
		require.Equal(t, []string{"A", "B", "D"}, result.Path)
		require.Equal(t, 4.0, result.Metric)
	}
}

func TestParallelArcs(t *testing.T) {
	g := graph.NewRailGraph()
	g.AddStation("A", "Alpha", "X", 0, 0)
	g.AddStation("B", "Bravo", "X", 0, 0.01)
	g.AddEdge("A", "B", 5)
	g.AddEdge("A", "B", 3)
	g.Freeze()

	assert.Equal(t, 3.0, NewDijkstra(g).ComputeShortestPath("A", "B").Metric)
	assert.Equal(t, 3.0, NewAStar(g).ComputeShortestPath("A", "B").Metric)
	assert.Equal(t, 1.0, NewBFS(g).ComputeShortestPath("A", "B").Metric)
}

func TestArcsThroughUnknownCodes(t *testing.T) {
	g := graph.NewRailGraph()
	g.AddStation("A", "Alpha", "X", 0, 0)
	g.AddStation("B", "Bravo", "X", 0, 1)
	g.AddEdge("A", "GHOST", 1)
	g.AddEdge("GHOST", "B", 1)
	g.Freeze()

	for _, nav := range allNavigators(g) {
		result := nav.ComputeShortestPath("A", "B")
		assert.Equal(t, []string{"A", "GHOST", "B"}, result.Path, nav.Strategy())
	}
}

func TestKPIs(t *testing.T) {
	result := NewDijkstra(lineGraph()).ComputeShortestPath("A", "C")
	assert.Equal(t, SearchKPIs{PqPops: 3, RelaxationAttempts: 2, RelaxedEdges: 2, SettledNodes: 3}, result.KPIs)
}

func TestNewNavigator(t *testing.T) {
	g := lineGraph()
	for _, s := range Strategies {
		nav, err := NewNavigator(s, g)
		require.NoError(t, err)
		assert.Equal(t, s, nav.Strategy())
		assert.Equal(t, graph.Graph(g), nav.GetGraph())
	}
	_, err := NewNavigator("teleport", g)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestParseStrategy(t *testing.T) {
	cases := map[string]Strategy{"bfs": StrategyBFS, "Dijkstra": StrategyDijkstra, "a_star": StrategyAStar, "astar": StrategyAStar, " A* ": StrategyAStar}
	for in, expected := range cases {
		s, err := ParseStrategy(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, s)
	}
	_, err := ParseStrategy("greedy")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestConcurrentSearches(t *testing.T) {
	g := gridGraph()
	navigators := allNavigators(g)
	expected := make([]Result, len(navigators))
	for i, nav := range navigators {
		expected[i] = nav.ComputeShortestPath("N0", "N9")
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, nav := range navigators {
				r := nav.ComputeShortestPath("N0", "N9")
				if fmt.Sprint(r.Path) != fmt.Sprint(expected[i].Path) || r.Metric != expected[i].Metric {
					errs <- fmt.Sprintf("%v: got %v/%v", nav.Strategy(), r.Path, r.Metric)
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

// brute force over all simple paths
type bruteForce struct {
	minDistance float64
	minEdges    int
	found       bool
}

func enumeratePaths(g graph.Graph, origin, destination string) bruteForce {
	best := bruteForce{minDistance: math.Inf(1), minEdges: math.MaxInt}
	onPath := map[string]bool{origin: true}
	var visit func(code string, distance float64, edges int)
	visit = func(code string, distance float64, edges int) {
		if code == destination {
			best.found = true
			best.minDistance = math.Min(best.minDistance, distance)
			if edges < best.minEdges {
				best.minEdges = edges
			}
			return
		}
		for _, arc := range g.GetArcsFrom(code) {
			if onPath[arc.To] {
				continue
			}
			onPath[arc.To] = true
			visit(arc.To, distance+arc.Distance, edges+1)
			onPath[arc.To] = false
		}
	}
	visit(origin, 0, 0)
	return best
}

// randomGraph places stations randomly and gives every arc at least the
// straight-line distance between its endpoints, so the A* estimate never overestimates.
func randomGraph(rng *rand.Rand, n int, density float64) *graph.RailGraph {
	g := graph.NewRailGraph()
	for i := 0; i < n; i++ {
		g.AddStation(fmt.Sprintf("S%02d", i), fmt.Sprintf("Station %d", i), "R", rng.Float64()*5, rng.Float64()*5)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || rng.Float64() > density {
				continue
			}
			from, _ := g.GetStation(fmt.Sprintf("S%02d", i))
			to, _ := g.GetStation(fmt.Sprintf("S%02d", j))
			distance := from.Location.EuclideanDistance(to.Location) * (1 + rng.Float64())
			g.AddEdge(from.Code, to.Code, distance)
			if rng.Float64() < 0.1 {
				// parallel arc
				g.AddEdge(from.Code, to.Code, distance*(1+rng.Float64()))
			}
		}
	}
	g.Freeze()
	return g
}

func pathDistance(t *testing.T, g graph.Graph, path []string) float64 {
	t.Helper()
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		best := math.Inf(1)
		for _, arc := range g.GetArcsFrom(path[i]) {
			if arc.To == path[i+1] {
				best = math.Min(best, arc.Distance)
			}
		}
		require.False(t, math.IsInf(best, 1), "no arc %v -> %v", path[i], path[i+1])
		total += best
	}
	return total
}

func TestAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 25; round++ {
		g := randomGraph(rng, 7, 0.3)
		dijkstra, bfs, astar := NewDijkstra(g), NewBFS(g), NewAStar(g)
		for i := 0; i < 7; i++ {
			for j := 0; j < 7; j++ {
				origin, destination := fmt.Sprintf("S%02d", i), fmt.Sprintf("S%02d", j)
				if i == j || !g.HasArcs(origin) {
					continue
				}
				reference := enumeratePaths(g, origin, destination)

				d := dijkstra.ComputeShortestPath(origin, destination)
				b := bfs.ComputeShortestPath(origin, destination)
				a := astar.ComputeShortestPath(origin, destination)

				require.Equal(t, reference.found, d.Found(), "round %v %v->%v", round, origin, destination)
				require.Equal(t, reference.found, b.Found())
				require.Equal(t, reference.found, a.Found())
				if !reference.found {
					continue
				}

				assert.InDelta(t, reference.minDistance, d.Metric, 1e-9)
				assert.InDelta(t, d.Metric, pathDistance(t, g, d.Path), 1e-9)
				assert.InDelta(t, d.Metric, a.Metric, 1e-9)
				assert.InDelta(t, a.Metric, pathDistance(t, g, a.Path), 1e-9)
				assert.Equal(t, float64(reference.minEdges), b.Metric)
				assert.Equal(t, float64(len(b.Path)-1), b.Metric)
				pathDistance(t, g, b.Path)
			}
		}
	}
}
