package routing

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/smartpath-rail/pkg/graph"
	"github.com/natevvv/smartpath-rail/pkg/graph/path"
)

const stationsCSV = `code,name,city,lat,long
A1,Alpha Central,Alpha,0.0,0.0
A2,Alpha North,Alpha,0.1,0.0
M,Midway,Middle,0.1,0.5
B1,Beta Main,Beta,0.0,1.0
B2,Beta West,Beta,0.1,0.9
L,Lonely,Island,5.0,5.0
`

const edgesCSV = `source,target,distance
A1,B1,10
A2,M,1
M,B2,1
`

func newNetwork(t *testing.T) *graph.RailGraph {
	t.Helper()
	g, err := graph.LoadCSV(strings.NewReader(stationsCSV), strings.NewReader(edgesCSV))
	require.NoError(t, err)
	return g
}

type countingNavigator struct {
	path.Navigator
	calls atomic.Int32
}

func (c *countingNavigator) ComputeShortestPath(origin, destination string) path.Result {
	c.calls.Add(1)
	return c.Navigator.ComputeShortestPath(origin, destination)
}

func TestCityRouteDijkstraPicksShortestPair(t *testing.T) {
	r := NewRouter(newNetwork(t))

	res, err := r.BestRouteBetweenCities(context.Background(), "Alpha", "Beta", path.StrategyDijkstra)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, []string{"A2", "M", "B2"}, res.Path)
	assert.Equal(t, 2.0, res.Metric)
	assert.Equal(t, graph.StationRef{Code: "A2", Name: "Alpha North"}, *res.OriginStation)
	assert.Equal(t, graph.StationRef{Code: "B2", Name: "Beta West"}, *res.DestinationStation)
	assert.Equal(t, 4, res.Searches)
	assert.Equal(t, path.StrategyDijkstra, res.Strategy)
	assert.Empty(t, res.Message)
}

func TestCityRouteBFSPicksFewestStops(t *testing.T) {
	r := NewRouter(newNetwork(t))

	res, err := r.BestRouteBetweenCities(context.Background(), "Alpha", "Beta", path.StrategyBFS)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, []string{"A1", "B1"}, res.Path)
	assert.Equal(t, 1.0, res.Metric)
	assert.Equal(t, "A1", res.OriginStation.Code)
	assert.Equal(t, "B1", res.DestinationStation.Code)
}

func TestCityRouteTieKeepsFirstPair(t *testing.T) {
	g := graph.NewRailGraph()
	require.NoError(t, g.AddStation("X2", "Xa", "X", 0, 0))
	require.NoError(t, g.AddStation("X1", "Xb", "X", 0, 0))
	require.NoError(t, g.AddStation("Y1", "Ya", "Y", 0, 1))
	require.NoError(t, g.AddStation("Y2", "Yb", "Y", 0, 1))
	require.NoError(t, g.AddEdge("X1", "Y1", 5))
	require.NoError(t, g.AddEdge("X2", "Y2", 5))
	g.Freeze()

	res, err := NewRouter(g, WithWorkers(3)).BestRouteBetweenCities(context.Background(), "X", "Y", path.StrategyDijkstra)
	require.NoError(t, err)
	require.True(t, res.Found)
	// "Xa" sorts before "Xb", so X2 is the first origin tried
	assert.Equal(t, []string{"X2", "Y2"}, res.Path)
}

func TestCityRouteNoStations(t *testing.T) {
	r := NewRouter(newNetwork(t))

	res, err := r.BestRouteBetweenCities(context.Background(), "Alpha", "Gamma", path.StrategyBFS)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Contains(t, res.Message, "no stations found in one or both cities")
	assert.Zero(t, res.Searches)
	assert.Nil(t, res.Path)
}

func TestCityRouteUnreachable(t *testing.T) {
	r := NewRouter(newNetwork(t))

	res, err := r.BestRouteBetweenCities(context.Background(), "Alpha", "Island", path.StrategyDijkstra)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Contains(t, res.Message, "no route found between Alpha and Island")
	assert.Equal(t, 2, res.Searches)
}

func TestCityRouteRejectsAStar(t *testing.T) {
	r := NewRouter(newNetwork(t))

	_, err := r.BestRouteBetweenCities(context.Background(), "Alpha", "Beta", path.StrategyAStar)
	assert.ErrorIs(t, err, ErrUnsupportedStrategy)

	_, err = r.BestRouteBetweenCities(context.Background(), "Alpha", "Beta", path.Strategy("greedy"))
	assert.ErrorIs(t, err, path.ErrUnknownStrategy)
}

func TestCityRouteRunsEveryPair(t *testing.T) {
	network := newNetwork(t)
	dijkstra := &countingNavigator{Navigator: path.NewDijkstra(network)}
	r := NewRouter(network, WithNavigator(dijkstra), WithWorkers(1))

	_, err := r.BestRouteBetweenCities(context.Background(), "Alpha", "Beta", path.StrategyDijkstra)
	require.NoError(t, err)
	assert.EqualValues(t, 4, dijkstra.calls.Load())
}

func TestCityRouteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRouter(newNetwork(t)).BestRouteBetweenCities(ctx, "Alpha", "Beta", path.StrategyDijkstra)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStationRouteAStar(t *testing.T) {
	r := NewRouter(newNetwork(t))

	res, err := r.BestRouteBetweenStations(context.Background(), "A2", "B2", path.StrategyAStar)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, []string{"A2", "M", "B2"}, res.Path)
	assert.Equal(t, 2.0, res.Metric)
	assert.Equal(t, "Alpha North", res.OriginStation.Name)
	assert.Equal(t, "Beta West", res.DestinationStation.Name)
	assert.Equal(t, 1, res.Searches)
}

func TestStationRouteSameStation(t *testing.T) {
	res, err := NewRouter(newNetwork(t)).BestRouteBetweenStations(context.Background(), "L", "L", path.StrategyAStar)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, []string{"L"}, res.Path)
	assert.Zero(t, res.Metric)
}

func TestStationRouteNotFound(t *testing.T) {
	r := NewRouter(newNetwork(t))

	res, err := r.BestRouteBetweenStations(context.Background(), "ZZZ", "B2", path.StrategyAStar)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, "station not found: ZZZ", res.Message)

	res, err = r.BestRouteBetweenStations(context.Background(), "B2", "A2", path.StrategyAStar)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, "no route found between Beta West and Alpha North", res.Message)
}

func TestStationRouteRejectsOtherStrategies(t *testing.T) {
	r := NewRouter(newNetwork(t))
	for _, s := range []path.Strategy{path.StrategyBFS, path.StrategyDijkstra} {
		_, err := r.BestRouteBetweenStations(context.Background(), "A2", "B2", s)
		assert.ErrorIs(t, err, ErrUnsupportedStrategy, s.String())
	}
}
