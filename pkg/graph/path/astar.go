package path

import (
	"github.com/natevvv/smartpath-rail/pkg/graph"
	"github.com/natevvv/smartpath-rail/pkg/queue"
)

// AStar is Dijkstra ordered by g + h, where h is the straight-line distance
// to the destination in latitude/longitude degrees.
//
// h is measured in degrees while arc costs are kilometres, so it is not a
// proper lower bound in general. Labels are only ever updated on a real
// distance improvement and settled stations may be reopened, so h changes
// the expansion order but never gates a relaxation.
type AStar struct {
	g graph.Graph
}

func NewAStar(g graph.Graph) *AStar {
	return &AStar{g: g}
}

// ComputeShortestPath returns the path found and its length in kilometres.
// Among open stations with equal f-score the lowest code is expanded first.
func (a *AStar) ComputeShortestPath(origin, destination string) Result {
	if result, done := trivialResult(a.g, origin, destination); done {
		return result
	}

	target, _ := a.g.GetStation(destination)
	heuristic := func(code string) float64 {
		s, ok := a.g.GetStation(code)
		if !ok {
			return 0
		}
		return s.Location.EuclideanDistance(target.Location)
	}

	var kpis SearchKPIs
	gScore := labels{origin: 0}
	predecessor := make(map[string]string)

	seq := 0
	open := queue.NewMinHeap(codeOrder, newSearchItem(origin, 0, heuristic(origin), seq))

	for open.Len() > 0 {
		currentItem := open.Pop()
		current := currentItem.code
		kpis.PqPops++

		if currentItem.distance > gScore.get(current) {
			// superseded by a shorter label pushed later
			continue
		}
		kpis.SettledNodes++

		if current == destination {
			path := reconstructPath(predecessor, origin, destination)
			return Result{Path: path, Metric: gScore[destination], KPIs: kpis}
		}

		for _, arc := range a.g.GetArcsFrom(current) {
			kpis.RelaxationAttempts++
			successor := arc.Destination()
			if tentative := currentItem.distance + arc.Cost(); tentative < gScore.get(successor) {
				gScore[successor] = tentative
				predecessor[successor] = current
				seq++
				open.Push(newSearchItem(successor, tentative, heuristic(successor), seq))
				kpis.RelaxedEdges++
			}
		}
	}

	return notFound(kpis)
}

func (a *AStar) Strategy() Strategy    { return StrategyAStar }
func (a *AStar) GetGraph() graph.Graph { return a.g }
