package path

import (
	"github.com/natevvv/smartpath-rail/pkg/graph"
	"github.com/natevvv/smartpath-rail/pkg/queue"
)

// Dijkstra finds the path with the minimum total distance. Arc distances must
// not be negative.
type Dijkstra struct {
	g graph.Graph
}

func NewDijkstra(g graph.Graph) *Dijkstra {
	return &Dijkstra{g: g}
}

// ComputeShortestPath returns the shortest path and its length in kilometres.
// Equal distances are resolved by frontier push order.
func (d *Dijkstra) ComputeShortestPath(origin, destination string) Result {
	if result, done := trivialResult(d.g, origin, destination); done {
		return result
	}

	var kpis SearchKPIs
	distances := labels{origin: 0}
	predecessor := make(map[string]string)
	settled := make(map[string]bool)

	seq := 0
	pq := queue.NewMinHeap(pushOrder, newSearchItem(origin, 0, 0, seq))

	for pq.Len() > 0 {
		currentItem := pq.Pop()
		current := currentItem.code
		kpis.PqPops++

		if settled[current] {
			// stale entry
			continue
		}
		settled[current] = true
		kpis.SettledNodes++

		if current == destination {
			path := reconstructPath(predecessor, origin, destination)
			return Result{Path: path, Metric: distances[destination], KPIs: kpis}
		}

		for _, arc := range d.g.GetArcsFrom(current) {
			kpis.RelaxationAttempts++
			successor := arc.Destination()
			if updatedDistance := currentItem.distance + arc.Cost(); updatedDistance < distances.get(successor) {
				distances[successor] = updatedDistance
				predecessor[successor] = current
				seq++
				pq.Push(newSearchItem(successor, updatedDistance, 0, seq))
				kpis.RelaxedEdges++
			}
		}
	}

	return notFound(kpis)
}

func (d *Dijkstra) Strategy() Strategy    { return StrategyDijkstra }
func (d *Dijkstra) GetGraph() graph.Graph { return d.g }
