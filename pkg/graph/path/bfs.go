package path

import "github.com/natevvv/smartpath-rail/pkg/graph"

// BFS finds the path with the fewest stops. Arcs are expanded in insertion
// order and the first discovery of a station wins.
type BFS struct {
	g graph.Graph
}

func NewBFS(g graph.Graph) *BFS {
	return &BFS{g: g}
}

// ComputeShortestPath returns the path with the fewest edges. Metric is the edge count.
func (b *BFS) ComputeShortestPath(origin, destination string) Result {
	if result, done := trivialResult(b.g, origin, destination); done {
		return result
	}

	var kpis SearchKPIs
	visited := map[string]bool{origin: true}
	predecessor := make(map[string]string)
	queue := []string{origin}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		kpis.PqPops++
		kpis.SettledNodes++

		for _, arc := range b.g.GetArcsFrom(current) {
			kpis.RelaxationAttempts++
			successor := arc.Destination()
			if visited[successor] {
				continue
			}
			predecessor[successor] = current
			kpis.RelaxedEdges++

			// stop on discovery, one level earlier than on dequeue
			if successor == destination {
				path := reconstructPath(predecessor, origin, destination)
				return Result{Path: path, Metric: float64(len(path) - 1), KPIs: kpis}
			}

			visited[successor] = true
			queue = append(queue, successor)
		}
	}

	return notFound(kpis)
}

func (b *BFS) Strategy() Strategy    { return StrategyBFS }
func (b *BFS) GetGraph() graph.Graph { return b.g }
