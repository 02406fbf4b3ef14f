package path

import (
	"fmt"
	"math"

	"github.com/natevvv/smartpath-rail/pkg/slice"
)

// implements queue.Priorizable
type searchItem struct {
	code      string  // station code of this item
	distance  float64 // distance from the origin when the item was pushed
	heuristic float64 // estimated distance to the destination
	seq       int     // push order
}

func newSearchItem(code string, distance, heuristic float64, seq int) *searchItem {
	return &searchItem{code: code, distance: distance, heuristic: heuristic, seq: seq}
}

func (item *searchItem) Priority() float64 { return item.distance + item.heuristic }
func (item *searchItem) String() string {
	return fmt.Sprintf("%v: %v, %v\n", item.seq, item.code, item.Priority())
}

// equal priorities pop in push order
func pushOrder(a, b *searchItem) bool { return a.seq < b.seq }

// equal priorities pop by station code
func codeOrder(a, b *searchItem) bool {
	if a.code != b.code {
		return a.code < b.code
	}
	return a.seq < b.seq
}

// labels maps station codes to tentative distances. Missing codes are at infinity.
type labels map[string]float64

func (l labels) get(code string) float64 {
	if d, ok := l[code]; ok {
		return d
	}
	return math.Inf(1)
}

// reconstructPath follows the predecessors from destination back to origin.
func reconstructPath(predecessor map[string]string, origin, destination string) []string {
	path := []string{destination}
	for code := destination; code != origin; {
		code = predecessor[code]
		path = append(path, code)
	}
	slice.ReverseInPlace(path)
	return path
}
