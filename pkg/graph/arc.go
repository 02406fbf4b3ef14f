package graph

// Arc is one entry of a station's adjacency: the target code and the distance
// in kilometres.
type Arc struct {
	To       string
	Distance float64
}

func MakeArc(to string, distance float64) Arc {
	return Arc{To: to, Distance: distance}
}

func (a Arc) Destination() string {
	return a.To
}

func (a Arc) Cost() float64 {
	return a.Distance
}
