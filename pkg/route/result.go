package route

import (
	"cmp"
	"slices"
)

// Route is a single-mode route. Path runs from source to destination
// inclusive and Cost is the sum of the traversed edge weights.
type Route[K cmp.Ordered] struct {
	Path []K
	Cost int64
}

// Segments returns the consecutive vertex pairs of the route.
func (r Route[K]) Segments() []Segment[K] { return segmentsOf(r.Path) }

// HybridRoute is a park-and-walk route: drive from the first vertex to
// Parking, then walk from Parking to the last vertex. Parking appears in
// Path exactly once.
type HybridRoute[K cmp.Ordered] struct {
	Path    []K
	Parking K
	Driving int64
	Walking int64
}

// Total returns the combined driving and walking cost.
func (h HybridRoute[K]) Total() int64 { return addCost(h.Driving, h.Walking) }

// DrivingPath returns the vertices from the source up to and including the
// parking vertex.
func (h HybridRoute[K]) DrivingPath() []K {
	i := slices.Index(h.Path, h.Parking)
	if i < 0 {
		return nil
	}
	return h.Path[:i+1]
}

// WalkingPath returns the vertices from the parking vertex to the
// destination.
func (h HybridRoute[K]) WalkingPath() []K {
	i := slices.Index(h.Path, h.Parking)
	if i < 0 {
		return nil
	}
	return h.Path[i:]
}

// Segments returns the consecutive vertex pairs of the route.
func (h HybridRoute[K]) Segments() []Segment[K] { return segmentsOf(h.Path) }

func segmentsOf[K cmp.Ordered](path []K) []Segment[K] {
	if len(path) < 2 {
		return nil
	}
	out := make([]Segment[K], 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		out = append(out, Segment[K]{From: path[i], To: path[i+1]})
	}
	return out
}
