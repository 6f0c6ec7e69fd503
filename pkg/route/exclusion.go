package route

import (
	"cmp"
	"maps"
	"slices"
)

// Segment is a directed pair of vertices. It names a road in one direction
// only; the opposite direction is a different segment.
type Segment[K cmp.Ordered] struct {
	From K `json:"from"`
	To   K `json:"to"`
}

func compareSegments[K cmp.Ordered](a, b Segment[K]) int {
	if c := cmp.Compare(a.From, b.From); c != 0 {
		return c
	}
	return cmp.Compare(a.To, b.To)
}

// Exclusions is an immutable set of vertices and segments a search must not
// use. Methods that change the set return a new value and never modify the
// receiver, so one Exclusions can be shared by many searches.
//
// The zero value excludes nothing.
type Exclusions[K cmp.Ordered] struct {
	nodes    map[K]struct{}
	segments map[Segment[K]]struct{}
}

// Avoid builds an exclusion set from vertex ids and segments. Duplicates
// collapse.
func Avoid[K cmp.Ordered](nodes []K, segments []Segment[K]) Exclusions[K] {
	var x Exclusions[K]
	if len(nodes) > 0 {
		x.nodes = make(map[K]struct{}, len(nodes))
		for _, id := range nodes {
			x.nodes[id] = struct{}{}
		}
	}
	if len(segments) > 0 {
		x.segments = make(map[Segment[K]]struct{}, len(segments))
		for _, s := range segments {
			x.segments[s] = struct{}{}
		}
	}
	return x
}

// AvoidsNode reports whether id is excluded.
func (x Exclusions[K]) AvoidsNode(id K) bool {
	_, ok := x.nodes[id]
	return ok
}

// AvoidsSegment reports whether the directed segment from→to is excluded.
func (x Exclusions[K]) AvoidsSegment(from, to K) bool {
	_, ok := x.segments[Segment[K]{From: from, To: to}]
	return ok
}

// WithSegment returns a copy that additionally excludes from→to.
func (x Exclusions[K]) WithSegment(from, to K) Exclusions[K] {
	segments := make(map[Segment[K]]struct{}, len(x.segments)+1)
	maps.Copy(segments, x.segments)
	segments[Segment[K]{From: from, To: to}] = struct{}{}
	return Exclusions[K]{nodes: x.nodes, segments: segments}
}

// WithNodes returns a copy that additionally excludes ids.
func (x Exclusions[K]) WithNodes(ids ...K) Exclusions[K] {
	nodes := make(map[K]struct{}, len(x.nodes)+len(ids))
	maps.Copy(nodes, x.nodes)
	for _, id := range ids {
		nodes[id] = struct{}{}
	}
	return Exclusions[K]{nodes: nodes, segments: x.segments}
}

// WithoutNodes returns a copy with no vertex exclusions.
func (x Exclusions[K]) WithoutNodes() Exclusions[K] {
	return Exclusions[K]{segments: x.segments}
}

// WithoutSegments returns a copy with no segment exclusions.
func (x Exclusions[K]) WithoutSegments() Exclusions[K] {
	return Exclusions[K]{nodes: x.nodes}
}

// Nodes returns the excluded vertices in ascending order.
func (x Exclusions[K]) Nodes() []K {
	return slices.Sorted(maps.Keys(x.nodes))
}

// Segments returns the excluded segments ordered by From, then To.
func (x Exclusions[K]) Segments() []Segment[K] {
	out := slices.Collect(maps.Keys(x.segments))
	slices.SortFunc(out, compareSegments[K])
	return out
}

// Empty reports whether nothing is excluded.
func (x Exclusions[K]) Empty() bool {
	return len(x.nodes) == 0 && len(x.segments) == 0
}
