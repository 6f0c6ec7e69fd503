package route

import (
	"cmp"

	"github.com/staragarcia/routeplanner/pkg/pq"
	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

// state is the per-search bookkeeping. Every search call allocates its own,
// so the graph itself is never written to.
type state[K cmp.Ordered] struct {
	dist    map[K]int64
	parent  map[K]*roadmap.Edge[K]
	settled map[K]bool
	queue   *pq.Queue[K]
}

func newState[K cmp.Ordered](capacity int) *state[K] {
	return &state[K]{
		dist:    make(map[K]int64, capacity),
		parent:  make(map[K]*roadmap.Edge[K], capacity),
		settled: make(map[K]bool, capacity),
		queue:   pq.New[K](capacity),
	}
}

// distance returns the best known distance to id, or roadmap.Inf.
func (s *state[K]) distance(id K) int64 {
	if d, ok := s.dist[id]; ok {
		return d
	}
	return roadmap.Inf
}

// addCost adds two costs, saturating at roadmap.Inf.
func addCost(a, b int64) int64 {
	if a == roadmap.Inf || b == roadmap.Inf || a > roadmap.Inf-b {
		return roadmap.Inf
	}
	return a + b
}
