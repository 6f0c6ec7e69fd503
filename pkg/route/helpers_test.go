package route

import (
	"testing"

	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

const inf = roadmap.Inf

// abcGraph is the three-vertex park-and-walk fixture:
//
//	1 (A) --drive 5--> 2 (B, parking) --walk 3--> 3 (C)
//	1 (A) --drive 20-------------------------->  3 (C)
func abcGraph(t *testing.T) *roadmap.Graph[int] {
	t.Helper()
	g := roadmap.New[int]()
	mustVertex(t, g, 1, false)
	mustVertex(t, g, 2, true)
	mustVertex(t, g, 3, false)
	mustEdge(t, g, 1, 2, 5, inf)
	mustEdge(t, g, 2, 3, inf, 3)
	mustEdge(t, g, 1, 3, 20, inf)
	return g
}

// diamondGraph has two-way roads 1-2-4 (cost 4) and 1-3-4 (cost 6), plus 4-5.
func diamondGraph(t *testing.T) *roadmap.Graph[int] {
	t.Helper()
	g := roadmap.New[int]()
	for id := 1; id <= 5; id++ {
		mustVertex(t, g, id, false)
	}
	mustRoad(t, g, 1, 2, 2, 4)
	mustRoad(t, g, 2, 4, 2, 4)
	mustRoad(t, g, 1, 3, 3, 6)
	mustRoad(t, g, 3, 4, 3, 6)
	mustRoad(t, g, 4, 5, 1, 2)
	return g
}

func mustVertex(t *testing.T, g *roadmap.Graph[int], id int, parking bool) {
	t.Helper()
	if err := g.AddVertex(roadmap.Vertex[int]{ID: id, Parking: parking}); err != nil {
		t.Fatalf("AddVertex(%d): %v", id, err)
	}
}

func mustEdge(t *testing.T, g *roadmap.Graph[int], from, to int, driving, walking int64) {
	t.Helper()
	if err := g.AddEdge(roadmap.Edge[int]{From: from, To: to, Driving: driving, Walking: walking}); err != nil {
		t.Fatalf("AddEdge(%d,%d): %v", from, to, err)
	}
}

func mustRoad(t *testing.T, g *roadmap.Graph[int], a, b int, driving, walking int64) {
	t.Helper()
	if err := g.AddRoad(a, b, driving, walking); err != nil {
		t.Fatalf("AddRoad(%d,%d): %v", a, b, err)
	}
}

// pathCost sums the cheapest traversable edge for each consecutive pair and
// fails the test if a pair has no such edge.
func pathCost(t *testing.T, g *roadmap.Graph[int], path []int, mode roadmap.Mode) int64 {
	t.Helper()
	var total int64
	for i := 0; i+1 < len(path); i++ {
		best := inf
		for _, e := range g.Outgoing(path[i]) {
			if e.To == path[i+1] && e.Weight(mode) < best {
				best = e.Weight(mode)
			}
		}
		if best == inf {
			t.Fatalf("no %s edge %d->%d", mode, path[i], path[i+1])
		}
		total += best
	}
	return total
}
