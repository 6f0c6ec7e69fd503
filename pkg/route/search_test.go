package route

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

func TestShortestDriving(t *testing.T) {
	g := abcGraph(t)

	r, err := Shortest(g, 1, 3, roadmap.Driving, Exclusions[int]{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, r.Path)
	assert.Equal(t, int64(20), r.Cost)
}

func TestShortestWalkingUnreachable(t *testing.T) {
	g := abcGraph(t)

	_, err := Shortest(g, 1, 3, roadmap.Walking, Exclusions[int]{})
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestShortestSameVertex(t *testing.T) {
	g := diamondGraph(t)

	r, err := Shortest(g, 4, 4, roadmap.Driving, Exclusions[int]{})
	require.NoError(t, err)
	assert.Equal(t, []int{4}, r.Path)
	assert.Zero(t, r.Cost)
}

func TestShortestUnknownVertex(t *testing.T) {
	g := diamondGraph(t)

	_, err := Shortest(g, 1, 99, roadmap.Driving, Exclusions[int]{})
	assert.ErrorIs(t, err, ErrUnknownVertex)

	_, err = Shortest(g, 99, 1, roadmap.Driving, Exclusions[int]{})
	assert.ErrorIs(t, err, ErrUnknownVertex)
}

func TestShortestExclusions(t *testing.T) {
	g := diamondGraph(t)

	tests := []struct {
		name     string
		avoid    Exclusions[int]
		wantPath []int
		wantCost int64
		wantErr  error
	}{
		{"none", Exclusions[int]{}, []int{1, 2, 4, 5}, 5, nil},
		{"avoid node", Avoid([]int{2}, nil), []int{1, 3, 4, 5}, 7, nil},
		{"avoid segment", Avoid(nil, []Segment[int]{{From: 2, To: 4}}), []int{1, 3, 4, 5}, 7, nil},
		{"reverse segment only", Avoid(nil, []Segment[int]{{From: 4, To: 2}}), []int{1, 2, 4, 5}, 5, nil},
		{"cut", Avoid([]int{4}, nil), nil, 0, ErrUnreachable},
		{"avoided source", Avoid([]int{1}, nil), nil, 0, ErrUnreachable},
		{"avoided destination", Avoid([]int{5}, nil), nil, 0, ErrUnreachable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Shortest(g, 1, 5, roadmap.Driving, tt.avoid)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, r.Path)
			assert.Equal(t, tt.wantCost, r.Cost)
		})
	}
}

func TestShortestAvoidDirectRoadWithoutDrivingDetour(t *testing.T) {
	g := abcGraph(t)

	// 2->3 is walking only, so without 1->3 there is no way to drive to 3.
	_, err := Shortest(g, 1, 3, roadmap.Driving, Avoid(nil, []Segment[int]{{From: 1, To: 3}}))
	assert.ErrorIs(t, err, ErrUnreachable)

	r, err := Shortest(g, 1, 3, roadmap.Driving, Exclusions[int]{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, r.Path)
	assert.Equal(t, int64(20), r.Cost)
}

func TestShortestLowersQueuedDistance(t *testing.T) {
	g := roadmap.New[int]()
	for id := 1; id <= 4; id++ {
		mustVertex(t, g, id, false)
	}
	// 3 is queued at 10 from the root, then reached for 2 through 2.
	mustEdge(t, g, 1, 3, 10, inf)
	mustEdge(t, g, 1, 2, 1, inf)
	mustEdge(t, g, 2, 3, 1, inf)
	mustEdge(t, g, 3, 4, 1, inf)

	r, err := Shortest(g, 1, 4, roadmap.Driving, Exclusions[int]{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, r.Path)
	assert.Equal(t, int64(3), r.Cost)
}

func TestShortestTieBreakLowestID(t *testing.T) {
	g := roadmap.New[int]()
	for id := 1; id <= 4; id++ {
		mustVertex(t, g, id, false)
	}
	mustEdge(t, g, 1, 3, 2, inf)
	mustEdge(t, g, 3, 4, 2, inf)
	mustEdge(t, g, 1, 2, 2, inf)
	mustEdge(t, g, 2, 4, 2, inf)

	for range 5 {
		r, err := Shortest(g, 1, 4, roadmap.Driving, Exclusions[int]{})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 4}, r.Path)
	}
}

func TestSearchTree(t *testing.T) {
	g := diamondGraph(t)

	tree, err := Search(g, 1, 4, roadmap.Walking, Exclusions[int]{})
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Root())
	assert.Equal(t, roadmap.Walking, tree.Mode())
	assert.Equal(t, int64(8), tree.Cost())

	d, ok := tree.Distance(2)
	require.True(t, ok)
	assert.Equal(t, int64(4), d)
	assert.Nil(t, tree.Path(42))
}

// TestShortestRandomGraphs checks on random graphs that the reported cost is
// the sum of the traversed weights and that no excluded vertex or segment is
// ever used.
func TestShortestRandomGraphs(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for round := range 20 {
		g := roadmap.New[int]()
		const n = 25
		for id := range n {
			mustVertex(t, g, id, rng.IntN(4) == 0)
		}
		for range n * 3 {
			a, b := rng.IntN(n), rng.IntN(n)
			if a == b {
				continue
			}
			walking := int64(rng.IntN(30) + 1)
			if rng.IntN(3) == 0 {
				walking = inf
			}
			mustRoad(t, g, a, b, int64(rng.IntN(20)+1), walking)
		}

		nodes := []int{rng.IntN(n), rng.IntN(n)}
		segments := []Segment[int]{{From: rng.IntN(n), To: rng.IntN(n)}}
		avoid := Avoid(nodes, segments)

		for range 10 {
			src, dst := rng.IntN(n), rng.IntN(n)
			for _, mode := range []roadmap.Mode{roadmap.Driving, roadmap.Walking} {
				r, err := Shortest(g, src, dst, mode, avoid)
				if err != nil {
					require.ErrorIs(t, err, ErrUnreachable, "round %d", round)
					continue
				}
				assert.Equal(t, src, r.Path[0])
				assert.Equal(t, dst, r.Path[len(r.Path)-1])
				assert.Equal(t, pathCost(t, g, r.Path, mode), r.Cost, "round %d %v", round, r.Path)
				for _, id := range r.Path {
					assert.False(t, avoid.AvoidsNode(id), "path %v uses excluded vertex %d", r.Path, id)
				}
				for _, s := range r.Segments() {
					assert.False(t, avoid.AvoidsSegment(s.From, s.To), "path %v uses excluded segment %v", r.Path, s)
				}
			}
		}
	}
}
