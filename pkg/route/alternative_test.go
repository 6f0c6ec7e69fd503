package route

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

func TestDetourAlternative(t *testing.T) {
	g := diamondGraph(t)

	best, err := Shortest(g, 1, 4, roadmap.Driving, Exclusions[int]{})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 4}, best.Path)

	alt, err := DetourAlternative(g, 1, 4, roadmap.Driving, Exclusions[int]{}, best.Path)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4}, alt.Path)
	assert.Equal(t, int64(6), alt.Cost)
	assert.False(t, slices.Equal(best.Path, alt.Path))
}

func TestDetourAlternativeKeepsExclusions(t *testing.T) {
	g := diamondGraph(t)
	avoid := Avoid([]int{3}, nil)

	best, err := Shortest(g, 1, 5, roadmap.Driving, avoid)
	require.NoError(t, err)

	_, err = DetourAlternative(g, 1, 5, roadmap.Driving, avoid, best.Path)
	assert.ErrorIs(t, err, ErrNoAlternative)
}

func TestDetourAlternativeDegenerateReference(t *testing.T) {
	g := diamondGraph(t)

	for _, ref := range [][]int{nil, {1}, {1, 1}} {
		_, err := DetourAlternative(g, 1, 4, roadmap.Driving, Exclusions[int]{}, ref)
		assert.ErrorIs(t, err, ErrNoAlternative, "ref %v", ref)
	}
}

func TestDetourAlternativeSkipsAvoidedSegments(t *testing.T) {
	avoid := Avoid(nil, []Segment[int]{{From: 1, To: 2}})

	var tried []Segment[int]
	err := eachDetour([]int{1, 2, 4, 2, 4}, avoid, func(x Exclusions[int]) error {
		for _, s := range x.Segments() {
			if !avoid.AvoidsSegment(s.From, s.To) {
				tried = append(tried, s)
			}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []Segment[int]{{From: 2, To: 4}, {From: 4, To: 2}}, tried)
}

func TestHybridDetourAlternative(t *testing.T) {
	g := roadmap.New[int]()
	mustVertex(t, g, 1, false)
	mustVertex(t, g, 2, true)
	mustVertex(t, g, 3, true)
	mustVertex(t, g, 4, false)
	mustEdge(t, g, 1, 2, 2, inf)
	mustEdge(t, g, 1, 3, 3, inf)
	mustEdge(t, g, 2, 4, inf, 2)
	mustEdge(t, g, 3, 4, inf, 4)

	best, err := Hybrid(g, 1, 4, Unbounded, Exclusions[int]{})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 4}, best.Path)

	alt, err := HybridDetourAlternative(g, 1, 4, Unbounded, Exclusions[int]{}, best.Path)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4}, alt.Path)
	assert.Equal(t, 3, alt.Parking)
	assert.Equal(t, int64(7), alt.Total())

	_, err = HybridDetourAlternative(g, 1, 4, 3, Exclusions[int]{}, best.Path)
	assert.ErrorIs(t, err, ErrNoAlternative)
}

func TestDisjointAlternative(t *testing.T) {
	g := diamondGraph(t)

	alt, err := DisjointAlternative(g, 1, 5, roadmap.Driving, Exclusions[int]{}, []int{1, 2, 4, 5})
	assert.ErrorIs(t, err, ErrNoAlternative, "4 is a cut vertex, got %v", alt.Path)

	alt, err = DisjointAlternative(g, 1, 4, roadmap.Driving, Exclusions[int]{}, []int{1, 2, 4})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4}, alt.Path)

	alt, err = DisjointAlternative(g, 1, 2, roadmap.Driving, Exclusions[int]{}, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4, 2}, alt.Path)
	assert.Equal(t, int64(8), alt.Cost)

	_, err = DisjointAlternative(g, 1, 2, roadmap.Driving, Exclusions[int]{}, []int{1})
	assert.ErrorIs(t, err, ErrNoAlternative)
}
