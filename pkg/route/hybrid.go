package route

import (
	"cmp"

	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

// Unbounded disables the walking budget of [Hybrid].
const Unbounded = roadmap.Inf

// Hybrid finds the cheapest park-and-walk route from source to dest.
//
// A backward walking search from dest collects every parking vertex whose
// walking time to dest is at most maxWalk (the bound is inclusive). Source
// and dest never qualify as parking. A forward driving search from source
// then settles those candidates and keeps the one with the smallest
// driving+walking total; it stops once every candidate is settled.
//
// Equal totals resolve to the candidate settled first by the driving search,
// which is the one with the lower driving cost and then the lower id.
//
// Hybrid returns ErrUnknownVertex for missing endpoints and ErrNoPath when no
// candidate exists or none is reachable by car.
func Hybrid[K cmp.Ordered](g *roadmap.Graph[K], source, dest K, maxWalk int64, avoid Exclusions[K]) (HybridRoute[K], error) {
	if err := requireVertices(g, source, dest); err != nil {
		return HybridRoute[K]{}, err
	}

	walk := newRunner(g, roadmap.Walking, backward, avoid)
	candidates := make(map[K]int64)
	walk.run(dest, func(id K, d int64) bool {
		if d > maxWalk {
			return false
		}
		if id != source && id != dest && g.IsParking(id) {
			candidates[id] = d
		}
		return true
	})
	if len(candidates) == 0 {
		return HybridRoute[K]{}, ErrNoPath
	}

	drive := newRunner(g, roadmap.Driving, forward, avoid)
	var (
		parking   K
		found     bool
		best      = roadmap.Inf
		remaining = len(candidates)
	)
	drive.run(source, func(id K, d int64) bool {
		w, ok := candidates[id]
		if !ok {
			return true
		}
		if total := addCost(d, w); total < best {
			best, parking, found = total, id, true
		}
		remaining--
		return remaining > 0
	})
	if !found {
		return HybridRoute[K]{}, ErrNoPath
	}

	driving := drive.tree().Path(parking)
	walking := walk.tree().Path(parking)
	path := make([]K, 0, len(driving)+len(walking)-1)
	path = append(path, driving...)
	path = append(path, walking[1:]...)

	return HybridRoute[K]{
		Path:    path,
		Parking: parking,
		Driving: drive.dist[parking],
		Walking: candidates[parking],
	}, nil
}
