package route

import (
	"cmp"
	"errors"

	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

// DetourAlternative returns the cheapest single-mode route that avoids at
// least one segment of ref. Each segment of ref that is not already excluded
// is forbidden in turn and the search rerun; the cheapest success wins, the
// earliest segment winning ties.
//
// This is a one-edge detour heuristic, not a k-shortest-paths enumeration.
// It returns ErrNoAlternative when ref has no segment to forbid or every
// rerun fails.
func DetourAlternative[K cmp.Ordered](g *roadmap.Graph[K], source, dest K, mode roadmap.Mode, avoid Exclusions[K], ref []K) (Route[K], error) {
	best := Route[K]{Cost: roadmap.Inf}
	found := false

	err := eachDetour(ref, avoid, func(x Exclusions[K]) error {
		r, err := Shortest(g, source, dest, mode, x)
		if errors.Is(err, ErrUnreachable) {
			return nil
		}
		if err != nil {
			return err
		}
		if !found || r.Cost < best.Cost {
			best, found = r, true
		}
		return nil
	})
	if err != nil {
		return Route[K]{}, err
	}
	if !found {
		return Route[K]{}, ErrNoAlternative
	}
	return best, nil
}

// HybridDetourAlternative is DetourAlternative for park-and-walk routes. The
// forbidden segment applies to both the driving and the walking leg.
func HybridDetourAlternative[K cmp.Ordered](g *roadmap.Graph[K], source, dest K, maxWalk int64, avoid Exclusions[K], ref []K) (HybridRoute[K], error) {
	var best HybridRoute[K]
	found := false

	err := eachDetour(ref, avoid, func(x Exclusions[K]) error {
		h, err := Hybrid(g, source, dest, maxWalk, x)
		if errors.Is(err, ErrNoPath) {
			return nil
		}
		if err != nil {
			return err
		}
		if !found || h.Total() < best.Total() {
			best, found = h, true
		}
		return nil
	})
	if err != nil {
		return HybridRoute[K]{}, err
	}
	if !found {
		return HybridRoute[K]{}, ErrNoAlternative
	}
	return best, nil
}

// eachDetour calls try once per distinct segment of ref, with that segment
// added to avoid.
func eachDetour[K cmp.Ordered](ref []K, avoid Exclusions[K], try func(Exclusions[K]) error) error {
	seen := make(map[Segment[K]]bool, len(ref))
	for _, s := range segmentsOf(ref) {
		if s.From == s.To || seen[s] || avoid.AvoidsSegment(s.From, s.To) {
			continue
		}
		seen[s] = true
		if err := try(avoid.WithSegment(s.From, s.To)); err != nil {
			return err
		}
	}
	return nil
}

// DisjointAlternative returns the best single-mode route that shares no
// intermediate vertex with ref. When ref is a direct segment with no
// intermediate vertex, that segment is forbidden instead.
func DisjointAlternative[K cmp.Ordered](g *roadmap.Graph[K], source, dest K, mode roadmap.Mode, avoid Exclusions[K], ref []K) (Route[K], error) {
	if len(ref) < 2 {
		return Route[K]{}, ErrNoAlternative
	}

	x := avoid.WithNodes(ref[1 : len(ref)-1]...)
	if len(ref) == 2 {
		x = avoid.WithSegment(ref[0], ref[1])
	}

	r, err := Shortest(g, source, dest, mode, x)
	if errors.Is(err, ErrUnreachable) {
		return Route[K]{}, ErrNoAlternative
	}
	return r, err
}
