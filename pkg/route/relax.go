package route

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

// Stage names a step of the relaxation state machine.
type Stage int

const (
	FullyConstrained Stage = iota
	DropWalk
	DropSegments
	DropNodes
	DropWalkAndSegments
	DropWalkAndNodes
	DropNodesAndSegments
	Unconstrained
	Success
	Failure
)

var stageNames = [...]string{
	FullyConstrained:     "fully-constrained",
	DropWalk:             "drop-walk",
	DropSegments:         "drop-segments",
	DropNodes:            "drop-nodes",
	DropWalkAndSegments:  "drop-walk-segments",
	DropWalkAndNodes:     "drop-walk-nodes",
	DropNodesAndSegments: "drop-nodes-segments",
	Unconstrained:        "unconstrained",
	Success:              "success",
	Failure:              "failure",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Constraints is the full constraint set of a park-and-walk request.
type Constraints[K cmp.Ordered] struct {
	MaxWalk int64
	Avoid   Exclusions[K]
}

// Relaxation describes which constraints one ladder step drops.
type Relaxation struct {
	Stage        Stage
	DropWalk     bool
	DropSegments bool
	DropNodes    bool
	Message      string
}

// Relax returns c with the constraints named by r removed. c is not modified.
func (c Constraints[K]) Relax(r Relaxation) Constraints[K] {
	out := c
	if r.DropWalk {
		out.MaxWalk = Unbounded
	}
	if r.DropSegments {
		out.Avoid = out.Avoid.WithoutSegments()
	}
	if r.DropNodes {
		out.Avoid = out.Avoid.WithoutNodes()
	}
	return out
}

// Ladder is the order in which constraints are relaxed. Single constraints go
// first, then pairs, then everything.
var Ladder = []Relaxation{
	{
		Stage:    DropWalk,
		DropWalk: true,
		Message:  "No route keeps walking within the maximum walking time; the walking limit was ignored.",
	},
	{
		Stage:        DropSegments,
		DropSegments: true,
		Message:      "No route avoids the requested segments; segment avoidance was ignored.",
	},
	{
		Stage:     DropNodes,
		DropNodes: true,
		Message:   "No route avoids the requested locations; location avoidance was ignored.",
	},
	{
		Stage:        DropWalkAndSegments,
		DropWalk:     true,
		DropSegments: true,
		Message:      "No route satisfies the walking limit or segment avoidance; both were ignored.",
	},
	{
		Stage:     DropWalkAndNodes,
		DropWalk:  true,
		DropNodes: true,
		Message:   "No route satisfies the walking limit or location avoidance; both were ignored.",
	},
	{
		Stage:        DropNodesAndSegments,
		DropNodes:    true,
		DropSegments: true,
		Message:      "No route avoids the requested locations or segments; both were ignored.",
	},
	{
		Stage:        Unconstrained,
		DropWalk:     true,
		DropNodes:    true,
		DropSegments: true,
		Message:      "No route satisfies the walking limit, location avoidance or segment avoidance; all constraints were ignored.",
	},
}

// Relaxed is the outcome of a successful relaxation.
type Relaxed[K cmp.Ordered] struct {
	Step        Relaxation
	Constraints Constraints[K]
	Best        HybridRoute[K]
	Alternative *HybridRoute[K] // nil when no detour exists
}

// Relax tries each step of the Ladder in order and returns the first that
// yields a park-and-walk route, along with the best detour alternative under
// the same relaxed constraints. It is meant for requests whose fully
// constrained [Hybrid] search already returned ErrNoPath.
//
// Relax returns ErrConstraintsExhausted when every step fails.
func Relax[K cmp.Ordered](g *roadmap.Graph[K], source, dest K, c Constraints[K]) (Relaxed[K], error) {
	for _, step := range Ladder {
		rc := c.Relax(step)
		best, err := Hybrid(g, source, dest, rc.MaxWalk, rc.Avoid)
		if errors.Is(err, ErrNoPath) {
			continue
		}
		if err != nil {
			return Relaxed[K]{}, err
		}

		out := Relaxed[K]{Step: step, Constraints: rc, Best: best}
		alt, err := HybridDetourAlternative(g, source, dest, rc.MaxWalk, rc.Avoid, best.Path)
		switch {
		case err == nil:
			out.Alternative = &alt
		case !errors.Is(err, ErrNoAlternative):
			return Relaxed[K]{}, err
		}
		return out, nil
	}
	return Relaxed[K]{}, ErrConstraintsExhausted
}
