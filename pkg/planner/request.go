package planner

import (
	"slices"
	"strings"

	rperrors "github.com/staragarcia/routeplanner/pkg/errors"
	"github.com/staragarcia/routeplanner/pkg/roadmap"
	"github.com/staragarcia/routeplanner/pkg/route"
)

// Mode is the kind of route a request asks for.
type Mode string

const (
	ModeDriving        Mode = "driving"
	ModeDrivingWalking Mode = "driving-walking"
)

// ParseMode maps user input to a Mode. Besides the canonical names it
// accepts "drive", "hybrid", "eco" and "walking-driving".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "driving", "drive":
		return ModeDriving, nil
	case "driving-walking", "walking-driving", "hybrid", "eco":
		return ModeDrivingWalking, nil
	default:
		return "", rperrors.New(rperrors.ErrCodeInvalidMode, "unknown mode %q (want driving or driving-walking)", s)
	}
}

// Strategy selects how an unrestricted driving request computes its
// alternative route.
type Strategy string

const (
	// StrategyDetour forbids one segment of the best route at a time and
	// keeps the cheapest result.
	StrategyDetour Strategy = "detour"
	// StrategyDisjoint forbids every intermediate location of the best
	// route at once.
	StrategyDisjoint Strategy = "disjoint"
)

// ParseStrategy maps a config or flag value to a Strategy. The empty string
// selects StrategyDetour.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyDetour:
		return StrategyDetour, nil
	case StrategyDisjoint:
		return StrategyDisjoint, nil
	default:
		return "", rperrors.New(rperrors.ErrCodeInvalidInput, "unknown alternative strategy %q (want detour or disjoint)", s)
	}
}

// Request describes one route query.
type Request struct {
	Mode          Mode                 `json:"mode"`
	Source        int                  `json:"source"`
	Destination   int                  `json:"destination"`
	AvoidNodes    []int                `json:"avoid_nodes,omitempty"`
	AvoidSegments []route.Segment[int] `json:"avoid_segments,omitempty"`
	IncludeNode   *int                 `json:"include_node,omitempty"`
	MaxWalkTime   *int64               `json:"max_walk_time,omitempty"` // nil means unbounded
}

// Restricted reports whether the request carries any avoid list or include
// node.
func (r Request) Restricted() bool {
	return len(r.AvoidNodes) > 0 || len(r.AvoidSegments) > 0 || r.IncludeNode != nil
}

// Exclusions returns the avoid lists as a route.Exclusions value.
func (r Request) Exclusions() route.Exclusions[int] {
	return route.Avoid(r.AvoidNodes, r.AvoidSegments)
}

// MaxWalk returns the walking budget, or route.Unbounded when none is set.
func (r Request) MaxWalk() int64 {
	if r.MaxWalkTime == nil {
		return route.Unbounded
	}
	return *r.MaxWalkTime
}

// Normalize returns a copy of r with a canonical mode name and sorted,
// de-duplicated avoid lists. Two requests that ask for the same thing
// normalize to equal values.
func (r Request) Normalize() Request {
	out := r
	if m, err := ParseMode(string(r.Mode)); err == nil {
		out.Mode = m
	}
	if len(r.AvoidNodes) > 0 {
		out.AvoidNodes = slices.Compact(slices.Sorted(slices.Values(r.AvoidNodes)))
	}
	if len(r.AvoidSegments) > 0 {
		out.AvoidSegments = r.Exclusions().Segments()
	}
	return out
}

// Validate checks r against g. It returns a *errors.Error whose code names
// the first problem found.
func (r Request) Validate(g *roadmap.Graph[int]) error {
	if _, err := ParseMode(string(r.Mode)); err != nil {
		return err
	}
	if !g.HasVertex(r.Source) {
		return rperrors.New(rperrors.ErrCodeVertexNotFound, "source location %d does not exist", r.Source)
	}
	if !g.HasVertex(r.Destination) {
		return rperrors.New(rperrors.ErrCodeVertexNotFound, "destination location %d does not exist", r.Destination)
	}
	if r.Source == r.Destination {
		return rperrors.New(rperrors.ErrCodeInvalidInput, "source and destination are both %d", r.Source)
	}

	for _, id := range r.AvoidNodes {
		if !g.HasVertex(id) {
			return rperrors.New(rperrors.ErrCodeInvalidAvoidList, "avoided location %d does not exist", id)
		}
		if id == r.Source || id == r.Destination {
			return rperrors.New(rperrors.ErrCodeInvalidAvoidList, "cannot avoid the source or destination (%d)", id)
		}
	}
	for _, s := range r.AvoidSegments {
		if !g.HasVertex(s.From) || !g.HasVertex(s.To) {
			return rperrors.New(rperrors.ErrCodeInvalidAvoidList, "avoided segment (%d,%d) references an unknown location", s.From, s.To)
		}
	}

	if r.IncludeNode != nil {
		via := *r.IncludeNode
		switch {
		case !g.HasVertex(via):
			return rperrors.New(rperrors.ErrCodeInvalidIncludeNode, "include location %d does not exist", via)
		case via == r.Source || via == r.Destination:
			return rperrors.New(rperrors.ErrCodeInvalidIncludeNode, "include location %d is the source or destination", via)
		case slices.Contains(r.AvoidNodes, via):
			return rperrors.New(rperrors.ErrCodeInvalidIncludeNode, "include location %d is also avoided", via)
		}
		if m, _ := ParseMode(string(r.Mode)); m == ModeDrivingWalking {
			return rperrors.New(rperrors.ErrCodeInvalidIncludeNode, "include location is only supported for driving routes")
		}
	}

	if r.MaxWalkTime != nil {
		if err := rperrors.ValidateMaxWalkTime(*r.MaxWalkTime); err != nil {
			return err
		}
	}
	return nil
}
