package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/staragarcia/routeplanner/pkg/cache"
	"github.com/staragarcia/routeplanner/pkg/dataset"
	rperrors "github.com/staragarcia/routeplanner/pkg/errors"
	"github.com/staragarcia/routeplanner/pkg/observability"
	"github.com/staragarcia/routeplanner/pkg/roadmap"
	"github.com/staragarcia/routeplanner/pkg/route"
)

// DefaultTTL is how long a cached report stays valid when the planner has
// no TTL configured.
const DefaultTTL = 24 * time.Hour

// Planner answers route requests against one road network with caching.
// Both the CLI and the HTTP server use it so that validation, search
// dispatch and caching live in one place.
//
// The graph is never modified, so one Planner may serve several goroutines.
type Planner struct {
	Graph     *roadmap.Graph[int]
	GraphHash string
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger

	// Alternative selects how unrestricted driving requests find their
	// alternative route.
	Alternative Strategy
	// TTL is how long reports stay cached. Zero means DefaultTTL.
	TTL time.Duration
}

// NewPlanner creates a planner for g.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewPlanner(g *roadmap.Graph[int], c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Planner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Planner{
		Graph:       g,
		GraphHash:   dataset.Fingerprint(g),
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		Alternative: StrategyDetour,
		TTL:         DefaultTTL,
	}
}

// cacheKeyInput is everything that changes a report for a fixed graph.
type cacheKeyInput struct {
	Request     Request  `json:"request"`
	Alternative Strategy `json:"alternative"`
}

// Plan validates req and returns its report.
func (p *Planner) Plan(ctx context.Context, req Request) (*Report, error) {
	report, _, err := p.PlanWithCacheInfo(ctx, req)
	return report, err
}

// PlanWithCacheInfo is Plan that also reports whether the result came from
// the cache. Failed requests are never cached.
func (p *Planner) PlanWithCacheInfo(ctx context.Context, req Request) (*Report, bool, error) {
	if err := req.Validate(p.Graph); err != nil {
		return nil, false, err
	}
	req = req.Normalize()

	key := p.Keyer.RouteKey(p.GraphHash, cacheKeyInput{Request: req, Alternative: p.strategy()})
	if data, hit, err := p.Cache.Get(ctx, key); err == nil && hit {
		var cached Report
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "route")
			cached.ID = uuid.NewString()
			p.Logger.Debug("route cache hit", "source", req.Source, "destination", req.Destination)
			return &cached, true, nil
		}
		// Undecodable entries are recomputed and overwritten.
	} else if err != nil {
		p.Logger.Warn("route cache read failed", "error", err)
	}
	observability.Cache().OnCacheMiss(ctx, "route")

	start := time.Now()
	observability.Search().OnSearchStart(ctx, string(req.Mode))
	report, err := p.compute(ctx, req)
	elapsed := time.Since(start)
	observability.Search().OnSearchComplete(ctx, string(req.Mode), elapsed, err)
	if err != nil {
		p.Logger.Debug("route search failed",
			"mode", req.Mode,
			"source", req.Source,
			"destination", req.Destination,
			"error", err)
		return nil, false, err
	}

	p.Logger.Info("planned route",
		"mode", req.Mode,
		"source", req.Source,
		"destination", req.Destination,
		"cost", report.Best.Cost,
		"relaxed", report.Relaxed,
		"duration", elapsed)

	if data, err := json.Marshal(report); err == nil {
		if err := p.Cache.Set(ctx, key, data, p.ttl()); err != nil {
			p.Logger.Warn("route cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "route", len(data))
		}
	}

	report.ID = uuid.NewString()
	return report, false, nil
}

func (p *Planner) strategy() Strategy {
	if p.Alternative == "" {
		return StrategyDetour
	}
	return p.Alternative
}

func (p *Planner) ttl() time.Duration {
	if p.TTL <= 0 {
		return DefaultTTL
	}
	return p.TTL
}

// compute runs the searches for an already validated, normalized request.
func (p *Planner) compute(ctx context.Context, req Request) (*Report, error) {
	report := &Report{
		Mode:        req.Mode,
		Source:      req.Source,
		Destination: req.Destination,
	}

	var err error
	switch req.Mode {
	case ModeDriving:
		err = p.driving(req, report)
	case ModeDrivingWalking:
		err = p.drivingWalking(ctx, req, report)
	default:
		err = rperrors.New(rperrors.ErrCodeInvalidMode, "unknown mode %q", req.Mode)
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (p *Planner) driving(req Request, report *Report) error {
	avoid := req.Exclusions()

	if req.Restricted() {
		report.Restricted = true

		var (
			best route.Route[int]
			err  error
		)
		if req.IncludeNode != nil {
			best, err = route.Via(p.Graph, req.Source, *req.IncludeNode, req.Destination, roadmap.Driving, avoid)
		} else {
			best, err = route.Shortest(p.Graph, req.Source, req.Destination, roadmap.Driving, avoid)
		}
		if err != nil {
			return searchError(req, err)
		}
		report.Best = drivingRoute(best)
		return nil
	}

	best, err := route.Shortest(p.Graph, req.Source, req.Destination, roadmap.Driving, avoid)
	if err != nil {
		return searchError(req, err)
	}
	report.Best = drivingRoute(best)

	var alt route.Route[int]
	switch p.strategy() {
	case StrategyDisjoint:
		alt, err = route.DisjointAlternative(p.Graph, req.Source, req.Destination, roadmap.Driving, avoid, best.Path)
	default:
		alt, err = route.DetourAlternative(p.Graph, req.Source, req.Destination, roadmap.Driving, avoid, best.Path)
	}
	switch {
	case err == nil:
		report.Alternative = drivingRoute(alt)
	case errors.Is(err, route.ErrNoAlternative):
		report.NoAlternative = true
	default:
		return searchError(req, err)
	}
	return nil
}

func (p *Planner) drivingWalking(ctx context.Context, req Request, report *Report) error {
	c := route.Constraints[int]{MaxWalk: req.MaxWalk(), Avoid: req.Exclusions()}

	best, err := route.Hybrid(p.Graph, req.Source, req.Destination, c.MaxWalk, c.Avoid)
	if err == nil {
		report.Best = hybridRoute(best)
		alt, err := route.HybridDetourAlternative(p.Graph, req.Source, req.Destination, c.MaxWalk, c.Avoid, best.Path)
		switch {
		case err == nil:
			report.Alternative = hybridRoute(alt)
		case errors.Is(err, route.ErrNoAlternative):
			report.NoAlternative = true
		default:
			return searchError(req, err)
		}
		return nil
	}
	if !errors.Is(err, route.ErrNoPath) {
		return searchError(req, err)
	}

	p.Logger.Debug("relaxing constraints", "source", req.Source, "destination", req.Destination)
	relaxed, err := route.Relax(p.Graph, req.Source, req.Destination, c)
	if err != nil {
		observability.Search().OnRelaxation(ctx, route.Failure.String())
		return searchError(req, err)
	}
	observability.Search().OnRelaxation(ctx, relaxed.Step.Stage.String())

	report.Relaxed = true
	report.Stage = relaxed.Step.Stage.String()
	report.Message = relaxed.Step.Message
	report.Best = hybridRoute(relaxed.Best)
	if relaxed.Alternative != nil {
		report.Alternative = hybridRoute(*relaxed.Alternative)
	} else {
		report.NoAlternative = true
	}
	return nil
}

// searchError converts a search sentinel into a structured error.
func searchError(req Request, err error) error {
	switch {
	case errors.Is(err, route.ErrUnreachable),
		errors.Is(err, route.ErrNoPath),
		errors.Is(err, route.ErrConstraintsExhausted):
		return rperrors.Wrap(rperrors.ErrCodeNoRoute, err, "no %s route from %d to %d", req.Mode, req.Source, req.Destination)
	case errors.Is(err, route.ErrInvalidVia):
		return rperrors.Wrap(rperrors.ErrCodeInvalidIncludeNode, err, "include location %d", *req.IncludeNode)
	case errors.Is(err, route.ErrUnknownVertex):
		return rperrors.Wrap(rperrors.ErrCodeVertexNotFound, err, "route from %d to %d", req.Source, req.Destination)
	default:
		return fmt.Errorf("plan %s route: %w", req.Mode, err)
	}
}

// ErrorMessage returns the user-facing text for an error returned by Plan.
func ErrorMessage(err error) string {
	if errors.Is(err, route.ErrConstraintsExhausted) {
		return route.ErrConstraintsExhausted.Error()
	}
	return rperrors.UserMessage(err)
}
