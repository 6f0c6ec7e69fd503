package cli

import (
	"context"
	"encoding/json"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/staragarcia/routeplanner/pkg/batch"
	rperrors "github.com/staragarcia/routeplanner/pkg/errors"
	"github.com/staragarcia/routeplanner/pkg/planner"
)

// routeOpts holds the flags shared by the route commands.
type routeOpts struct {
	jsonOut       bool
	avoidNodes    string // "1,2"
	avoidSegments string // "(1,2),(3,4)"
	include       int
	maxWalk       int64
}

// routeCommand creates the command for the fastest route and its alternative.
func (c *CLI) routeCommand() *cobra.Command {
	var opts routeOpts

	cmd := &cobra.Command{
		Use:   "route SOURCE DESTINATION",
		Short: "Find the fastest driving route and an alternative",
		Long: `Find the fastest driving route between two location ids, plus the best
alternative route. The alternative strategy (detour or disjoint) comes from
the config file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := endpoints(planner.ModeDriving, args)
			if err != nil {
				return err
			}
			return c.runRoute(cmd.Context(), cmd.OutOrStdout(), req, opts.jsonOut)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the report as JSON")
	return cmd
}

// restrictedCommand creates the command for routes with avoid lists and an
// optional stop along the way.
func (c *CLI) restrictedCommand() *cobra.Command {
	var opts routeOpts

	cmd := &cobra.Command{
		Use:   "restricted SOURCE DESTINATION",
		Short: "Find the fastest driving route under restrictions",
		Long: `Find the fastest driving route that avoids the given locations and road
segments, optionally passing through one location on the way.`,
		Example: `  routeplanner restricted 5 4 --avoid-nodes 2 --avoid-segments "(4,7)" --include 6`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := endpoints(planner.ModeDriving, args)
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, &req); err != nil {
				return err
			}
			return c.runRoute(cmd.Context(), cmd.OutOrStdout(), req, opts.jsonOut)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the report as JSON")
	cmd.Flags().StringVar(&opts.avoidNodes, "avoid-nodes", "", "location ids to avoid, e.g. 1,2")
	cmd.Flags().StringVar(&opts.avoidSegments, "avoid-segments", "", "road segments to avoid, e.g. (1,2),(3,4)")
	cmd.Flags().IntVar(&opts.include, "include", 0, "location id the route must pass through")
	return cmd
}

// ecoCommand creates the command for park-and-walk routes.
func (c *CLI) ecoCommand() *cobra.Command {
	var opts routeOpts

	cmd := &cobra.Command{
		Use:     "eco SOURCE DESTINATION",
		Aliases: []string{"hybrid"},
		Short:   "Find an environmentally friendly driving and walking route",
		Long: `Drive from the source to a parking location, then walk to the destination.
The walk may not exceed --max-walk minutes. When no route satisfies the
restrictions they are relaxed step by step and the closest matches are shown.`,
		Example: `  routeplanner eco 8 5 --max-walk 18 --avoid-nodes 2,3 --avoid-segments "(10,11)"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := endpoints(planner.ModeDrivingWalking, args)
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, &req); err != nil {
				return err
			}
			return c.runRoute(cmd.Context(), cmd.OutOrStdout(), req, opts.jsonOut)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the report as JSON")
	cmd.Flags().StringVar(&opts.avoidNodes, "avoid-nodes", "", "location ids to avoid, e.g. 1,2")
	cmd.Flags().StringVar(&opts.avoidSegments, "avoid-segments", "", "road segments to avoid, e.g. (1,2),(3,4)")
	cmd.Flags().Int64Var(&opts.maxWalk, "max-walk", 0, "maximum walking time in minutes (default unbounded)")
	return cmd
}

// apply copies the restriction flags that were set into req.
func (o *routeOpts) apply(cmd *cobra.Command, req *planner.Request) error {
	nodes, err := batch.ParseNodeList(o.avoidNodes)
	if err != nil {
		return err
	}
	segments, err := batch.ParseSegmentList(o.avoidSegments)
	if err != nil {
		return err
	}
	req.AvoidNodes = nodes
	req.AvoidSegments = segments

	if f := cmd.Flags().Lookup("include"); f != nil && f.Changed {
		include := o.include
		req.IncludeNode = &include
	}
	if f := cmd.Flags().Lookup("max-walk"); f != nil && f.Changed {
		maxWalk := o.maxWalk
		req.MaxWalkTime = &maxWalk
	}
	return nil
}

// endpoints builds a request from SOURCE and DESTINATION arguments.
func endpoints(mode planner.Mode, args []string) (planner.Request, error) {
	src, err := parseLocation("source", args[0])
	if err != nil {
		return planner.Request{}, err
	}
	dst, err := parseLocation("destination", args[1])
	if err != nil {
		return planner.Request{}, err
	}
	return planner.Request{Mode: mode, Source: src, Destination: dst}, nil
}

func parseLocation(name, s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, rperrors.New(rperrors.ErrCodeInvalidInput, "%s must be a location id, got %q", name, s)
	}
	return id, nil
}

// runRoute plans req and prints the report.
func (c *CLI) runRoute(ctx context.Context, w io.Writer, req planner.Request, jsonOut bool) error {
	p, err := c.newPlanner(ctx)
	if err != nil {
		return err
	}
	defer p.Cache.Close()

	report, cached, err := p.PlanWithCacheInfo(ctx, req)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(report, cached)
	return nil
}
