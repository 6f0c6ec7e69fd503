package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/staragarcia/routeplanner/pkg/cache"
	rperrors "github.com/staragarcia/routeplanner/pkg/errors"
	"github.com/staragarcia/routeplanner/pkg/planner"
	"github.com/staragarcia/routeplanner/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // output file path
	format string // dot, svg, pdf or png
	labels bool   // show location names and codes
	from   int    // highlighted route source
	to     int    // highlighted route destination
	eco    bool   // highlight a park-and-walk route instead of a driving one
}

// renderCommand creates the command that draws the road network.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: render.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the road network, optionally highlighting a route",
		Long: `Draw the road network with Graphviz. Parking locations are drawn as boxes.
With --from and --to the fastest route between them is highlighted; --eco
highlights the driving and walking legs of a park-and-walk route instead.

PDF and PNG output require rsvg-convert (librsvg).`,
		Example: `  routeplanner render -o network.svg --labels
  routeplanner render -f png -o route.png --from 1 --to 5 --eco`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("from") != cmd.Flags().Changed("to") {
				return rperrors.New(rperrors.ErrCodeInvalidInput, "--from and --to must be given together")
			}
			highlight := cmd.Flags().Changed("from")
			return c.runRender(cmd.Context(), &opts, highlight)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default network.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, dot, pdf, png")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "show location names and codes")
	cmd.Flags().IntVar(&opts.from, "from", 0, "highlight the route from this location")
	cmd.Flags().IntVar(&opts.to, "to", 0, "highlight the route to this location")
	cmd.Flags().BoolVar(&opts.eco, "eco", false, "highlight a park-and-walk route")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts *renderOpts, highlight bool) error {
	logger := loggerFromContext(ctx)
	format := strings.ToLower(opts.format)
	switch format {
	case render.FormatDOT, render.FormatSVG, render.FormatPDF, render.FormatPNG:
	default:
		return rperrors.New(rperrors.ErrCodeInvalidInput, "unsupported format %q (want svg, dot, pdf or png)", opts.format)
	}

	output := opts.output
	if output == "" {
		output = "network." + format
	}
	if err := rperrors.ValidateFilePath(output, false); err != nil {
		return err
	}

	p, err := c.newPlanner(ctx)
	if err != nil {
		return err
	}
	defer p.Cache.Close()

	ropts := render.Options{Labels: opts.labels}
	if highlight {
		req := planner.Request{Mode: planner.ModeDriving, Source: opts.from, Destination: opts.to}
		if opts.eco {
			req.Mode = planner.ModeDrivingWalking
		}
		report, err := p.Plan(ctx, req)
		if err != nil {
			return err
		}
		if best := report.Best; best.Hybrid() {
			ropts.Driving, ropts.Walking = best.DrivingPath, best.WalkingPath
		} else {
			ropts.Driving = best.Path
		}
	}

	key := p.Keyer.RenderKey(p.GraphHash, cache.RenderKeyOpts{
		Format:    format,
		Highlight: append(append([]int(nil), ropts.Driving...), ropts.Walking...),
		Labels:    opts.labels,
	})

	data, cached, err := p.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if !cached {
		prog := newProgress(logger)
		data, err = render.Render(render.ToDOT(p.Graph, ropts), format)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		prog.done("Rendered " + strings.ToUpper(format))
		if err := p.Cache.Set(ctx, key, data, p.TTL); err != nil {
			logger.Warn("cache write failed", "err", err)
		}
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Rendered road network")
	printFile(output)
	return nil
}
