package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/staragarcia/routeplanner/pkg/batch"
	rperrors "github.com/staragarcia/routeplanner/pkg/errors"
	"github.com/staragarcia/routeplanner/pkg/planner"
)

// batchCommand creates the command that answers a file of requests.
func (c *CLI) batchCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "batch INPUT",
		Short: "Answer every request in a batch file",
		Long: `Read route requests from INPUT, one Key:value pair per line with requests
separated by blank lines, and write one result block per request.

Failed requests still produce a block with "none" routes and a Message line,
so the output always has one block per request.`,
		Example: `  routeplanner batch input.txt -o output.txt`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), args[0], output, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// batchResult counts the outcome of a batch run.
type batchResult struct {
	total  int
	failed int
}

func (c *CLI) runBatch(ctx context.Context, input, output string, stdout io.Writer) error {
	logger := loggerFromContext(ctx)

	if err := rperrors.ValidateFilePath(input, false); err != nil {
		return err
	}
	f, err := os.Open(input)
	if err != nil {
		return rperrors.Wrap(rperrors.ErrCodeFileNotFound, err, "open %s", input)
	}
	defer f.Close()

	reqs, err := batch.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	logger.Debug("parsed batch", "file", input, "requests", len(reqs))

	p, err := c.newPlanner(ctx)
	if err != nil {
		return err
	}
	defer p.Cache.Close()

	w, closeOut, err := openOutput(output, stdout)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, os.Stderr, fmt.Sprintf("Planning %d requests...", len(reqs)))
	spinner.Start()
	res, err := planBatch(ctx, p, reqs, w, spinner)
	spinner.Stop()
	if cerr := closeOut(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", output, cerr)
	}
	if err != nil {
		return err
	}

	if res.failed > 0 {
		printWarning("%d of %d requests found no route", res.failed, res.total)
	} else {
		printSuccess("Planned %d requests", res.total)
	}
	if output != "" && output != "-" {
		printFile(output)
	}
	return nil
}

// planBatch writes one block per request, separated by blank lines. Request
// errors are written as failure blocks; only write errors abort the run.
func planBatch(ctx context.Context, p *planner.Planner, reqs []planner.Request, w io.Writer, spinner *Spinner) (batchResult, error) {
	res := batchResult{total: len(reqs)}
	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if spinner != nil {
			spinner.SetMessage(fmt.Sprintf("Planning request %d of %d...", i+1, len(reqs)))
		}
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return res, err
			}
		}

		report, err := p.Plan(ctx, req)
		if err != nil {
			res.failed++
			p.Logger.Debug("request failed", "index", i+1, "err", err)
			if werr := batch.WriteFailure(w, req, err); werr != nil {
				return res, werr
			}
			continue
		}
		if err := batch.Write(w, report); err != nil {
			return res, err
		}
	}
	return res, nil
}
