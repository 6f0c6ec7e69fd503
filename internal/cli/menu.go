package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/staragarcia/routeplanner/pkg/batch"
	rperrors "github.com/staragarcia/routeplanner/pkg/errors"
	"github.com/staragarcia/routeplanner/pkg/planner"
)

// menuCommand creates the interactive menu command.
func (c *CLI) menuCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Plan routes from an interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMenu(cmd.Context(), os.Stdin, cmd.OutOrStdout())
		},
	}
}

// runMenu shows the menu until the user exits. Request errors are printed
// and the menu is shown again.
func (c *CLI) runMenu(ctx context.Context, in io.Reader, out io.Writer) error {
	p, err := c.newPlanner(ctx)
	if err != nil {
		return err
	}
	defer p.Cache.Close()

	status := fmt.Sprintf("%d locations, %d roads", p.Graph.VertexCount(), p.Graph.EdgeCount())

	for {
		final, err := tea.NewProgram(NewMenuModel(status),
			tea.WithContext(ctx),
			tea.WithInput(in),
			tea.WithOutput(out),
		).Run()
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}

		m := final.(MenuModel)
		if m.Cancelled {
			continue
		}
		if !m.Done() {
			return nil
		}
		if err := c.menuAction(ctx, p, out, m.Selected, m.Answers); err != nil {
			printError("%s", planner.ErrorMessage(err))
		}
		fmt.Fprintln(out)
	}
}

func (c *CLI) menuAction(ctx context.Context, p *planner.Planner, out io.Writer, action menuAction, answers map[field]string) error {
	if action == actionBatch {
		return c.runBatch(ctx, answers[fieldInput], answers[fieldOutput], out)
	}

	req, err := requestFromAnswers(action, answers)
	if err != nil {
		return err
	}
	report, cached, err := p.PlanWithCacheInfo(ctx, req)
	if err != nil {
		return err
	}
	printReport(report, cached)
	return nil
}

// requestFromAnswers builds the request for a route action from the menu
// answers. Blank optional answers mean "none".
func requestFromAnswers(action menuAction, answers map[field]string) (planner.Request, error) {
	req := planner.Request{Mode: planner.ModeDriving}
	if action == actionEco {
		req.Mode = planner.ModeDrivingWalking
	}

	var err error
	if req.Source, err = parseLocation("source", answers[fieldSource]); err != nil {
		return req, err
	}
	if req.Destination, err = parseLocation("destination", answers[fieldDestination]); err != nil {
		return req, err
	}
	if req.AvoidNodes, err = batch.ParseNodeList(answers[fieldAvoidNodes]); err != nil {
		return req, err
	}
	if req.AvoidSegments, err = batch.ParseSegmentList(answers[fieldAvoidSegments]); err != nil {
		return req, err
	}

	if s := answers[fieldInclude]; action == actionRestricted && s != "" {
		id, err := parseLocation("include location", s)
		if err != nil {
			return req, err
		}
		req.IncludeNode = &id
	}
	if s := answers[fieldMaxWalk]; action == actionEco && s != "" {
		minutes, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return req, rperrors.New(rperrors.ErrCodeInvalidInput, "maximum walking time must be a number, got %q", s)
		}
		req.MaxWalkTime = &minutes
	}
	return req, nil
}
