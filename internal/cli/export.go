package cli

import (
	"github.com/spf13/cobra"

	"github.com/staragarcia/routeplanner/pkg/dataset"
	rperrors "github.com/staragarcia/routeplanner/pkg/errors"
)

// exportCommand creates the command that writes the loaded network as JSON.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the road network as a JSON graph",
		Long: `Write the loaded road network as a JSON graph. The file can be loaded
again with --graph instead of the locations and distances CSV files.`,
		Example: `  routeplanner export -o network.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rperrors.ValidateFilePath(output, false); err != nil {
				return err
			}
			rc, err := c.newCache(cmd.Context())
			if err != nil {
				return err
			}
			defer rc.Close()

			g, err := c.loadGraph(cmd.Context(), rc)
			if err != nil {
				return err
			}
			if err := dataset.ExportJSON(g, output); err != nil {
				return err
			}
			printSuccess("Exported %d locations and %d roads", g.VertexCount(), g.EdgeCount())
			printFile(output)
			printNextStep("Use it with", "routeplanner --graph "+output+" route 1 2")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "network.json", "output file")
	return cmd
}
