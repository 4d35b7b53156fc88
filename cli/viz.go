// ABOUTME: Visualization CLI commands
// ABOUTME: Renders the pipeline graph and the terminal dashboard
package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/viz"
)

func graphFormat(name string) (graphviz.Format, error) {
	switch name {
	case "", "dot":
		return graphviz.XDOT, nil
	case "svg":
		return graphviz.SVG, nil
	case "png":
		return graphviz.PNG, nil
	}
	return "", apperr.Validation(fmt.Sprintf("unknown format %q (want dot, svg or png)", name))
}

func newVizCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Visualize the lead pipeline",
	}

	pipelineCmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Render leads by status, coloured by their most urgent action",
		Long: `Render the lead pipeline as a graph.

Examples:
  outreach viz pipeline > pipeline.dot
  outreach viz pipeline --format svg --output pipeline.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			format, err := graphFormat(name)
			if err != nil {
				return err
			}
			if format == graphviz.PNG && output == "" {
				return apperr.Validation("png output needs --output")
			}

			rendered, err := viz.NewGraphGenerator(app.Service).GeneratePipelineGraph(cmd.Context(), app.owner(cmd), format)
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, []byte(rendered), 0644); err != nil {
					return err
				}
				printSuccess(app.out(), "Wrote %s", output)
				return nil
			}
			_, _ = fmt.Fprintln(app.out(), rendered)
			return nil
		},
	}
	pipelineCmd.Flags().String("format", "dot", "dot, svg or png")
	pipelineCmd.Flags().String("output", "", "output file (default: stdout)")

	cmd.AddCommand(pipelineCmd)
	return cmd
}

func renderDashboard(cmd *cobra.Command, app *App) error {
	stats, err := viz.GenerateDashboardStats(cmd.Context(), app.Service, app.owner(cmd))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(app.out(), viz.RenderDashboard(stats))
	return nil
}
