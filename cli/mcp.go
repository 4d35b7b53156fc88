// ABOUTME: MCP server subcommand
// ABOUTME: Serves outreach tools, resources and prompts over stdio
package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/harperreed/outreach/handlers"
)

func newMCPCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Log.Info("starting outreach MCP server")
			server := handlers.NewServer(app.Service, app.Rules, app.Version)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
