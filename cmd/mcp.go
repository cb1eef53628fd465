package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/fokus/internal/adapters/mcp"
	"github.com/xvierd/fokus/internal/services"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server is read-only and exposes today's total and the per-day history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol, so status goes to stderr.
		fmt.Fprintln(cmd.ErrOrStderr(), "Starting MCP server on stdio (Ctrl+C to stop)")

		server := mcp.NewServer(services.NewHistoryService(app.store), Version)
		app.log.Info("mcp server started")
		if err := server.Start(cmd.Context()); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
