// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openvital/vital/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server. The server communicates
via stdin/stdout and exposes logging and analytics to MCP-compatible AI
assistants.

CONFIGURATION:

  {
    "mcpServers": {
      "vital": {
        "command": "vital",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_metric         Record a health metric
  query_metrics      Query metrics by type or date
  compute_trend      Trend analysis with 30-day projection
  detect_anomalies   Flag today's outliers against baselines
  correlate_metrics  Pearson correlation between two metrics
  medication_status  Medication adherence and streaks
  goal_status        Progress against active goals`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
