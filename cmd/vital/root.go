// ABOUTME: Root Cobra command for the vital CLI.
// ABOUTME: Opens config + storage in PersistentPreRunE, closes in PostRunE.
package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/openvital/vital/internal/analytics"
	"github.com/openvital/vital/internal/config"
	"github.com/openvital/vital/internal/storage"
)

var (
	humanFlag   bool
	verboseFlag bool
	dateFlag    string

	cfg    *config.Config
	store  storage.Store
	engine *analytics.Engine
)

var rootCmd = &cobra.Command{
	Use:   "vital",
	Short: "Personal health analytics tracker",
	Long: `Vital tracks personal health metrics and computes analytics over them.

QUICK START:

  $ vital log weight 82.5               # Log your weight
  $ vital log wa 500                    # Aliases work (wa = water)
  $ vital show weight --last 7          # Recent entries
  $ vital trend weight --period weekly  # Trend with projection
  $ vital anomaly                       # Scan today's values against baselines
  $ vital status                        # Daily overview

MEDICATIONS:

  $ vital med add ibuprofen --dose 400mg --freq 2x_daily
  $ vital med take ibuprofen
  $ vital med status ibuprofen

GOALS:

  $ vital goal set water 2000 above daily
  $ vital goal status

OUTPUT:

  Commands emit a JSON envelope {status, command, data, error} by default.
  Pass --human for readable text. Values are stored metric; display honors
  the configured unit system.

MCP INTEGRATION:

  Run 'vital mcp' to start the Model Context Protocol server for use with
  MCP-compatible AI assistants:

  {
    "mcpServers": {
      "vital": { "command": "vital", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives under $VITAL_HOME (default ~/.vital): data.db for the sqlite
  backend, kv/ for badger. Config is config.yaml in the same directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verboseFlag {
			log.SetLevel(log.DebugLevel)
		}

		switch cmd.Name() {
		case "help", "version", "completion", "init":
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log.Debug("opening storage", "backend", cfg.GetBackend(), "dir", cfg.DataHome())
		store, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		engine = analytics.New(store)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanFlag, "human", false, "human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dateFlag, "date", "", "override the entry date (YYYY-MM-DD)")
}

// flagDate parses the global --date flag, or returns the zero time.
func flagDate() (time.Time, error) {
	if dateFlag == "" {
		return time.Time{}, nil
	}
	d, err := time.ParseInLocation("2006-01-02", dateFlag, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %s (expected YYYY-MM-DD)", dateFlag)
	}
	return d, nil
}
