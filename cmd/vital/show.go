// ABOUTME: CLI command for viewing logged metrics.
// ABOUTME: Shows entries by type (most recent N) or by date.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var showLast int

var showCmd = &cobra.Command{
	Use:     "show [type|today]",
	Aliases: []string{"s"},
	Short:   "Show logged metrics",
	Long: `Show logged metrics. With no arguments (or "today"), shows today's
entries. With a type, shows the most recent entries of that type.

Examples:
  vital show                  # today's entries
  vital show weight --last 7  # last 7 weight entries
  vital show --date 2026-08-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := flagDate()
		if err != nil {
			return err
		}

		byDate := len(args) == 0 || args[0] == "today" || !date.IsZero()
		if byDate {
			day := date
			if day.IsZero() {
				day = time.Now().UTC().Truncate(24 * time.Hour)
			}
			entries, err := store.QueryByDate(day)
			if err != nil {
				return err
			}
			if humanFlag {
				if len(entries) == 0 {
					fmt.Printf("No entries for %s\n", day.Format("2006-01-02"))
					return nil
				}
				fmt.Printf("--- %s ---\n", day.Format("2006-01-02"))
				for _, m := range entries {
					fmt.Println(formatMetric(m, cfg.Units))
				}
				return nil
			}
			return printJSON("show", map[string]any{
				"date":    day.Format("2006-01-02"),
				"entries": entries,
			})
		}

		resolved := cfg.ResolveAlias(args[0])
		entries, err := store.QueryByType(resolved, showLast)
		if err != nil {
			return err
		}
		if humanFlag {
			if len(entries) == 0 {
				fmt.Printf("No entries found for '%s'\n", resolved)
				return nil
			}
			for _, m := range entries {
				fmt.Println(formatMetric(m, cfg.Units))
			}
			return nil
		}
		return printJSON("show", map[string]any{"type": resolved, "entries": entries})
	},
}

func init() {
	showCmd.Flags().IntVar(&showLast, "last", 1, "number of recent entries to show")
	rootCmd.AddCommand(showCmd)
}
