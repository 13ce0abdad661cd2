// ABOUTME: CLI command for logging health metrics.
// ABOUTME: Handles single entries, aliases, unit conversion, and batch JSON.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/openvital/vital/internal/models"
	"github.com/openvital/vital/internal/units"
)

var (
	logNote   string
	logTags   string
	logSource string
	logBatch  string
)

var logCmd = &cobra.Command{
	Use:     "log [type] [value]",
	Aliases: []string{"l"},
	Short:   "Log a health metric",
	Long: `Log a health metric. Aliases resolve to full type names (w → weight),
and values entered in an imperial unit system are converted to metric
for storage.

Examples:
  vital log weight 82.5
  vital log wa 500 --note "morning"
  vital log pain 6 --tags "knee,left"
  vital log --batch '[{"type":"weight","value":82.5},{"type":"water","value":500}]'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if logBatch != "" {
			return runLogBatch(logBatch)
		}
		if len(args) < 2 {
			return fmt.Errorf("log requires <type> and <value> (or --batch)")
		}

		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[1])
		}

		date, err := flagDate()
		if err != nil {
			return err
		}

		m := buildMetric(args[0], value, logNote, logTags, logSource, date)
		if err := store.InsertMetric(m); err != nil {
			return fmt.Errorf("log metric: %w", err)
		}

		if humanFlag {
			printLogged(m)
			return nil
		}
		return printJSON("log", map[string]any{"entry": m})
	},
}

// buildMetric assembles a metric from CLI inputs: alias resolution, unit
// conversion, optional note/tags/source, and a noon timestamp when a
// backdated entry date is given.
func buildMetric(metricType string, value float64, note, tags, source string, date time.Time) *models.Metric {
	resolved := cfg.ResolveAlias(metricType)
	stored := units.FromInput(value, resolved, cfg.Units)

	m := models.NewMetric(resolved, stored)
	if note != "" {
		m.WithNote(note)
	}
	if tags != "" {
		for _, t := range strings.Split(tags, ",") {
			m.Tags = append(m.Tags, strings.TrimSpace(t))
		}
	}
	if source != "" {
		m.Source = source
	}
	if !date.IsZero() {
		m.WithTimestamp(time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC))
	}
	return m
}

type batchEntry struct {
	Type  string   `json:"type"`
	Value *float64 `json:"value"`
	Note  string   `json:"note,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

func runLogBatch(batchJSON string) error {
	var batch []batchEntry
	if err := json.Unmarshal([]byte(batchJSON), &batch); err != nil {
		return fmt.Errorf("parse batch: %w", err)
	}

	var entries []*models.Metric
	for i, e := range batch {
		if e.Type == "" {
			return fmt.Errorf("batch entry %d: missing 'type'", i)
		}
		if e.Value == nil {
			return fmt.Errorf("batch entry %d: missing 'value'", i)
		}
		m := buildMetric(e.Type, *e.Value, e.Note, "", "", time.Time{})
		m.Tags = e.Tags
		if err := store.InsertMetric(m); err != nil {
			return fmt.Errorf("log metric: %w", err)
		}
		entries = append(entries, m)
	}

	if humanFlag {
		for _, m := range entries {
			printLogged(m)
		}
		return nil
	}
	return printJSON("log", map[string]any{"entries": entries})
}

func init() {
	logCmd.Flags().StringVar(&logNote, "note", "", "note for the entry")
	logCmd.Flags().StringVar(&logTags, "tags", "", "comma-separated tags")
	logCmd.Flags().StringVar(&logSource, "source", "", "source marker (default manual)")
	logCmd.Flags().StringVar(&logBatch, "batch", "", "JSON array of entries to log at once")
	rootCmd.AddCommand(logCmd)
}
