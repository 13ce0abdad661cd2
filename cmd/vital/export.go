// ABOUTME: CLI commands for exporting and importing metric data.
// ABOUTME: Supports csv, json, and yaml; import preserves timestamps exactly.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openvital/vital/internal/storage"
)

var (
	exportFormat string
	exportOutput string
	exportType   string
	exportFrom   string
	exportTo     string

	importFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export metrics to csv, json, or yaml",
	Long: `Export metrics to stdout or a file.

Examples:
  vital export --format csv > metrics.csv
  vital export --format json --type weight -o weight.json
  vital export --format yaml --from 2026-01-01 --to 2026-06-30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var from, to time.Time
		var err error
		if exportFrom != "" {
			if from, err = time.ParseInLocation("2006-01-02", exportFrom, time.UTC); err != nil {
				return fmt.Errorf("invalid from date: %s", exportFrom)
			}
		}
		if exportTo != "" {
			if to, err = time.ParseInLocation("2006-01-02", exportTo, time.UTC); err != nil {
				return fmt.Errorf("invalid to date: %s", exportTo)
			}
		}

		metricType := ""
		if exportType != "" {
			metricType = cfg.ResolveAlias(exportType)
		}

		var content string
		switch exportFormat {
		case "csv":
			content, err = storage.ExportCSV(store, metricType, from, to)
		case "json":
			content, err = storage.ExportJSON(store, metricType, from, to)
		case "yaml":
			content, err = storage.ExportYAML(store, metricType, from, to)
		default:
			return fmt.Errorf("unsupported format: %s (expected csv/json/yaml)", exportFormat)
		}
		if err != nil {
			return err
		}

		if exportOutput == "" {
			fmt.Print(content)
			return nil
		}
		if err := os.WriteFile(exportOutput, []byte(content), 0600); err != nil {
			return err
		}
		if humanFlag {
			color.Green("✓ Exported to %s", exportOutput)
			return nil
		}
		return printJSON("export", map[string]any{"path": exportOutput, "format": exportFormat})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import metrics from a csv or json file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var count int
		switch importFormat {
		case "json":
			count, err = storage.ImportJSON(store, string(data))
		case "csv":
			count, err = storage.ImportCSV(store, string(data))
		default:
			return fmt.Errorf("unsupported import format: %s (expected csv/json)", importFormat)
		}
		if err != nil {
			return err
		}

		if humanFlag {
			color.Green("✓ Imported %d entries from %s", count, args[0])
			return nil
		}
		return printJSON("import", map[string]any{"count": count, "file": args[0]})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format (csv/json/yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	exportCmd.Flags().StringVar(&exportType, "type", "", "restrict to one metric type")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "range start (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "range end (YYYY-MM-DD)")

	importCmd.Flags().StringVar(&importFormat, "format", "json", "import format (csv/json)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
