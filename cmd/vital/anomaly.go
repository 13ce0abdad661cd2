// ABOUTME: CLI command for anomaly detection against trailing baselines.
// ABOUTME: Colors severities in human output (alert red, warning yellow).
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openvital/vital/internal/models"
)

var (
	anomalyDays      int
	anomalyThreshold string
)

var anomalyCmd = &cobra.Command{
	Use:   "anomaly [type]",
	Short: "Detect anomalous values among today's entries",
	Long: `Compare today's entries against each metric's trailing baseline and
flag values outside the interquartile band. Scans every metric type
unless one is given.

Examples:
  vital anomaly
  vital anomaly heart_rate --days 30 --threshold strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, err := models.ParseThreshold(anomalyThreshold)
		if err != nil {
			return err
		}

		metricType := ""
		if len(args) > 0 {
			metricType = cfg.ResolveAlias(args[0])
		}

		result, err := engine.DetectAnomalies(metricType, anomalyDays, threshold)
		if err != nil {
			return err
		}

		if humanFlag {
			printAnomaliesHuman(result)
			return nil
		}
		return printJSON("anomaly", result)
	},
}

func printAnomaliesHuman(result *models.AnomalyResult) {
	fmt.Println(result.Summary)
	for _, a := range result.Anomalies {
		line := fmt.Sprintf("  %s: %s", a.Severity, a.Summary)
		switch a.Severity {
		case models.SeverityAlert:
			color.Red(line)
		case models.SeverityWarning:
			color.Yellow(line)
		default:
			fmt.Println(line)
		}
	}
}

func init() {
	anomalyCmd.Flags().IntVar(&anomalyDays, "days", 14, "baseline window in days")
	anomalyCmd.Flags().StringVar(&anomalyThreshold, "threshold", "moderate", "sensitivity (relaxed/moderate/strict)")
	rootCmd.AddCommand(anomalyCmd)
}
