// ABOUTME: CLI command for period reports.
// ABOUTME: Resolves week/month/explicit ranges and renders per-type summaries.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openvital/vital/internal/units"
)

var (
	reportPeriod string
	reportMonth  string
	reportFrom   string
	reportTo     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize metrics over a date range",
	Long: `Summarize all metrics over a range: per-type count, average, min, and
max, plus overall entry counts.

Examples:
  vital report                     # trailing week
  vital report --period month
  vital report --month 2026-07
  vital report --from 2026-08-01 --to 2026-08-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := resolveReportRange()
		if err != nil {
			return err
		}

		result, err := engine.Report(from, to)
		if err != nil {
			return err
		}

		if humanFlag {
			fmt.Printf("=== Report: %s to %s ===\n", result.From, result.To)
			fmt.Printf("Days with entries: %d | Total entries: %d\n",
				result.DaysWithEntries, result.TotalEntries)
			if len(result.Metrics) == 0 {
				fmt.Println("No data in this period.")
				return nil
			}
			for _, s := range result.Metrics {
				avg, _ := units.ToDisplay(s.Avg, s.MetricType, cfg.Units)
				min, _ := units.ToDisplay(s.Min, s.MetricType, cfg.Units)
				max, unit := units.ToDisplay(s.Max, s.MetricType, cfg.Units)
				fmt.Printf("  %-16s | avg %8.1f  min %8.1f  max %8.1f  (n=%d) [%s]\n",
					s.MetricType, avg, min, max, s.Count, unit)
			}
			return nil
		}
		return printJSON("report", result)
	},
}

func resolveReportRange() (time.Time, time.Time, error) {
	if reportFrom != "" && reportTo != "" {
		from, err := time.ParseInLocation("2006-01-02", reportFrom, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date: %s", reportFrom)
		}
		to, err := time.ParseInLocation("2006-01-02", reportTo, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date: %s", reportTo)
		}
		return from, to, nil
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch reportPeriod {
	case "week", "":
		return today.AddDate(0, 0, -6), today, nil
	case "month":
		if reportMonth != "" {
			first, err := time.ParseInLocation("2006-01", reportMonth, time.UTC)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid month: %s (expected YYYY-MM)", reportMonth)
			}
			last := first.AddDate(0, 1, -1)
			return first, last, nil
		}
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first, today, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period: %s (expected week/month)", reportPeriod)
	}
}

func init() {
	reportCmd.Flags().StringVar(&reportPeriod, "period", "week", "report period (week/month)")
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "specific month (YYYY-MM)")
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "range start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "range end (YYYY-MM-DD)")
	rootCmd.AddCommand(reportCmd)
}
