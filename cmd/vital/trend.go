// ABOUTME: CLI command for trend analysis and cross-metric correlation.
// ABOUTME: Renders bucketed history, fitted rate, and the 30-day projection.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openvital/vital/internal/analytics"
	"github.com/openvital/vital/internal/units"
)

var (
	trendPeriod    string
	trendLast      int
	trendCorrelate string
)

var trendCmd = &cobra.Command{
	Use:     "trend [type]",
	Aliases: []string{"t"},
	Short:   "Analyze a metric's trend over time",
	Long: `Analyze a metric's trend: calendar-bucketed history, a fitted rate of
change, and a bounded 30-day projection. With --correlate, computes the
Pearson correlation between two metrics' daily averages instead.

Examples:
  vital trend weight
  vital trend weight --period weekly --last 8
  vital trend --correlate "sleep_hours,pain" --last 30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if trendCorrelate != "" {
			return runCorrelate(trendCorrelate, trendLast)
		}
		if len(args) < 1 {
			return fmt.Errorf("trend requires a metric type (or --correlate)")
		}

		period, err := analytics.ParsePeriod(trendPeriod)
		if err != nil {
			return err
		}

		resolved := cfg.ResolveAlias(args[0])
		result, err := engine.ComputeTrend(resolved, period, trendLast)
		if err != nil {
			return err
		}

		if humanFlag {
			printTrendHuman(result)
			return nil
		}
		return printJSON("trend", result)
	},
}

func printTrendHuman(result *analytics.TrendResult) {
	if len(result.Data) == 0 {
		fmt.Printf("No data for '%s'\n", result.MetricType)
		return
	}
	unit := units.DisplayUnit(result.MetricType, cfg.Units)
	fmt.Printf("%s (%s)\n", result.MetricType, result.Period)
	for _, d := range result.Data {
		avg, _ := units.ToDisplay(d.Avg, result.MetricType, cfg.Units)
		min, _ := units.ToDisplay(d.Min, result.MetricType, cfg.Units)
		max, _ := units.ToDisplay(d.Max, result.MetricType, cfg.Units)
		fmt.Printf("  %s  avg %g  min %g  max %g  (%d entries)\n", d.Label, avg, min, max, d.Count)
	}
	rate := units.ToDisplayRate(result.Trend.Rate, result.MetricType, cfg.Units)
	fmt.Printf("Trend: %s, %g %s %s\n", result.Trend.Direction, rate, unit, result.Trend.RateUnit)
	if result.Trend.Projected30d != nil {
		pv, pu := units.ToDisplay(*result.Trend.Projected30d, result.MetricType, cfg.Units)
		fmt.Printf("Projected in 30 days: %g %s\n", pv, pu)
	}
}

func runCorrelate(pair string, lastDays int) error {
	parts := strings.SplitN(pair, ",", 2)
	if len(parts) != 2 {
		return fmt.Errorf("correlate expects two comma-separated types, e.g. \"sleep_hours,pain\"")
	}
	a := cfg.ResolveAlias(strings.TrimSpace(parts[0]))
	b := cfg.ResolveAlias(strings.TrimSpace(parts[1]))

	result, err := engine.Correlate(a, b, lastDays)
	if err != nil {
		return err
	}

	if humanFlag {
		fmt.Printf("%s vs %s: r = %.2f over %d day-pairs (%s)\n",
			result.MetricA, result.MetricB, result.Coefficient, result.DataPoints, result.Interpretation)
		return nil
	}
	return printJSON("correlate", result)
}

func init() {
	trendCmd.Flags().StringVar(&trendPeriod, "period", "weekly", "bucket period (daily/weekly/monthly)")
	trendCmd.Flags().IntVar(&trendLast, "last", 0, "number of trailing buckets (trend) or days (correlate)")
	trendCmd.Flags().StringVar(&trendCorrelate, "correlate", "", "two comma-separated types to correlate")
	rootCmd.AddCommand(trendCmd)
}
