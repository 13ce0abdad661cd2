// ABOUTME: CLI command for the daily status overview.
// ABOUTME: Wires profile and alert config into the analytics engine.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openvital/vital/internal/analytics"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Daily overview: today's entries, streaks, alerts, medications",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := engine.Status(analytics.StatusParams{
			HeightCm: cfg.Profile.HeightCm,
			Alerts: analytics.AlertConfig{
				PainThreshold:       float64(cfg.Alerts.PainThreshold),
				PainConsecutiveDays: cfg.Alerts.PainConsecutiveDays,
			},
		})
		if err != nil {
			return err
		}

		if humanFlag {
			printStatusHuman(result)
			return nil
		}
		return printJSON("status", result)
	},
}

func printStatusHuman(s *analytics.StatusData) {
	fmt.Printf("--- %s ---\n", s.Date)

	if len(s.Today.Logged) == 0 {
		fmt.Println("Nothing logged today")
	} else {
		fmt.Printf("Logged today: %s\n", strings.Join(s.Today.Logged, ", "))
	}
	fmt.Printf("Logging streak: %d days\n", s.Streaks.LoggingDays)

	if s.Profile.BMI != nil {
		fmt.Printf("BMI: %.1f (%s)\n", *s.Profile.BMI, *s.Profile.BMICategory)
	}

	for _, a := range s.Today.PainAlerts {
		color.Yellow("⚠ %s at %g today", a.Type, a.Value)
	}
	for _, a := range s.ConsecutivePainAlert {
		color.Red("⚠ %s ≥ threshold for %d consecutive days (latest %g)",
			a.MetricType, a.ConsecutiveDays, a.LatestValue)
	}

	if m := s.Medications; m != nil {
		fmt.Printf("Medications: %d active, %d adherent today, %d as-needed\n",
			m.ActiveCount, m.AdherentToday, m.AsNeeded)
		for _, missed := range m.Missed {
			color.Red("  missed: %s", missed)
		}
		if m.OverallAdherence7d != nil {
			fmt.Printf("  7-day adherence: %.0f%%\n", *m.OverallAdherence7d*100)
		}
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
