// ABOUTME: CLI commands for medication tracking: add, take, stop, remove,
// ABOUTME: list, and adherence status.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openvital/vital/internal/analytics"
	"github.com/openvital/vital/internal/models"
)

var (
	medAddDose    string
	medAddFreq    string
	medAddRoute   string
	medAddNote    string
	medAddStarted string

	medTakeDose string
	medTakeNote string
	medTakeTags string

	medListAll    bool
	medStopReason string
	medRemoveYes  bool
	medStatusLast int
)

var medCmd = &cobra.Command{
	Use:     "med",
	Aliases: []string{"m"},
	Short:   "Track medications and adherence",
}

var medAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a medication",
	Long: `Add a medication schedule. Only one active medication per name is
allowed; stop the existing one first to change its schedule.

Examples:
  vital med add ibuprofen --dose 400mg --freq 2x_daily
  vital med add vitamin_d --dose "1 tablet" --freq daily --started 2026-01-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		freq, err := models.ParseFrequency(medAddFreq)
		if err != nil {
			return err
		}

		name := cfg.ResolveAlias(args[0])
		med := models.NewMedication(name, freq).WithDose(medAddDose)
		med.Route = models.ParseRoute(medAddRoute)
		if medAddNote != "" {
			med.Note = &medAddNote
		}
		if medAddStarted != "" {
			d, err := time.ParseInLocation("2006-01-02", medAddStarted, time.UTC)
			if err != nil {
				return fmt.Errorf("invalid start date: %s (expected YYYY-MM-DD)", medAddStarted)
			}
			med.StartedAt = time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
		}

		if err := store.InsertMedication(med); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique") ||
				strings.Contains(err.Error(), "constraint") {
				return fmt.Errorf("medication %q is already active. Stop it first before re-adding", name)
			}
			return err
		}

		if humanFlag {
			dose := "(no dose)"
			if med.Dose != nil {
				dose = *med.Dose
			}
			color.Green("✓ Added %s", med.Name)
			fmt.Printf("  %s %s %s since %s\n", dose, med.Route, med.Frequency,
				med.StartedAt.Format("Jan 2"))
			return nil
		}
		return printJSON("med_add", med)
	},
}

var medTakeCmd = &cobra.Command{
	Use:   "take <name>",
	Short: "Record taking a medication dose",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := cfg.ResolveAlias(args[0])

		med, err := store.GetMedicationByName(name)
		if err != nil {
			return err
		}
		if med == nil {
			med, err = store.GetMedicationByNameAny(name)
			if err != nil {
				return err
			}
		}
		if med == nil {
			return fmt.Errorf("medication %q not found. Use `med add` first", name)
		}

		at := time.Now().UTC()
		date, err := flagDate()
		if err != nil {
			return err
		}
		if !date.IsZero() {
			at = time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)
		}

		var tags []string
		if medTakeTags != "" {
			for _, t := range strings.Split(medTakeTags, ",") {
				tags = append(tags, strings.TrimSpace(t))
			}
		}

		metric := med.NewDoseMetric(medTakeDose, medTakeNote, tags, at)
		if err := store.InsertMetric(metric); err != nil {
			return fmt.Errorf("record dose: %w", err)
		}

		if !med.Active {
			fmt.Fprintf(os.Stderr, "Warning: medication %q is stopped. Recording anyway.\n", med.Name)
		}

		if humanFlag {
			dose := medTakeDose
			if dose == "" && med.Dose != nil {
				dose = *med.Dose
			}
			if dose == "" {
				dose = "1 dose"
			}
			color.Green("✓ Took %s", med.Name)
			fmt.Printf("  %s %s %s\n", dose, med.Route,
				color.New(color.Faint).Sprint(humanize.Time(metric.Timestamp)))
			return nil
		}
		return printJSON("med_take", map[string]any{
			"medication": med.Name,
			"route":      med.Route,
			"entry":      metric,
		})
	},
}

var medListCmd = &cobra.Command{
	Use:   "list",
	Short: "List medications",
	RunE: func(cmd *cobra.Command, args []string) error {
		meds, err := store.ListMedications(medListAll)
		if err != nil {
			return err
		}

		if humanFlag {
			if len(meds) == 0 {
				fmt.Println("No medications")
				return nil
			}
			for _, m := range meds {
				dose := ""
				if m.Dose != nil {
					dose = " " + *m.Dose
				}
				state := "active"
				if !m.Active {
					state = "stopped"
				}
				fmt.Printf("%s%s  %s %s  (%s, since %s)\n",
					m.Name, dose, m.Route, m.Frequency, state, m.StartedAt.Format("2006-01-02"))
			}
			return nil
		}
		return printJSON("med_list", map[string]any{"medications": meds})
	},
}

var medStopCmd = &cobra.Command{
	Use:   "stop <name>",
	Short: "Stop an active medication",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := cfg.ResolveAlias(args[0])

		stoppedAt := time.Now().UTC()
		date, err := flagDate()
		if err != nil {
			return err
		}
		if !date.IsZero() {
			stoppedAt = time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)
		}

		stopped, err := store.StopMedication(name, stoppedAt, medStopReason)
		if err != nil {
			return err
		}
		if !stopped {
			return fmt.Errorf("no active medication named %q", name)
		}

		if humanFlag {
			color.Green("✓ Stopped %s", name)
			return nil
		}
		return printJSON("med_stop", map[string]any{"name": name, "stopped_at": stoppedAt})
	},
}

var medRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a medication's metadata",
	Long: `Remove a medication's schedule records entirely. Its intake history in
the metrics log is preserved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := cfg.ResolveAlias(args[0])
		if !medRemoveYes {
			return fmt.Errorf("refusing to remove %q without --yes", name)
		}

		removed, err := store.RemoveMedication(name)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no medication named %q", name)
		}

		if humanFlag {
			color.Green("✓ Removed %s (intake history preserved)", name)
			return nil
		}
		return printJSON("med_remove", map[string]any{"name": name, "removed": true})
	},
}

var medStatusCmd = &cobra.Command{
	Use:   "status [name]",
	Short: "Show medication adherence",
	Long: `Show adherence for all active medications, or a detailed view with a
30-day window and day-by-day history for one medication.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = cfg.ResolveAlias(args[0])
		}

		statuses, err := engine.AdherenceStatus(name, medStatusLast)
		if err != nil {
			return err
		}

		if humanFlag {
			printMedStatusesHuman(statuses)
			return nil
		}
		return printJSON("med_status", map[string]any{"medications": statuses})
	},
}

func printMedStatusesHuman(statuses []*analytics.MedStatus) {
	if len(statuses) == 0 {
		fmt.Println("No medications")
		return
	}
	for _, s := range statuses {
		dose := ""
		if s.Dose != nil {
			dose = " " + *s.Dose
		}
		fmt.Printf("%s%s (%s, %s)\n", s.Name, dose, s.Route, s.Frequency)

		switch {
		case s.AdherentToday == nil:
			fmt.Printf("  taken today: %d (as needed)\n", s.TakenToday)
		case s.RequiredToday != nil:
			mark := color.GreenString("✓")
			if !*s.AdherentToday {
				mark = color.RedString("✗")
			}
			fmt.Printf("  %s today: %d/%d taken\n", mark, s.TakenToday, *s.RequiredToday)
		default:
			mark := color.GreenString("✓")
			if !*s.AdherentToday {
				mark = color.RedString("✗")
			}
			fmt.Printf("  %s this week: %d taken\n", mark, s.TakenToday)
		}

		if s.StreakDays != nil {
			fmt.Printf("  streak: %d days\n", *s.StreakDays)
		}
		if s.Adherence7d != nil {
			fmt.Printf("  7-day adherence: %.0f%%\n", *s.Adherence7d*100)
		}
		if s.Adherence30d != nil {
			fmt.Printf("  30-day adherence: %.0f%%\n", *s.Adherence30d*100)
		}
		for _, d := range s.AdherenceHistory {
			mark := "✓"
			if !d.Adherent {
				mark = "✗"
			}
			fmt.Printf("    %s %s %d/%d\n", d.Date, mark, d.Taken, d.Required)
		}
	}
}

func init() {
	medAddCmd.Flags().StringVar(&medAddDose, "dose", "", "dose spec, e.g. 400mg or \"1/2 tablet\"")
	medAddCmd.Flags().StringVar(&medAddFreq, "freq", "daily", "frequency (daily/2x_daily/3x_daily/weekly/as_needed)")
	medAddCmd.Flags().StringVar(&medAddRoute, "route", "oral", "administration route")
	medAddCmd.Flags().StringVar(&medAddNote, "note", "", "note for the medication")
	medAddCmd.Flags().StringVar(&medAddStarted, "started", "", "start date (YYYY-MM-DD)")

	medTakeCmd.Flags().StringVar(&medTakeDose, "dose", "", "dose override for this intake")
	medTakeCmd.Flags().StringVar(&medTakeNote, "note", "", "note for the intake")
	medTakeCmd.Flags().StringVar(&medTakeTags, "tags", "", "comma-separated tags")

	medListCmd.Flags().BoolVar(&medListAll, "all", false, "include stopped medications")
	medStopCmd.Flags().StringVar(&medStopReason, "reason", "", "reason for stopping")
	medRemoveCmd.Flags().BoolVar(&medRemoveYes, "yes", false, "confirm removal")
	medStatusCmd.Flags().IntVar(&medStatusLast, "last", 7, "history window in days for a single medication")

	medCmd.AddCommand(medAddCmd)
	medCmd.AddCommand(medTakeCmd)
	medCmd.AddCommand(medListCmd)
	medCmd.AddCommand(medStopCmd)
	medCmd.AddCommand(medRemoveCmd)
	medCmd.AddCommand(medStatusCmd)
	rootCmd.AddCommand(medCmd)
}
