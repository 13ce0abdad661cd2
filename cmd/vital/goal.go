// ABOUTME: CLI commands for goals: set, remove, and status.
// ABOUTME: Setting a goal soft-retires any prior goal for the same type.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openvital/vital/internal/models"
	"github.com/openvital/vital/internal/units"
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"g"},
	Short:   "Set and track goals",
}

var goalSetCmd = &cobra.Command{
	Use:   "set <type> <target> <direction> <timeframe>",
	Short: "Set a goal for a metric type",
	Long: `Set a goal. Direction is above/below/equal; timeframe is
daily/weekly/monthly. A previous goal for the same type is retired,
not deleted.

Examples:
  vital goal set water 2000 above daily
  vital goal set weight 80 below weekly`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid target: %s", args[1])
		}
		direction, err := models.ParseDirection(args[2])
		if err != nil {
			return err
		}
		timeframe, err := models.ParseTimeframe(args[3])
		if err != nil {
			return err
		}

		resolved := cfg.ResolveAlias(args[0])
		stored := units.FromInput(target, resolved, cfg.Units)

		// Retire any existing goal for this type; history is kept.
		if _, err := store.DeactivateGoalByType(resolved); err != nil {
			return err
		}

		goal := models.NewGoal(resolved, stored, direction, timeframe)
		if err := store.InsertGoal(goal); err != nil {
			return fmt.Errorf("set goal: %w", err)
		}

		if humanFlag {
			dv, du := units.ToDisplay(goal.TargetValue, goal.MetricType, cfg.Units)
			color.Green("✓ Goal set: %s %s %g %s (%s)", goal.MetricType, goal.Direction, dv, du, goal.Timeframe)
			return nil
		}
		return printJSON("goal_set", goal)
	},
}

var goalRemoveCmd = &cobra.Command{
	Use:   "remove <id-or-type>",
	Short: "Retire a goal by id or metric type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := store.DeactivateGoal(args[0])
		if err != nil {
			return err
		}
		if !removed {
			removed, err = store.DeactivateGoalByType(cfg.ResolveAlias(args[0]))
			if err != nil {
				return err
			}
		}
		if !removed {
			return fmt.Errorf("no active goal matching %q", args[0])
		}

		if humanFlag {
			color.Green("✓ Goal retired")
			return nil
		}
		return printJSON("goal_remove", map[string]any{"removed": true})
	},
}

var goalStatusCmd = &cobra.Command{
	Use:   "status [type]",
	Short: "Show progress against active goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		metricType := ""
		if len(args) > 0 {
			metricType = cfg.ResolveAlias(args[0])
		}

		statuses, err := engine.GoalStatus(metricType)
		if err != nil {
			return err
		}

		if humanFlag {
			if len(statuses) == 0 {
				fmt.Println("No active goals")
				return nil
			}
			for _, s := range statuses {
				mark := color.RedString("✗")
				if s.IsMet {
					mark = color.GreenString("✓")
				}
				progress := "no data"
				if s.Progress != nil {
					progress = *s.Progress
				}
				fmt.Printf("%s %s (%s, %s): %s\n", mark, s.MetricType, s.Direction, s.Timeframe, progress)
			}
			return nil
		}
		return printJSON("goal_status", map[string]any{"goals": statuses})
	},
}

func init() {
	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalRemoveCmd)
	goalCmd.AddCommand(goalStatusCmd)
	rootCmd.AddCommand(goalCmd)
}
