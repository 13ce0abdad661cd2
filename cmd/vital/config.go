// ABOUTME: CLI commands for configuration: init, show, and set.
// ABOUTME: Init seeds the default alias table; set edits individual keys.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openvital/vital/internal/config"
)

var initUnits string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize config with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			c = config.Default()
		}
		if len(c.Aliases) == 0 {
			c.Aliases = config.DefaultAliases()
		}
		switch initUnits {
		case "", "metric":
			c.Units = config.MetricUnits()
		case "imperial":
			c.Units = config.ImperialUnits()
		default:
			return fmt.Errorf("invalid units: %s (expected metric/imperial)", initUnits)
		}
		if err := c.Save(); err != nil {
			return err
		}
		color.Green("✓ Config initialized at %s", config.Path())
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if humanFlag {
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		}
		return printJSON("config", map[string]any{"config": cfg})
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration key",
	Long: `Set a configuration key. Supported keys: height, birth_year, gender,
conditions, primary_exercise, units.system, backend, and alias.<name>.

Examples:
  vital config set height 180
  vital config set units.system imperial
  vital config set alias.bp blood_pressure`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		switch {
		case key == "height":
			h, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("height must be a number: %s", value)
			}
			cfg.Profile.HeightCm = &h
		case key == "birth_year":
			y, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("birth_year must be a number: %s", value)
			}
			cfg.Profile.BirthYear = &y
		case key == "gender":
			cfg.Profile.Gender = &value
		case key == "conditions":
			cfg.Profile.Conditions = nil
			for _, c := range strings.Split(value, ",") {
				cfg.Profile.Conditions = append(cfg.Profile.Conditions, strings.TrimSpace(c))
			}
		case key == "primary_exercise":
			cfg.Profile.PrimaryExercise = &value
		case key == "units.system":
			switch value {
			case "metric":
				cfg.Units = config.MetricUnits()
			case "imperial":
				cfg.Units = config.ImperialUnits()
			default:
				return fmt.Errorf("units.system must be 'metric' or 'imperial'")
			}
		case key == "backend":
			if value != "sqlite" && value != "badger" {
				return fmt.Errorf("backend must be 'sqlite' or 'badger'")
			}
			cfg.Backend = value
		case strings.HasPrefix(key, "alias."):
			if cfg.Aliases == nil {
				cfg.Aliases = map[string]string{}
			}
			cfg.Aliases[strings.TrimPrefix(key, "alias.")] = value
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := cfg.Save(); err != nil {
			return err
		}
		if humanFlag {
			color.Green("✓ %s = %s", key, value)
			return nil
		}
		return printJSON("config", map[string]any{"key": key, "value": value})
	},
}

func init() {
	initCmd.Flags().StringVar(&initUnits, "units", "", "unit system (metric/imperial)")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}
