// ABOUTME: CLI commands for viewing and editing configuration.
// ABOUTME: Supports show, set, and path for the JSON config file.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/anamnesis/internal/config"
	"github.com/harperreed/anamnesis/internal/logging"
	"github.com/harperreed/anamnesis/internal/metabolic"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "View or change settings",
	Annotations: map[string]string{noStorage: "true"},
	Long: `View or change anamnesis settings.

KEYS:

  backend       sqlite (default) or charm
  data_dir      where the SQLite database lives (supports ~)
  user_id       who new assessments belong to (generated on first save)
  bmr_formula   mifflin_st_jeor (default) or harris_benedict
  schema_path   JSON or YAML questionnaire replacing the built-in one
  log_level     debug, info, warn (default), error

EXAMPLES:

  anamnesis config show
  anamnesis config set bmr_formula harris_benedict
  anamnesis config set backend charm
  anamnesis config set schema_path ""       # back to the built-in questionnaire`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		onDisk, err := config.Load()
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(onDisk, "", "  ")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, string(data))
		fmt.Fprintln(out, color.New(color.Faint).Sprintf("backend in use: %s, data dir: %s", cfg.GetBackend(), cfg.GetDataDir()))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Edit the file as stored, without command-line overrides.
		onDisk, err := config.Load()
		if err != nil {
			return err
		}
		if err := setConfigKey(onDisk, args[0], args[1]); err != nil {
			return err
		}
		if err := onDisk.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Set %s = %q", args[0], args[1]))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
		return nil
	},
}

func setConfigKey(c *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "backend":
		if value != "" && value != config.BackendSQLite && value != config.BackendCharm {
			return fmt.Errorf("unknown backend: %q (use sqlite or charm)", value)
		}
		c.Backend = value
	case "data_dir":
		c.DataDir = value
	case "user_id":
		c.UserID = value
	case "bmr_formula":
		if _, err := metabolic.ParseFormula(value); err != nil {
			return err
		}
		c.BMRFormula = value
	case "schema_path":
		c.SchemaPath = value
	case "log_level":
		if err := logging.SetLevel(value); err != nil {
			return err
		}
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
