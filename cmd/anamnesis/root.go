// ABOUTME: Root Cobra command for the anamnesis CLI.
// ABOUTME: Handles config, logging, and storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/anamnesis/internal/config"
	"github.com/harperreed/anamnesis/internal/logging"
	"github.com/harperreed/anamnesis/internal/models"
	"github.com/harperreed/anamnesis/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	repo   storage.Repository
	schema *models.Schema

	flagDataDir  string
	flagBackend  string
	flagLogLevel string
)

// noStorage marks commands (and their subcommands) that run without the repository.
const noStorage = "no-storage"

func needsStorage(cmd *cobra.Command) bool {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[noStorage] == "true" {
			return false
		}
	}
	return true
}

func underConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

var rootCmd = &cobra.Command{
	Use:   "anamnesis",
	Short: "Fitness onboarding questionnaire and calorie prescription",
	Long: `Anamnesis runs a fitness intake questionnaire and turns the answers into a
daily energy and macronutrient prescription.

WHAT IT COMPUTES:

  BMR       Mifflin-St Jeor (default) or Harris-Benedict
  TDEE      BMR adjusted for body composition, training experience,
            and pharmacological support, times an activity factor
  Target    TDEE minus 450 kcal (weight loss), plus 300 kcal (muscle gain)
  Macros    Protein, carbs, and fat split by goal
  BMI       With its classification

QUICK START:

  $ anamnesis onboard                       # Answer the questionnaire
  $ anamnesis list                          # See saved assessments
  $ anamnesis show abc123                   # Profile and answers
  $ anamnesis compute --answers me.yaml     # Compute from a file

BACKENDS:

  sqlite    Local database at ~/.local/share/anamnesis/anamnesis.db (default)
  charm     Charm KV with encrypted cloud sync

  $ anamnesis config set backend charm

MCP INTEGRATION:

  Run 'anamnesis mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "anamnesis": { "command": "anamnesis", "args": ["mcp"] }
    }
  }`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}
		if flagBackend != "" {
			cfg.Backend = flagBackend
		}

		level := cfg.LogLevel
		if flagLogLevel != "" {
			level = flagLogLevel
		}
		if err := logging.SetLevel(level); err != nil {
			if flagLogLevel != "" {
				return err
			}
			logging.Log.WithError(err).Warn("ignoring log_level from config")
		}

		// config subcommands must work even when the configured schema is broken.
		if underConfig(cmd) {
			return nil
		}
		schema, err = cfg.LoadSchema()
		if err != nil {
			return fmt.Errorf("failed to load questionnaire: %w", err)
		}

		if !needsStorage(cmd) {
			return nil
		}
		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		logging.Log.WithField("backend", cfg.GetBackend()).Debug("storage opened")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeRepo()
	},
}

func closeRepo() error {
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	return err
}

// Execute runs the root command. Storage is closed even when a command
// fails, since cobra skips PersistentPostRunE on errors.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeRepo(); err == nil {
		err = cerr
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite or charm (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}
