// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/anamnesis/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP lets AI assistants like Claude run the questionnaire with you and read
your saved profiles. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "anamnesis": {
        "command": "anamnesis",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  get_questionnaire    Every question with its options and conditions
  evaluate_answers     Validate answers and report the next step
  compute_profile      BMR, TDEE, target calories, BMI, and macros
  save_assessment      Compute and save a completed questionnaire
  list_assessments     List saved assessments
  get_assessment       Get an assessment with every answer
  delete_assessment    Delete an assessment
  get_latest_profile   Most recent profile for a user

AVAILABLE RESOURCES:

  anamnesis://schema   The active questionnaire
  anamnesis://latest   The most recent saved profile`,
	RunE: func(cmd *cobra.Command, args []string) error {
		calc, err := cfg.Calculator()
		if err != nil {
			return err
		}

		server, err := mcp.NewServer(repo,
			mcp.WithSchema(schema),
			mcp.WithCalculator(calc),
			mcp.WithIdentity(cfg.Identity(repo)),
		)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
