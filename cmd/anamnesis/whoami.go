// ABOUTME: CLI command showing which user new assessments are saved under.
// ABOUTME: Reports the resolved user ID, backend, and config location.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the user assessments are saved under",
	Long: `Show the user ID that onboard and compute --save attach to assessments.

The ID comes from user_id in the config file. Without it, the charm backend
uses your Charm account ID and the sqlite backend generates one on first use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := cfg.Identity(repo).UserID()
		if err != nil {
			return fmt.Errorf("failed to resolve user: %w", err)
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		fmt.Fprintln(out, id)
		fmt.Fprintln(out, faint.Sprintf("backend %s, config %s", cfg.GetBackend(), cfg.Path()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
