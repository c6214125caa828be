// ABOUTME: CLI commands for exporting and importing assessments.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/anamnesis/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportUser   string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export assessments",
	Long: `Export assessments in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable, also importable)
  markdown   Report with profile and macro tables plus every answer

OPTIONS:

  --output, -o   Write to file instead of stdout
  --user, -u     Only this user's assessments (markdown only)
  --since        Only include assessments since this date (markdown only)

EXAMPLES:

  anamnesis export json                        # Export everything as JSON
  anamnesis export json -o backup.json         # Save to file
  anamnesis export yaml                        # Export as YAML
  anamnesis export markdown --since 2025-01-01 # Report from 2025 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(repo)
		case "yaml", "yml":
			data, err = storage.ExportYAML(repo)
		case "markdown", "md":
			var userID *string
			if exportUser != "" {
				userID = &exportUser
			}
			var since *time.Time
			if exportSince != "" {
				t, err := time.Parse("2006-01-02", exportSince)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			md, err := storage.ExportMarkdown(repo, schema, userID, since)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Exported to %s", exportOutput))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import assessments from a JSON or YAML export",
	Long: `Import assessments from a previously exported JSON or YAML file.

The format follows the file extension (.yaml and .yml are YAML, anything
else is JSON). Duplicate entries (same ID) cause an error.

EXAMPLES:

  anamnesis import backup.json
  anamnesis import backup.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		format := "json"
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".yaml", ".yml":
			format = "yaml"
		}

		data, err := storage.ParseExport(raw, format)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		if err := repo.ImportData(data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Imported %d assessments from %s", len(data.Assessments), filename))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportUser, "user", "u", "", "filter by user ID (markdown only)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include data since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
