// ABOUTME: CLI commands for inspecting and validating questionnaire schemas.
// ABOUTME: Prints the active questionnaire and checks custom schema files.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/anamnesis/internal/anamnesis"
	"github.com/harperreed/anamnesis/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var schemaFormat string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect the questionnaire",
	Long: `Inspect the active questionnaire or validate a custom one.

The built-in questionnaire is used unless schema_path is set:
  anamnesis config set schema_path ~/questionnaire.yaml`,
	Annotations: map[string]string{noStorage: "true"},
}

var schemaPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the active questionnaire",
	Long: `Print every question with its ID, type, and option values.

The option values are what answer files and the MCP tools expect.

EXAMPLES:

  anamnesis schema print
  anamnesis schema print --format yaml > questionnaire.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeSchema(cmd.OutOrStdout(), schema, schemaFormat)
	},
}

var schemaValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a questionnaire file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := anamnesis.LoadSchema(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ %s is valid (%d questions)", args[0], len(s.Questions)))
		return nil
	},
}

func writeSchema(out io.Writer, s *models.Schema, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		printSchema(out, s)
		return nil
	case "json":
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "yaml", "yml":
		data, err := yaml.Marshal(s)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	return fmt.Errorf("unknown format: %s (use text, json, or yaml)", format)
}

func printSchema(out io.Writer, s *models.Schema) {
	faint := color.New(color.Faint)
	section := ""
	for i := range s.Questions {
		q := &s.Questions[i]
		if q.Section != section {
			section = q.Section
			fmt.Fprintln(out)
			fmt.Fprintln(out, color.New(color.Bold).Sprint(section))
		}

		req := ""
		if q.Required {
			req = "*"
		}
		fmt.Fprintf(out, "%s %s%s %s\n", faint.Sprintf("%2d.", q.ID), q.Prompt, req, faint.Sprintf("[%s]", q.Type))
		for _, o := range q.Options {
			fmt.Fprintf(out, "      %s %s\n", padRight(o.Value, 24), faint.Sprint(o.Label))
		}
		for _, f := range q.Fields {
			fmt.Fprintf(out, "      %s %s\n", padRight(f.Name, 24), faint.Sprintf("%s (%s)", f.Label, f.Type))
		}
	}
}

func init() {
	schemaPrintCmd.Flags().StringVarP(&schemaFormat, "format", "f", "text", "output format: text, json, yaml")
	schemaCmd.AddCommand(schemaPrintCmd)
	schemaCmd.AddCommand(schemaValidateCmd)
	rootCmd.AddCommand(schemaCmd)
}
