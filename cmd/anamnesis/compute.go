// ABOUTME: CLI command computing a profile from an answers file.
// ABOUTME: Prints the profile as text, JSON, or YAML and can save the assessment.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/anamnesis/internal/anamnesis"
	"github.com/harperreed/anamnesis/internal/metabolic"
	"github.com/harperreed/anamnesis/internal/models"
	"github.com/harperreed/anamnesis/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	computeAnswers string
	computeFormula string
	computeFormat  string
	computeSave    bool
	computeAt      string
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute a profile from an answers file",
	Long: `Compute BMR, TDEE, target calories, BMI, and macros from a JSON or YAML
file of answers keyed by question ID.

ANSWERS FILE:

  1: emagrecer
  5: {sexo: Masculino, idade: 25, altura: 175, peso: 70}
  7: sedentario
  12: [musculacao, corrida]
  17: {value: sim, items: [{nome: creatina, dosagem: 5g, frequencia: diaria}]}

  Run 'anamnesis schema print' to see every question and option value.

EXAMPLES:

  anamnesis compute --answers me.yaml
  anamnesis compute --answers me.json --format json
  anamnesis compute --answers me.yaml --formula harris_benedict
  anamnesis compute --answers me.yaml --save`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if computeAnswers == "" {
			return fmt.Errorf("--answers is required")
		}

		calc, err := cfg.Calculator()
		if err != nil {
			return err
		}
		if computeFormula != "" {
			f, err := metabolic.ParseFormula(computeFormula)
			if err != nil {
				return err
			}
			calc = metabolic.New(metabolic.WithFormula(f))
		}

		raw, err := anamnesis.ReadAnswersFile(computeAnswers)
		if err != nil {
			return err
		}
		store, err := anamnesis.LoadAnswers(schema, raw)
		if err != nil {
			return err
		}
		anamnesis.ClearHidden(store)

		profile, err := calc.Compute(store)
		if err != nil {
			return fmt.Errorf("failed to compute profile: %w", err)
		}

		out := cmd.OutOrStdout()
		if err := writeProfile(out, profile, computeFormat); err != nil {
			return err
		}

		if !computeSave {
			return nil
		}
		return saveComputed(cmd, store, profile)
	},
}

func writeProfile(out io.Writer, p *models.ComputedProfile, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		printProfile(out, p)
		return nil
	case "json":
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "yaml", "yml":
		data, err := yaml.Marshal(p)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	return fmt.Errorf("unknown format: %s (use text, json, or yaml)", format)
}

// saveComputed persists a file-based assessment, refusing incomplete questionnaires.
func saveComputed(cmd *cobra.Command, store *anamnesis.AnswerStore, profile *models.ComputedProfile) error {
	if nav := anamnesis.Resume(schema, store); !nav.Completed() {
		q := nav.CurrentStep()
		return fmt.Errorf("cannot save: question %d is missing %s",
			q.ID, strings.Join(anamnesis.Missing(q, store), ", "))
	}

	userID, err := cfg.Identity(repo).UserID()
	if err != nil {
		return fmt.Errorf("failed to resolve user: %w", err)
	}

	persister := storage.NewPersister(repo, schemaVersion())
	if computeAt != "" {
		t, err := parseTime(computeAt)
		if err != nil {
			return fmt.Errorf("invalid timestamp: %s", computeAt)
		}
		persister.CompletedAt = t
	}
	if err := persister.Save(cmd.Context(), userID, store.Snapshot(), profile); err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}

	a := persister.Last
	fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("✓ Saved assessment %s", a.ID.String()[:8]))
	return nil
}

func init() {
	computeCmd.Flags().StringVar(&computeAnswers, "answers", "", "answers file (JSON or YAML)")
	computeCmd.Flags().StringVar(&computeFormula, "formula", "", "BMR formula: mifflin_st_jeor or harris_benedict")
	computeCmd.Flags().StringVarP(&computeFormat, "format", "f", "text", "output format: text, json, yaml")
	computeCmd.Flags().BoolVar(&computeSave, "save", false, "save the assessment")
	computeCmd.Flags().StringVar(&computeAt, "at", "", "completion timestamp when saving (YYYY-MM-DD HH:MM)")
	rootCmd.AddCommand(computeCmd)
}
