// ABOUTME: CLI commands for listing, showing, and deleting assessments.
// ABOUTME: Supports user filtering, result limits, and ID prefixes.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	listUser  string
	listMine  bool
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List saved assessments",
	Long: `List saved assessments, most recent first.

OUTPUT FORMAT:

  Each line shows: ID  COMPLETED  GOAL  TARGET  USER

  The ID is an 8-character prefix you can use with show and delete.

EXAMPLES:

  anamnesis list                  # Last 20 assessments
  anamnesis list --mine           # Only assessments for the configured user
  anamnesis list -u abc -n 50     # Last 50 for user abc`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var userID *string
		switch {
		case listUser != "":
			userID = &listUser
		case listMine:
			id, err := cfg.Identity(repo).UserID()
			if err != nil {
				return fmt.Errorf("failed to resolve user: %w", err)
			}
			userID = &id
		}

		list, err := repo.ListAssessments(userID, listLimit)
		if err != nil {
			return fmt.Errorf("failed to list assessments: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No assessments found.")
			return nil
		}
		for _, a := range list {
			printAssessmentLine(out, a)
		}
		return nil
	},
}

var showAnswers bool

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show an assessment",
	Long: `Show the computed profile of an assessment, and optionally its answers.

Without an ID, shows the latest assessment of the configured user.

EXAMPLES:

  anamnesis show                  # Latest assessment
  anamnesis show abc12345         # By ID prefix
  anamnesis show abc1 --answers   # Include every answer`,
	Args: cobra.MaximumNArgs(1),
	RunE: showAssessment,
}

func showAssessment(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		id, err := cfg.Identity(repo).UserID()
		if err != nil {
			return fmt.Errorf("failed to resolve user: %w", err)
		}
		latest, err := repo.GetLatestAssessment(id)
		if err != nil {
			return fmt.Errorf("no assessment found: %w", err)
		}
		args = []string{latest.ID.String()}
	}

	a, err := repo.GetAssessment(args[0])
	if err != nil {
		return fmt.Errorf("assessment not found: %s", args[0])
	}

	faint := color.New(color.Faint)
	fmt.Fprintf(out, "%s %s\n", color.New(color.Bold).Sprint("Assessment"), a.ID)
	fmt.Fprintln(out, faint.Sprintf("completed %s, user %s, questionnaire %s",
		a.CompletedAt.Local().Format("2006-01-02 15:04"), a.UserID, a.SchemaVersion))
	fmt.Fprintln(out)
	printProfile(out, &a.Profile)

	if showAnswers {
		fmt.Fprintln(out)
		printAnswers(out, a, schema)
	}
	return nil
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete an assessment",
	Long: `Delete an assessment by its ID or ID prefix.

You can use either the full UUID or just the first few characters (prefix).
The ID prefix is shown in the first column of 'anamnesis list' output.

CAUTION:

  This permanently deletes the assessment. There is no undo.
  If the prefix matches multiple assessments, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idOrPrefix := args[0]

		// First, get the assessment to show what we're deleting
		a, err := repo.GetAssessment(idOrPrefix)
		if err != nil {
			return fmt.Errorf("assessment not found: %s", idOrPrefix)
		}

		if err := repo.DeleteAssessment(a.ID.String()); err != nil {
			return fmt.Errorf("failed to delete assessment: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.YellowString("✗ Deleted assessment"))
		printAssessmentLine(out, a)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listUser, "user", "u", "", "filter by user ID")
	listCmd.Flags().BoolVar(&listMine, "mine", false, "only the configured user's assessments")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	showCmd.Flags().BoolVarP(&showAnswers, "answers", "a", false, "include every answer")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
}
