// ABOUTME: Interactive onboarding command walking the questionnaire in the terminal.
// ABOUTME: Drives an anamnesis Session and saves the computed profile on completion.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/anamnesis/internal/anamnesis"
	"github.com/harperreed/anamnesis/internal/models"
	"github.com/harperreed/anamnesis/internal/storage"
	"github.com/spf13/cobra"
)

var (
	errAborted    = errors.New("onboarding canceled")
	errInputEnded = errors.New("input ended before the questionnaire was complete")
)

var onboardCmd = &cobra.Command{
	Use:     "onboard",
	Aliases: []string{"start", "new"},
	Short:   "Answer the questionnaire and save your profile",
	Long: `Walk through the onboarding questionnaire one question at a time.

Questions that do not apply are skipped automatically (for example, the
supplement list only appears if you take supplements). When the last
question is answered the profile is computed and saved.

ANSWERING:

  Choice questions    type the option value or its number
  Multiple choice     numbers or values separated by commas; a chosen
                      option entered again is removed
  Forms               one prompt per field; Enter keeps the current value
  Medication list     y adds an entry, "remove 2" deletes the second
  back                return to the previous question
  quit                stop without saving

EXAMPLES:

  anamnesis onboard
  anamnesis onboard --backend charm`,
	RunE: func(cmd *cobra.Command, args []string) error {
		calc, err := cfg.Calculator()
		if err != nil {
			return err
		}

		persister := storage.NewPersister(repo, schemaVersion())
		sess := anamnesis.NewSession(schema,
			anamnesis.WithCalculator(calc),
			anamnesis.WithPersister(persister),
			anamnesis.WithIdentity(cfg.Identity(repo)),
		)

		out := cmd.OutOrStdout()
		if err := runWizard(cmd.Context(), cmd.InOrStdin(), out, sess); err != nil {
			return err
		}

		fmt.Fprintln(out)
		printProfile(out, sess.Profile())
		if persister.Last != nil {
			fmt.Fprintln(out, color.GreenString("✓ Saved assessment %s", persister.Last.ID.String()[:8]))
		}
		return nil
	},
}

func schemaVersion() string {
	if schema.Version != "" {
		return schema.Version
	}
	return anamnesis.DefaultSchemaVersion
}

type navAction int

const (
	navStay navAction = iota
	navBack
	navQuit
)

type wizard struct {
	in   *bufio.Scanner
	out  io.Writer
	sess *anamnesis.Session
}

// runWizard asks questions from in until the session completes and saves.
func runWizard(ctx context.Context, in io.Reader, out io.Writer, sess *anamnesis.Session) error {
	w := &wizard{in: bufio.NewScanner(in), out: out, sess: sess}

	for {
		st := sess.State()
		if st.Completed {
			if sess.Saved() {
				return nil
			}
			_, err := sess.Next(ctx)
			return err
		}

		q := st.Question
		w.header(q, st.Progress)

		action, err := w.ask(q)
		if err != nil {
			return err
		}
		switch action {
		case navBack:
			sess.Previous()
			continue
		case navQuit:
			return errAborted
		}

		next, err := sess.Next(ctx)
		if err != nil {
			if sess.State().Completed {
				return err
			}
			// The calculation failed and the questionnaire was reopened.
			fmt.Fprintln(out, color.YellowString("⚠ Could not compute your profile: %v", err))
			fmt.Fprintln(out, "Check your personal data and continue.")
			continue
		}
		if len(next.Missing) > 0 {
			fmt.Fprintln(out, color.YellowString("⚠ Still missing: %s", strings.Join(next.Missing, ", ")))
		}
	}
}

func (w *wizard) header(q *models.Question, progress float64) {
	faint := color.New(color.Faint)
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, faint.Sprintf("[%3.0f%%] %s", progress*100, q.Section))
	fmt.Fprintln(w.out, color.New(color.Bold).Sprint(q.Prompt))
	if q.Subtitle != "" {
		fmt.Fprintln(w.out, faint.Sprint(q.Subtitle))
	}
}

// readLine prompts and reads one trimmed line, mapping back/quit to actions.
func (w *wizard) readLine(prompt string) (string, navAction, error) {
	fmt.Fprint(w.out, prompt)
	if !w.in.Scan() {
		if err := w.in.Err(); err != nil {
			return "", navStay, err
		}
		return "", navStay, errInputEnded
	}
	line := strings.TrimSpace(w.in.Text())
	switch strings.ToLower(line) {
	case "back":
		return "", navBack, nil
	case "quit":
		return "", navQuit, nil
	}
	return line, navStay, nil
}

func (w *wizard) ask(q *models.Question) (navAction, error) {
	switch q.Type {
	case models.QuestionSingleChoice, models.QuestionTextWithOption:
		return w.askChoice(q)
	case models.QuestionMultipleChoice:
		return w.askMultiple(q)
	case models.QuestionPersonalData:
		return w.askForm(q)
	case models.QuestionPharmaUsage:
		return w.askPharma(q)
	}
	return navStay, fmt.Errorf("question %d has unsupported type %s", q.ID, q.Type)
}

func (w *wizard) printOptions(q *models.Question) {
	category := ""
	for i, o := range q.Options {
		if o.Category != "" && o.Category != category {
			category = o.Category
			fmt.Fprintln(w.out, color.New(color.Faint).Sprint(category))
		}
		fmt.Fprintf(w.out, "  %2d) %s\n", i+1, o.Label)
	}
}

// resolveOption matches an option value, then a 1-based option number.
// Values win so numeric values like "4" (days per week) mean what they say.
func resolveOption(q *models.Question, token string) (models.Option, bool) {
	token = strings.TrimSpace(token)
	for _, o := range q.Options {
		if strings.EqualFold(o.Value, token) {
			return o, true
		}
	}
	if n, err := strconv.Atoi(token); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1], true
	}
	return models.Option{}, false
}

// pickOption reads until a valid option is chosen. Enter keeps a current answer.
func (w *wizard) pickOption(q *models.Question, current string) (models.Option, navAction, error) {
	w.printOptions(q)
	prompt := "> "
	if current != "" {
		prompt = fmt.Sprintf("[%s] > ", current)
	}
	for {
		line, action, err := w.readLine(prompt)
		if err != nil || action != navStay {
			return models.Option{}, action, err
		}
		if line == "" && current != "" {
			o, _ := q.Option(current)
			return o, navStay, nil
		}
		if o, ok := resolveOption(q, line); ok {
			return o, navStay, nil
		}
		fmt.Fprintln(w.out, color.YellowString("⚠ Not an option: %s", line))
	}
}

func (w *wizard) askDetail(current string) (string, navAction, error) {
	prompt := "  Especifique: "
	if current != "" {
		prompt = fmt.Sprintf("  Especifique [%s]: ", current)
	}
	line, action, err := w.readLine(prompt)
	if line == "" {
		line = current
	}
	return line, action, err
}

func (w *wizard) askChoice(q *models.Question) (navAction, error) {
	cur, _ := w.sess.Store().Answer(q.ID)
	o, action, err := w.pickOption(q, cur.Text)
	if err != nil || action != navStay {
		return action, err
	}
	if o.Value == "" {
		return navStay, nil
	}

	v := models.Scalar(o.Value)
	if o.HasInput {
		detail, action, err := w.askDetail(cur.Detail)
		if err != nil || action != navStay {
			return action, err
		}
		v = models.ScalarWithDetail(o.Value, detail)
	}
	return navStay, w.sess.Store().SetAnswer(q.ID, v)
}

// askMultiple toggles options: entering a chosen option again removes it.
func (w *wizard) askMultiple(q *models.Question) (navAction, error) {
	store := w.sess.Store()
	w.printOptions(q)
	fmt.Fprintln(w.out, color.New(color.Faint).Sprint("Comma separated. Entering a chosen option again removes it."))

	for {
		cur, _ := store.Answer(q.ID)
		prompt := "> "
		if len(cur.Values) > 0 {
			prompt = fmt.Sprintf("[%s] > ", strings.Join(cur.Values, ", "))
		}
		line, action, err := w.readLine(prompt)
		if err != nil || action != navStay {
			return action, err
		}
		if line == "" {
			return navStay, nil
		}

		var toggles []string
		seen := make(map[string]bool)
		bad := ""
		for _, tok := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' }) {
			o, ok := resolveOption(q, tok)
			if !ok {
				bad = tok
				break
			}
			if !seen[o.Value] {
				seen[o.Value] = true
				toggles = append(toggles, o.Value)
			}
		}
		if bad != "" {
			fmt.Fprintln(w.out, color.YellowString("⚠ Not an option: %s", bad))
			continue
		}

		for _, v := range toggles {
			if err := store.ToggleSetMember(q.ID, v); err != nil {
				return navStay, err
			}
		}

		cur, _ = store.Answer(q.ID)
		if !needsDetail(q, cur.Values) {
			return navStay, nil
		}
		detail, action, err := w.askDetail(cur.Detail)
		if err != nil || action != navStay {
			return action, err
		}
		cur.Detail = detail
		return navStay, store.SetAnswer(q.ID, cur)
	}
}

func needsDetail(q *models.Question, values []string) bool {
	for _, v := range values {
		if o, ok := q.Option(v); ok && o.HasInput {
			return true
		}
	}
	return false
}

func (w *wizard) askForm(q *models.Question) (navAction, error) {
	store := w.sess.Store()
	for _, f := range q.Fields {
		cur, _ := store.Answer(q.ID)
		current := cur.Fields[f.Name]

		label := f.Label
		if len(f.Options) > 0 {
			label = fmt.Sprintf("%s (%s)", label, strings.Join(f.Options, "/"))
		}
		prompt := fmt.Sprintf("  %s: ", label)
		if current != "" {
			prompt = fmt.Sprintf("  %s [%s]: ", label, current)
		}

		line, action, err := w.readLine(prompt)
		if err != nil || action != navStay {
			return action, err
		}
		if line == "" {
			continue
		}
		if err := store.SetField(q.ID, f.Name, matchFieldOption(f, line)); err != nil {
			return navStay, err
		}
	}
	return navStay, nil
}

// matchFieldOption maps a number or case-insensitive text to a select option.
func matchFieldOption(f models.Field, input string) string {
	if f.Type != models.FieldSelect {
		return input
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(f.Options) {
		return f.Options[n-1]
	}
	for _, o := range f.Options {
		if strings.EqualFold(o, input) {
			return o
		}
	}
	return input
}

func (w *wizard) askPharma(q *models.Question) (navAction, error) {
	store := w.sess.Store()
	cur, _ := store.Answer(q.ID)

	o, action, err := w.pickOption(q, cur.Text)
	if err != nil || action != navStay {
		return action, err
	}
	if err := store.SetAnswer(q.ID, models.Scalar(o.Value)); err != nil {
		return navStay, err
	}
	if o.Value != "sim" {
		return navStay, nil
	}

	for {
		cur, _ = store.Answer(q.ID)
		if len(cur.Items) > 0 {
			for i, item := range cur.Items {
				fmt.Fprintf(w.out, "  %d. %s\n", i+1, models.RecordOf(item.Fields).String())
			}
			line, action, err := w.readLine("  Add another (y), remove <n>, or Enter to continue: ")
			if err != nil || action != navStay {
				return action, err
			}
			if n, ok := parseRemove(line); ok {
				if err := w.removePharmaRow(q, n); err != nil {
					return navStay, err
				}
				continue
			}
			if !isYes(line) {
				return navStay, nil
			}
		}

		index := len(cur.Items)
		for _, f := range q.Fields {
			line, action, err := w.readLine(fmt.Sprintf("  %s: ", f.Label))
			if err != nil || action != navStay {
				return action, err
			}
			if err := store.UpsertListItem(q.ID, index, f.Name, line); err != nil {
				return navStay, err
			}
		}
	}
}

// removePharmaRow deletes row n (1-based). Refusals are reported, not returned.
func (w *wizard) removePharmaRow(q *models.Question, n int) error {
	err := w.sess.Store().RemoveListItem(q.ID, n-1)
	switch {
	case errors.Is(err, anamnesis.ErrLastListItem):
		fmt.Fprintln(w.out, color.YellowString("⚠ At least one entry is required. Answer 'nao' if you use none."))
	case errors.Is(err, anamnesis.ErrIndexOutOfRange):
		fmt.Fprintln(w.out, color.YellowString("⚠ No entry %d", n))
	case err != nil:
		return err
	}
	return nil
}

// parseRemove recognizes "remove N" and "r N".
func parseRemove(s string) (int, bool) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 2 || (fields[0] != "remove" && fields[0] != "r" && fields[0] != "remover") {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func isYes(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "y" || s == "yes" || s == "s" || s == "sim"
}

func init() {
	rootCmd.AddCommand(onboardCmd)
}
