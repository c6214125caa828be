// ABOUTME: Terminal rendering helpers for profiles and assessments.
// ABOUTME: Shared by onboard, compute, show, and list.
package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/anamnesis/internal/models"
)

func printProfile(out io.Writer, p *models.ComputedProfile) {
	if p == nil {
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintln(out, bold.Sprintf("Goal: %s", p.Goal.Label()))
	fmt.Fprintf(out, "  %s %.0f kcal/day\n", padRight("Target", 10), p.TargetCalories)
	fmt.Fprintf(out, "  %s %.0f kcal %s\n", padRight("BMR", 10), p.BMR, faint.Sprintf("(%s)", p.Formula))
	fmt.Fprintf(out, "  %s %.0f kcal\n", padRight("TDEE", 10), p.TDEE)
	fmt.Fprintf(out, "  %s %.1f %s\n", padRight("BMI", 10), p.BMI, faint.Sprintf("(%s)", p.BMIClass.Label()))
	fmt.Fprintln(out)
	fmt.Fprintln(out, bold.Sprint("Macros"))
	for _, m := range []struct {
		name string
		m    models.Macro
	}{
		{"Protein", p.Macros.Protein},
		{"Carbs", p.Macros.Carbs},
		{"Fat", p.Macros.Fat},
	} {
		fmt.Fprintf(out, "  %s %4d g  %s\n", padRight(m.name, 10), m.m.Grams,
			faint.Sprintf("%.0f%%, %.0f kcal", m.m.Percent*100, m.m.Calories))
	}
}

func printAnswers(out io.Writer, a *models.Assessment, s *models.Schema) {
	faint := color.New(color.Faint)
	for i := range s.Questions {
		q := &s.Questions[i]
		v, ok := a.Answers[q.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "%s %s\n", faint.Sprintf("%2d.", q.ID), q.Prompt)
		fmt.Fprintf(out, "    %s\n", describeAnswer(q, v))
	}
}

// describeAnswer renders an answer with option labels instead of values.
func describeAnswer(q *models.Question, v models.AnswerValue) string {
	label := func(value string) string {
		if o, ok := q.Option(value); ok {
			return o.Label
		}
		return value
	}

	var s string
	switch v.Kind {
	case models.AnswerScalar:
		s = label(v.Text)
	case models.AnswerSet:
		parts := make([]string, len(v.Values))
		for i, val := range v.Values {
			parts[i] = label(val)
		}
		s = strings.Join(parts, ", ")
	case models.AnswerList:
		s = label(v.Text)
		for _, item := range v.Items {
			s += "\n    - " + models.RecordOf(item.Fields).String()
		}
	default:
		s = v.String()
	}
	if v.Detail != "" && v.Kind != models.AnswerRecord {
		s += ": " + v.Detail
	}
	return s
}

func printAssessmentLine(out io.Writer, a *models.Assessment) {
	faint := color.New(color.Faint)
	fmt.Fprintf(out, "%s %s %s %6.0f kcal  %s\n",
		faint.Sprint(a.ID.String()[:8]),
		faint.Sprint(a.CompletedAt.Local().Format("2006-01-02 15:04")),
		padRight(a.Profile.Goal.Label(), 15),
		a.Profile.TargetCalories,
		faint.Sprint(truncate(a.UserID, 12)))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}
