// ABOUTME: MCP tool implementations for the anamnesis engine.
// ABOUTME: Exposes the questionnaire, answer evaluation, profile computation, and assessment CRUD.
package mcp

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/anamnesis/internal/anamnesis"
	"github.com/harperreed/anamnesis/internal/metabolic"
	"github.com/harperreed/anamnesis/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_questionnaire",
		Description: "Return the onboarding questionnaire: questions, options, fields, and conditionals",
	}, s.handleGetQuestionnaire)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "evaluate_answers",
		Description: "Check a set of answers: which question comes next, what is missing, and progress",
	}, s.handleEvaluateAnswers)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "compute_profile",
		Description: "Compute BMR, TDEE, target calories, BMI, and macros from answers without saving",
	}, s.handleComputeProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_assessment",
		Description: "Validate a complete questionnaire, compute the profile, and save the assessment",
	}, s.handleSaveAssessment)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_assessments",
		Description: "List saved assessments, most recent first, optionally for one user",
	}, s.handleListAssessments)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_assessment",
		Description: "Get an assessment with all its answers and the computed profile",
	}, s.handleGetAssessment)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_assessment",
		Description: "Delete an assessment by ID or ID prefix",
	}, s.handleDeleteAssessment)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_latest_profile",
		Description: "Get the computed profile of a user's most recent assessment",
	}, s.handleGetLatestProfile)
}

// Tool input/output types

type emptyInput struct{}

type questionnaireOutput struct {
	Version   string            `json:"version"`
	Questions []models.Question `json:"questions"`
}

type answersInput struct {
	Answers map[string]any `json:"answers" jsonschema:"Answers keyed by question ID. Choices are strings, multiple choice a list, personal data an object, pharma usage a list of rows"`
}

type evaluationOutput struct {
	Completed       bool                `json:"completed"`
	Progress        float64             `json:"progress"`
	CurrentQuestion int                 `json:"current_question,omitempty"`
	Prompt          string              `json:"prompt,omitempty"`
	Missing         []string            `json:"missing,omitempty"`
	Invalid         map[string][]string `json:"invalid,omitempty"`
	Visible         []int               `json:"visible"`
}

type computeInput struct {
	Answers map[string]any `json:"answers" jsonschema:"Answers keyed by question ID"`
	Formula string         `json:"formula,omitempty" jsonschema:"BMR formula: mifflin_st_jeor (default) or harris_benedict"`
}

type profileOutput struct {
	Profile models.ComputedProfile `json:"profile"`
	Message string                 `json:"message"`
}

type saveAssessmentInput struct {
	Answers     map[string]any `json:"answers" jsonschema:"Answers keyed by question ID"`
	UserID      string         `json:"user_id,omitempty" jsonschema:"Owner of the assessment, defaults to the configured user"`
	Formula     string         `json:"formula,omitempty" jsonschema:"BMR formula: mifflin_st_jeor (default) or harris_benedict"`
	CompletedAt string         `json:"completed_at,omitempty" jsonschema:"Completion timestamp (ISO 8601), defaults to now"`
}

type saveAssessmentOutput struct {
	ID      string                 `json:"id"`
	UserID  string                 `json:"user_id"`
	Profile models.ComputedProfile `json:"profile"`
	Message string                 `json:"message"`
}

type listAssessmentsInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"Filter by user ID"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type assessmentSummary struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Goal           string  `json:"goal"`
	TargetCalories float64 `json:"target_calories"`
	CompletedAt    string  `json:"completed_at"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"Assessment ID or prefix"`
}

type latestProfileInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleGetQuestionnaire(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, questionnaireOutput, error) {
	return nil, questionnaireOutput{
		Version:   s.schemaVersion(),
		Questions: s.schema.Questions,
	}, nil
}

func (s *Server) handleEvaluateAnswers(ctx context.Context, req *mcp.CallToolRequest, input answersInput) (*mcp.CallToolResult, evaluationOutput, error) {
	store, err := s.loadAnswers(input.Answers)
	if err != nil {
		return nil, evaluationOutput{}, err
	}

	nav := anamnesis.Resume(s.schema, store)
	state := nav.State(store)
	out := evaluationOutput{
		Completed: state.Completed,
		Progress:  state.Progress,
		Visible:   []int{},
	}
	if q := state.Question; q != nil {
		out.CurrentQuestion = q.ID
		out.Prompt = q.Prompt
		out.Missing = anamnesis.Missing(q, store)
	}

	if invalid := anamnesis.ValidateAll(store); len(invalid) > 0 {
		out.Invalid = make(map[string][]string, len(invalid))
		for id, fields := range invalid {
			out.Invalid[strconv.Itoa(id)] = fields
		}
	}
	for i := range s.schema.Questions {
		if q := &s.schema.Questions[i]; anamnesis.Visible(q, store) {
			out.Visible = append(out.Visible, q.ID)
		}
	}
	return nil, out, nil
}

func (s *Server) handleComputeProfile(ctx context.Context, req *mcp.CallToolRequest, input computeInput) (*mcp.CallToolResult, profileOutput, error) {
	calc, err := s.calculator(input.Formula)
	if err != nil {
		return nil, profileOutput{}, err
	}
	store, err := s.loadAnswers(input.Answers)
	if err != nil {
		return nil, profileOutput{}, err
	}

	profile, err := calc.Compute(store)
	if err != nil {
		return nil, profileOutput{}, fmt.Errorf("failed to compute profile: %w", err)
	}
	return nil, profileOutput{Profile: *profile, Message: describeProfile(profile)}, nil
}

func (s *Server) handleSaveAssessment(ctx context.Context, req *mcp.CallToolRequest, input saveAssessmentInput) (*mcp.CallToolResult, saveAssessmentOutput, error) {
	calc, err := s.calculator(input.Formula)
	if err != nil {
		return nil, saveAssessmentOutput{}, err
	}
	store, err := s.loadAnswers(input.Answers)
	if err != nil {
		return nil, saveAssessmentOutput{}, err
	}

	anamnesis.ClearHidden(store)
	if nav := anamnesis.Resume(s.schema, store); !nav.Completed() {
		q := nav.CurrentStep()
		return nil, saveAssessmentOutput{}, fmt.Errorf("questionnaire incomplete: question %d is missing %s",
			q.ID, strings.Join(anamnesis.Missing(q, store), ", "))
	}

	userID, err := s.resolveUser(input.UserID)
	if err != nil {
		return nil, saveAssessmentOutput{}, err
	}

	profile, err := calc.Compute(store)
	if err != nil {
		return nil, saveAssessmentOutput{}, fmt.Errorf("failed to compute profile: %w", err)
	}

	a := models.NewAssessment(userID, store.Snapshot(), *profile).WithSchemaVersion(s.schemaVersion())
	if input.CompletedAt != "" {
		t, err := time.Parse(time.RFC3339, input.CompletedAt)
		if err != nil {
			return nil, saveAssessmentOutput{}, fmt.Errorf("invalid completed_at %q: %w", input.CompletedAt, err)
		}
		a.WithCompletedAt(t)
	}

	if err := s.repo.SaveAssessment(a); err != nil {
		return nil, saveAssessmentOutput{}, fmt.Errorf("failed to save assessment: %w", err)
	}

	return nil, saveAssessmentOutput{
		ID:      a.ID.String()[:8],
		UserID:  userID,
		Profile: *profile,
		Message: fmt.Sprintf("Saved assessment %s. %s", a.ID.String()[:8], describeProfile(profile)),
	}, nil
}

func (s *Server) handleListAssessments(ctx context.Context, req *mcp.CallToolRequest, input listAssessmentsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var userID *string
	if input.UserID != "" {
		userID = &input.UserID
	}

	list, err := s.repo.ListAssessments(userID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	if len(list) == 0 {
		return nil, map[string]interface{}{"message": "No assessments found."}, nil
	}

	out := make([]assessmentSummary, 0, len(list))
	for _, a := range list {
		out = append(out, summarize(a))
	}
	return nil, map[string]interface{}{"assessments": out}, nil
}

func (s *Server) handleGetAssessment(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, any, error) {
	a, err := s.repo.GetAssessment(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return nil, assessmentView(a, s.schema), nil
}

func (s *Server) handleDeleteAssessment(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteAssessment(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete assessment: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted assessment: %s", input.ID),
	}, nil
}

func (s *Server) handleGetLatestProfile(ctx context.Context, req *mcp.CallToolRequest, input latestProfileInput) (*mcp.CallToolResult, profileOutput, error) {
	userID, err := s.resolveUser(input.UserID)
	if err != nil {
		return nil, profileOutput{}, err
	}

	a, err := s.repo.GetLatestAssessment(userID)
	if err != nil {
		return nil, profileOutput{}, fmt.Errorf("failed to get latest assessment: %w", err)
	}
	return nil, profileOutput{
		Profile: a.Profile,
		Message: fmt.Sprintf("Assessment %s from %s. %s", a.ID.String()[:8],
			a.CompletedAt.Format("2006-01-02"), describeProfile(&a.Profile)),
	}, nil
}

// Helpers

func (s *Server) loadAnswers(raw map[string]any) (*anamnesis.AnswerStore, error) {
	byID := make(map[int]any, len(raw))
	for key, v := range raw {
		id, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("answer key %q is not a question ID", key)
		}
		byID[id] = v
	}
	return anamnesis.LoadAnswers(s.schema, byID)
}

func (s *Server) calculator(formula string) (*metabolic.Calculator, error) {
	if formula == "" {
		return s.calc, nil
	}
	f, err := metabolic.ParseFormula(formula)
	if err != nil {
		return nil, err
	}
	return metabolic.New(metabolic.WithFormula(f)), nil
}

func (s *Server) resolveUser(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if s.identity == nil {
		return "", fmt.Errorf("user_id is required")
	}
	id, err := s.identity.UserID()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user: %w", err)
	}
	return id, nil
}

func summarize(a *models.Assessment) assessmentSummary {
	return assessmentSummary{
		ID:             a.ID.String()[:8],
		UserID:         a.UserID,
		Goal:           string(a.Profile.Goal),
		TargetCalories: a.Profile.TargetCalories,
		CompletedAt:    a.CompletedAt.Format(time.RFC3339),
	}
}

type answerView struct {
	ID       int    `json:"id"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer"`
}

// assessmentView flattens answers into question order with readable text.
func assessmentView(a *models.Assessment, schema *models.Schema) map[string]interface{} {
	ids := a.Answers.IDs()
	sort.Slice(ids, func(i, j int) bool {
		return schema.IndexOf(ids[i]) < schema.IndexOf(ids[j])
	})

	answers := make([]answerView, 0, len(ids))
	for _, id := range ids {
		v := answerView{ID: id, Answer: a.Answers[id].String()}
		if q := schema.Question(id); q != nil {
			v.Question = q.Prompt
		}
		answers = append(answers, v)
	}

	return map[string]interface{}{
		"id":             a.ID.String(),
		"user_id":        a.UserID,
		"schema_version": a.SchemaVersion,
		"completed_at":   a.CompletedAt.Format(time.RFC3339),
		"profile":        a.Profile,
		"answers":        answers,
	}
}

func describeProfile(p *models.ComputedProfile) string {
	return fmt.Sprintf("Goal %s: target %.0f kcal/day (BMR %.0f, TDEE %.0f). Protein %dg, carbs %dg, fat %dg. BMI %.1f (%s).",
		p.Goal.Label(), p.TargetCalories, p.BMR, p.TDEE,
		p.Macros.Protein.Grams, p.Macros.Carbs.Grams, p.Macros.Fat.Grams,
		p.BMI, p.BMIClass.Label())
}

