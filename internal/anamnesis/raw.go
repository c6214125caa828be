// ABOUTME: Lenient decoding of free-form answers into typed AnswerValues.
// ABOUTME: Used by answer files and MCP tools where input arrives as plain JSON/YAML values.
package anamnesis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/anamnesis/internal/models"
	"gopkg.in/yaml.v3"
)

// AnswerFromRaw converts a decoded JSON/YAML value into the answer kind q expects.
//
// Accepted shapes:
//   - choice questions: "value", or {"value": "...", "detail": "..."}
//   - multiple choice: ["a", "b"], "a,b", or {"values": [...], "detail": "..."}
//   - personal data: {"field": value, ...}
//   - pharma usage: "nao", [{"nome": ...}, ...], or {"value": "sim", "items": [...]}
//
// A map carrying a "kind" key is decoded as an already tagged answer.
func AnswerFromRaw(q *models.Question, raw any) (models.AnswerValue, error) {
	if m, ok := asMap(raw); ok {
		if _, tagged := m["kind"]; tagged {
			return decodeTagged(q, m)
		}
	}

	switch q.Type {
	case models.QuestionSingleChoice, models.QuestionTextWithOption:
		if m, ok := asMap(raw); ok {
			return models.ScalarWithDetail(stringify(m["value"]), stringify(m["detail"])), nil
		}
		s, ok := scalarString(raw)
		if !ok {
			return models.AnswerValue{}, fmt.Errorf("question %d expects a single value, got %T", q.ID, raw)
		}
		return models.Scalar(s), nil

	case models.QuestionMultipleChoice:
		detail := ""
		if m, ok := asMap(raw); ok {
			raw = m["values"]
			detail = stringify(m["detail"])
		}
		values, err := stringList(raw)
		if err != nil {
			return models.AnswerValue{}, fmt.Errorf("question %d: %w", q.ID, err)
		}
		av := models.Set(values...)
		av.Detail = detail
		return av, nil

	case models.QuestionPersonalData:
		m, ok := asMap(raw)
		if !ok {
			return models.AnswerValue{}, fmt.Errorf("question %d expects an object of fields, got %T", q.ID, raw)
		}
		rec := make(models.Record, len(m))
		for k, v := range m {
			rec[k] = stringify(v)
		}
		return models.RecordOf(rec), nil

	case models.QuestionPharmaUsage:
		return listFromRaw(q, raw)
	}
	return models.AnswerValue{}, fmt.Errorf("question %d has unsupported type %q", q.ID, q.Type)
}

func listFromRaw(q *models.Question, raw any) (models.AnswerValue, error) {
	choice := ""
	var rows any
	switch v := raw.(type) {
	case []any:
		choice, rows = "sim", v
	default:
		if m, ok := asMap(raw); ok {
			choice, rows = stringify(m["value"]), m["items"]
		} else if s, ok := scalarString(raw); ok {
			choice = s
		} else {
			return models.AnswerValue{}, fmt.Errorf("question %d expects a choice or a list of rows, got %T", q.ID, raw)
		}
	}

	av := models.List(choice)
	if rows == nil {
		return av, nil
	}
	list, ok := rows.([]any)
	if !ok {
		return models.AnswerValue{}, fmt.Errorf("question %d: items must be a list, got %T", q.ID, rows)
	}
	for i, r := range list {
		m, ok := asMap(r)
		if !ok {
			return models.AnswerValue{}, fmt.Errorf("question %d: item %d must be an object", q.ID, i)
		}
		item := models.ListItem{ID: uuid.NewString(), Fields: make(models.Record, len(m))}
		for k, v := range m {
			if k == "id" {
				item.ID = stringify(v)
				continue
			}
			item.Fields[k] = stringify(v)
		}
		av.Items = append(av.Items, item)
	}
	return av, nil
}

func decodeTagged(q *models.Question, m map[string]any) (models.AnswerValue, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return models.AnswerValue{}, fmt.Errorf("question %d: %w", q.ID, err)
	}
	var av models.AnswerValue
	if err := json.Unmarshal(data, &av); err != nil {
		return models.AnswerValue{}, fmt.Errorf("question %d: %w", q.ID, err)
	}
	return av, nil
}

// LoadAnswers builds a store from raw answers keyed by question ID.
// Unknown IDs and shape errors are reported; nothing is partially applied.
func LoadAnswers(schema *models.Schema, raw map[int]any) (*AnswerStore, error) {
	store := NewAnswerStore(schema)

	ids := make([]int, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		q := schema.Question(id)
		if q == nil {
			return nil, fmt.Errorf("%w: %d", ErrUnknownQuestion, id)
		}
		av, err := AnswerFromRaw(q, raw[id])
		if err != nil {
			return nil, err
		}
		if err := store.SetAnswer(id, av); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// ReadAnswersFile reads raw answers from a .json, .yaml or .yml file whose
// top-level keys are question IDs.
func ReadAnswersFile(path string) (map[int]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}

	raw := make(map[int]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse answers: %w", err)
	}
	return raw, nil
}

// asMap normalizes the two map shapes yaml.v3 and encoding/json produce.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func scalarString(v any) (string, bool) {
	switch v.(type) {
	case string, bool, int, int64, float64, uint64:
		return stringify(v), true
	}
	return "", false
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

func stringList(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		var out []string
		for _, p := range strings.Split(x, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	case []string:
		return x, nil
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			s, ok := scalarString(e)
			if !ok {
				return nil, fmt.Errorf("expected list of values, got element %T", e)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected list of values, got %T", v)
}
