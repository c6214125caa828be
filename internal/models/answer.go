// ABOUTME: AnswerValue tagged union and answer map for questionnaire sessions.
// ABOUTME: Handles scalar, set, record, and repeatable-list answers with tagged JSON/YAML encoding.
package models

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AnswerKind identifies which variant an AnswerValue holds.
type AnswerKind int

const (
	AnswerNone AnswerKind = iota
	AnswerScalar
	AnswerSet
	AnswerRecord
	AnswerList
)

var answerKindNames = map[AnswerKind]string{
	AnswerNone:   "none",
	AnswerScalar: "scalar",
	AnswerSet:    "set",
	AnswerRecord: "record",
	AnswerList:   "list",
}

func (k AnswerKind) String() string {
	if name, ok := answerKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("AnswerKind(%d)", int(k))
}

// ParseAnswerKind converts a kind name back to an AnswerKind.
func ParseAnswerKind(s string) (AnswerKind, error) {
	for k, name := range answerKindNames {
		if name == s {
			return k, nil
		}
	}
	return AnswerNone, fmt.Errorf("unknown answer kind: %q", s)
}

// Record maps form field names to their raw values.
type Record map[string]string

// Clone returns a copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Number parses field name as a finite float.
func (r Record) Number(name string) (float64, bool) {
	return ParseNumber(r[name])
}

// ParseNumber parses a form value as a finite float. A decimal comma is accepted.
func ParseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ListItem is one row of a repeatable list. ID stays fixed for the row's lifetime.
type ListItem struct {
	ID     string `json:"id" yaml:"id"`
	Fields Record `json:"fields" yaml:"fields"`
}

// AnswerValue is the answer to a single question.
//
// Text holds the scalar value, or the selected option of a list answer.
// Detail carries free text for options flagged HasInput.
type AnswerValue struct {
	Kind   AnswerKind
	Text   string
	Detail string
	Values []string
	Fields Record
	Items  []ListItem
}

// Scalar builds a scalar answer.
func Scalar(text string) AnswerValue {
	return AnswerValue{Kind: AnswerScalar, Text: text}
}

// ScalarWithDetail builds a scalar answer carrying free text.
func ScalarWithDetail(text, detail string) AnswerValue {
	return AnswerValue{Kind: AnswerScalar, Text: text, Detail: detail}
}

// Set builds a multiple-choice answer, dropping duplicates.
func Set(values ...string) AnswerValue {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return AnswerValue{Kind: AnswerSet, Values: out}
}

// RecordOf builds a form answer.
func RecordOf(fields Record) AnswerValue {
	return AnswerValue{Kind: AnswerRecord, Fields: fields.Clone()}
}

// List builds a repeatable-list answer with the given selected option.
func List(choice string, items ...ListItem) AnswerValue {
	av := AnswerValue{Kind: AnswerList, Text: choice}
	for _, it := range items {
		av.Items = append(av.Items, ListItem{ID: it.ID, Fields: it.Fields.Clone()})
	}
	return av
}

// IsZero reports whether the answer holds no variant.
func (a AnswerValue) IsZero() bool {
	return a.Kind == AnswerNone
}

// Contains reports whether a set answer includes value.
func (a AnswerValue) Contains(value string) bool {
	for _, v := range a.Values {
		if v == value {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of a.
func (a AnswerValue) Clone() AnswerValue {
	out := AnswerValue{Kind: a.Kind, Text: a.Text, Detail: a.Detail}
	if a.Values != nil {
		out.Values = append([]string(nil), a.Values...)
	}
	out.Fields = a.Fields.Clone()
	for _, it := range a.Items {
		out.Items = append(out.Items, ListItem{ID: it.ID, Fields: it.Fields.Clone()})
	}
	return out
}

// String renders the answer for terminal display.
func (a AnswerValue) String() string {
	var s string
	switch a.Kind {
	case AnswerScalar:
		s = a.Text
	case AnswerSet:
		s = strings.Join(a.Values, ", ")
	case AnswerRecord:
		keys := make([]string, 0, len(a.Fields))
		for k := range a.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+a.Fields[k])
		}
		s = strings.Join(parts, " ")
	case AnswerList:
		s = a.Text
		if len(a.Items) > 0 {
			s = fmt.Sprintf("%s (%d items)", a.Text, len(a.Items))
		}
	default:
		return ""
	}
	if a.Detail != "" {
		s += ": " + a.Detail
	}
	return s
}

// answerWire is the tagged on-disk form of an AnswerValue.
type answerWire struct {
	Kind   string     `json:"kind" yaml:"kind"`
	Value  string     `json:"value,omitempty" yaml:"value,omitempty"`
	Detail string     `json:"detail,omitempty" yaml:"detail,omitempty"`
	Values []string   `json:"values,omitempty" yaml:"values,omitempty"`
	Fields Record     `json:"fields,omitempty" yaml:"fields,omitempty"`
	Items  []ListItem `json:"items,omitempty" yaml:"items,omitempty"`
}

func (a AnswerValue) toWire() answerWire {
	return answerWire{
		Kind:   a.Kind.String(),
		Value:  a.Text,
		Detail: a.Detail,
		Values: a.Values,
		Fields: a.Fields,
		Items:  a.Items,
	}
}

func (w answerWire) toAnswer() (AnswerValue, error) {
	kind, err := ParseAnswerKind(w.Kind)
	if err != nil {
		return AnswerValue{}, err
	}
	values := w.Values
	if kind == AnswerSet {
		// Sets never hold duplicates, whatever the input carried.
		values = Set(values...).Values
	}
	return AnswerValue{
		Kind:   kind,
		Text:   w.Value,
		Detail: w.Detail,
		Values: values,
		Fields: w.Fields,
		Items:  w.Items,
	}, nil
}

// MarshalJSON encodes the answer with an explicit kind tag.
func (a AnswerValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.toWire())
}

// UnmarshalJSON decodes a tagged answer.
func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	var w answerWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	v, err := w.toAnswer()
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalYAML encodes the answer with an explicit kind tag.
func (a AnswerValue) MarshalYAML() (interface{}, error) {
	return a.toWire(), nil
}

// UnmarshalYAML decodes a tagged answer.
func (a *AnswerValue) UnmarshalYAML(node *yaml.Node) error {
	var w answerWire
	if err := node.Decode(&w); err != nil {
		return err
	}
	v, err := w.toAnswer()
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Answers maps question IDs to their answers.
type Answers map[int]AnswerValue

// Clone returns a deep copy of the answers.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for id, v := range a {
		out[id] = v.Clone()
	}
	return out
}

// IDs returns the answered question IDs in ascending order.
func (a Answers) IDs() []int {
	ids := make([]int, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
