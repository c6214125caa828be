// ABOUTME: Question schema model for the anamnesis questionnaire.
// ABOUTME: Defines question types, options, form fields, conditionals, and calculator roles.
package models

// QuestionType is the closed set of question kinds a schema may contain.
type QuestionType string

const (
	QuestionSingleChoice   QuestionType = "single_choice"
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionPersonalData   QuestionType = "personal_data"
	QuestionTextWithOption QuestionType = "text_with_option"
	QuestionPharmaUsage    QuestionType = "pharma_usage"
)

// AllQuestionTypes lists every supported question type.
var AllQuestionTypes = []QuestionType{
	QuestionSingleChoice,
	QuestionMultipleChoice,
	QuestionPersonalData,
	QuestionTextWithOption,
	QuestionPharmaUsage,
}

// Valid reports whether t is one of the supported question types.
func (t QuestionType) Valid() bool {
	for _, qt := range AllQuestionTypes {
		if qt == t {
			return true
		}
	}
	return false
}

// AnswerKind returns the answer variant a question of this type accepts.
func (t QuestionType) AnswerKind() AnswerKind {
	switch t {
	case QuestionSingleChoice, QuestionTextWithOption:
		return AnswerScalar
	case QuestionMultipleChoice:
		return AnswerSet
	case QuestionPersonalData:
		return AnswerRecord
	case QuestionPharmaUsage:
		return AnswerList
	}
	return AnswerNone
}

// HasOptions reports whether questions of this type are answered by picking options.
func (t QuestionType) HasOptions() bool {
	return t != QuestionPersonalData
}

// Role tells the metabolic calculator how to read a question's answer.
type Role string

const (
	RoleNone                 Role = ""
	RoleGoal                 Role = "goal"
	RolePersonalData         Role = "personal_data"
	RoleBodyComposition      Role = "body_composition"
	RoleOccupationalActivity Role = "occupational_activity"
	RoleLeisureActivity      Role = "leisure_activity"
	RoleTrainingExperience   Role = "training_experience"
	RolePharmaUsage          Role = "pharma_usage"
)

// FieldType is the input type of a form field.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldSelect FieldType = "select"
)

// Option is one selectable answer of a choice question.
type Option struct {
	Value    string `json:"value" yaml:"value"`
	Label    string `json:"label" yaml:"label"`
	HasInput bool   `json:"has_input,omitempty" yaml:"has_input,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// Field is one input of a form question, or one column of a repeatable row.
type Field struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Type        FieldType `json:"type" yaml:"type"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// Conditional hides a question unless an earlier answer equals RequiredValue.
type Conditional struct {
	DependsOn     int    `json:"depends_on" yaml:"depends_on"`
	RequiredValue string `json:"required_value" yaml:"required_value"`
}

// Question is a single immutable questionnaire item.
type Question struct {
	ID          int          `json:"id" yaml:"id"`
	Section     string       `json:"section" yaml:"section"`
	Prompt      string       `json:"prompt" yaml:"prompt"`
	Subtitle    string       `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Type        QuestionType `json:"type" yaml:"type"`
	Required    bool         `json:"required" yaml:"required"`
	Role        Role         `json:"role,omitempty" yaml:"role,omitempty"`
	Options     []Option     `json:"options,omitempty" yaml:"options,omitempty"`
	Fields      []Field      `json:"fields,omitempty" yaml:"fields,omitempty"`
	Conditional *Conditional `json:"conditional,omitempty" yaml:"conditional,omitempty"`
}

// Option returns the option with the given value, if any.
func (q *Question) Option(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// Field returns the field with the given name, if any.
func (q *Question) Field(name string) (Field, bool) {
	for _, f := range q.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Schema is a versioned, ordered questionnaire.
type Schema struct {
	Version   string     `json:"version" yaml:"version"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// IndexOf returns the position of the question with the given ID, or -1.
func (s *Schema) IndexOf(id int) int {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return i
		}
	}
	return -1
}

// Question returns the question with the given ID, or nil.
func (s *Schema) Question(id int) *Question {
	if i := s.IndexOf(id); i >= 0 {
		return &s.Questions[i]
	}
	return nil
}

// ByRole returns the first question carrying the given role, or nil.
func (s *Schema) ByRole(role Role) *Question {
	if role == RoleNone {
		return nil
	}
	for i := range s.Questions {
		if s.Questions[i].Role == role {
			return &s.Questions[i]
		}
	}
	return nil
}

// Len returns the number of questions in the schema.
func (s *Schema) Len() int {
	return len(s.Questions)
}
