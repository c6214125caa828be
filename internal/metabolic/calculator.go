// ABOUTME: Deterministic pipeline from questionnaire answers to a ComputedProfile.
// ABOUTME: BMR -> adjusted BMR -> TDEE -> target calories -> macro split, plus BMI.
package metabolic

import (
	"fmt"
	"math"
	"strings"

	"github.com/harperreed/anamnesis/internal/models"
)

// Personal data field names read from the personal_data question.
const (
	FieldSex    = "sexo"
	FieldAge    = "idade"
	FieldHeight = "altura"
	FieldWeight = "peso"
)

// Formula selects the BMR equation.
type Formula string

const (
	MifflinStJeor  Formula = "mifflin_st_jeor"
	HarrisBenedict Formula = "harris_benedict"
)

// ParseFormula accepts a formula name; empty selects Mifflin-St Jeor.
func ParseFormula(s string) (Formula, error) {
	switch Formula(strings.ToLower(strings.TrimSpace(s))) {
	case "", MifflinStJeor:
		return MifflinStJeor, nil
	case HarrisBenedict:
		return HarrisBenedict, nil
	}
	return "", fmt.Errorf("unknown BMR formula: %q (use %s or %s)", s, MifflinStJeor, HarrisBenedict)
}

// Answers is the read side of an answer store.
type Answers interface {
	Schema() *models.Schema
	Answer(id int) (models.AnswerValue, bool)
}

// Calculator computes profiles with a fixed formula.
type Calculator struct {
	formula Formula
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithFormula selects the BMR equation.
func WithFormula(f Formula) Option {
	return func(c *Calculator) {
		c.formula = f
	}
}

// New creates a Calculator using Mifflin-St Jeor unless overridden.
func New(opts ...Option) *Calculator {
	c := &Calculator{formula: MifflinStJeor}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Formula returns the BMR equation in use.
func (c *Calculator) Formula() Formula {
	return c.formula
}

// Compute runs the default calculator over answers.
func Compute(answers Answers) (*models.ComputedProfile, error) {
	return New().Compute(answers)
}

type personal struct {
	sex    models.Sex
	age    float64
	weight float64
	height float64
}

// Compute derives the energy and macro prescription. It has no side effects.
func (c *Calculator) Compute(answers Answers) (*models.ComputedProfile, error) {
	schema := answers.Schema()

	p, err := extractPersonal(schema, answers)
	if err != nil {
		return nil, err
	}

	factors := models.Factors{
		BodyComposition: lookup(BodyCompositionFactors, choice(schema, answers, models.RoleBodyComposition), 1.0),
		Pharma:          lookup(PharmaFactors, choice(schema, answers, models.RolePharmaUsage), 1.0),
		Experience:      lookup(ExperienceFactors, choice(schema, answers, models.RoleTrainingExperience), 1.0),
		Occupational:    occupationalFactor(choice(schema, answers, models.RoleOccupationalActivity)),
		Leisure:         lookup(LeisureFactors, choice(schema, answers, models.RoleLeisureActivity), 0.0),
	}

	goal := models.Goal(choice(schema, answers, models.RoleGoal))
	if goal == "" {
		goal = models.GoalMaintenance
	}

	bmr := c.bmr(p)
	adjusted := bmr * factors.BodyComposition * factors.Pharma * factors.Experience
	tdee := adjusted * (factors.Occupational + factors.Leisure)
	bmi := BMI(p.weight, p.height)
	if !inRange(bmr, adjusted, tdee, bmi) {
		return nil, &IncompleteProfileError{Fields: outOfRangeFields(p, bmi)}
	}

	target := tdee + GoalOffsets[goal]
	if !(target > 0) {
		return nil, fmt.Errorf("%w: got %.1f kcal", ErrNonPositiveTarget, target)
	}

	return &models.ComputedProfile{
		Formula:        string(c.formula),
		Sex:            p.sex,
		Age:            p.age,
		WeightKg:       p.weight,
		HeightCm:       p.height,
		Goal:           goal,
		BMR:            bmr,
		AdjustedBMR:    adjusted,
		TDEE:           tdee,
		TargetCalories: target,
		BMI:            bmi,
		BMIClass:       ClassifyBMI(bmi),
		Factors:        factors,
		Macros:         Distribute(target, SplitFor(goal)),
	}, nil
}

const (
	// maxMagnitude bounds every computed value so gram counts fit an int.
	maxMagnitude = 1e9
	// maxInput is the largest age, weight or height taken at face value.
	maxInput = maxMagnitude / 100
)

func inRange(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > maxMagnitude {
			return false
		}
	}
	return true
}

// outOfRangeFields names the personal data behind a value inRange rejected.
func outOfRangeFields(p personal, bmi float64) []string {
	var bad []string
	for _, f := range []struct {
		name  string
		value float64
	}{{FieldAge, p.age}, {FieldWeight, p.weight}, {FieldHeight, p.height}} {
		if f.value > maxInput {
			bad = append(bad, f.name)
		}
	}
	if len(bad) == 0 && !inRange(bmi) {
		bad = append(bad, FieldHeight)
	}
	if len(bad) == 0 {
		bad = []string{FieldWeight, FieldHeight}
	}
	return bad
}

func (c *Calculator) bmr(p personal) float64 {
	if c.formula == HarrisBenedict {
		if p.sex == models.SexMale {
			return 88.362 + 13.397*p.weight + 4.799*p.height - 5.677*p.age
		}
		return 447.593 + 9.247*p.weight + 3.098*p.height - 4.330*p.age
	}

	base := 10*p.weight + 6.25*p.height - 5*p.age
	if p.sex == models.SexMale {
		return base + 5
	}
	return base - 161
}

func extractPersonal(schema *models.Schema, answers Answers) (personal, error) {
	q := schema.ByRole(models.RolePersonalData)
	if q == nil {
		return personal{}, &IncompleteProfileError{}
	}

	a, _ := answers.Answer(q.ID)
	var p personal
	var bad []string

	if p.sex = ParseSex(a.Fields[FieldSex]); p.sex == "" {
		bad = append(bad, FieldSex)
	}

	positive := func(name string, dst *float64) {
		v, ok := a.Fields.Number(name)
		if !ok || v <= 0 {
			bad = append(bad, name)
			return
		}
		*dst = v
	}
	positive(FieldAge, &p.age)
	positive(FieldWeight, &p.weight)
	positive(FieldHeight, &p.height)

	if len(bad) > 0 {
		return personal{}, &IncompleteProfileError{Fields: bad}
	}
	return p, nil
}

// ParseSex recognizes Portuguese and English spellings, ignoring case.
func ParseSex(s string) models.Sex {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "masculino", "male", "m":
		return models.SexMale
	case "feminino", "female", "f":
		return models.SexFemale
	}
	return ""
}

// choice returns the selected option text of the question carrying role.
func choice(schema *models.Schema, answers Answers, role models.Role) string {
	q := schema.ByRole(role)
	if q == nil {
		return ""
	}
	a, ok := answers.Answer(q.ID)
	if !ok {
		return ""
	}
	return strings.TrimSpace(a.Text)
}
