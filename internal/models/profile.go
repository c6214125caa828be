// ABOUTME: ComputedProfile model for the metabolic prescription.
// ABOUTME: Defines goals, sex, BMI classes, adjustment factors, and macro split types.
package models

// Goal is the primary objective chosen in the questionnaire.
type Goal string

const (
	GoalWeightLoss     Goal = "emagrecer"
	GoalMuscleGain     Goal = "ganhar_massa"
	GoalPerformance    Goal = "melhorar_saude"
	GoalMaintenance    Goal = "manter_peso"
	GoalRehabilitation Goal = "reabilitacao"
)

// GoalLabels maps goals to short English display names.
var GoalLabels = map[Goal]string{
	GoalWeightLoss:     "weight loss",
	GoalMuscleGain:     "muscle gain",
	GoalPerformance:    "performance",
	GoalMaintenance:    "maintenance",
	GoalRehabilitation: "rehabilitation",
}

// Label returns a display name for the goal.
func (g Goal) Label() string {
	if l, ok := GoalLabels[g]; ok {
		return l
	}
	return string(g)
}

// Sex is the biological sex used by the BMR equations.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// BMIClass is one of the four BMI bands.
type BMIClass string

const (
	BMIUnderweight BMIClass = "underweight"
	BMINormal      BMIClass = "normal"
	BMIOverweight  BMIClass = "overweight"
	BMIObese       BMIClass = "obese"
)

// BMIClassLabels maps BMI classes to the labels shown to users.
var BMIClassLabels = map[BMIClass]string{
	BMIUnderweight: "Abaixo do peso",
	BMINormal:      "Peso normal",
	BMIOverweight:  "Sobrepeso",
	BMIObese:       "Obesidade",
}

// Label returns the user-facing label for the class.
func (c BMIClass) Label() string {
	if l, ok := BMIClassLabels[c]; ok {
		return l
	}
	return string(c)
}

// Factors records the adjustment factors applied to a profile.
type Factors struct {
	BodyComposition float64 `json:"body_composition" yaml:"body_composition"`
	Pharma          float64 `json:"pharma" yaml:"pharma"`
	Experience      float64 `json:"experience" yaml:"experience"`
	Occupational    float64 `json:"occupational" yaml:"occupational"`
	Leisure         float64 `json:"leisure" yaml:"leisure"`
}

// Macro is one macronutrient's share of the daily target.
type Macro struct {
	Percent  float64 `json:"percent" yaml:"percent"`
	Calories float64 `json:"calories" yaml:"calories"`
	Grams    int     `json:"grams" yaml:"grams"`
}

// Macros is the protein/carbs/fat split.
type Macros struct {
	Protein Macro `json:"protein" yaml:"protein"`
	Carbs   Macro `json:"carbs" yaml:"carbs"`
	Fat     Macro `json:"fat" yaml:"fat"`
}

// GramCalories returns the energy implied by the rounded gram amounts.
func (m Macros) GramCalories() float64 {
	return float64(m.Protein.Grams*4+m.Carbs.Grams*4) + float64(m.Fat.Grams*9)
}

// ComputedProfile is the derived energy and macronutrient prescription.
type ComputedProfile struct {
	Formula        string   `json:"formula" yaml:"formula"`
	Sex            Sex      `json:"sex" yaml:"sex"`
	Age            float64  `json:"age" yaml:"age"`
	WeightKg       float64  `json:"weight_kg" yaml:"weight_kg"`
	HeightCm       float64  `json:"height_cm" yaml:"height_cm"`
	Goal           Goal     `json:"goal" yaml:"goal"`
	BMR            float64  `json:"bmr" yaml:"bmr"`
	AdjustedBMR    float64  `json:"adjusted_bmr" yaml:"adjusted_bmr"`
	TDEE           float64  `json:"tdee" yaml:"tdee"`
	TargetCalories float64  `json:"target_calories" yaml:"target_calories"`
	BMI            float64  `json:"bmi" yaml:"bmi"`
	BMIClass       BMIClass `json:"bmi_class" yaml:"bmi_class"`
	Factors        Factors  `json:"factors" yaml:"factors"`
	Macros         Macros   `json:"macros" yaml:"macros"`
}
