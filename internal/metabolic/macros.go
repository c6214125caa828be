// ABOUTME: Per-goal macronutrient split and gram distribution.
// ABOUTME: Carbs absorb the rounding residual so gram energy stays within 3 kcal of the target.
package metabolic

import (
	"math"

	"github.com/harperreed/anamnesis/internal/models"
)

// Energy density in kcal per gram.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// Split is a protein/carbs/fat percentage allocation.
type Split struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

// Sum returns the total of the three shares.
func (s Split) Sum() float64 {
	return s.Protein + s.Carbs + s.Fat
}

// MacroSplits holds the split for each goal with its own table entry.
var MacroSplits = map[models.Goal]Split{
	models.GoalWeightLoss:  {Protein: 0.30, Carbs: 0.35, Fat: 0.35},
	models.GoalMuscleGain:  {Protein: 0.25, Carbs: 0.45, Fat: 0.30},
	models.GoalMaintenance: {Protein: 0.25, Carbs: 0.40, Fat: 0.35},
	models.GoalPerformance: {Protein: 0.20, Carbs: 0.50, Fat: 0.30},
}

// SplitFor returns the split for goal, falling back to maintenance.
func SplitFor(goal models.Goal) Split {
	if s, ok := MacroSplits[goal]; ok {
		return s
	}
	return MacroSplits[models.GoalMaintenance]
}

// GoalOffsets are flat kcal/day adjustments applied to TDEE.
var GoalOffsets = map[models.Goal]float64{
	models.GoalWeightLoss: -450,
	models.GoalMuscleGain: 300,
}

// Distribute allocates target kcal across the split. Each macro's Calories
// is the energy of its whole grams.
func Distribute(target float64, s Split) models.Macros {
	protein := int(math.Round(target * s.Protein / KcalPerGramProtein))
	fat := int(math.Round(target * s.Fat / KcalPerGramFat))
	rest := target - float64(protein*KcalPerGramProtein) - float64(fat*KcalPerGramFat)
	carbs := int(math.Round(rest / KcalPerGramCarbs))
	if carbs < 0 {
		carbs = 0
	}

	return models.Macros{
		Protein: models.Macro{Percent: s.Protein, Calories: float64(protein * KcalPerGramProtein), Grams: protein},
		Carbs:   models.Macro{Percent: s.Carbs, Calories: float64(carbs * KcalPerGramCarbs), Grams: carbs},
		Fat:     models.Macro{Percent: s.Fat, Calories: float64(fat * KcalPerGramFat), Grams: fat},
	}
}
