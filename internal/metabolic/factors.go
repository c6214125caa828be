// ABOUTME: Fixed adjustment factor tables for the metabolic pipeline.
// ABOUTME: Body composition, pharma and experience multiply BMR; activity factors add up.
package metabolic

// Multiplicative factors applied to BMR.
var (
	BodyCompositionFactors = map[string]float64{
		"muito_magro": 0.95,
		"magro":       0.98,
		"atletico":    1.08,
		"normal":      1.00,
		"acima_peso":  1.02,
	}

	PharmaFactors = map[string]float64{
		"nao": 1.00,
		"sim": 1.10,
	}

	ExperienceFactors = map[string]float64{
		"iniciante":     1.00,
		"intermediario": 1.02,
		"avancado":      1.05,
	}
)

// Activity factors. Occupational and leisure are summed into one multiplier.
var (
	OccupationalFactors = map[string]float64{
		"sedentario": 1.2,
		"leve":       1.375,
		"moderado":   1.55,
		"intenso":    1.725,
	}

	LeisureFactors = map[string]float64{
		"tranquila":  0.0,
		"leve_ativa": 0.1,
		"ativa":      0.2,
	}
)

const (
	// occupationalMissing applies when the occupation question is unanswered.
	occupationalMissing = 1.2
	// occupationalUnknown applies when the answer is not in the table.
	occupationalUnknown = 1.375
)

// lookup returns table[key], or def when key is absent.
func lookup(table map[string]float64, key string, def float64) float64 {
	if f, ok := table[key]; ok {
		return f
	}
	return def
}

func occupationalFactor(key string) float64 {
	if key == "" {
		return occupationalMissing
	}
	return lookup(OccupationalFactors, key, occupationalUnknown)
}
