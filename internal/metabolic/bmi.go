// ABOUTME: Body mass index and its four-band classification.
package metabolic

import "github.com/harperreed/anamnesis/internal/models"

// BMI returns weight / height², with height given in centimetres.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return weightKg / (m * m)
}

// ClassifyBMI maps a BMI to its band.
func ClassifyBMI(bmi float64) models.BMIClass {
	switch {
	case bmi < 18.5:
		return models.BMIUnderweight
	case bmi < 25:
		return models.BMINormal
	case bmi < 30:
		return models.BMIOverweight
	default:
		return models.BMIObese
	}
}
