// Package analysis holds the severity-scoring arithmetic: mapping a
// classifier judgment to a 1-5 score and blending it with the
// reporter's own estimate.
package analysis

import (
	"math"
	"strings"

	"crimewatch/backend/internal/classifier"
	"crimewatch/backend/internal/config"
)

// DetermineSeverity maps the judgment's urgency level to a score:
// "Very High"/"Critical" → 5, "High" → 4, "Medium" → 3, "Low" → 2,
// "Very Low" → 1. Anything unrecognized defaults to 3.
func DetermineSeverity(j *classifier.Judgment) int {
	if j == nil {
		return 3
	}
	urgency := j.UrgencyLevel

	switch {
	case strings.Contains(urgency, "High"):
		if strings.Contains(urgency, "Very") || strings.Contains(urgency, "Critical") {
			return 5
		}
		return 4
	case strings.Contains(urgency, "Critical"):
		return 5
	case strings.Contains(urgency, "Low"):
		if strings.Contains(urgency, "Very") {
			return 1
		}
		return 2
	default:
		return 3
	}
}

// CombineSeverity blends the user's and the model's scores with the
// given user weight, rounds half away from zero, and clamps to [1,5].
// Pure and total: any inputs produce a valid score.
func CombineSeverity(userSeverity, modelSeverity int, userWeight float64) int {
	combined := float64(userSeverity)*userWeight + float64(modelSeverity)*(1-userWeight)
	return Clamp(int(math.Round(combined)), config.MinSeverity, config.MaxSeverity)
}

// Clamp constrains v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
