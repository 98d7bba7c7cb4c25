package nutrition

import (
	"math"

	"github.com/platewise/backend/internal/domain"
)

// PercentOf returns amount as a whole percentage of reference, rounding
// halves up. It returns nil when either side is unknown or the reference is
// zero or not finite. The result is never clamped.
func PercentOf(amount, reference *float64) *int {
	if amount == nil || reference == nil {
		return nil
	}
	ref := *reference
	if ref == 0 || math.IsNaN(ref) || math.IsInf(ref, 0) {
		return nil
	}

	pct := math.Floor(*amount/ref*100 + 0.5)
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return nil
	}
	v := int(pct)
	return &v
}

// PercentDaily returns amount as a percentage of the key's daily value.
// Keys without a daily value return nil.
func PercentDaily(key domain.NutrientKey, amount *float64) *int {
	ref, ok := domain.DailyValue(key)
	if !ok {
		return nil
	}
	return PercentOf(amount, &ref)
}

// GoalProgress returns how far current is towards goal as a percentage in
// [0, 100], for progress rings. A missing current amount counts as zero.
func GoalProgress(current *float64, goal float64) float64 {
	if goal <= 0 || math.IsNaN(goal) || math.IsInf(goal, 0) {
		return 0
	}
	var c float64
	if current != nil {
		c = *current
	}
	return math.Max(0, math.Min(c/goal*100, 100))
}
