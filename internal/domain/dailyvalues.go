package domain

// dailyValues are the reference daily intakes for a 2000 kcal diet, in each
// key's canonical unit. Nutrients without a reference have no %DV.
var dailyValues = map[NutrientKey]float64{
	Fat:           78,
	SaturatedFat:  20,
	Cholesterol:   300,
	Sodium:        2300,
	Carbohydrates: 275,
	Fiber:         28,
	SugarsAdded:   50,
	Proteins:      50,
	VitaminD:      20,
	Calcium:       1300,
	Iron:          18,
	Potassium:     4700,
}

// defaultGoals are the daily intake goals used until the user sets their own.
var defaultGoals = map[NutrientKey]float64{
	Proteins:   50,
	Fiber:      28,
	Calcium:    1300,
	Iron:       18,
	Sugars:     50,
	Fat:        78,
	Sodium:     2300,
	EnergyKcal: 2000,
}

// DailyValue returns the reference daily amount for key
func DailyValue(key NutrientKey) (float64, bool) {
	v, ok := dailyValues[key]
	return v, ok
}

// DailyValues returns a copy of the daily value reference table
func DailyValues() map[NutrientKey]float64 {
	out := make(map[NutrientKey]float64, len(dailyValues))
	for k, v := range dailyValues {
		out[k] = v
	}
	return out
}

// Goals maps a nutrient to a daily intake target in its canonical unit
type Goals map[NutrientKey]float64

// DefaultGoals returns a fresh copy of the default daily goals
func DefaultGoals() Goals {
	out := make(Goals, len(defaultGoals))
	for k, v := range defaultGoals {
		out[k] = v
	}
	return out
}
