package nutrition

import (
	"math"
	"strconv"

	"github.com/platewise/backend/internal/domain"
)

// LabelRow is one line of a nutrition facts label
type LabelRow struct {
	Label     string             `json:"label"`
	Key       domain.NutrientKey `json:"key"`
	Indent    int                `json:"indent"`
	Value     string             `json:"value"`
	Unit      domain.Unit        `json:"unit"`
	PercentDV *int               `json:"percentDailyValue"`
}

// Label is a rendered nutrition facts label for one serving
type Label struct {
	Name     string     `json:"name,omitempty"`
	Brand    string     `json:"brand,omitempty"`
	Serving  string     `json:"serving"`
	Calories string     `json:"calories"`
	Rows     []LabelRow `json:"rows"`
}

type labelLine struct {
	label  string
	key    domain.NutrientKey
	indent int
	showDV bool
}

// labelLines follows the US nutrition facts layout. Trans fat and total
// sugars have no daily value and never show one.
var labelLines = []labelLine{
	{"Total Fat", domain.Fat, 0, true},
	{"Saturated Fat", domain.SaturatedFat, 1, true},
	{"Trans Fat", domain.TransFat, 1, false},
	{"Cholesterol", domain.Cholesterol, 0, true},
	{"Sodium", domain.Sodium, 0, true},
	{"Total Carbohydrate", domain.Carbohydrates, 0, true},
	{"Dietary Fiber", domain.Fiber, 1, true},
	{"Total Sugars", domain.Sugars, 1, false},
	{"Includes Added Sugars", domain.SugarsAdded, 2, true},
	{"Protein", domain.Proteins, 0, true},
	{"Vitamin D", domain.VitaminD, 0, true},
	{"Calcium", domain.Calcium, 0, true},
	{"Iron", domain.Iron, 0, true},
	{"Potassium", domain.Potassium, 0, true},
}

// BuildLabel renders a nutrient map as a nutrition facts label. Values use
// the bounded-precision rule; calories are rounded to whole kcal.
func BuildLabel(name, brand, serving string, nutrients domain.NutrientMap) Label {
	label := Label{
		Name:     name,
		Brand:    brand,
		Serving:  serving,
		Calories: Placeholder,
		Rows:     make([]LabelRow, 0, len(labelLines)),
	}
	if label.Serving == "" {
		label.Serving = Placeholder
	}

	if kcal := nutrients.Get(domain.EnergyKcal); kcal != nil && !math.IsNaN(*kcal) && !math.IsInf(*kcal, 0) {
		label.Calories = strconv.FormatFloat(math.Floor(*kcal+0.5), 'f', 0, 64)
	}

	for _, line := range labelLines {
		amount := nutrients.Get(line.key)
		row := LabelRow{
			Label:  line.label,
			Key:    line.key,
			Indent: line.indent,
			Value:  FormatPrecise(amount),
			Unit:   line.key.Unit(),
		}
		if line.showDV {
			row.PercentDV = PercentDaily(line.key, amount)
		}
		label.Rows = append(label.Rows, row)
	}
	return label
}

// CardValue is a nutrient rendered for a summary card
type CardValue struct {
	Key   domain.NutrientKey `json:"key"`
	Value string             `json:"value"`
	Unit  domain.Unit        `json:"unit"`
}

// CardValues renders the given keys with the whole-vs-one-decimal rule
func CardValues(nutrients domain.NutrientMap, keys []domain.NutrientKey) []CardValue {
	out := make([]CardValue, 0, len(keys))
	for _, key := range keys {
		out = append(out, CardValue{
			Key:   key,
			Value: FormatWhole(nutrients.Get(key)),
			Unit:  key.Unit(),
		})
	}
	return out
}
