package nutrition

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/platewise/backend/internal/domain"
)

// saltToSodium is the mass fraction of sodium in table salt
const saltToSodium = 0.4

// extractor pulls one candidate amount for a nutrient out of a product
type extractor func(product *domain.OFFProduct) *float64

// offField describes how one canonical key is derived from an OpenFoodFacts
// product: candidates are tried in order and the first non-nil amount is
// converted to the canonical unit.
type offField struct {
	key        domain.NutrientKey
	candidates []extractor
	convert    func(*float64) *float64
}

func serving(name string) extractor {
	return func(product *domain.OFFProduct) *float64 {
		return PerServing(product, name)
	}
}

func scaled(ex extractor, factor float64) extractor {
	return func(product *domain.OFFProduct) *float64 {
		return scale(ex(product), factor)
	}
}

// offFields covers every canonical key. Sodium falls back to salt only when
// no sodium value can be resolved at all.
var offFields = []offField{
	{domain.EnergyKcal, []extractor{serving("energy-kcal")}, AsGrams},
	{domain.Fat, []extractor{serving("fat")}, AsGrams},
	{domain.SaturatedFat, []extractor{serving("saturated-fat")}, AsGrams},
	{domain.TransFat, []extractor{serving("trans-fat")}, AsGrams},
	{domain.Cholesterol, []extractor{serving("cholesterol")}, AsMilligrams},
	{domain.Sodium, []extractor{serving("sodium"), scaled(serving("salt"), saltToSodium)}, AsMilligrams},
	{domain.Carbohydrates, []extractor{serving("carbohydrates")}, AsGrams},
	{domain.Fiber, []extractor{serving("fiber")}, AsGrams},
	{domain.Sugars, []extractor{serving("sugars")}, AsGrams},
	{domain.SugarsAdded, []extractor{serving("sugars-added"), serving("added-sugars")}, AsGrams},
	{domain.Proteins, []extractor{serving("proteins")}, AsGrams},
	{domain.VitaminD, []extractor{serving("vitamin-d")}, AsMicrograms},
	{domain.Calcium, []extractor{serving("calcium")}, AsMilligrams},
	{domain.Iron, []extractor{serving("iron")}, AsMilligrams},
	{domain.Potassium, []extractor{serving("potassium")}, AsMilligrams},
}

// FromOpenFoodFacts normalizes a barcode product record to per-serving
// canonical amounts. Missing upstream values stay nil.
func FromOpenFoodFacts(product *domain.OFFProduct) domain.NutrientMap {
	out := domain.NewNutrientMap()
	for _, field := range offFields {
		out[field.key] = field.convert(firstOf(product, field.candidates))
	}
	return out
}

func firstOf(product *domain.OFFProduct, candidates []extractor) *float64 {
	for _, candidate := range candidates {
		if v := candidate(product); v != nil {
			return v
		}
	}
	return nil
}

// Coercer turns a manual entry text field into a number
type Coercer func(string) float64

// ParseManualNumber is the default Coercer for manual entry. It accepts a
// comma as decimal separator and reads the leading number of the text.
// Blank or unparseable text is 0.
func ParseManualNumber(s string) float64 {
	v, ok := parseLeadingNumber(strings.Replace(s, ",", ".", 1))
	if !ok {
		return 0
	}
	return v
}

// FromManual normalizes the manual entry form. Fields the form does not
// collect are nil, but fields it does collect are never nil: a blank field
// counts as zero, unlike the other normalizers.
func FromManual(form domain.ManualEntry, num Coercer) domain.NutrientMap {
	if num == nil {
		num = ParseManualNumber
	}

	out := domain.NewNutrientMap()
	out[domain.EnergyKcal] = domain.Amount(num(form.Calories))
	out[domain.Fat] = domain.Amount(num(form.Fat))
	out[domain.Sodium] = domain.Amount(num(form.SodiumMg))
	out[domain.Fiber] = domain.Amount(num(form.Fiber))
	out[domain.Sugars] = domain.Amount(num(form.Sugars))
	out[domain.Proteins] = domain.Amount(num(form.Protein))
	out[domain.Calcium] = domain.Amount(num(form.CalciumMg))
	out[domain.Iron] = domain.Amount(num(form.IronMg))
	return out
}

// recipeNames maps the recipe catalog's nutrient names to canonical keys.
// Amounts are already reported in the canonical unit.
var recipeNames = []struct {
	name string
	key  domain.NutrientKey
}{
	{"Calories", domain.EnergyKcal},
	{"Fat", domain.Fat},
	{"Saturated Fat", domain.SaturatedFat},
	{"Trans Fat", domain.TransFat},
	{"Cholesterol", domain.Cholesterol},
	{"Sodium", domain.Sodium},
	{"Carbohydrates", domain.Carbohydrates},
	{"Fiber", domain.Fiber},
	{"Sugar", domain.Sugars},
	{"Added Sugar", domain.SugarsAdded},
	{"Protein", domain.Proteins},
	{"Vitamin D", domain.VitaminD},
	{"Calcium", domain.Calcium},
	{"Iron", domain.Iron},
	{"Potassium", domain.Potassium},
}

// FromRecipe normalizes a recipe payload by case-insensitive exact match on
// nutrient names. The first record with a matching name wins.
func FromRecipe(recipe *domain.Recipe) domain.NutrientMap {
	out := domain.NewNutrientMap()
	if recipe == nil || recipe.Nutrition == nil {
		return out
	}

	// Casers keep state between calls, so each normalization gets its own.
	fold := cases.Fold()
	amounts := make(map[string]float64, len(recipe.Nutrition.Nutrients))
	for _, n := range recipe.Nutrition.Nutrients {
		name := fold.String(n.Name)
		if _, seen := amounts[name]; !seen {
			amounts[name] = n.Amount
		}
	}

	for _, entry := range recipeNames {
		if v, ok := amounts[fold.String(entry.name)]; ok {
			out[entry.key] = domain.Amount(v)
		}
	}
	return out
}
