package domain

// NutrientKey identifies one of the canonical nutrients every data source is
// normalized to. Keys are stable identifiers, not display names.
type NutrientKey string

// Canonical nutrient keys
const (
	EnergyKcal    NutrientKey = "energy-kcal"
	Fat           NutrientKey = "fat"
	SaturatedFat  NutrientKey = "saturated-fat"
	TransFat      NutrientKey = "trans-fat"
	Cholesterol   NutrientKey = "cholesterol"
	Sodium        NutrientKey = "sodium"
	Carbohydrates NutrientKey = "carbohydrates"
	Fiber         NutrientKey = "fiber"
	Sugars        NutrientKey = "sugars"
	SugarsAdded   NutrientKey = "sugars-added"
	Proteins      NutrientKey = "proteins"
	VitaminD      NutrientKey = "vitamin-d"
	Calcium       NutrientKey = "calcium"
	Iron          NutrientKey = "iron"
	Potassium     NutrientKey = "potassium"
)

// Unit is the fixed unit a canonical nutrient amount is expressed in
type Unit string

// Units used by the canonical schema
const (
	UnitKcal      Unit = "kcal"
	UnitGram      Unit = "g"
	UnitMilligram Unit = "mg"
	UnitMicrogram Unit = "mcg"
)

// CanonicalKeys lists every canonical nutrient in nutrition-label order.
var CanonicalKeys = []NutrientKey{
	EnergyKcal,
	Fat,
	SaturatedFat,
	TransFat,
	Cholesterol,
	Sodium,
	Carbohydrates,
	Fiber,
	Sugars,
	SugarsAdded,
	Proteins,
	VitaminD,
	Calcium,
	Iron,
	Potassium,
}

var nutrientUnits = map[NutrientKey]Unit{
	EnergyKcal:    UnitKcal,
	Fat:           UnitGram,
	SaturatedFat:  UnitGram,
	TransFat:      UnitGram,
	Cholesterol:   UnitMilligram,
	Sodium:        UnitMilligram,
	Carbohydrates: UnitGram,
	Fiber:         UnitGram,
	Sugars:        UnitGram,
	SugarsAdded:   UnitGram,
	Proteins:      UnitGram,
	VitaminD:      UnitMicrogram,
	Calcium:       UnitMilligram,
	Iron:          UnitMilligram,
	Potassium:     UnitMilligram,
}

// Unit returns the canonical unit for the key. Unknown keys return "".
func (k NutrientKey) Unit() Unit {
	return nutrientUnits[k]
}

// Valid reports whether k is one of the canonical keys
func (k NutrientKey) Valid() bool {
	_, ok := nutrientUnits[k]
	return ok
}

// NutrientMap maps each canonical key to an amount in the key's unit.
// A nil amount means the value is unknown; zero means measured as zero.
type NutrientMap map[NutrientKey]*float64

// NewNutrientMap returns a map holding every canonical key with a nil amount.
func NewNutrientMap() NutrientMap {
	m := make(NutrientMap, len(CanonicalKeys))
	for _, key := range CanonicalKeys {
		m[key] = nil
	}
	return m
}

// Get returns the amount for key, or nil when unknown
func (m NutrientMap) Get(key NutrientKey) *float64 {
	return m[key]
}

// Clone returns a deep copy so callers never share amount pointers
func (m NutrientMap) Clone() NutrientMap {
	out := NewNutrientMap()
	for key, v := range m {
		if !key.Valid() {
			continue
		}
		if v != nil {
			out[key] = Amount(*v)
		}
	}
	return out
}

// Amount returns a pointer to v, for building nutrient maps
func Amount(v float64) *float64 {
	return &v
}
