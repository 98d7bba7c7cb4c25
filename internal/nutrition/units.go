// Package nutrition reconciles barcode, manual and recipe nutrition data into
// the canonical nutrient map, and holds the daily-value and display rules
// shared by every consumer of that map.
//
// Everything in this package is pure: no I/O, no shared mutable state.
package nutrition

// AsGrams passes a gram-denominated amount through unchanged.
// Energy uses it too, since kcal needs no scaling.
func AsGrams(x *float64) *float64 {
	if x == nil {
		return nil
	}
	v := *x
	return &v
}

// AsMilligrams converts grams to milligrams
func AsMilligrams(x *float64) *float64 {
	return scale(x, 1000)
}

// AsMicrograms converts grams to micrograms
func AsMicrograms(x *float64) *float64 {
	return scale(x, 1_000_000)
}

func scale(x *float64, factor float64) *float64 {
	if x == nil {
		return nil
	}
	v := *x * factor
	return &v
}
