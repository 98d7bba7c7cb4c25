package nutrition

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/platewise/backend/internal/domain"
)

var (
	// servingGramsPattern finds the first gram quantity in a free-text serving size, e.g. "1 bar (40 g)"
	servingGramsPattern = regexp.MustCompile(`(?i)([\d.]+)\s*g`)

	// leadingNumberPattern matches the numeric prefix of a string the way parseFloat-style parsers do
	leadingNumberPattern = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
)

// ParseServingGrams extracts the gram quantity from a serving size text.
// Text without a gram amount ("1 piece") reports ok=false; it is never guessed.
func ParseServingGrams(servingSize string) (float64, bool) {
	match := servingGramsPattern.FindStringSubmatch(servingSize)
	if match == nil {
		return 0, false
	}
	return parseLeadingNumber(match[1])
}

// PerServing resolves the per-serving amount of a nutriment in the source's
// native unit. A direct "<name>_serving" value wins; otherwise "<name>_100g"
// is scaled by the gram quantity of the serving size. Returns nil when
// neither is available.
func PerServing(product *domain.OFFProduct, name string) *float64 {
	if product == nil {
		return nil
	}

	if v, ok := nutrimentValue(product.Nutriments, name+"_serving"); ok {
		return &v
	}

	per100g, ok := nutrimentValue(product.Nutriments, name+"_100g")
	if !ok || product.ServingSize == "" {
		return nil
	}

	grams, ok := ParseServingGrams(product.ServingSize)
	if !ok {
		return nil
	}

	v := per100g * (grams / 100)
	return &v
}

// nutrimentValue coerces a nutriments entry to a number. OpenFoodFacts mostly
// ships numbers but occasionally numeric strings; anything else, blank
// strings included, is missing.
func nutrimentValue(nutriments map[string]any, key string) (float64, bool) {
	raw, ok := nutriments[key]
	if !ok || raw == nil {
		return 0, false
	}

	var v float64
	switch x := raw.(type) {
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int64:
		v = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseLeadingNumber parses the longest numeric prefix of s, ignoring leading whitespace
func parseLeadingNumber(s string) (float64, bool) {
	prefix := leadingNumberPattern.FindString(strings.TrimLeft(s, " \t\n\r"))
	if prefix == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
