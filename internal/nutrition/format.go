package nutrition

import (
	"math"
	"strconv"
	"strings"

	"github.com/platewise/backend/internal/domain"
)

// Placeholder is rendered in place of an unknown amount
const Placeholder = "—"

// maxLabelDecimals caps the precision used on the nutrition facts label
const maxLabelDecimals = 2

// FormatWhole renders whole numbers without decimals and anything else with
// exactly one decimal. Used on nutrient cards and ring values.
func FormatWhole(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return Placeholder
	}
	if *v == math.Trunc(*v) {
		return toFixed(*v, 0)
	}
	return toFixed(*v, 1)
}

// FormatPrecise renders v with the number of decimals its source value
// carried, capped at two. Used on the nutrition facts label, where the
// precision the data source reported is kept rather than forced.
func FormatPrecise(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return Placeholder
	}
	return toFixed(*v, min(sourceDecimals(*v), maxLabelDecimals))
}

// FormatPreciseString applies the FormatPrecise rule to a raw source string,
// counting the decimals as written. Unparseable text renders the placeholder.
func FormatPreciseString(raw string) string {
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	return toFixed(v, min(decimalsIn(raw), maxLabelDecimals))
}

// FormatTotal renders a daily intake total: energy as a whole number, every
// other nutrient with one decimal. Unknown totals count as zero.
func FormatTotal(key domain.NutrientKey, v *float64) string {
	var total float64
	if v != nil {
		total = *v
	}
	if key == domain.EnergyKcal {
		return strconv.FormatFloat(math.Floor(total+0.5), 'f', 0, 64)
	}
	return toFixed(total, 1)
}

// sourceDecimals counts the decimals of the shortest text that round-trips
// v, using exponent notation for very small and very large magnitudes.
func sourceDecimals(v float64) int {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return decimalsIn(strconv.FormatFloat(v, 'e', -1, 64))
	}
	return decimalsIn(strconv.FormatFloat(v, 'f', -1, 64))
}

// decimalsIn counts characters after the decimal point
func decimalsIn(s string) int {
	idx := strings.IndexByte(s, '.')
	if idx < 0 {
		return 0
	}
	return len(s) - idx - 1
}

// toFixed renders v with exactly digits decimals, rounding the exact binary
// value half up. strconv rounds ties to even, which would render 2.25 as "2.2".
func toFixed(v float64, digits int) string {
	neg := v < 0
	exact := strconv.FormatFloat(math.Abs(v), 'f', 1074, 64)
	point := strings.IndexByte(exact, '.')
	whole, frac := exact[:point], exact[point+1:]

	kept := []byte(whole + frac[:digits])
	if frac[digits] >= '5' {
		kept = incrementDigits(kept)
	}

	intLen := len(kept) - digits
	out := string(kept[:intLen])
	if digits > 0 {
		out += "." + string(kept[intLen:])
	}
	if neg {
		out = "-" + out
	}
	return out
}

// incrementDigits adds one to a decimal digit string, growing it on carry
func incrementDigits(d []byte) []byte {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i] < '9' {
			d[i]++
			return d
		}
		d[i] = '0'
	}
	return append([]byte{'1'}, d...)
}
