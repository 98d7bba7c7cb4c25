package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platewise/backend/internal/domain"
)

func TestFormatWhole(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"whole", domain.Amount(2.0), "2"},
		{"one decimal", domain.Amount(2.5), "2.5"},
		{"rounds to one decimal", domain.Amount(2.47), "2.5"},
		{"tie rounds up", domain.Amount(2.25), "2.3"},
		{"zero", domain.Amount(0), "0"},
		{"large whole", domain.Amount(2300), "2300"},
		{"nil", nil, "—"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWhole(tt.in))
		})
	}
}

func TestFormatPrecise(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"whole keeps no decimals", domain.Amount(12), "12"},
		{"one decimal kept", domain.Amount(3.1), "3.1"},
		{"two decimals kept", domain.Amount(2.25), "2.25"},
		{"capped at two", domain.Amount(1.23456), "1.23"},
		{"binary noise capped", domain.Amount(0.1 + 0.2), "0.30"},
		{"exact value rounds down", domain.Amount(1.005), "1.00"},
		{"nil", nil, "—"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrecise(tt.in))
		})
	}
}

func TestFormatPreciseString(t *testing.T) {
	assert.Equal(t, "2.50", FormatPreciseString("2.50"))
	assert.Equal(t, "2.5", FormatPreciseString("2.5"))
	assert.Equal(t, "7", FormatPreciseString("7"))
	assert.Equal(t, "0.33", FormatPreciseString("0.3333"))
	assert.Equal(t, "—", FormatPreciseString("n/a"))
}

func TestFormatRulesDiffer(t *testing.T) {
	v := domain.Amount(1.25)

	assert.Equal(t, "1.3", FormatWhole(v))
	assert.Equal(t, "1.25", FormatPrecise(v))
}

func TestFormatTotal(t *testing.T) {
	assert.Equal(t, "1843", FormatTotal(domain.EnergyKcal, domain.Amount(1842.6)))
	assert.Equal(t, "12.0", FormatTotal(domain.Fat, domain.Amount(12)))
	assert.Equal(t, "0.0", FormatTotal(domain.Sodium, nil))
	assert.Equal(t, "0", FormatTotal(domain.EnergyKcal, nil))
}
