package nutrition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/domain"
)

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name      string
		amount    *float64
		reference *float64
		want      *int
	}{
		{"rounds to nearest", domain.Amount(9), domain.Amount(78), intPtr(12)},
		{"half rounds up", domain.Amount(1), domain.Amount(200), intPtr(1)},
		{"exceeds 100 unclamped", domain.Amount(4600), domain.Amount(2300), intPtr(200)},
		{"zero amount", domain.Amount(0), domain.Amount(78), intPtr(0)},
		{"nil amount", nil, domain.Amount(78), nil},
		{"nil reference", domain.Amount(9), nil, nil},
		{"zero reference", domain.Amount(9), domain.Amount(0), nil},
		{"NaN reference", domain.Amount(9), domain.Amount(math.NaN()), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentOf(tt.amount, tt.reference)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestPercentDaily(t *testing.T) {
	got := PercentDaily(domain.Sodium, domain.Amount(460))
	require.NotNil(t, got)
	assert.Equal(t, 20, *got)

	assert.Nil(t, PercentDaily(domain.EnergyKcal, domain.Amount(500)), "energy has no daily value")
	assert.Nil(t, PercentDaily(domain.Sugars, domain.Amount(10)), "total sugars have no daily value")
	assert.Nil(t, PercentDaily(domain.Fat, nil))
}

func TestGoalProgress(t *testing.T) {
	assert.InDelta(t, 50, GoalProgress(domain.Amount(25), 50), 1e-9)
	assert.InDelta(t, 100, GoalProgress(domain.Amount(80), 50), 1e-9)
	assert.InDelta(t, 0, GoalProgress(nil, 50), 1e-9)
	assert.InDelta(t, 0, GoalProgress(domain.Amount(10), 0), 1e-9)
	assert.InDelta(t, 0, GoalProgress(domain.Amount(-5), 50), 1e-9)
}

func intPtr(v int) *int {
	return &v
}
