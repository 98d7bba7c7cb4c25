package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/domain"
)

func TestBuildLabel(t *testing.T) {
	nutrients := domain.NewNutrientMap()
	nutrients[domain.EnergyKcal] = domain.Amount(189.6)
	nutrients[domain.Fat] = domain.Amount(9)
	nutrients[domain.TransFat] = domain.Amount(0)
	nutrients[domain.Sodium] = domain.Amount(115.25)
	nutrients[domain.Sugars] = domain.Amount(12)

	label := BuildLabel("Granola Bar", "Acme", "1 bar (40 g)", nutrients)

	assert.Equal(t, "Granola Bar", label.Name)
	assert.Equal(t, "190", label.Calories)
	require.Len(t, label.Rows, 14)

	rows := make(map[domain.NutrientKey]LabelRow, len(label.Rows))
	for _, row := range label.Rows {
		rows[row.Key] = row
	}

	fat := rows[domain.Fat]
	assert.Equal(t, "Total Fat", fat.Label)
	assert.Equal(t, "9", fat.Value)
	assert.Equal(t, domain.UnitGram, fat.Unit)
	require.NotNil(t, fat.PercentDV)
	assert.Equal(t, 12, *fat.PercentDV)

	sodium := rows[domain.Sodium]
	assert.Equal(t, "115.25", sodium.Value)
	require.NotNil(t, sodium.PercentDV)
	assert.Equal(t, 5, *sodium.PercentDV)

	assert.Nil(t, rows[domain.TransFat].PercentDV)
	assert.Equal(t, "0", rows[domain.TransFat].Value)
	assert.Nil(t, rows[domain.Sugars].PercentDV)

	cholesterol := rows[domain.Cholesterol]
	assert.Equal(t, "—", cholesterol.Value)
	assert.Nil(t, cholesterol.PercentDV)

	assert.Equal(t, 2, rows[domain.SugarsAdded].Indent)
}

func TestBuildLabel_Empty(t *testing.T) {
	label := BuildLabel("", "", "", domain.NewNutrientMap())

	assert.Equal(t, "—", label.Calories)
	assert.Equal(t, "—", label.Serving)
	for _, row := range label.Rows {
		assert.Equal(t, "—", row.Value)
		assert.Nil(t, row.PercentDV)
	}
}

func TestCardValues(t *testing.T) {
	nutrients := domain.NewNutrientMap()
	nutrients[domain.Proteins] = domain.Amount(21)
	nutrients[domain.Iron] = domain.Amount(2.46)

	got := CardValues(nutrients, []domain.NutrientKey{domain.Proteins, domain.Iron, domain.Calcium})

	assert.Equal(t, []CardValue{
		{Key: domain.Proteins, Value: "21", Unit: domain.UnitGram},
		{Key: domain.Iron, Value: "2.5", Unit: domain.UnitMilligram},
		{Key: domain.Calcium, Value: "—", Unit: domain.UnitMilligram},
	}, got)
}
