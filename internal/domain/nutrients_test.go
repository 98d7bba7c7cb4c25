package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalKeys(t *testing.T) {
	require.Len(t, CanonicalKeys, 15)

	seen := make(map[NutrientKey]bool)
	for _, key := range CanonicalKeys {
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
		assert.True(t, key.Valid())
		assert.NotEmpty(t, key.Unit(), key)
	}
}

func TestNutrientKey_Unit(t *testing.T) {
	tests := []struct {
		key  NutrientKey
		want Unit
	}{
		{EnergyKcal, UnitKcal},
		{Fat, UnitGram},
		{SugarsAdded, UnitGram},
		{Cholesterol, UnitMilligram},
		{Sodium, UnitMilligram},
		{Potassium, UnitMilligram},
		{VitaminD, UnitMicrogram},
		{"salt", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Unit())
		})
	}
	assert.False(t, NutrientKey("salt").Valid())
}

func TestNewNutrientMap(t *testing.T) {
	m := NewNutrientMap()

	require.Len(t, m, len(CanonicalKeys))
	for _, key := range CanonicalKeys {
		v, ok := m[key]
		assert.True(t, ok, key)
		assert.Nil(t, v, key)
	}
}

func TestNutrientMap_JSONKeepsNulls(t *testing.T) {
	m := NewNutrientMap()
	m[Fat] = Amount(0)

	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded, len(CanonicalKeys))
	assert.Equal(t, 0.0, decoded["fat"])
	assert.Contains(t, decoded, "iron")
	assert.Nil(t, decoded["iron"])
}

func TestNutrientMap_Clone(t *testing.T) {
	src := NutrientMap{Fat: Amount(3), "bogus": Amount(1)}

	clone := src.Clone()
	*src[Fat] = 99

	assert.Len(t, clone, len(CanonicalKeys))
	assert.Equal(t, 3.0, *clone.Get(Fat))
	assert.NotContains(t, clone, NutrientKey("bogus"))
	assert.Nil(t, clone.Get(Iron))

	var empty NutrientMap
	assert.Len(t, empty.Clone(), len(CanonicalKeys))
}
