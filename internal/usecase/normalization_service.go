package usecase

import (
	"fmt"

	"github.com/platewise/backend/internal/domain"
	"github.com/platewise/backend/internal/nutrition"
)

// Normalized is a normalized food together with its nutrition facts label
type Normalized struct {
	Food  *domain.NormalizedFood `json:"food"`
	Label nutrition.Label        `json:"label"`
}

// LabelRequest asks for a label over an already normalized nutrient map
type LabelRequest struct {
	Name      string             `json:"name"`
	Brand     string             `json:"brand"`
	Serving   string             `json:"serving"`
	Nutrients domain.NutrientMap `json:"nutrients"`
}

// NormalizationService normalizes payloads posted by clients that already
// hold the source record
type NormalizationService struct {
	coerce nutrition.Coercer
}

// NewNormalizationService creates a normalization service. A nil coercer
// uses nutrition.ParseManualNumber for manual entries.
func NewNormalizationService(coerce nutrition.Coercer) *NormalizationService {
	if coerce == nil {
		coerce = nutrition.ParseManualNumber
	}
	return &NormalizationService{coerce: coerce}
}

// NormalizeProduct normalizes an OpenFoodFacts product record
func (s *NormalizationService) NormalizeProduct(product *domain.OFFProduct) (*Normalized, error) {
	if product == nil {
		return nil, fmt.Errorf("%w: product is required", domain.ErrInvalidRequest)
	}
	return withLabel(FoodFromProduct(product)), nil
}

// NormalizeManual normalizes a manual entry form
func (s *NormalizationService) NormalizeManual(entry domain.ManualEntry) *Normalized {
	food := &domain.NormalizedFood{
		Source:    domain.SourceManual,
		Name:      entry.Name,
		Brand:     entry.Brand,
		Serving:   entry.Serving,
		Nutrients: nutrition.FromManual(entry, s.coerce),
	}
	return withLabel(food)
}

// NormalizeRecipe normalizes a recipe payload
func (s *NormalizationService) NormalizeRecipe(recipe *domain.Recipe) (*Normalized, error) {
	if recipe == nil {
		return nil, fmt.Errorf("%w: recipe is required", domain.ErrInvalidRequest)
	}
	return withLabel(FoodFromRecipe(recipe)), nil
}

// Label renders a label for a nutrient map. Unknown keys are dropped and
// absent canonical keys are treated as missing.
func (s *NormalizationService) Label(req LabelRequest) nutrition.Label {
	return nutrition.BuildLabel(req.Name, req.Brand, req.Serving, req.Nutrients.Clone())
}

func withLabel(food *domain.NormalizedFood) *Normalized {
	return &Normalized{
		Food:  food,
		Label: LabelFor(food),
	}
}

// LabelFor builds the nutrition facts label of a normalized food
func LabelFor(food *domain.NormalizedFood) nutrition.Label {
	return nutrition.BuildLabel(food.Name, food.Brand, food.Serving, food.Nutrients)
}
