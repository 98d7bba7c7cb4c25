package domain

import "time"

// RecipeCategory is a preset recipe filter. Param and Value are the catalog
// search parameter the category applies.
type RecipeCategory struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Param string `json:"param"`
	Value string `json:"value"`
}

// DefaultRecipeCategory is browsed when no known category is asked for
var DefaultRecipeCategory = RecipeCategory{Key: "default", Label: "Healthy", Param: "diet", Value: "healthy"}

var recipeCategories = []RecipeCategory{
	{Key: "high_protein", Label: "High Protein", Param: "minProtein", Value: "20"},
	{Key: "low_cal", Label: "Low Calorie", Param: "maxCalories", Value: "400"},
	{Key: "low_carb", Label: "Low Carb", Param: "maxCarbs", Value: "20"},
	{Key: "high_fiber", Label: "High Fiber", Param: "minFiber", Value: "5"},
	{Key: "vegan", Label: "Vegan", Param: "diet", Value: "vegan"},
	{Key: "gluten_free", Label: "Gluten-Free", Param: "glutenFree", Value: "true"},
	{Key: "dairy_free", Label: "Dairy-Free", Param: "dairyFree", Value: "true"},
	{Key: "under_15_min", Label: "Under 15 Min", Param: "maxReadyTime", Value: "15"},
}

// RecipeCategories returns the preset categories in display order
func RecipeCategories() []RecipeCategory {
	out := make([]RecipeCategory, len(recipeCategories))
	copy(out, recipeCategories)
	return out
}

// LookupRecipeCategory returns the category for key. Unknown and empty keys
// resolve to DefaultRecipeCategory with ok false.
func LookupRecipeCategory(key string) (RecipeCategory, bool) {
	for _, c := range recipeCategories {
		if c.Key == key {
			return c, true
		}
	}
	return DefaultRecipeCategory, false
}

// RecipeList is one category's browse results as cached
type RecipeList struct {
	Category string     `json:"category"`
	Recipes  []Recipe   `json:"recipes"`
	Cached   bool       `json:"cached"`
	CachedAt *time.Time `json:"cachedAt,omitempty"`
}

// RecipeListResponse is the catalog search response when recipe
// information is requested along with the hits
type RecipeListResponse struct {
	Results      []Recipe `json:"results"`
	TotalResults int      `json:"totalResults"`
}
