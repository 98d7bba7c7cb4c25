package domain

// OFFProduct is the subset of an OpenFoodFacts product record the normalizer
// reads. Nutriments are keyed by "<nutrient>_100g" and "<nutrient>_serving".
type OFFProduct struct {
	Code        string         `json:"code,omitempty"`
	ProductName string         `json:"product_name,omitempty"`
	Brands      string         `json:"brands,omitempty"`
	ServingSize string         `json:"serving_size,omitempty"`
	Nutriments  map[string]any `json:"nutriments"`
}

// OFFProductResponse is the envelope returned by the OpenFoodFacts product API
type OFFProductResponse struct {
	Code          string      `json:"code"`
	Status        int         `json:"status"`
	StatusVerbose string      `json:"status_verbose,omitempty"`
	Product       *OFFProduct `json:"product,omitempty"`
}

// ManualEntry is the manual food entry form. All amounts arrive as text.
type ManualEntry struct {
	Name      string `json:"name,omitempty"`
	Brand     string `json:"brand,omitempty"`
	Serving   string `json:"serving,omitempty"`
	Calories  string `json:"calories"`
	Fat       string `json:"fat"`
	Sugars    string `json:"sugars"`
	SodiumMg  string `json:"sodiumMg"`
	Protein   string `json:"protein"`
	Fiber     string `json:"fiber"`
	CalciumMg string `json:"calciumMg"`
	IronMg    string `json:"ironMg"`
}

// Recipe is a recipe payload from the recipe catalog API
type Recipe struct {
	ID             int              `json:"id"`
	Title          string           `json:"title"`
	Image          string           `json:"image,omitempty"`
	Servings       int              `json:"servings,omitempty"`
	ReadyInMinutes int              `json:"readyInMinutes,omitempty"`
	SourceURL      string           `json:"sourceUrl,omitempty"`
	Nutrition      *RecipeNutrition `json:"nutrition,omitempty"`
}

// RecipeNutrition holds the per-serving nutrient list of a recipe
type RecipeNutrition struct {
	Nutrients []RecipeNutrient `json:"nutrients"`
}

// RecipeNutrient is a single named nutrient amount of a recipe
type RecipeNutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit,omitempty"`
}

// RecipeSummary is a search hit from the recipe catalog
type RecipeSummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

// RecipeSearchResponse represents the response from the recipe search API
type RecipeSearchResponse struct {
	Results      []RecipeSummary `json:"results"`
	Offset       int             `json:"offset"`
	Number       int             `json:"number"`
	TotalResults int             `json:"totalResults"`
}
