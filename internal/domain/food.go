package domain

import "time"

// NormalizedFood is a food resolved from a data source with its nutrients
// in canonical form, per serving
type NormalizedFood struct {
	Source    EntrySource `json:"source"`
	Reference string      `json:"reference,omitempty"`
	Name      string      `json:"name"`
	Brand     string      `json:"brand,omitempty"`
	Serving   string      `json:"serving,omitempty"`
	Nutrients NutrientMap `json:"nutrients"`
	Cached    bool        `json:"cached"`
	CachedAt  *time.Time  `json:"cachedAt,omitempty"`
}
