package domain

import (
	"fmt"
	"time"
)

// EntrySource records where a logged food came from
type EntrySource string

// Entry sources
const (
	SourceManual  EntrySource = "manual"
	SourceBarcode EntrySource = "barcode"
	SourceRecipe  EntrySource = "recipe"
)

// Valid reports whether s is a known entry source
func (s EntrySource) Valid() bool {
	switch s {
	case SourceManual, SourceBarcode, SourceRecipe:
		return true
	}
	return false
}

// DateLayout is the layout of intake log dates (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// IntakeEntry is one food logged to a day's intake
type IntakeEntry struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Brand     string      `json:"brand,omitempty"`
	Serving   string      `json:"serving,omitempty"`
	Source    EntrySource `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
	Date      string      `json:"date"`
	Nutrients NutrientMap `json:"nutrients"`
}

// DailyIntake groups the entries logged on one date
type DailyIntake struct {
	Date    string        `json:"date"`
	Entries []IntakeEntry `json:"entries"`
}

// FormatDate renders t as an intake log date in t's location
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate validates an intake log date and returns it in canonical form
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidRequest, s)
	}
	return FormatDate(t), nil
}

// DaySummary is a day's intake totals measured against the user's goals
type DaySummary struct {
	Date      string                 `json:"date"`
	Entries   int                    `json:"entries"`
	Totals    NutrientMap            `json:"totals"`
	Formatted map[NutrientKey]string `json:"formatted"`
	Progress  []GoalProgress         `json:"progress"`
}

// GoalProgress is one progress ring: the total against its goal, clamped
// to [0, 100] percent
type GoalProgress struct {
	Key     NutrientKey `json:"key"`
	Unit    Unit        `json:"unit"`
	Current string      `json:"current"`
	Goal    float64     `json:"goal"`
	Percent float64     `json:"percent"`
}
