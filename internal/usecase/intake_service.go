package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/platewise/backend/internal/domain"
	"github.com/platewise/backend/internal/nutrition"
)

const (
	intakeKeyPrefix = "dailyintake:"
	goalsKey        = "goals"
)

// IntakeInput is a food to add to the intake log. A zero Timestamp means
// now; an empty Date is derived from the timestamp.
type IntakeInput struct {
	Name      string             `json:"name"`
	Brand     string             `json:"brand"`
	Serving   string             `json:"serving"`
	Source    domain.EntrySource `json:"source"`
	Timestamp time.Time          `json:"timestamp"`
	Date      string             `json:"date"`
	Nutrients domain.NutrientMap `json:"nutrients"`
}

// IntakeService keeps the per-day intake log and the user's daily goals
type IntakeService struct {
	cache  domain.CacheRepository
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string

	// serializes read-modify-write of a day's entries
	mu sync.Mutex
}

// NewIntakeService creates an intake service backed by cache
func NewIntakeService(cache domain.CacheRepository, logger zerolog.Logger) *IntakeService {
	return &IntakeService{
		cache:  cache,
		logger: logger.With().Str("component", "intake_service").Logger(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

func intakeKey(date string) string {
	return intakeKeyPrefix + date
}

// AddEntry appends a food to the log of its date
func (s *IntakeService) AddEntry(ctx context.Context, in IntakeInput) (*domain.IntakeEntry, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidRequest)
	}
	if !in.Source.Valid() {
		return nil, fmt.Errorf("%w: unknown source %q", domain.ErrInvalidRequest, in.Source)
	}

	ts := in.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	date := domain.FormatDate(ts)
	if in.Date != "" {
		parsed, err := domain.ParseDate(in.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	entry := domain.IntakeEntry{
		ID:        s.newID(),
		Name:      name,
		Brand:     strings.TrimSpace(in.Brand),
		Serving:   strings.TrimSpace(in.Serving),
		Source:    in.Source,
		Timestamp: ts,
		Date:      date,
		Nutrients: in.Nutrients.Clone(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	day, err := s.loadDay(ctx, date)
	if err != nil {
		return nil, err
	}
	day.Entries = append(day.Entries, entry)
	if err := s.cache.Set(ctx, intakeKey(date), day, 0); err != nil {
		return nil, fmt.Errorf("failed to save intake: %w", err)
	}

	s.logger.Debug().Str("date", date).Str("entry_id", entry.ID).Msg("intake entry added")
	return &entry, nil
}

// GetDay returns the entries logged on date, oldest first
func (s *IntakeService) GetDay(ctx context.Context, date string) (*domain.DailyIntake, error) {
	date, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.loadDay(ctx, date)
}

// ResetDay removes every entry logged on date
func (s *IntakeService) ResetDay(ctx context.Context, date string) error {
	date, err := domain.ParseDate(date)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Delete(ctx, intakeKey(date))
}

// Days lists the dates that have a log, oldest first
func (s *IntakeService) Days(ctx context.Context) ([]string, error) {
	keys, err := s.cache.Keys(ctx, intakeKeyPrefix)
	if err != nil {
		return nil, err
	}
	days := make([]string, 0, len(keys))
	for _, key := range keys {
		days = append(days, strings.TrimPrefix(key, intakeKeyPrefix))
	}
	sort.Strings(days)
	return days, nil
}

// History returns every logged day with its entries, oldest first
func (s *IntakeService) History(ctx context.Context) ([]domain.DailyIntake, error) {
	days, err := s.Days(ctx)
	if err != nil {
		return nil, err
	}
	history := make([]domain.DailyIntake, 0, len(days))
	for _, date := range days {
		day, err := s.loadDay(ctx, date)
		if err != nil {
			return nil, err
		}
		history = append(history, *day)
	}
	return history, nil
}

// Summary totals the entries of date and measures them against the goals
func (s *IntakeService) Summary(ctx context.Context, date string) (*domain.DaySummary, error) {
	day, err := s.GetDay(ctx, date)
	if err != nil {
		return nil, err
	}
	goals, err := s.Goals(ctx)
	if err != nil {
		return nil, err
	}

	totals := Totals(day.Entries)
	summary := &domain.DaySummary{
		Date:      day.Date,
		Entries:   len(day.Entries),
		Totals:    totals,
		Formatted: make(map[domain.NutrientKey]string, len(domain.CanonicalKeys)),
		Progress:  Progress(totals, goals),
	}
	for _, key := range domain.CanonicalKeys {
		summary.Formatted[key] = nutrition.FormatTotal(key, totals.Get(key))
	}
	return summary, nil
}

// Goals returns the user's goals, falling back to the defaults for any
// nutrient the user has not set
func (s *IntakeService) Goals(ctx context.Context) (domain.Goals, error) {
	goals := domain.DefaultGoals()

	stored, err := loadCached[domain.Goals](ctx, s.cache, goalsKey)
	if err != nil {
		if isMiss(err) {
			return goals, nil
		}
		return nil, err
	}
	for key, v := range *stored {
		goals[key] = v
	}
	return goals, nil
}

// SetGoals overrides goals for the given nutrients and returns the merged set
func (s *IntakeService) SetGoals(ctx context.Context, update domain.Goals) (domain.Goals, error) {
	if len(update) == 0 {
		return nil, fmt.Errorf("%w: no goals given", domain.ErrInvalidRequest)
	}
	for key, v := range update {
		if !key.Valid() {
			return nil, fmt.Errorf("%w: unknown nutrient %q", domain.ErrInvalidRequest, key)
		}
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: goal for %s must be a positive number", domain.ErrInvalidRequest, key)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	overrides := domain.Goals{}
	stored, err := loadCached[domain.Goals](ctx, s.cache, goalsKey)
	switch {
	case err == nil:
		overrides = *stored
	case !isMiss(err):
		return nil, err
	}
	for key, v := range update {
		overrides[key] = v
	}
	if err := s.cache.Set(ctx, goalsKey, overrides, 0); err != nil {
		return nil, fmt.Errorf("failed to save goals: %w", err)
	}

	goals := domain.DefaultGoals()
	for key, v := range overrides {
		goals[key] = v
	}
	return goals, nil
}

// ResetGoals drops the user's goals so the defaults apply again
func (s *IntakeService) ResetGoals(ctx context.Context) (domain.Goals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cache.Delete(ctx, goalsKey); err != nil {
		return nil, err
	}
	return domain.DefaultGoals(), nil
}

func (s *IntakeService) loadDay(ctx context.Context, date string) (*domain.DailyIntake, error) {
	day, err := loadCached[domain.DailyIntake](ctx, s.cache, intakeKey(date))
	if err != nil {
		if isMiss(err) {
			return &domain.DailyIntake{Date: date, Entries: []domain.IntakeEntry{}}, nil
		}
		return nil, err
	}
	if day.Entries == nil {
		day.Entries = []domain.IntakeEntry{}
	}
	day.Date = date
	return day, nil
}

// Totals sums every canonical nutrient over entries. Unknown amounts count
// as zero, so every total is set.
func Totals(entries []domain.IntakeEntry) domain.NutrientMap {
	totals := domain.NewNutrientMap()
	for _, key := range domain.CanonicalKeys {
		var sum float64
		for _, e := range entries {
			if v := e.Nutrients.Get(key); v != nil {
				sum += *v
			}
		}
		totals[key] = domain.Amount(sum)
	}
	return totals
}

// Progress measures totals against each goal, in canonical key order.
// Current is formatted like the day totals: energy whole, the rest with one
// decimal.
func Progress(totals domain.NutrientMap, goals domain.Goals) []domain.GoalProgress {
	out := make([]domain.GoalProgress, 0, len(goals))
	for _, key := range domain.CanonicalKeys {
		goal, ok := goals[key]
		if !ok {
			continue
		}
		current := totals.Get(key)
		out = append(out, domain.GoalProgress{
			Key:     key,
			Unit:    key.Unit(),
			Current: nutrition.FormatTotal(key, current),
			Goal:    goal,
			Percent: nutrition.GoalProgress(current, goal),
		})
	}
	return out
}
