package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/platewise/backend/internal/domain"
)

const bookmarksKey = "bookmarks"

// BookmarkService keeps the user's bookmarked recipes, oldest first
type BookmarkService struct {
	cache  domain.CacheRepository
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewBookmarkService creates a bookmark service backed by cache
func NewBookmarkService(cache domain.CacheRepository, logger zerolog.Logger) *BookmarkService {
	return &BookmarkService{
		cache:  cache,
		logger: logger.With().Str("component", "bookmark_service").Logger(),
	}
}

// List returns the bookmarked recipes
func (s *BookmarkService) List(ctx context.Context) ([]domain.Recipe, error) {
	return s.load(ctx)
}

// Add bookmarks recipe. A recipe whose id is already bookmarked is left as
// it is and added is false.
func (s *BookmarkService) Add(ctx context.Context, recipe domain.Recipe) (added bool, err error) {
	if recipe.ID <= 0 {
		return false, fmt.Errorf("%w: recipe id must be positive", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(recipe.Title) == "" {
		return false, fmt.Errorf("%w: recipe title is required", domain.ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bookmarks, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	for _, b := range bookmarks {
		if b.ID == recipe.ID {
			return false, nil
		}
	}

	bookmarks = append(bookmarks, recipe)
	if err := s.cache.Set(ctx, bookmarksKey, bookmarks, 0); err != nil {
		return false, fmt.Errorf("failed to save bookmarks: %w", err)
	}
	s.logger.Debug().Int("recipe_id", recipe.ID).Msg("bookmark added")
	return true, nil
}

// Remove drops the bookmark for id. Removing an id that is not bookmarked
// is a no-op and removed is false.
func (s *BookmarkService) Remove(ctx context.Context, id int) (removed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookmarks, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	kept := bookmarks[:0]
	for _, b := range bookmarks {
		if b.ID == id {
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	if !removed {
		return false, nil
	}

	if err := s.cache.Set(ctx, bookmarksKey, kept, 0); err != nil {
		return false, fmt.Errorf("failed to save bookmarks: %w", err)
	}
	s.logger.Debug().Int("recipe_id", id).Msg("bookmark removed")
	return true, nil
}

func (s *BookmarkService) load(ctx context.Context) ([]domain.Recipe, error) {
	stored, err := loadCached[[]domain.Recipe](ctx, s.cache, bookmarksKey)
	if err != nil {
		if isMiss(err) {
			return []domain.Recipe{}, nil
		}
		return nil, err
	}
	out := make([]domain.Recipe, len(*stored))
	copy(out, *stored)
	return out, nil
}
