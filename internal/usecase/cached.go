package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/platewise/backend/internal/domain"
)

// loadCached reads key from the cache into a T. The cache may hand back the
// stored value itself or its decoded JSON form, so both are accepted.
func loadCached[T any](ctx context.Context, cache domain.CacheRepository, key string) (*T, error) {
	value, err := cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case *T:
		return v, nil
	case T:
		return &v, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, domain.ErrCacheMiss
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return &out, nil
}

// isMiss reports whether err only means the key was not cached
func isMiss(err error) bool {
	return errors.Is(err, domain.ErrCacheMiss)
}
