package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/technova/airdash-server/internal/dashboard"
)

const (
	viewModeKey  = "dashboard:view_mode"
	viewModelKey = "dashboard:view_model"

	// Cached view-models go stale quickly; they exist only for
	// idempotent re-render between aggregation passes.
	viewModelTTL = 24 * time.Hour
)

// Store keeps the small cross-session dashboard state in Redis: the
// persisted view-mode preference and the last rendered view-model.
type Store struct {
	redis *redis.Client
}

// NewStore creates a new preference store
func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient}
}

// ViewMode returns the persisted view mode. When no preference has been
// saved yet, the default is the recent window.
func (s *Store) ViewMode(ctx context.Context) (dashboard.Mode, error) {
	data, err := s.redis.Get(ctx, viewModeKey).Result()
	if err == redis.Nil {
		return dashboard.ModeRecent, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get view mode from Redis: %w", err)
	}

	mode, err := dashboard.ParseMode(data)
	if err != nil {
		// A corrupt preference falls back to the default.
		return dashboard.ModeRecent, nil
	}
	return mode, nil
}

// SetViewMode persists the view mode preference. The UI layer is the
// only writer.
func (s *Store) SetViewMode(ctx context.Context, mode dashboard.Mode) error {
	if _, err := dashboard.ParseMode(string(mode)); err != nil {
		return err
	}
	if err := s.redis.Set(ctx, viewModeKey, string(mode), 0).Err(); err != nil {
		return fmt.Errorf("failed to set view mode in Redis: %w", err)
	}
	return nil
}

// CacheViewModel stores the last rendered view-model.
func (s *Store) CacheViewModel(ctx context.Context, vm *dashboard.ViewModel) error {
	data, err := json.Marshal(vm)
	if err != nil {
		return fmt.Errorf("failed to marshal view-model: %w", err)
	}

	if err := s.redis.Set(ctx, viewModelKey, data, viewModelTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache view-model in Redis: %w", err)
	}
	return nil
}

// CachedViewModel returns the last rendered view-model, or nil when none
// has been cached yet.
func (s *Store) CachedViewModel(ctx context.Context) (*dashboard.ViewModel, error) {
	data, err := s.redis.Get(ctx, viewModelKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get view-model from Redis: %w", err)
	}

	var vm dashboard.ViewModel
	if err := json.Unmarshal([]byte(data), &vm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal view-model: %w", err)
	}
	return &vm, nil
}
