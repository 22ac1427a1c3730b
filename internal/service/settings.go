package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dayanisma-dernegi/portal/internal/domain/model"
	"github.com/dayanisma-dernegi/portal/internal/ports"
)

// cacheKeyPublicSettings caches the public settings listing, the hot read
// path for the public site.
const cacheKeyPublicSettings = "settings:public"

// SettingsCache is the subset of the cache repository the settings service
// needs.
type SettingsCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
}

// SettingsServiceOptions groups dependencies for SettingsService.
type SettingsServiceOptions struct {
	Repo   ports.SettingStore
	Cache  SettingsCache
	TTL    time.Duration
	Logger *slog.Logger
}

// SettingsService serves the key→JSON settings store with a read cache over
// the public listing. Cache failures are logged and fall through to the
// database; the cache is never load-bearing for correctness.
type SettingsService struct {
	repo   ports.SettingStore
	cache  SettingsCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewSettingsService constructs a new SettingsService.
func NewSettingsService(opts SettingsServiceOptions) *SettingsService {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{repo: opts.Repo, cache: opts.Cache, ttl: ttl, logger: logger}
}

// ListPublic returns public settings, served from cache when possible.
func (s *SettingsService) ListPublic(ctx context.Context) ([]*model.Setting, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKeyPublicSettings); err != nil {
			s.logger.WarnContext(ctx, "settings cache read failed", "err", err)
		} else if raw != nil {
			var cached []*model.Setting
			if unmarshalErr := json.Unmarshal(raw, &cached); unmarshalErr == nil {
				return cached, nil
			}
			// Corrupt entry: drop it and fall through to the database.
			if _, delErr := s.cache.Delete(ctx, cacheKeyPublicSettings); delErr != nil {
				s.logger.WarnContext(ctx, "settings cache delete failed", "err", delErr)
			}
		}
	}

	settings, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, marshalErr := json.Marshal(settings); marshalErr == nil {
			if setErr := s.cache.Set(ctx, cacheKeyPublicSettings, raw, s.ttl); setErr != nil {
				s.logger.WarnContext(ctx, "settings cache write failed", "err", setErr)
			}
		}
	}
	return settings, nil
}

// List returns every setting. Admin reads skip the cache.
func (s *SettingsService) List(ctx context.Context) ([]*model.Setting, error) {
	return s.repo.List(ctx)
}

// Get returns a single setting by key.
func (s *SettingsService) Get(ctx context.Context, key string) (*model.Setting, error) {
	return s.repo.Get(ctx, key)
}

// Upsert writes a setting and invalidates the public cache.
func (s *SettingsService) Upsert(ctx context.Context, key string, req *model.UpsertSettingRequest) (*model.Setting, error) {
	setting, err := s.repo.Upsert(ctx, key, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return setting, nil
}

// Delete removes a setting and invalidates the public cache.
func (s *SettingsService) Delete(ctx context.Context, key string) (bool, error) {
	ok, err := s.repo.Delete(ctx, key)
	if err != nil || !ok {
		return ok, err
	}
	s.invalidate(ctx)
	return ok, nil
}

func (s *SettingsService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, cacheKeyPublicSettings); err != nil {
		s.logger.WarnContext(ctx, "settings cache invalidation failed", "err", err)
	}
}
