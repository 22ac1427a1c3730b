package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayanisma-dernegi/portal/internal/domain/model"
)

// fakeSettingStore is a map-backed SettingStore for service tests.
type fakeSettingStore struct {
	settings    map[string]*model.Setting
	listPublicN int
	listErr     error
}

func newFakeSettingStore(settings ...*model.Setting) *fakeSettingStore {
	s := &fakeSettingStore{settings: map[string]*model.Setting{}}
	for _, st := range settings {
		s.settings[st.Key] = st
	}
	return s
}

func (s *fakeSettingStore) Upsert(_ context.Context, key string, req *model.UpsertSettingRequest) (*model.Setting, error) {
	public := false
	if req.Public != nil {
		public = *req.Public
	}
	setting := &model.Setting{Key: key, Value: req.Value, Public: public}
	s.settings[key] = setting
	return setting, nil
}

func (s *fakeSettingStore) Get(_ context.Context, key string) (*model.Setting, error) {
	setting, ok := s.settings[key]
	if !ok {
		return nil, errors.New("setting not found")
	}
	return setting, nil
}

func (s *fakeSettingStore) List(_ context.Context) ([]*model.Setting, error) {
	out := make([]*model.Setting, 0, len(s.settings))
	for _, st := range s.settings {
		out = append(out, st)
	}
	return out, nil
}

func (s *fakeSettingStore) ListPublic(_ context.Context) ([]*model.Setting, error) {
	s.listPublicN++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := []*model.Setting{}
	for _, st := range s.settings {
		if st.Public {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *fakeSettingStore) Delete(_ context.Context, key string) (bool, error) {
	_, ok := s.settings[key]
	delete(s.settings, key)
	return ok, nil
}

// fakeCache is an in-memory SettingsCache.
type fakeCache struct {
	entries map[string][]byte
	getErr  error
	setErr  error
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[key], nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) (bool, error) {
	_, ok := c.entries[key]
	delete(c.entries, key)
	c.deletes++
	return ok, nil
}

func publicContactSetting() *model.Setting {
	return &model.Setting{
		Key:    "contact",
		Value:  json.RawMessage(`{"email":"iletisim@dernek.org"}`),
		Public: true,
	}
}

func TestListPublicCacheMissFillsCache(t *testing.T) {
	store := newFakeSettingStore(publicContactSetting(), &model.Setting{Key: "smtp", Value: json.RawMessage(`{}`)})
	cache := newFakeCache()
	svc := NewSettingsService(SettingsServiceOptions{Repo: store, Cache: cache})

	got, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "contact", got[0].Key)
	assert.Equal(t, 1, store.listPublicN)
	assert.Contains(t, cache.entries, cacheKeyPublicSettings)
}

func TestListPublicCacheHitSkipsStore(t *testing.T) {
	store := newFakeSettingStore(publicContactSetting())
	cache := newFakeCache()
	svc := NewSettingsService(SettingsServiceOptions{Repo: store, Cache: cache})

	_, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	_, err = svc.ListPublic(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, store.listPublicN)
}

func TestListPublicCorruptCacheEntryFallsThrough(t *testing.T) {
	store := newFakeSettingStore(publicContactSetting())
	cache := newFakeCache()
	cache.entries[cacheKeyPublicSettings] = []byte("{not json")
	svc := NewSettingsService(SettingsServiceOptions{Repo: store, Cache: cache})

	got, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, store.listPublicN)
	// Corrupt entry was dropped and replaced with a fresh one.
	assert.GreaterOrEqual(t, cache.deletes, 1)
	assert.JSONEq(t, `[{"key":"contact","value":{"email":"iletisim@dernek.org"},"public":true,"updated_at":"0001-01-01T00:00:00Z"}]`,
		string(cache.entries[cacheKeyPublicSettings]))
}

func TestListPublicCacheFailureIsNotFatal(t *testing.T) {
	store := newFakeSettingStore(publicContactSetting())
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := NewSettingsService(SettingsServiceOptions{Repo: store, Cache: cache})

	got, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListPublicWithoutCache(t *testing.T) {
	store := newFakeSettingStore(publicContactSetting())
	svc := NewSettingsService(SettingsServiceOptions{Repo: store})

	got, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUpsertInvalidatesPublicCache(t *testing.T) {
	store := newFakeSettingStore(publicContactSetting())
	cache := newFakeCache()
	svc := NewSettingsService(SettingsServiceOptions{Repo: store, Cache: cache})

	_, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	require.Contains(t, cache.entries, cacheKeyPublicSettings)

	public := true
	_, err = svc.Upsert(context.Background(), "hero", &model.UpsertSettingRequest{
		Value:  json.RawMessage(`{"title":"Hoş geldiniz"}`),
		Public: &public,
	})
	require.NoError(t, err)
	assert.NotContains(t, cache.entries, cacheKeyPublicSettings)

	got, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDeleteInvalidatesPublicCache(t *testing.T) {
	store := newFakeSettingStore(publicContactSetting())
	cache := newFakeCache()
	svc := NewSettingsService(SettingsServiceOptions{Repo: store, Cache: cache})

	_, err := svc.ListPublic(context.Background())
	require.NoError(t, err)

	ok, err := svc.Delete(context.Background(), "contact")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotContains(t, cache.entries, cacheKeyPublicSettings)
}

func TestDeleteMissingKeyLeavesCache(t *testing.T) {
	store := newFakeSettingStore(publicContactSetting())
	cache := newFakeCache()
	svc := NewSettingsService(SettingsServiceOptions{Repo: store, Cache: cache})

	_, err := svc.ListPublic(context.Background())
	require.NoError(t, err)

	ok, err := svc.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, cache.entries, cacheKeyPublicSettings)
}
