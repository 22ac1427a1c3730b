package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLimitOffsetDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	lim, off := ParseLimitOffset(req, 20, 100)
	assert.Equal(t, 20, lim)
	assert.Equal(t, 0, off)
}

func TestParseLimitOffsetClamps(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/events?limit=5000&offset=-3", nil)
	lim, off := ParseLimitOffset(req, 20, 100)
	assert.Equal(t, 100, lim)
	assert.Equal(t, 0, off)

	req = httptest.NewRequest(http.MethodGet, "/api/events?limit=0", nil)
	lim, _ = ParseLimitOffset(req, 20, 100)
	assert.Equal(t, 1, lim)
}

func TestParseLimitOffsetIgnoresGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/events?limit=abc&offset=xyz", nil)
	lim, off := ParseLimitOffset(req, 20, 100)
	assert.Equal(t, 20, lim)
	assert.Equal(t, 0, off)
}

func TestParseBoolQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/events?published=true", nil)
	got := parseBoolQuery(req, "published")
	if assert.NotNil(t, got) {
		assert.True(t, *got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/events", nil)
	assert.Nil(t, parseBoolQuery(req, "published"))

	req = httptest.NewRequest(http.MethodGet, "/api/admin/events?published=maybe", nil)
	assert.Nil(t, parseBoolQuery(req, "published"))
}
