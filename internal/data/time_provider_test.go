package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedTimeProvider(t *testing.T) {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	tp := NewFixedTimeProvider(start)

	assert.Equal(t, start, tp.Now())

	tp.AddTime(45 * time.Minute)
	assert.Equal(t, start.Add(45*time.Minute), tp.Now())

	tp.SetTime(start)
	assert.Equal(t, start, tp.Now())
}

func TestUTCOrNil(t *testing.T) {
	assert.Nil(t, utcOrNil(nil))

	trt := time.FixedZone("TRT", 3*60*60)
	local := time.Date(2026, 10, 3, 17, 0, 0, 0, trt)

	got := utcOrNil(&local)
	require.NotNil(t, got)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(local))
	// The input is left untouched.
	assert.Equal(t, trt, local.Location())
}
