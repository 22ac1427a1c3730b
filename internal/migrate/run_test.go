package migrate

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMigrations(t *testing.T) {
	files, err := listMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, files)

	assert.True(t, sort.StringsAreSorted(files), "migrations must apply in filename order")
	for _, f := range files {
		assert.True(t, strings.HasSuffix(f, ".sql"), "unexpected file %q in migrations", f)
	}
	assert.Contains(t, files, "0001_init.sql")
}

func TestEmbeddedMigrationsReadable(t *testing.T) {
	files, err := listMigrations()
	require.NoError(t, err)

	for _, f := range files {
		body, err := migrationsFS.ReadFile("migrations/" + f)
		require.NoError(t, err)
		assert.NotEmpty(t, body, "migration %s is empty", f)
	}
}
