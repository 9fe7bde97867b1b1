package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_ReportsVersion(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	// TestMain already migrated; a second run is a no-op at the same version.
	version, err := runMigrations(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}
