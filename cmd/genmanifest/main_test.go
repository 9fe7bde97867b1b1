package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/forgeplanner/internal/data"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, data.FileVersions), []byte(`["1.0.0","1.1.0"]`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "1.1.0"), 0o755))
	for _, name := range []string{"ItemBalancingLibrary.json", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "1.1.0", name), []byte(`{}`), 0o644))
	}

	require.NoError(t, run(dir))

	manifest, err := data.LoadManifest(context.Background(), data.FSSource{FS: os.DirFS(dir)})
	require.NoError(t, err)
	assert.Equal(t, []string{"ItemBalancingLibrary.json"}, manifest.Libraries("1.1.0"))
	assert.Empty(t, manifest.Libraries("1.0.0"))
}

func TestRun_MissingVersions(t *testing.T) {
	err := run(t.TempDir())
	assert.ErrorContains(t, err, data.FileVersions)
}
