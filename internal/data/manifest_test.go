package data

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestManifest_Queries(t *testing.T) {
	m, err := LoadManifest(context.Background(), FSSource{FS: newTestFS()})
	require.NoError(t, err)

	assert.Equal(t, []string{"1.1.0", "1.0.0"}, m.Versions())
	assert.Equal(t, "1.1.0", m.Latest())
	assert.True(t, m.HasVersion("1.0.0"))
	assert.False(t, m.HasVersion("0.9.0"))

	assert.True(t, m.HasLibrary("1.1.0", FileSkinsLibrary))
	assert.False(t, m.HasLibrary("1.0.0", FileSkinsLibrary))
	assert.ElementsMatch(t, []string{FileTechTreeLibrary}, m.Libraries("1.0.0"))
}

func TestManifest_WithoutFileListing(t *testing.T) {
	m := NewManifest([]string{"a", "b"}, nil)

	assert.Equal(t, "b", m.Latest())
	assert.True(t, m.HasLibrary("a", FileSetsLibrary))
	assert.False(t, m.HasLibrary("c", FileSetsLibrary))
	assert.Empty(t, m.Libraries("a"))
}

func TestManifest_Empty(t *testing.T) {
	m := NewManifest(nil, nil)
	assert.Equal(t, "", m.Latest())
}

func TestGenerateManifest(t *testing.T) {
	fsys := fstest.MapFS{
		"versions.json":            {Data: []byte(`["1.0", "2.0", "3.0"]`)},
		"1.0/SkinsLibrary.json":    {Data: []byte(`{}`)},
		"1.0/SetsLibrary.json":     {Data: []byte(`{}`)},
		"1.0/readme.txt":           {Data: []byte(`ignored`)},
		"2.0/TechTreeLibrary.json": {Data: []byte(`{}`)},
	}

	out, err := GenerateManifest(fsys)
	require.NoError(t, err)

	parsed := gjson.ParseBytes(out).Map()
	require.Contains(t, parsed, "1.0")
	require.Contains(t, parsed, "2.0")
	assert.NotContains(t, parsed, "3.0")

	var files []string
	for _, f := range parsed["1.0"].Array() {
		files = append(files, f.String())
	}
	assert.Equal(t, []string{"SetsLibrary.json", "SkinsLibrary.json"}, files)
}

func TestGenerateManifest_EmptyVersions(t *testing.T) {
	fsys := fstest.MapFS{"versions.json": {Data: []byte(`[]`)}}
	_, err := GenerateManifest(fsys)
	assert.Error(t, err)
}
