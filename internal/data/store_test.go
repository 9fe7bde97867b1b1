package data

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedSource blocks reads of one version until released.
type gatedSource struct {
	inner   Source
	version string
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *gatedSource) ReadFile(ctx context.Context, version, name string) ([]byte, error) {
	if version == s.version {
		s.once.Do(func() { close(s.started) })
		<-s.release
	}
	return s.inner.ReadFile(ctx, version, name)
}

func newTestLoader(t *testing.T, src Source) *Loader {
	t.Helper()
	manifest, err := LoadManifest(context.Background(), src)
	require.NoError(t, err)
	return NewLoader(src, manifest)
}

func TestStore_CurrentBeforeLoad(t *testing.T) {
	s := NewStore(newTestLoader(t, FSSource{FS: newTestFS()}))

	libs := s.Current()
	require.NotNil(t, libs)
	_, ok := libs.TechEffect("Damage")
	assert.False(t, ok)
}

func TestStore_SelectCaches(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newTestLoader(t, FSSource{FS: newTestFS()}))

	first, err := s.Select(ctx, "1.1.0")
	require.NoError(t, err)
	assert.True(t, s.Cached("1.1.0"))
	assert.Same(t, first, s.Current())

	second, err := s.Select(ctx, "1.1.0")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, "1.1.0", s.Selected())
}

func TestStore_StaleLoadIsNotPublished(t *testing.T) {
	ctx := context.Background()
	src := &gatedSource{
		inner:   FSSource{FS: newTestFS()},
		version: "1.0.0",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewStore(newTestLoader(t, src))

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Select(ctx, "1.0.0")
		errCh <- err
	}()
	<-src.started

	newer, err := s.Select(ctx, "1.1.0")
	require.NoError(t, err)

	close(src.release)
	assert.ErrorIs(t, <-errCh, ErrSuperseded)

	assert.Same(t, newer, s.Current())
	assert.Equal(t, "1.1.0", s.Current().Version)
	assert.True(t, s.Cached("1.0.0"))
}
