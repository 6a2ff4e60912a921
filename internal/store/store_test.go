package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bookbinderapp/bookbinder/internal/errors"
	"github.com/bookbinderapp/bookbinder/internal/logger"
)

// fakeProber serves canned durations and counts invocations per path.
type fakeProber struct {
	durations map[string]int64
	calls     map[string]int
	err       error
}

func (f *fakeProber) Probe(_ context.Context, path string) (int64, error) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[path]++

	if f.err != nil {
		return 0, f.err
	}
	d, ok := f.durations[path]
	if !ok {
		return 0, fmt.Errorf("no canned duration for %s", path)
	}
	return d, nil
}

func cachePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "durations.json")
}

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	s, err := Open(cachePath(t), &fakeProber{}, logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Entries())
}

func TestOpen_CorruptFileFails(t *testing.T) {
	path := cachePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path, &fakeProber{}, logger.NewNop())
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrCacheCorrupt))
}

func TestScan_MissProbesAndPersists(t *testing.T) {
	path := cachePath(t)
	prober := &fakeProber{durations: map[string]int64{"/lib/21234.mp3": 65}}

	s, err := Open(path, prober, logger.NewNop())
	require.NoError(t, err)

	seconds, err := s.Scan(context.Background(), "/lib/21234.mp3")
	require.NoError(t, err)
	assert.Equal(t, int64(65), seconds)
	assert.Equal(t, 1, prober.calls["/lib/21234.mp3"])

	// The mapping must already be on disk, pretty-printed.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"/lib/21234.mp3\": 65")
	assert.True(t, strings.HasPrefix(string(data), "{\n"))
}

func TestScan_HitSkipsProber(t *testing.T) {
	path := cachePath(t)
	prober := &fakeProber{durations: map[string]int64{"/lib/21234.mp3": 65}}

	s, err := Open(path, prober, logger.NewNop())
	require.NoError(t, err)

	_, err = s.Scan(context.Background(), "/lib/21234.mp3")
	require.NoError(t, err)

	// Second scan must come from the cache.
	prober.err = fmt.Errorf("prober must not run again")
	seconds, err := s.Scan(context.Background(), "/lib/21234.mp3")
	require.NoError(t, err)
	assert.Equal(t, int64(65), seconds)
	assert.Equal(t, 1, prober.calls["/lib/21234.mp3"])
}

func TestScan_ProbeErrorPropagatesAndPersistsNothing(t *testing.T) {
	path := cachePath(t)
	prober := &fakeProber{err: fmt.Errorf("boom")}

	s, err := Open(path, prober, logger.NewNop())
	require.NoError(t, err)

	_, err = s.Scan(context.Background(), "/lib/21234.mp3")
	require.Error(t, err)

	assert.Equal(t, 0, s.Len())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no cache file should be written")
}

func TestScan_NilProberFailsOnMiss(t *testing.T) {
	s, err := Open(cachePath(t), nil, logger.NewNop())
	require.NoError(t, err)

	_, err = s.Scan(context.Background(), "/lib/21234.mp3")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInternal))
}

func TestStore_PersistenceRoundTrip(t *testing.T) {
	path := cachePath(t)
	prober := &fakeProber{durations: map[string]int64{
		"/lib/11111.mp3": 10,
		"/lib/11112.mp3": 20,
		"/lib/21234.mp3": 65,
	}}

	s, err := Open(path, prober, logger.NewNop())
	require.NoError(t, err)

	for p := range prober.durations {
		_, err := s.Scan(context.Background(), p)
		require.NoError(t, err)
	}

	// Reopen without a prober: every path must resolve from disk.
	reopened, err := Open(path, nil, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, reopened.Len())

	for p, want := range prober.durations {
		got, err := reopened.Scan(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEntries_SortedByPath(t *testing.T) {
	path := cachePath(t)
	prober := &fakeProber{durations: map[string]int64{
		"/lib/b.mp3": 2,
		"/lib/a.mp3": 1,
		"/lib/c.mp3": 3,
	}}

	s, err := Open(path, prober, logger.NewNop())
	require.NoError(t, err)
	for p := range prober.durations {
		_, err := s.Scan(context.Background(), p)
		require.NoError(t, err)
	}

	entries := s.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Path: "/lib/a.mp3", Seconds: 1}, entries[0])
	assert.Equal(t, Entry{Path: "/lib/b.mp3", Seconds: 2}, entries[1])
	assert.Equal(t, Entry{Path: "/lib/c.mp3", Seconds: 3}, entries[2])
}
