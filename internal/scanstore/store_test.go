package scanstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the scan ledger:
// - Lookup on an empty store reports not-found
// - Record then Lookup round-trips every field
// - Unchanged is true only when the stored hash matches
// - Record upserts: a second Record for the same path replaces the row
// - Forget removes the row

func openTempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scans.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLookup_NotFoundOnEmptyStore(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	_, ok, err := s.Lookup("doc.xml")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecord_RoundTripsAllFields(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	rec := Record{
		FilePath:    "doc.xml",
		ContentHash: "abc123",
		LastScanned: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		HandlerUsed: "ant-build",
		TypeName:    "Ant Build",
		ChunkCount:  3,
	}
	require.NoError(t, s.Record(rec))

	got, ok, err := s.Lookup("doc.xml")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.ContentHash, got.ContentHash)
	assert.Equal(t, rec.HandlerUsed, got.HandlerUsed)
	assert.Equal(t, rec.TypeName, got.TypeName)
	assert.Equal(t, rec.ChunkCount, got.ChunkCount)
	assert.True(t, rec.LastScanned.Equal(got.LastScanned))
}

func TestUnchanged_TrueOnlyWhenHashMatches(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	require.NoError(t, s.Record(Record{FilePath: "doc.xml", ContentHash: "abc123", LastScanned: time.Now()}))

	unchanged, err := s.Unchanged("doc.xml", "abc123")
	require.NoError(t, err)
	assert.True(t, unchanged)

	unchanged, err = s.Unchanged("doc.xml", "different")
	require.NoError(t, err)
	assert.False(t, unchanged)
}

func TestRecord_UpsertsExistingRow(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	require.NoError(t, s.Record(Record{FilePath: "doc.xml", ContentHash: "first", LastScanned: time.Now(), ChunkCount: 1}))
	require.NoError(t, s.Record(Record{FilePath: "doc.xml", ContentHash: "second", LastScanned: time.Now(), ChunkCount: 2}))

	got, ok, err := s.Lookup("doc.xml")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", got.ContentHash)
	assert.Equal(t, 2, got.ChunkCount)
}

func TestForget_RemovesRow(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	require.NoError(t, s.Record(Record{FilePath: "doc.xml", ContentHash: "abc123", LastScanned: time.Now()}))
	require.NoError(t, s.Forget("doc.xml"))

	_, ok, err := s.Lookup("doc.xml")
	require.NoError(t, err)
	assert.False(t, ok)
}
