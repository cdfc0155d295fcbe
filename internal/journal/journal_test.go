package journal

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a Store backed by a temp directory for isolation.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{
		DataDir:          t.TempDir(),
		MaxEntryLength:   200,
		MaxSearchResults: 5,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNew_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(Config{DataDir: dir, MaxEntryLength: 10, MaxSearchResults: 5})
	require.NoError(t, err)
	defer s.Close()

	assert.FileExists(t, filepath.Join(dir, dbFile))
}

func TestNew_MigrationIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{DataDir: dir, MaxEntryLength: 100, MaxSearchResults: 5}

	s, err := New(cfg)
	require.NoError(t, err)
	_, err = s.Record(RecordParams{Framework: "whys", AnalysisID: "a1", Title: "t", Content: "kept"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = New(cfg)
	require.NoError(t, err)
	defer s.Close()

	e, err := s.Get(TopicKey("whys", "a1"))
	require.NoError(t, err)
	assert.Equal(t, "kept", e.Content)
}

func TestNew_OpenFailure(t *testing.T) {
	orig := openDB
	openDB = func(driver, dsn string) (*sql.DB, error) { return nil, errors.New("boom") }
	t.Cleanup(func() { openDB = orig })

	_, err := New(Config{DataDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open database")
}

func TestRecord_UpsertsByTopicKey(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.Record(RecordParams{Framework: "RBS", AnalysisID: "abc12345", Title: "first", Content: "one"})
	require.NoError(t, err)
	id2, err := s.Record(RecordParams{Framework: "rbs", AnalysisID: "abc12345", Title: "second", Content: "two"})
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	e, err := s.Get("rbs/abc12345")
	require.NoError(t, err)
	assert.Equal(t, "second", e.Title)
	assert.Equal(t, "two", e.Content)
	assert.Equal(t, 2, e.RevisionCount)
	assert.Equal(t, "rbs", e.Framework)
}

func TestRecord_RequiresKey(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Record(RecordParams{Framework: "whys"})
	assert.Error(t, err)
}

func TestRecord_TruncatesLongContent(t *testing.T) {
	s := newTestStore(t)
	long := make([]rune, 300)
	for i := range long {
		long[i] = 'あ'
	}
	_, err := s.Record(RecordParams{Framework: "mece", AnalysisID: "x", Title: "t", Content: string(long)})
	require.NoError(t, err)

	e, err := s.Get(TopicKey("mece", "x"))
	require.NoError(t, err)
	assert.Equal(t, string(long[:200])+"... [truncated]", e.Content)
}

func TestGet_Missing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get("whys/none")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)
	for _, p := range []RecordParams{
		{Framework: "whys", AnalysisID: "w1", Title: "server crashes", Content: "root cause: memory leak in the cache"},
		{Framework: "rbs", AnalysisID: "r1", Title: "ERP rollout", Content: "dominant category: Technical risk"},
		{Framework: "mshell", AnalysisID: "m1", Title: "cockpit", Content: "memory of procedures is weak"},
	} {
		_, err := s.Record(p)
		require.NoError(t, err)
	}

	results, err := s.Search("memory", SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = s.Search("memory", SearchOptions{Framework: "mshell"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "m1", results[0].AnalysisID)

	// FTS syntax in user input is quoted away
	results, err = s.Search(`leak" OR "ERP`, SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_EmptyQueryReturnsRecent(t *testing.T) {
	s := newTestStore(t)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		_, err := s.Record(RecordParams{Framework: "scamper", AnalysisID: id, Title: id, Content: id})
		require.NoError(t, err)
	}

	results, err := s.Search("   ", SearchOptions{Limit: 50})
	require.NoError(t, err)
	require.Len(t, results, 5, "capped by MaxSearchResults")
	assert.Equal(t, "g", results[0].AnalysisID)
}

func TestStats(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.TotalEntries)
	assert.Empty(t, stats.ByFramework)
	assert.Empty(t, stats.LastUpdated)

	for _, p := range []RecordParams{
		{Framework: "whys", AnalysisID: "1", Title: "t", Content: "c"},
		{Framework: "whys", AnalysisID: "2", Title: "t", Content: "c"},
		{Framework: "whys", AnalysisID: "2", Title: "t", Content: "c2"},
		{Framework: "mece", AnalysisID: "3", Title: "t", Content: "c"},
	} {
		_, err := s.Record(p)
		require.NoError(t, err)
	}

	stats, err = s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalEntries)
	assert.Equal(t, 4, stats.TotalRevisions)
	assert.Equal(t, []FrameworkCount{{"whys", 2}, {"mece", 1}}, stats.ByFramework)
	assert.NotEmpty(t, stats.LastUpdated)
}

func TestSanitizeFTS(t *testing.T) {
	assert.Equal(t, `"root" "cause"`, sanitizeFTS("root cause"))
	assert.Equal(t, `"a"`, sanitizeFTS(`"a" ""`))
	assert.Equal(t, "", sanitizeFTS("  "))
}
