package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/HendryAvila/analysis-support/internal/app"
	"github.com/HendryAvila/analysis-support/internal/journal"
	"github.com/HendryAvila/analysis-support/internal/output"
)

func newTestJournal(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.New(journal.Config{
		DataDir:          t.TempDir(),
		MaxEntryLength:   2000,
		MaxSearchResults: 20,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewJournalBridge_NilStore(t *testing.T) {
	assert.Nil(t, NewJournalBridge(nil, nil))

	var b *JournalBridge
	assert.NotPanics(t, func() { b.Record("whys", "x", "t", "c") })
	assert.NotPanics(t, func() { notifyRecorder(nil, "whys", "x", "t", "c") })
}

func TestJournalBridge_RecordsEvaluations(t *testing.T) {
	store := newTestJournal(t)
	bridge := NewJournalBridge(store, zaptest.NewLogger(t))
	c := NewCatalog(app.New(), output.NewRenderer(output.FormatJSON), bridge, zaptest.NewLogger(t))

	id := data(t, call(t, c, "rbs_create_structure", map[string]any{"project_name": "Warehouse move"}))["analysis_id"].(string)
	data(t, call(t, c, "rbs_identify_risks", map[string]any{
		"analysis_id": id,
		"category":    "organizational",
		"risks":       []any{map[string]any{"name": "key staff leave", "probability": 2, "impact": 4}},
	}))
	data(t, call(t, c, "rbs_evaluate_risks", map[string]any{"analysis_id": id}))
	// evaluating again updates the same entry
	data(t, call(t, c, "rbs_evaluate_risks", map[string]any{"analysis_id": id}))

	e, err := store.Get(journal.TopicKey("rbs", id))
	require.NoError(t, err)
	assert.Equal(t, "RBS: Warehouse move", e.Title)
	assert.Contains(t, e.Content, "key staff leave")
	assert.Equal(t, 2, e.RevisionCount)
}

func TestJournalBridge_FailureIsLogged(t *testing.T) {
	store := newTestJournal(t)
	bridge := NewJournalBridge(store, zaptest.NewLogger(t))
	require.NoError(t, store.Close())

	assert.NotPanics(t, func() { bridge.Record("whys", "x", "t", "c") })
}

func TestJournalTools(t *testing.T) {
	store := newTestJournal(t)
	out := output.NewRenderer(output.FormatJSON)
	bridge := NewJournalBridge(store, nil)
	c := NewCatalog(app.New(), out, bridge, zaptest.NewLogger(t))
	c.Add(NewJournalSearchTool(store, out), NewJournalStatsTool(store, out))

	data(t, call(t, c, "mece_analyze_categories", map[string]any{
		"topic":      "warehouse staffing",
		"categories": []any{"day shift", "night shift"},
	}))

	env := decode(t, call(t, c, "journal_search", map[string]any{"query": "shift"}))
	require.True(t, env.Success)
	assert.Equal(t, "Found 1 entries", env.Message)
	assert.Contains(t, string(env.Data), `"framework": "mece"`)

	env = decode(t, call(t, c, "journal_search", map[string]any{"query": "nothing-like-this"}))
	assert.JSONEq(t, `[]`, string(env.Data))

	env = decode(t, call(t, c, "journal_search", map[string]any{"limit": "ten"}))
	assert.Equal(t, "INVALID_ARGUMENT", env.ErrorCode)

	stats := data(t, call(t, c, "journal_stats", nil))
	assert.Equal(t, 1.0, stats["total_entries"])
}
