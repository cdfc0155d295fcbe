package server

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/HendryAvila/analysis-support/internal/config"
	"github.com/HendryAvila/analysis-support/internal/journal"
	"github.com/HendryAvila/analysis-support/internal/output"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig(t *testing.T, journalEnabled bool) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Journal.Enabled = journalEnabled
	return cfg
}

func TestNew_WithoutJournal(t *testing.T) {
	c, cleanup, err := build(testConfig(t, false), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer cleanup()

	require.NotNil(t, c.mcp)
	assert.Nil(t, c.journal)
	assert.Len(t, c.catalog.Names(), 30)
	assert.NotContains(t, c.catalog.Names(), "journal_search")
}

func TestNew_WithJournal(t *testing.T) {
	c, cleanup, err := build(testConfig(t, true), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer cleanup()

	require.NotNil(t, c.journal)
	assert.Contains(t, c.catalog.Names(), "journal_search")
	assert.Contains(t, c.catalog.Names(), "journal_stats")

	// a completed analysis lands in the journal
	ctx := context.Background()
	res := c.catalog.Call(ctx, "why_analysis_start", map[string]any{"problem": "orders ship late"})
	require.False(t, res.IsError)
	var started struct {
		Data struct {
			AnalysisID string `json:"analysis_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &started))

	for level := 0; level < 5; level++ {
		res = c.catalog.Call(ctx, "why_analysis_add_answer", map[string]any{
			"analysis_id": started.Data.AnalysisID,
			"level":       float64(level),
			"answer":      "because of step " + strconv.Itoa(level),
		})
		require.Empty(t, output.ErrorCode(res), "level %d", level)
	}

	stats, err := c.journal.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalEntries)
	assert.False(t, c.catalog.Call(ctx, "journal_stats", nil).IsError)
}

func TestNew_JournalOpenFailureIsNotFatal(t *testing.T) {
	orig := openJournal
	openJournal = func(journal.Config) (*journal.Store, error) { return nil, errors.New("locked") }
	t.Cleanup(func() { openJournal = orig })

	c, cleanup, err := build(testConfig(t, true), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer cleanup()

	assert.Nil(t, c.journal)
	assert.NotContains(t, c.catalog.Names(), "journal_stats")
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testConfig(t, false)
	cfg.Output.Format = "xml"

	s, cleanup, err := New(cfg, nil)
	require.Error(t, err)
	assert.Nil(t, s)
	require.NotNil(t, cleanup)
	cleanup()
}

func TestNew_Public(t *testing.T) {
	s, cleanup, err := New(testConfig(t, true), nil)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.NotPanics(t, cleanup)
}

func TestServerInstructions(t *testing.T) {
	got := serverInstructions()
	for _, want := range []string{"why_analysis_start", "mece_analyze_categories", "scamper_evaluate_ideas", "rbs_", "mshell_evaluate_system", "error_code", "analysis://catalog"} {
		assert.Contains(t, got, want)
	}
}
