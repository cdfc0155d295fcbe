package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/analysis-support/internal/apperr"
	"github.com/HendryAvila/analysis-support/internal/journal"
	"github.com/HendryAvila/analysis-support/internal/output"
)

// JournalSearchTool handles the journal_search MCP tool.
type JournalSearchTool struct {
	store *journal.Store
	out   *output.Renderer
}

// NewJournalSearchTool creates a JournalSearchTool.
func NewJournalSearchTool(store *journal.Store, out *output.Renderer) *JournalSearchTool {
	return &JournalSearchTool{store: store, out: out}
}

// Definition returns the MCP tool definition for journal_search.
func (t *JournalSearchTool) Definition() mcp.Tool {
	return mcp.NewTool("journal_search",
		mcp.WithDescription(
			"Search the summaries of finished analyses kept across server restarts. "+
				"An empty query lists the most recent entries.",
		),
		mcp.WithString("query",
			mcp.Description("Keywords to search for"),
		),
		mcp.WithString("framework",
			mcp.Description("Filter by framework: whys, mece, scamper, rbs, mshell"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 10)"),
		),
	)
}

// Handle processes the journal_search tool call.
func (t *JournalSearchTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit, err := intArg(req, "limit", 10)
	if err != nil {
		return t.out.Failure(err), nil
	}
	results, err := t.store.Search(req.GetString("query", ""), journal.SearchOptions{
		Framework: req.GetString("framework", ""),
		Limit:     limit,
	})
	if err != nil {
		return t.out.Failure(apperr.Wrap(err, "journal search failed")), nil
	}
	if results == nil {
		results = []journal.Entry{}
	}
	return t.out.Success(fmt.Sprintf("Found %d entries", len(results)), results), nil
}

// JournalStatsTool handles the journal_stats MCP tool.
type JournalStatsTool struct {
	store *journal.Store
	out   *output.Renderer
}

// NewJournalStatsTool creates a JournalStatsTool.
func NewJournalStatsTool(store *journal.Store, out *output.Renderer) *JournalStatsTool {
	return &JournalStatsTool{store: store, out: out}
}

// Definition returns the MCP tool definition for journal_stats.
func (t *JournalStatsTool) Definition() mcp.Tool {
	return mcp.NewTool("journal_stats",
		mcp.WithDescription("Show how many analyses the journal holds, per framework."),
	)
}

// Handle processes the journal_stats tool call.
func (t *JournalStatsTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := t.store.Stats()
	if err != nil {
		return t.out.Failure(apperr.Wrap(err, "journal stats failed")), nil
	}
	return t.out.Success(fmt.Sprintf("%d entries", stats.TotalEntries), stats), nil
}
