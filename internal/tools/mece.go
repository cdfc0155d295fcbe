package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/analysis-support/internal/mece"
)

// MeceAnalyzeTool handles the mece_analyze_categories MCP tool.
type MeceAnalyzeTool struct{ deps }

// NewMeceAnalyzeTool creates a MeceAnalyzeTool.
func NewMeceAnalyzeTool(d deps) *MeceAnalyzeTool { return &MeceAnalyzeTool{d} }

// Definition returns the MCP tool definition for mece_analyze_categories.
func (t *MeceAnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("mece_analyze_categories",
		mcp.WithDescription(
			"Check a list of categories for overlaps (shared keywords) and gaps (missing generic "+
				"aspects such as time, place or cost) and classify the MECE violation.",
		),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("What the categories break down"),
		),
		stringList("categories", "Category labels to check", mcp.Required()),
	)
}

// Handle processes the mece_analyze_categories tool call.
func (t *MeceAnalyzeTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := requireString(req, "topic")
	if err != nil {
		return t.out.Failure(err), nil
	}
	categories, err := requireStrings(req, "categories")
	if err != nil {
		return t.out.Failure(err), nil
	}

	res := t.app.MECE.AnalyzeCategories(topic, categories)
	title, content := meceEntry(res)
	notifyRecorder(t.rec, "mece", res.AnalysisID, title, content)
	return t.out.Success(res.Evaluation.Description, res), nil
}

// MeceStructureTool handles the mece_create_structure MCP tool.
type MeceStructureTool struct{ deps }

// NewMeceStructureTool creates a MeceStructureTool.
func NewMeceStructureTool(d deps) *MeceStructureTool { return &MeceStructureTool{d} }

// Definition returns the MCP tool definition for mece_create_structure.
func (t *MeceStructureTool) Definition() mcp.Tool {
	names := make([]string, 0, len(mece.Frameworks)+1)
	names = append(names, mece.Auto)
	for _, f := range mece.Frameworks {
		names = append(names, string(f))
	}
	return mcp.NewTool("mece_create_structure",
		mcp.WithDescription(
			"Propose a MECE breakdown of a topic using a standard framework. With framework "+
				"'auto' the framework is chosen from keywords in the topic.",
		),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Topic to structure"),
		),
		mcp.WithString("framework",
			mcp.Description("One of: "+strings.Join(names, ", ")+" (default: auto)"),
		),
	)
}

// Handle processes the mece_create_structure tool call.
func (t *MeceStructureTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := requireString(req, "topic")
	if err != nil {
		return t.out.Failure(err), nil
	}
	res, err := t.app.MECE.CreateStructure(topic, req.GetString("framework", mece.Auto))
	if err != nil {
		return t.out.Failure(err), nil
	}
	return t.out.Success(fmt.Sprintf("%s structure for %q", res.Framework, topic), res), nil
}

// MeceGetTool handles the mece_get_analysis MCP tool.
type MeceGetTool struct{ deps }

// NewMeceGetTool creates a MeceGetTool.
func NewMeceGetTool(d deps) *MeceGetTool { return &MeceGetTool{d} }

// Definition returns the MCP tool definition for mece_get_analysis.
func (t *MeceGetTool) Definition() mcp.Tool {
	return mcp.NewTool("mece_get_analysis",
		mcp.WithDescription("Show a stored MECE category analysis."),
		mcp.WithString("analysis_id",
			mcp.Required(),
			mcp.Description("Id returned by mece_analyze_categories"),
		),
	)
}

// Handle processes the mece_get_analysis tool call.
func (t *MeceGetTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "analysis_id")
	if err != nil {
		return t.out.Failure(err), nil
	}
	res, err := t.app.MECE.GetAnalysis(id)
	if err != nil {
		return t.out.Failure(err), nil
	}
	return t.out.Success("MECE analysis", res), nil
}

// MeceListTool handles the mece_list_analyses MCP tool.
type MeceListTool struct{ deps }

// NewMeceListTool creates a MeceListTool.
func NewMeceListTool(d deps) *MeceListTool { return &MeceListTool{d} }

// Definition returns the MCP tool definition for mece_list_analyses.
func (t *MeceListTool) Definition() mcp.Tool {
	return mcp.NewTool("mece_list_analyses",
		mcp.WithDescription("List every MECE category analysis, newest first."),
	)
}

// Handle processes the mece_list_analyses tool call.
func (t *MeceListTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := t.app.MECE.ListAnalyses()
	return t.out.Success(fmt.Sprintf("%d analyses", len(list)), list), nil
}
