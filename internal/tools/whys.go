package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// WhyStartTool handles the why_analysis_start MCP tool.
type WhyStartTool struct{ deps }

// NewWhyStartTool creates a WhyStartTool.
func NewWhyStartTool(d deps) *WhyStartTool { return &WhyStartTool{d} }

// Definition returns the MCP tool definition for why_analysis_start.
func (t *WhyStartTool) Definition() mcp.Tool {
	return mcp.NewTool("why_analysis_start",
		mcp.WithDescription(
			"Start a 5 Whys root-cause analysis. Returns the analysis id and the first question. "+
				"Answer each question in order with why_analysis_add_answer (levels 0 to 4).",
		),
		mcp.WithString("problem",
			mcp.Required(),
			mcp.Description("The problem to analyse"),
		),
		mcp.WithString("context",
			mcp.Description("Optional background information"),
		),
	)
}

// Handle processes the why_analysis_start tool call.
func (t *WhyStartTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	problem, err := requireString(req, "problem")
	if err != nil {
		return t.out.Failure(err), nil
	}
	res := t.app.Whys.Start(problem, req.GetString("context", ""))
	return t.out.Success("5 Whys analysis started", res), nil
}

// WhyAnswerTool handles the why_analysis_add_answer MCP tool.
type WhyAnswerTool struct{ deps }

// NewWhyAnswerTool creates a WhyAnswerTool.
func NewWhyAnswerTool(d deps) *WhyAnswerTool { return &WhyAnswerTool{d} }

// Definition returns the MCP tool definition for why_analysis_add_answer.
func (t *WhyAnswerTool) Definition() mcp.Tool {
	return mcp.NewTool("why_analysis_add_answer",
		mcp.WithDescription(
			"Answer the pending question of a 5 Whys analysis. Answering level 4 completes the "+
				"analysis and returns the root-cause summary.",
		),
		mcp.WithString("analysis_id",
			mcp.Required(),
			mcp.Description("Id returned by why_analysis_start"),
		),
		mcp.WithNumber("level",
			mcp.Required(),
			mcp.Description("Level being answered (0-4)"),
		),
		mcp.WithString("answer",
			mcp.Required(),
			mcp.Description("Answer to the question at that level"),
		),
	)
}

// Handle processes the why_analysis_add_answer tool call.
func (t *WhyAnswerTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "analysis_id")
	if err != nil {
		return t.out.Failure(err), nil
	}
	level, err := requireInt(req, "level")
	if err != nil {
		return t.out.Failure(err), nil
	}
	answer, err := requireString(req, "answer")
	if err != nil {
		return t.out.Failure(err), nil
	}

	res, err := t.app.Whys.Answer(id, level, answer)
	if err != nil {
		return t.out.Failure(err), nil
	}
	if res.Summary != nil {
		title, content := whysEntry(res.Summary)
		notifyRecorder(t.rec, "whys", id, title, content)
		return t.out.Success("5 Whys analysis completed", res), nil
	}
	return t.out.Success(fmt.Sprintf("Answer recorded at level %d", level), res), nil
}

// WhyGetTool handles the why_analysis_get MCP tool.
type WhyGetTool struct{ deps }

// NewWhyGetTool creates a WhyGetTool.
func NewWhyGetTool(d deps) *WhyGetTool { return &WhyGetTool{d} }

// Definition returns the MCP tool definition for why_analysis_get.
func (t *WhyGetTool) Definition() mcp.Tool {
	return mcp.NewTool("why_analysis_get",
		mcp.WithDescription("Show a 5 Whys analysis with every level answered so far."),
		mcp.WithString("analysis_id",
			mcp.Required(),
			mcp.Description("Id returned by why_analysis_start"),
		),
	)
}

// Handle processes the why_analysis_get tool call.
func (t *WhyGetTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "analysis_id")
	if err != nil {
		return t.out.Failure(err), nil
	}
	res, err := t.app.Whys.Get(id)
	if err != nil {
		return t.out.Failure(err), nil
	}
	return t.out.Success("5 Whys analysis", res), nil
}

// WhyListTool handles the why_analysis_list MCP tool.
type WhyListTool struct{ deps }

// NewWhyListTool creates a WhyListTool.
func NewWhyListTool(d deps) *WhyListTool { return &WhyListTool{d} }

// Definition returns the MCP tool definition for why_analysis_list.
func (t *WhyListTool) Definition() mcp.Tool {
	return mcp.NewTool("why_analysis_list",
		mcp.WithDescription("List every 5 Whys analysis, newest first."),
	)
}

// Handle processes the why_analysis_list tool call.
func (t *WhyListTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := t.app.Whys.List()
	return t.out.Success(fmt.Sprintf("%d analyses", len(list)), list), nil
}
