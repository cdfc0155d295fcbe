package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/analysis-support/internal/scamper"
)

func techniqueNames() string {
	names := make([]string, len(scamper.Techniques))
	for i, tq := range scamper.Techniques {
		names[i] = string(tq)
	}
	return strings.Join(names, ", ")
}

// ScamperStartTool handles the scamper_start_session MCP tool.
type ScamperStartTool struct{ deps }

// NewScamperStartTool creates a ScamperStartTool.
func NewScamperStartTool(d deps) *ScamperStartTool { return &ScamperStartTool{d} }

// Definition returns the MCP tool definition for scamper_start_session.
func (t *ScamperStartTool) Definition() mcp.Tool {
	return mcp.NewTool("scamper_start_session",
		mcp.WithDescription(
			"Open a SCAMPER idea-generation session. Returns an overview of the 7 techniques; "+
				"record ideas with scamper_apply_technique and score them with scamper_evaluate_ideas.",
		),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Product, process or idea to improve"),
		),
		mcp.WithString("current_situation",
			mcp.Description("How things work today"),
		),
		mcp.WithString("context",
			mcp.Description("Optional constraints or background"),
		),
	)
}

// Handle processes the scamper_start_session tool call.
func (t *ScamperStartTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := requireString(req, "topic")
	if err != nil {
		return t.out.Failure(err), nil
	}
	res := t.app.SCAMPER.Start(topic, req.GetString("current_situation", ""), req.GetString("context", ""))
	return t.out.Success("SCAMPER session started", res), nil
}

// ScamperApplyTool handles the scamper_apply_technique MCP tool.
type ScamperApplyTool struct{ deps }

// NewScamperApplyTool creates a ScamperApplyTool.
func NewScamperApplyTool(d deps) *ScamperApplyTool { return &ScamperApplyTool{d} }

// Definition returns the MCP tool definition for scamper_apply_technique.
func (t *ScamperApplyTool) Definition() mcp.Tool {
	return mcp.NewTool("scamper_apply_technique",
		mcp.WithDescription("Record ideas produced with one SCAMPER technique."),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Id returned by scamper_start_session"),
		),
		mcp.WithString("technique",
			mcp.Required(),
			mcp.Description("One of: "+techniqueNames()+" (lowercase, underscored and Japanese names are accepted)"),
		),
		stringList("ideas", "Ideas produced with the technique", mcp.Required()),
		stringList("explanations", "Optional explanation per idea, paired by position"),
	)
}

// Handle processes the scamper_apply_technique tool call.
func (t *ScamperApplyTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "session_id")
	if err != nil {
		return t.out.Failure(err), nil
	}
	technique := req.GetString("technique", "")
	ideas, err := requireStrings(req, "ideas")
	if err != nil {
		return t.out.Failure(err), nil
	}
	explanations, err := stringsArg(req, "explanations")
	if err != nil {
		return t.out.Failure(err), nil
	}

	res, err := t.app.SCAMPER.ApplyTechnique(id, technique, ideas, explanations)
	if err != nil {
		return t.out.Failure(err), nil
	}
	return t.out.Success(fmt.Sprintf("Generated %d ideas with %s", len(res.AddedIdeas), res.Technique), res), nil
}

// ScamperEvaluateTool handles the scamper_evaluate_ideas MCP tool.
type ScamperEvaluateTool struct{ deps }

// NewScamperEvaluateTool creates a ScamperEvaluateTool.
func NewScamperEvaluateTool(d deps) *ScamperEvaluateTool { return &ScamperEvaluateTool{d} }

// Definition returns the MCP tool definition for scamper_evaluate_ideas.
func (t *ScamperEvaluateTool) Definition() mcp.Tool {
	return mcp.NewTool("scamper_evaluate_ideas",
		mcp.WithDescription(
			"Score recorded ideas for feasibility and impact (0-10 each). Each evaluation scores the "+
				"first idea whose text matches exactly; evaluations for unknown ideas are ignored.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Id returned by scamper_start_session"),
		),
		mcp.WithArray("evaluations",
			mcp.Required(),
			mcp.Description("Evaluations: [{idea, feasibility, impact}]"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"idea":        map[string]any{"type": "string"},
					"feasibility": map[string]any{"type": "integer", "minimum": scamper.MinScore, "maximum": scamper.MaxScore},
					"impact":      map[string]any{"type": "integer", "minimum": scamper.MinScore, "maximum": scamper.MaxScore},
				},
				"required": []string{"idea", "feasibility", "impact"},
			}),
		),
	)
}

// Handle processes the scamper_evaluate_ideas tool call.
func (t *ScamperEvaluateTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "session_id")
	if err != nil {
		return t.out.Failure(err), nil
	}
	var evaluations []scamper.Evaluation
	if err := decodeArg(req, "evaluations", &evaluations); err != nil {
		return t.out.Failure(err), nil
	}

	res, err := t.app.SCAMPER.EvaluateIdeas(id, evaluations)
	if err != nil {
		return t.out.Failure(err), nil
	}
	title, content := scamperEntry(res)
	notifyRecorder(t.rec, "scamper", id, title, content)
	return t.out.Success(fmt.Sprintf("Evaluated %d ideas", res.EvaluationSummary.TotalEvaluated), res), nil
}

// ScamperGetTool handles the scamper_get_session MCP tool.
type ScamperGetTool struct{ deps }

// NewScamperGetTool creates a ScamperGetTool.
func NewScamperGetTool(d deps) *ScamperGetTool { return &ScamperGetTool{d} }

// Definition returns the MCP tool definition for scamper_get_session.
func (t *ScamperGetTool) Definition() mcp.Tool {
	return mcp.NewTool("scamper_get_session",
		mcp.WithDescription("Show a SCAMPER session: totals, per-technique statistics and the most recent ideas."),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Id returned by scamper_start_session"),
		),
	)
}

// Handle processes the scamper_get_session tool call.
func (t *ScamperGetTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "session_id")
	if err != nil {
		return t.out.Failure(err), nil
	}
	res, err := t.app.SCAMPER.Get(id)
	if err != nil {
		return t.out.Failure(err), nil
	}
	return t.out.Success("SCAMPER session", res), nil
}

// ScamperListTool handles the scamper_list_sessions MCP tool.
type ScamperListTool struct{ deps }

// NewScamperListTool creates a ScamperListTool.
func NewScamperListTool(d deps) *ScamperListTool { return &ScamperListTool{d} }

// Definition returns the MCP tool definition for scamper_list_sessions.
func (t *ScamperListTool) Definition() mcp.Tool {
	return mcp.NewTool("scamper_list_sessions",
		mcp.WithDescription("List every SCAMPER session, most recently updated first."),
	)
}

// Handle processes the scamper_list_sessions tool call.
func (t *ScamperListTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := t.app.SCAMPER.List()
	return t.out.Success(fmt.Sprintf("%d sessions", len(list)), list), nil
}

// ScamperComprehensiveTool handles the scamper_generate_comprehensive MCP tool.
type ScamperComprehensiveTool struct{ deps }

// NewScamperComprehensiveTool creates a ScamperComprehensiveTool.
func NewScamperComprehensiveTool(d deps) *ScamperComprehensiveTool {
	return &ScamperComprehensiveTool{d}
}

// Definition returns the MCP tool definition for scamper_generate_comprehensive.
func (t *ScamperComprehensiveTool) Definition() mcp.Tool {
	return mcp.NewTool("scamper_generate_comprehensive",
		mcp.WithDescription(
			"Open a SCAMPER session and return the guide questions of all 7 techniques at once.",
		),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Product, process or idea to improve"),
		),
		mcp.WithString("current_situation",
			mcp.Description("How things work today"),
		),
		mcp.WithString("context",
			mcp.Description("Optional constraints or background"),
		),
	)
}

// Handle processes the scamper_generate_comprehensive tool call.
func (t *ScamperComprehensiveTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := requireString(req, "topic")
	if err != nil {
		return t.out.Failure(err), nil
	}
	res := t.app.SCAMPER.GenerateComprehensive(topic, req.GetString("current_situation", ""), req.GetString("context", ""))
	return t.out.Success("SCAMPER prompts for all techniques", res), nil
}
