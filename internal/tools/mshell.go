package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/analysis-support/internal/mshell"
)

func elementNames() string {
	names := make([]string, len(mshell.Elements))
	for i, e := range mshell.Elements {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}

// MshellCreateTool handles the mshell_create_analysis MCP tool.
type MshellCreateTool struct{ deps }

// NewMshellCreateTool creates a MshellCreateTool.
func NewMshellCreateTool(d deps) *MshellCreateTool { return &MshellCreateTool{d} }

// Definition returns the MCP tool definition for mshell_create_analysis.
func (t *MshellCreateTool) Definition() mcp.Tool {
	return mcp.NewTool("mshell_create_analysis",
		mcp.WithDescription(
			"Open an m-SHELL human-factors analysis of a system. Analyse elements with "+
				"mshell_analyze_element, interfaces with mshell_analyze_interface, then rate the "+
				"system with mshell_evaluate_system.",
		),
		mcp.WithString("system_name",
			mcp.Required(),
			mcp.Description("System under analysis"),
		),
		mcp.WithString("analysis_purpose",
			mcp.Description("What the analysis should achieve"),
		),
		mcp.WithString("context",
			mcp.Description("Optional background"),
		),
	)
}

// Handle processes the mshell_create_analysis tool call.
func (t *MshellCreateTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireString(req, "system_name")
	if err != nil {
		return t.out.Failure(err), nil
	}
	res := t.app.MShell.Create(name, req.GetString("analysis_purpose", ""), req.GetString("context", ""))
	return t.out.Success("m-SHELL analysis created", res), nil
}

// MshellElementTool handles the mshell_analyze_element MCP tool.
type MshellElementTool struct{ deps }

// NewMshellElementTool creates a MshellElementTool.
func NewMshellElementTool(d deps) *MshellElementTool { return &MshellElementTool{d} }

// Definition returns the MCP tool definition for mshell_analyze_element.
func (t *MshellElementTool) Definition() mcp.Tool {
	return mcp.NewTool("mshell_analyze_element",
		mcp.WithDescription(
			"Record findings for one element. Analysing an element again replaces its earlier record.",
		),
		mcp.WithString("analysis_id",
			mcp.Required(),
			mcp.Description("Id returned by mshell_create_analysis"),
		),
		mcp.WithString("element",
			mcp.Required(),
			mcp.Description("One of: "+elementNames()),
		),
		stringList("findings", "Observed problems or facts"),
		mcp.WithNumber("severity",
			mcp.Description(fmt.Sprintf("1 minor, 2 moderate, 3 serious, 4 critical (default: %d)", mshell.DefaultSeverity)),
		),
		stringList("recommendations", "Proposed improvements"),
	)
}

// Handle processes the mshell_analyze_element tool call.
func (t *MshellElementTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "analysis_id")
	if err != nil {
		return t.out.Failure(err), nil
	}
	findings, err := stringsArg(req, "findings")
	if err != nil {
		return t.out.Failure(err), nil
	}
	severity, err := intArg(req, "severity", mshell.DefaultSeverity)
	if err != nil {
		return t.out.Failure(err), nil
	}
	recs, err := stringsArg(req, "recommendations")
	if err != nil {
		return t.out.Failure(err), nil
	}

	res, err := t.app.MShell.AnalyzeElement(id, req.GetString("element", ""), findings, severity, recs)
	if err != nil {
		return t.out.Failure(err), nil
	}
	return t.out.Success(fmt.Sprintf("%s analysed (%s)", res.ElementAnalysis.Element, res.Progress), res), nil
}

// MshellInterfaceTool handles the mshell_analyze_interface MCP tool.
type MshellInterfaceTool struct{ deps }

// NewMshellInterfaceTool creates a MshellInterfaceTool.
func NewMshellInterfaceTool(d deps) *MshellInterfaceTool { return &MshellInterfaceTool{d} }

// Definition returns the MCP tool definition for mshell_analyze_interface.
func (t *MshellInterfaceTool) Definition() mcp.Tool {
	return mcp.NewTool("mshell_analyze_interface",
		mcp.WithDescription(
			"Record the quality of the interface between two different elements. "+
				"Quality is clamped into 1-10.",
		),
		mcp.WithString("analysis_id",
			mcp.Required(),
			mcp.Description("Id returned by mshell_create_analysis"),
		),
		mcp.WithString("element1",
			mcp.Required(),
			mcp.Description("First element: "+elementNames()),
		),
		mcp.WithString("element2",
			mcp.Required(),
			mcp.Description("Second element, different from the first"),
		),
		stringList("issues", "Problems observed at the interface"),
		mcp.WithNumber("quality_score",
			mcp.Description(fmt.Sprintf("Interface quality 1-10 (default: %d)", mshell.DefaultQuality)),
		),
	)
}

// Handle processes the mshell_analyze_interface tool call.
func (t *MshellInterfaceTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "analysis_id")
	if err != nil {
		return t.out.Failure(err), nil
	}
	issues, err := stringsArg(req, "issues")
	if err != nil {
		return t.out.Failure(err), nil
	}
	quality, err := intArg(req, "quality_score", mshell.DefaultQuality)
	if err != nil {
		return t.out.Failure(err), nil
	}

	res, err := t.app.MShell.AnalyzeInterface(id, req.GetString("element1", ""), req.GetString("element2", ""), issues, quality)
	if err != nil {
		return t.out.Failure(err), nil
	}
	return t.out.Success(fmt.Sprintf("Interface %s analysed", res.InterfaceAnalysis.Interface), res), nil
}

// MshellEvaluateTool handles the mshell_evaluate_system MCP tool.
type MshellEvaluateTool struct{ deps }

// NewMshellEvaluateTool creates a MshellEvaluateTool.
func NewMshellEvaluateTool(d deps) *MshellEvaluateTool { return &MshellEvaluateTool{d} }

// Definition returns the MCP tool definition for mshell_evaluate_system.
func (t *MshellEvaluateTool) Definition() mcp.Tool {
	return mcp.NewTool("mshell_evaluate_system",
		mcp.WithDescription(
			"Rate the whole system from the analysed elements and interfaces and list critical "+
				"issues, weak interfaces and recommendations.",
		),
		mcp.WithString("analysis_id",
			mcp.Required(),
			mcp.Description("Id returned by mshell_create_analysis"),
		),
	)
}

// Handle processes the mshell_evaluate_system tool call.
func (t *MshellEvaluateTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "analysis_id")
	if err != nil {
		return t.out.Failure(err), nil
	}
	res, err := t.app.MShell.EvaluateSystem(id)
	if err != nil {
		return t.out.Failure(err), nil
	}
	title, content := mshellEntry(res)
	notifyRecorder(t.rec, "mshell", id, title, content)
	return t.out.Success(res.Evaluation.Summary, res), nil
}

// MshellGetTool handles the mshell_get_analysis MCP tool.
type MshellGetTool struct{ deps }

// NewMshellGetTool creates a MshellGetTool.
func NewMshellGetTool(d deps) *MshellGetTool { return &MshellGetTool{d} }

// Definition returns the MCP tool definition for mshell_get_analysis.
func (t *MshellGetTool) Definition() mcp.Tool {
	return mcp.NewTool("mshell_get_analysis",
		mcp.WithDescription("Show an m-SHELL analysis with every element and interface record."),
		mcp.WithString("analysis_id",
			mcp.Required(),
			mcp.Description("Id returned by mshell_create_analysis"),
		),
	)
}

// Handle processes the mshell_get_analysis tool call.
func (t *MshellGetTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "analysis_id")
	if err != nil {
		return t.out.Failure(err), nil
	}
	res, err := t.app.MShell.GetAnalysis(id)
	if err != nil {
		return t.out.Failure(err), nil
	}
	return t.out.Success("m-SHELL analysis", res), nil
}

// MshellListTool handles the mshell_list_analyses MCP tool.
type MshellListTool struct{ deps }

// NewMshellListTool creates a MshellListTool.
func NewMshellListTool(d deps) *MshellListTool { return &MshellListTool{d} }

// Definition returns the MCP tool definition for mshell_list_analyses.
func (t *MshellListTool) Definition() mcp.Tool {
	return mcp.NewTool("mshell_list_analyses",
		mcp.WithDescription("List every m-SHELL analysis, newest first."),
	)
}

// Handle processes the mshell_list_analyses tool call.
func (t *MshellListTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := t.app.MShell.ListAnalyses()
	return t.out.Success(fmt.Sprintf("%d analyses", len(list)), list), nil
}
