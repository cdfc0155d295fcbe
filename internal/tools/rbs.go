package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/analysis-support/internal/rbs"
)

// riskArg is the wire shape of one item of rbs_identify_risks.risks.
type riskArg struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Probability *int   `json:"probability"`
	Impact      *int   `json:"impact"`
}

func categoryNames() string {
	names := make([]string, len(rbs.Categories))
	for i, c := range rbs.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// RbsStructureTool handles the rbs_create_structure MCP tool.
type RbsStructureTool struct{ deps }

// NewRbsStructureTool creates a RbsStructureTool.
func NewRbsStructureTool(d deps) *RbsStructureTool { return &RbsStructureTool{d} }

// Definition returns the MCP tool definition for rbs_create_structure.
func (t *RbsStructureTool) Definition() mcp.Tool {
	return mcp.NewTool("rbs_create_structure",
		mcp.WithDescription(
			"Open a risk analysis and return the risk breakdown structure template "+
				"(4 categories, 3 subcategories each, example risks) with focus areas for the project type.",
		),
		mcp.WithString("project_name",
			mcp.Required(),
			mcp.Description("Project to analyse"),
		),
		mcp.WithString("project_type",
			mcp.Description("IT/system development, infrastructure/construction, new product development or organizational change"),
		),
		mcp.WithString("context",
			mcp.Description("Optional background"),
		),
	)
}

// Handle processes the rbs_create_structure tool call.
func (t *RbsStructureTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireString(req, "project_name")
	if err != nil {
		return t.out.Failure(err), nil
	}
	res := t.app.RBS.CreateStructure(name, req.GetString("project_type", ""), req.GetString("context", ""))
	return t.out.Success("Risk breakdown structure created", res), nil
}

// RbsIdentifyTool handles the rbs_identify_risks MCP tool.
type RbsIdentifyTool struct{ deps }

// NewRbsIdentifyTool creates a RbsIdentifyTool.
func NewRbsIdentifyTool(d deps) *RbsIdentifyTool { return &RbsIdentifyTool{d} }

// Definition returns the MCP tool definition for rbs_identify_risks.
func (t *RbsIdentifyTool) Definition() mcp.Tool {
	return mcp.NewTool("rbs_identify_risks",
		mcp.WithDescription(
			"Add risks under one category and subcategory. Probability and impact are rated 1-5 "+
				"(default 3). Risks are added in order; an invalid item stops the batch.",
		),
		mcp.WithString("analysis_id",
			mcp.Required(),
			mcp.Description("Id returned by rbs_create_structure"),
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("One of: "+categoryNames()+" (English and Japanese labels are accepted)"),
		),
		mcp.WithString("subcategory",
			mcp.Description("Subcategory within the category"),
		),
		mcp.WithArray("risks",
			mcp.Required(),
			mcp.Description("Risks: [{name, description, probability, impact}]"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"probability": map[string]any{"type": "integer", "minimum": rbs.MinRating, "maximum": rbs.MaxRating},
					"impact":      map[string]any{"type": "integer", "minimum": rbs.MinRating, "maximum": rbs.MaxRating},
				},
				"required": []string{"name"},
			}),
		),
	)
}

// Handle processes the rbs_identify_risks tool call.
func (t *RbsIdentifyTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "analysis_id")
	if err != nil {
		return t.out.Failure(err), nil
	}
	var items []riskArg
	if err := decodeArg(req, "risks", &items); err != nil {
		return t.out.Failure(err), nil
	}
	inputs := make([]rbs.RiskInput, len(items))
	for i, it := range items {
		inputs[i] = rbs.RiskInput{
			Name:        it.Name,
			Description: it.Description,
			Probability: it.Probability,
			Impact:      it.Impact,
		}
	}

	res, err := t.app.RBS.IdentifyRisks(id, req.GetString("category", ""), req.GetString("subcategory", ""), inputs)
	if err != nil {
		return t.out.Failure(err), nil
	}
	return t.out.Success(fmt.Sprintf("Added %d risks", len(res.AddedRisks)), res), nil
}

// RbsEvaluateTool handles the rbs_evaluate_risks MCP tool.
type RbsEvaluateTool struct{ deps }

// NewRbsEvaluateTool creates a RbsEvaluateTool.
func NewRbsEvaluateTool(d deps) *RbsEvaluateTool { return &RbsEvaluateTool{d} }

// Definition returns the MCP tool definition for rbs_evaluate_risks.
func (t *RbsEvaluateTool) Definition() mcp.Tool {
	return mcp.NewTool("rbs_evaluate_risks",
		mcp.WithDescription(
			"Evaluate the register: 5x5 probability/impact matrix, statistics, priority groups "+
				"and recommendations.",
		),
		mcp.WithString("analysis_id",
			mcp.Required(),
			mcp.Description("Id returned by rbs_create_structure"),
		),
	)
}

// Handle processes the rbs_evaluate_risks tool call.
func (t *RbsEvaluateTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "analysis_id")
	if err != nil {
		return t.out.Failure(err), nil
	}
	res, err := t.app.RBS.EvaluateRisks(id)
	if err != nil {
		return t.out.Failure(err), nil
	}
	title, content := rbsEntry(res)
	notifyRecorder(t.rec, "rbs", id, title, content)
	return t.out.Success(fmt.Sprintf("Evaluated %d risks", res.Statistics.TotalRisks), res), nil
}

// RbsGetTool handles the rbs_get_analysis MCP tool.
type RbsGetTool struct{ deps }

// NewRbsGetTool creates a RbsGetTool.
func NewRbsGetTool(d deps) *RbsGetTool { return &RbsGetTool{d} }

// Definition returns the MCP tool definition for rbs_get_analysis.
func (t *RbsGetTool) Definition() mcp.Tool {
	return mcp.NewTool("rbs_get_analysis",
		mcp.WithDescription("Show a risk analysis with every registered risk."),
		mcp.WithString("analysis_id",
			mcp.Required(),
			mcp.Description("Id returned by rbs_create_structure"),
		),
	)
}

// Handle processes the rbs_get_analysis tool call.
func (t *RbsGetTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req, "analysis_id")
	if err != nil {
		return t.out.Failure(err), nil
	}
	res, err := t.app.RBS.GetAnalysis(id)
	if err != nil {
		return t.out.Failure(err), nil
	}
	return t.out.Success("Risk analysis", res), nil
}

// RbsListTool handles the rbs_list_analyses MCP tool.
type RbsListTool struct{ deps }

// NewRbsListTool creates a RbsListTool.
func NewRbsListTool(d deps) *RbsListTool { return &RbsListTool{d} }

// Definition returns the MCP tool definition for rbs_list_analyses.
func (t *RbsListTool) Definition() mcp.Tool {
	return mcp.NewTool("rbs_list_analyses",
		mcp.WithDescription("List every risk analysis, newest first."),
	)
}

// Handle processes the rbs_list_analyses tool call.
func (t *RbsListTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := t.app.RBS.ListAnalyses()
	return t.out.Success(fmt.Sprintf("%d analyses", len(list)), list), nil
}
