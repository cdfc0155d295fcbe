package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/analysis-support/internal/mece"
)

// FrameworkTool is a shortcut for mece_create_structure with a fixed
// framework, e.g. swot_analysis.
type FrameworkTool struct {
	deps
	name        string
	framework   mece.Framework
	description string
}

// frameworkShortcuts lists the shortcut tools in registration order.
var frameworkShortcuts = []struct {
	name        string
	framework   mece.Framework
	description string
}{
	{"swot_analysis", mece.FrameworkSWOT, "Break a topic down into Strengths, Weaknesses, Opportunities and Threats."},
	{"4p_analysis", mece.Framework4P, "Break a marketing topic down into Product, Price, Place and Promotion."},
	{"3c_analysis", mece.Framework3C, "Break a strategy topic down into Customer, Competitor and Company."},
	{"timeline_analysis", mece.FrameworkTimeline, "Break a topic down into Past, Present and Future."},
	{"internal_external_analysis", mece.FrameworkInternalExternal, "Break a topic down into internal and external factors."},
}

func newFrameworkTools(d deps) []Tool {
	out := make([]Tool, 0, len(frameworkShortcuts))
	for _, s := range frameworkShortcuts {
		out = append(out, &FrameworkTool{deps: d, name: s.name, framework: s.framework, description: s.description})
	}
	return out
}

// Definition returns the MCP tool definition for the shortcut.
func (t *FrameworkTool) Definition() mcp.Tool {
	return mcp.NewTool(t.name,
		mcp.WithDescription(t.description+" Same output as mece_create_structure with framework "+string(t.framework)+"."),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Topic to structure"),
		),
	)
}

// Handle processes the shortcut tool call.
func (t *FrameworkTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := requireString(req, "topic")
	if err != nil {
		return t.out.Failure(err), nil
	}
	res, err := t.app.MECE.CreateStructure(topic, string(t.framework))
	if err != nil {
		return t.out.Failure(err), nil
	}
	return t.out.Success(fmt.Sprintf("%s structure for %q", res.Framework, topic), res), nil
}
