// Package tools implements the MCP tool handlers of the analysis server.
//
// Each tool is a struct that receives its dependencies via its constructor
// and exposes Definition (the mcp-go schema) and Handle. Handlers never
// return Go errors for domain failures: every outcome is rendered as an
// output envelope, and the Catalog converts anything else into an
// INTERNAL failure.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/analysis-support/internal/app"
	"github.com/HendryAvila/analysis-support/internal/output"
)

// Tool is one registered MCP tool.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// deps bundles what every framework tool needs.
type deps struct {
	app *app.App
	out *output.Renderer
	rec Recorder
}
