package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/HendryAvila/analysis-support/internal/app"
	"github.com/HendryAvila/analysis-support/internal/apperr"
	"github.com/HendryAvila/analysis-support/internal/output"
)

// Catalog is the set of registered tools. It installs them on an MCP
// server and can also dispatch calls in process by name.
type Catalog struct {
	tools map[string]Tool
	order []string
	out   *output.Renderer
	log   *zap.Logger
}

// NewCatalog creates a catalog holding every framework tool. rec may be
// nil when no journal is configured.
func NewCatalog(a *app.App, out *output.Renderer, rec Recorder, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Catalog{tools: make(map[string]Tool), out: out, log: log}
	d := deps{app: a, out: out, rec: rec}

	// --- 5 Whys ---
	c.Add(
		NewWhyStartTool(d),
		NewWhyAnswerTool(d),
		NewWhyGetTool(d),
		NewWhyListTool(d),
	)

	// --- MECE and framework shortcuts ---
	c.Add(
		NewMeceAnalyzeTool(d),
		NewMeceStructureTool(d),
		NewMeceGetTool(d),
		NewMeceListTool(d),
	)
	c.Add(newFrameworkTools(d)...)

	// --- SCAMPER ---
	c.Add(
		NewScamperStartTool(d),
		NewScamperApplyTool(d),
		NewScamperEvaluateTool(d),
		NewScamperGetTool(d),
		NewScamperListTool(d),
		NewScamperComprehensiveTool(d),
	)

	// --- RBS ---
	c.Add(
		NewRbsStructureTool(d),
		NewRbsIdentifyTool(d),
		NewRbsEvaluateTool(d),
		NewRbsGetTool(d),
		NewRbsListTool(d),
	)

	// --- m-SHELL ---
	c.Add(
		NewMshellCreateTool(d),
		NewMshellElementTool(d),
		NewMshellInterfaceTool(d),
		NewMshellEvaluateTool(d),
		NewMshellGetTool(d),
		NewMshellListTool(d),
	)
	return c
}

// Add registers tools. Names must be unique.
func (c *Catalog) Add(tools ...Tool) {
	for _, t := range tools {
		name := t.Definition().Name
		if _, dup := c.tools[name]; dup {
			panic(fmt.Sprintf("tools: duplicate tool %q", name))
		}
		c.tools[name] = t
		c.order = append(c.order, name)
	}
}

// Names lists the registered tool names in registration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Register installs every tool on s.
func (c *Catalog) Register(s *server.MCPServer) {
	for _, name := range c.order {
		t := c.tools[name]
		s.AddTool(t.Definition(), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return c.dispatch(ctx, name, t, req), nil
		})
	}
}

// Call dispatches a call by name with the given arguments.
func (c *Catalog) Call(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	t, ok := c.tools[name]
	if !ok {
		c.log.Warn("unknown tool", zap.String("tool", name))
		return c.out.Failure(apperr.New(apperr.KindUnknownOperation, apperr.UnknownTool, "unknown tool %q", name))
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return c.dispatch(ctx, name, t, req)
}

// dispatch runs a handler, turning Go errors and panics into INTERNAL
// failures so nothing reaches the transport.
func (c *Catalog) dispatch(ctx context.Context, name string, t Tool, req mcp.CallToolRequest) (res *mcp.CallToolResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("tool panicked", zap.String("tool", name), zap.Any("panic", r))
			res = c.out.Failure(apperr.Wrap(fmt.Errorf("panic: %v", r), "tool execution error"))
		}
		c.logCall(name, start, res)
	}()

	res, err := t.Handle(ctx, req)
	if err != nil {
		c.log.Error("tool failed", zap.String("tool", name), zap.Error(err))
		return c.out.Failure(apperr.Wrap(err, "tool execution error"))
	}
	if res == nil {
		return c.out.Failure(apperr.Wrap(nil, "tool returned no result"))
	}
	return res
}

func (c *Catalog) logCall(name string, start time.Time, res *mcp.CallToolResult) {
	fields := []zap.Field{
		zap.String("tool", name),
		zap.Duration("duration", time.Since(start)),
	}
	if res != nil && res.IsError {
		fields = append(fields, zap.String("error_code", string(output.ErrorCode(res))))
		c.log.Warn("tool call failed", fields...)
		return
	}
	c.log.Debug("tool call", fields...)
}
