package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/HendryAvila/analysis-support/internal/app"
	"github.com/HendryAvila/analysis-support/internal/output"
)

// --- Test helpers ---

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// envelope is the decoded form of a JSON tool result.
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

func decode(t *testing.T, r *mcp.CallToolResult) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(resultText(r)), &env), resultText(r))
	require.Equal(t, !env.Success, r.IsError)
	return env
}

// data decodes the payload of a successful result into a generic map.
func data(t *testing.T, r *mcp.CallToolResult) map[string]any {
	t.Helper()
	env := decode(t, r)
	require.True(t, env.Success, env.Message)
	var m map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &m))
	return m
}

// fakeRecorder captures journal notifications.
type fakeRecorder struct {
	calls []recorded
}

type recorded struct {
	framework, analysisID, title, content string
}

func (f *fakeRecorder) Record(framework, analysisID, title, content string) {
	f.calls = append(f.calls, recorded{framework, analysisID, title, content})
}

func newTestCatalog(t *testing.T) (*Catalog, *fakeRecorder) {
	t.Helper()
	rec := &fakeRecorder{}
	return NewCatalog(app.New(), output.NewRenderer(output.FormatJSON), rec, zaptest.NewLogger(t)), rec
}

func call(t *testing.T, c *Catalog, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res := c.Call(context.Background(), name, args)
	require.NotNil(t, res)
	return res
}
