package prompts

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, res *mcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, res.Messages, 1)
	tc, ok := res.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestStartPrompt(t *testing.T) {
	p := NewStartPrompt()
	assert.Equal(t, "analysis-start", p.Definition().Name)

	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"framework": "RBS", "subject": "ERP rollout"}
	res, err := p.Handle(context.Background(), req)
	require.NoError(t, err)
	text := promptText(t, res)
	assert.Contains(t, text, "rbs analysis of: ERP rollout")
	assert.Contains(t, text, "`rbs_evaluate_risks`")
	assert.NotContains(t, text, "Ask me what to analyse")
}

func TestStartPrompt_Defaults(t *testing.T) {
	res, err := NewStartPrompt().Handle(context.Background(), mcp.GetPromptRequest{})
	require.NoError(t, err)
	text := promptText(t, res)
	assert.Contains(t, text, "`why_analysis_start`")
	assert.Contains(t, text, "Ask me what to analyse")
}

func TestStartPrompt_UnknownFramework(t *testing.T) {
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"framework": "fishbone"}
	_, err := NewStartPrompt().Handle(context.Background(), req)
	assert.ErrorContains(t, err, "fishbone")
}

func TestWorkflowsCoverEveryFramework(t *testing.T) {
	assert.Len(t, workflows, len(frameworkOrder))
	for _, f := range frameworkOrder {
		assert.Contains(t, workflows, f)
	}
}

func TestStatusPrompt(t *testing.T) {
	p := NewStatusPrompt()
	assert.Equal(t, "analysis-status", p.Definition().Name)
	res, err := p.Handle(context.Background(), mcp.GetPromptRequest{})
	require.NoError(t, err)
	assert.Contains(t, promptText(t, res), "`mshell_list_analyses`")
}
