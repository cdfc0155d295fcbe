package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the analysis-status MCP prompt.
// It instructs the AI to summarise every open analysis.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("analysis-status",
		mcp.WithPromptDescription(
			"Show every analysis of this session across all frameworks "+
				"and what to do next with each.",
		),
	)
}

// Handle processes the analysis-status prompt request.
func (p *StatusPrompt) Handle(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Analysis status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `why_analysis_list`, `mece_list_analyses`, `scamper_list_sessions`, " +
						"`rbs_list_analyses` and `mshell_list_analyses`.\n\n" +
						"Then:\n" +
						"1. Group the results by framework\n" +
						"2. Point out unfinished work (open 5 Whys chains, sessions without evaluations, registers never evaluated)\n" +
						"3. Tell me the next step for each unfinished analysis",
				),
			},
		},
	}, nil
}
