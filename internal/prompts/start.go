// Package prompts implements MCP prompt handlers for the analysis server.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// workflows describes the tool sequence of each framework.
var workflows = map[string]string{
	"whys": "1. Run `why_analysis_start` with the problem\n" +
		"2. Ask me each question and record my answer with `why_analysis_add_answer`, levels 0 to 4 in order\n" +
		"3. When level 4 is answered, present the root cause and the full chain",
	"mece": "1. Propose a breakdown with `mece_create_structure` (framework 'auto' unless I name one)\n" +
		"2. Let me adjust the categories, then check them with `mece_analyze_categories`\n" +
		"3. Explain any overlaps or gaps and suggest fixes",
	"scamper": "1. Run `scamper_start_session` with the topic and current situation\n" +
		"2. Work through the 7 techniques, recording ideas with `scamper_apply_technique`\n" +
		"3. Score the ideas with `scamper_evaluate_ideas` and present the top ideas",
	"rbs": "1. Run `rbs_create_structure` with the project name and type\n" +
		"2. Walk the categories with me and record risks with `rbs_identify_risks`\n" +
		"3. Run `rbs_evaluate_risks` and present the matrix, priorities and recommendations",
	"mshell": "1. Run `mshell_create_analysis` with the system and purpose\n" +
		"2. Analyse each of the 6 elements with `mshell_analyze_element`\n" +
		"3. Analyse the weak interfaces with `mshell_analyze_interface`\n" +
		"4. Run `mshell_evaluate_system` and present the rating and recommendations",
}

// frameworkOrder is the order frameworks are listed in.
var frameworkOrder = []string{"whys", "mece", "scamper", "rbs", "mshell"}

// StartPrompt handles the analysis-start MCP prompt.
// It guides the AI through one framework's tool sequence.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("analysis-start",
		mcp.WithPromptDescription(
			"Start a business analysis with one of the frameworks: "+
				"5 Whys, MECE, SCAMPER, RBS or m-SHELL.",
		),
		mcp.WithArgument("framework",
			mcp.ArgumentDescription("One of: "+strings.Join(frameworkOrder, ", ")+". Default: whys"),
		),
		mcp.WithArgument("subject",
			mcp.ArgumentDescription("The problem, topic, project or system to analyse"),
		),
	)
}

// Handle processes the analysis-start prompt request.
func (p *StartPrompt) Handle(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	framework := "whys"
	subject := ""
	if args := req.Params.Arguments; args != nil {
		if f, ok := args["framework"]; ok && f != "" {
			framework = strings.ToLower(strings.TrimSpace(f))
		}
		subject = args["subject"]
	}

	steps, ok := workflows[framework]
	if !ok {
		return nil, fmt.Errorf("unknown framework %q: must be one of %s", framework, strings.Join(frameworkOrder, ", "))
	}

	intro := "I want to run a " + framework + " analysis."
	if subject != "" {
		intro = fmt.Sprintf("I want to run a %s analysis of: %s", framework, subject)
	} else {
		steps = "0. Ask me what to analyse\n" + steps
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Start %s analysis", framework),
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(intro + "\n\nPlease:\n" + steps),
			},
		},
	}, nil
}
