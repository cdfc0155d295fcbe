// Package output encodes tool results as a uniform envelope.
//
// Every tool answers with {success, message, error_code?, data?} encoded as
// JSON or YAML. Failures are flagged on the MCP result so clients can tell
// them apart without parsing the text.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/analysis-support/internal/apperr"
)

// Format selects the envelope encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. Empty means JSON.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or yaml)", name)
	}
}

// Envelope is the body of every tool result.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	ErrorCode apperr.Code `json:"error_code,omitempty"`
	Data      any         `json:"data,omitempty"`
}

// Renderer turns payloads and errors into MCP tool results.
type Renderer struct {
	format Format
}

// NewRenderer creates a Renderer for the given format.
func NewRenderer(format Format) *Renderer {
	if format == "" {
		format = FormatJSON
	}
	return &Renderer{format: format}
}

// Format reports the encoding in use.
func (r *Renderer) Format() Format {
	return r.format
}

// Success wraps data in a successful envelope.
func (r *Renderer) Success(message string, data any) *mcp.CallToolResult {
	return r.result(Envelope{Success: true, Message: message, Data: data})
}

// Failure wraps err in a failed envelope. Errors that are not *apperr.Error
// are reported as INTERNAL. A wrapped cause is appended to the message.
func (r *Renderer) Failure(err error) *mcp.CallToolResult {
	env := Envelope{Success: false, ErrorCode: apperr.Internal, Message: err.Error()}
	if ae, ok := apperr.As(err); ok {
		env.ErrorCode = ae.Code
		env.Message = ae.Message
		if cause := ae.Unwrap(); cause != nil {
			env.Message += ": " + cause.Error()
		}
	}
	return r.result(env)
}

func (r *Renderer) result(env Envelope) *mcp.CallToolResult {
	text, err := r.Encode(env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err))
	}
	res := mcp.NewToolResultText(text)
	res.IsError = !env.Success
	return res
}

// Encode renders env in the configured format.
func (r *Renderer) Encode(env Envelope) (string, error) {
	raw, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", err
	}
	if r.format != FormatYAML {
		return string(raw), nil
	}

	// Round-trip through JSON so YAML keys follow the json tags.
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", err
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ErrorCode reads the error code back from a failed result. It returns ""
// for successful or foreign results.
func ErrorCode(res *mcp.CallToolResult) apperr.Code {
	if res == nil || !res.IsError || len(res.Content) == 0 {
		return ""
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		return ""
	}
	// YAML is a superset of JSON, so one decoder reads both formats.
	var env struct {
		ErrorCode apperr.Code `yaml:"error_code"`
	}
	if err := yaml.Unmarshal([]byte(tc.Text), &env); err != nil {
		return ""
	}
	return env.ErrorCode
}
