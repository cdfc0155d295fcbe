package tools

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/analysis-support/internal/apperr"
)

func invalidArg(format string, args ...any) *apperr.Error {
	return apperr.Validation(apperr.InvalidArgument, format, args...)
}

// requireString returns a non-blank string argument.
func requireString(req mcp.CallToolRequest, key string) (string, error) {
	v := req.GetString(key, "")
	if strings.TrimSpace(v) == "" {
		return "", invalidArg("'%s' is required", key)
	}
	return v, nil
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) (int, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return defaultVal, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, invalidArg("'%s' must be an integer", key)
		}
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, invalidArg("'%s' must be an integer", key)
		}
		return int(n), nil
	default:
		return 0, invalidArg("'%s' must be a number", key)
	}
}

// requireInt is intArg for arguments without a default.
func requireInt(req mcp.CallToolRequest, key string) (int, error) {
	if _, ok := req.GetArguments()[key]; !ok {
		return 0, invalidArg("'%s' is required", key)
	}
	return intArg(req, key, 0)
}

// stringsArg extracts a list of strings. Some clients send arrays as a
// JSON-encoded string; those are decoded too.
func stringsArg(req mcp.CallToolRequest, key string) ([]string, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, invalidArg("'%s[%d]' must be a string", key, i)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		var out []string
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return nil, invalidArg("'%s' must be an array of strings", key)
		}
		return out, nil
	default:
		return nil, invalidArg("'%s' must be an array of strings", key)
	}
}

// requireStrings is stringsArg for arguments that must be present.
func requireStrings(req mcp.CallToolRequest, key string) ([]string, error) {
	if _, ok := req.GetArguments()[key]; !ok {
		return nil, invalidArg("'%s' is required", key)
	}
	return stringsArg(req, key)
}

// decodeArg re-encodes an argument as JSON and decodes it into dst, for
// arrays of objects.
func decodeArg(req mcp.CallToolRequest, key string, dst any) error {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return invalidArg("'%s' is required", key)
	}
	var data []byte
	if s, isString := raw.(string); isString {
		data = []byte(s)
	} else {
		b, err := json.Marshal(raw)
		if err != nil {
			return invalidArg("'%s' is not valid JSON: %v", key, err)
		}
		data = b
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return invalidArg("'%s' has the wrong shape: %v", key, err)
	}
	return nil
}

// stringList declares an array-of-strings parameter.
func stringList(name, description string, opts ...mcp.PropertyOption) mcp.ToolOption {
	opts = append(opts, mcp.Description(description), mcp.WithStringItems())
	return mcp.WithArray(name, opts...)
}
