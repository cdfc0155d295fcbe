package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/analysis-support/internal/apperr"
)

func TestIntArg(t *testing.T) {
	req := makeReq(map[string]interface{}{
		"f":    3.0,
		"i":    4,
		"n":    json.Number("5"),
		"frac": 2.5,
		"s":    "7",
		"nil":  nil,
	})

	for key, want := range map[string]int{"f": 3, "i": 4, "n": 5, "missing": 9, "nil": 9} {
		got, err := intArg(req, key, 9)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}
	for _, key := range []string{"frac", "s"} {
		_, err := intArg(req, key, 0)
		assert.True(t, apperr.Is(err, apperr.InvalidArgument), key)
	}

	_, err := requireInt(req, "missing")
	assert.True(t, apperr.Is(err, apperr.InvalidArgument))
}

func TestStringsArg(t *testing.T) {
	req := makeReq(map[string]interface{}{
		"any":    []any{"a", "b"},
		"typed":  []string{"c"},
		"json":   `["d","e"]`,
		"mixed":  []any{"a", true},
		"scalar": 3.0,
		"plain":  "not an array",
	})

	got, err := stringsArg(req, "any")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = stringsArg(req, "typed")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, got)

	got, err = stringsArg(req, "json")
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "e"}, got)

	got, err = stringsArg(req, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	for _, key := range []string{"mixed", "scalar", "plain"} {
		_, err := stringsArg(req, key)
		assert.True(t, apperr.Is(err, apperr.InvalidArgument), key)
	}

	_, err = requireStrings(req, "missing")
	assert.True(t, apperr.Is(err, apperr.InvalidArgument))
}

func TestDecodeArg(t *testing.T) {
	req := makeReq(map[string]interface{}{
		"risks":   []any{map[string]any{"name": "a", "impact": 2.0}},
		"encoded": `[{"name":"b"}]`,
		"bad":     []any{map[string]any{"name": 1}},
	})

	var items []riskArg
	require.NoError(t, decodeArg(req, "risks", &items))
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Name)
	require.NotNil(t, items[0].Impact)
	assert.Equal(t, 2, *items[0].Impact)
	assert.Nil(t, items[0].Probability)

	items = nil
	require.NoError(t, decodeArg(req, "encoded", &items))
	assert.Equal(t, "b", items[0].Name)

	assert.True(t, apperr.Is(decodeArg(req, "bad", &items), apperr.InvalidArgument))
	assert.True(t, apperr.Is(decodeArg(req, "missing", &items), apperr.InvalidArgument))
}

func TestRequireString(t *testing.T) {
	req := makeReq(map[string]interface{}{"ok": "x", "blank": " \t"})
	v, err := requireString(req, "ok")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	_, err = requireString(req, "blank")
	assert.EqualError(t, err, "[INVALID_ARGUMENT] 'blank' is required")
}
