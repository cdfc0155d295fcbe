package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRbsTools_Flow(t *testing.T) {
	c, rec := newTestCatalog(t)

	created := data(t, call(t, c, "rbs_create_structure", map[string]any{
		"project_name": "ERP rollout",
		"project_type": "IT・システム開発",
	}))
	id := created["analysis_id"].(string)
	assert.Len(t, created["rbs_structure"], 4)
	assert.Equal(t, "Examine technical risks first", created["recommended_focus"].([]any)[0])

	res := call(t, c, "rbs_identify_risks", map[string]any{
		"analysis_id": id,
		"category":    "技術的リスク",
		"subcategory": "Integration",
		"risks": []any{
			map[string]any{"name": "data migration fails", "probability": 4.0, "impact": 5.0},
			map[string]any{"name": "vendor API changes", "description": "v2 deprecation"},
		},
	})
	env := decode(t, res)
	assert.Equal(t, "Added 2 risks", env.Message)

	d := data(t, call(t, c, "rbs_evaluate_risks", map[string]any{"analysis_id": id}))
	stats := d["statistics"].(map[string]any)
	assert.Equal(t, 2.0, stats["total_risks"])
	assert.Equal(t, 20.0, stats["max_score"])
	assert.Equal(t, 9.0, stats["min_score"])
	matrix := d["risk_matrix"].(map[string]any)
	assert.Len(t, matrix["4"].(map[string]any)["5"], 1)

	require.Len(t, rec.calls, 1)
	assert.Equal(t, "rbs", rec.calls[0].framework)
	assert.Contains(t, rec.calls[0].content, "[highest] data migration fails (technical, score 20)")

	got := data(t, call(t, c, "rbs_get_analysis", map[string]any{"analysis_id": id}))
	assert.Len(t, got["risks"], 2)

	env = decode(t, call(t, c, "rbs_list_analyses", nil))
	assert.Contains(t, string(env.Data), "ERP rollout")
}

func TestRbsTools_PartialBatch(t *testing.T) {
	c, _ := newTestCatalog(t)
	id := data(t, call(t, c, "rbs_create_structure", map[string]any{"project_name": "p"}))["analysis_id"].(string)

	env := decode(t, call(t, c, "rbs_identify_risks", map[string]any{
		"analysis_id": id,
		"category":    "external",
		"risks": []any{
			map[string]any{"name": "first"},
			map[string]any{"name": "bad", "impact": 9},
		},
	}))
	assert.Equal(t, "INVALID_RATING", env.ErrorCode)
	assert.Contains(t, env.Message, "risk 2")

	got := data(t, call(t, c, "rbs_get_analysis", map[string]any{"analysis_id": id}))
	assert.Len(t, got["risks"], 1)
}

func TestRbsTools_Errors(t *testing.T) {
	c, rec := newTestCatalog(t)
	id := data(t, call(t, c, "rbs_create_structure", map[string]any{"project_name": "p"}))["analysis_id"].(string)

	env := decode(t, call(t, c, "rbs_create_structure", nil))
	assert.Equal(t, "INVALID_ARGUMENT", env.ErrorCode)

	env = decode(t, call(t, c, "rbs_identify_risks", map[string]any{"analysis_id": id, "category": "weather", "risks": []any{}}))
	assert.Equal(t, "INVALID_CATEGORY", env.ErrorCode)

	env = decode(t, call(t, c, "rbs_identify_risks", map[string]any{"analysis_id": id, "category": "external", "risks": "not json"}))
	assert.Equal(t, "INVALID_ARGUMENT", env.ErrorCode)

	env = decode(t, call(t, c, "rbs_evaluate_risks", map[string]any{"analysis_id": id}))
	assert.Equal(t, "NO_RISKS", env.ErrorCode)

	env = decode(t, call(t, c, "rbs_evaluate_risks", map[string]any{"analysis_id": "missing0"}))
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)
	assert.Empty(t, rec.calls)
}
