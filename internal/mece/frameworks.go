package mece

import (
	"fmt"
	"strings"
)

// Framework names a fixed category structure.
type Framework string

const (
	Framework4P               Framework = "4P"
	Framework3C               Framework = "3C"
	FrameworkSWOT             Framework = "SWOT"
	FrameworkTimeline         Framework = "timeline"
	FrameworkInternalExternal Framework = "internal-external"
)

// Auto asks CreateStructure to pick the framework from the topic.
const Auto = "auto"

// Frameworks lists every supported framework in presentation order.
var Frameworks = []Framework{
	Framework4P,
	Framework3C,
	FrameworkSWOT,
	FrameworkTimeline,
	FrameworkInternalExternal,
}

// frameworkAliases maps accepted spellings (lowercased) to frameworks.
var frameworkAliases = map[string]Framework{
	"4p":                Framework4P,
	"3c":                Framework3C,
	"swot":              FrameworkSWOT,
	"timeline":          FrameworkTimeline,
	"time-series":       FrameworkTimeline,
	"時系列":               FrameworkTimeline,
	"internal-external": FrameworkInternalExternal,
	"internal_external": FrameworkInternalExternal,
	"internal/external": FrameworkInternalExternal,
	"内外":                FrameworkInternalExternal,
}

// ParseFramework resolves a framework name, ignoring case.
func ParseFramework(name string) (Framework, bool) {
	f, ok := frameworkAliases[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// frameworkTemplate is the static description of one framework.
type frameworkTemplate struct {
	categories []string
	// explanations holds one format string per category; %s is the topic.
	explanations []string
}

var frameworkTemplates = map[Framework]frameworkTemplate{
	Framework4P: {
		categories: []string{"Product", "Price", "Place", "Promotion"},
		explanations: []string{
			"Features, quality and functions of the products and services in %s",
			"Pricing strategy, cost structure and value proposition of %s",
			"Sales channels, distribution routes and access for %s",
			"Advertising, publicity and communication strategy of %s",
		},
	},
	Framework3C: {
		categories: []string{"Customer", "Competitor", "Company"},
		explanations: []string{
			"Customer needs, customer behaviour and market conditions in %s",
			"Competitor moves, competitive advantage and market share in %s",
			"Our own strengths, resources and capabilities in %s",
		},
	},
	FrameworkSWOT: {
		categories: []string{"Strengths", "Weaknesses", "Opportunities", "Threats"},
		explanations: []string{
			"Internal strengths, advantages and competitiveness in %s",
			"Internal weaknesses, issues and points to improve in %s",
			"External opportunities, openings and possibilities in %s",
			"External threats, risks and obstacles in %s",
		},
	},
	FrameworkTimeline: {
		categories: []string{"Past", "Present", "Future"},
		explanations: []string{
			"Past situation, history and lessons learned of %s",
			"Current situation, present issues and opportunities of %s",
			"Future outlook, forecasts and plans for %s",
		},
	},
	FrameworkInternalExternal: {
		categories: []string{"Internal factors", "External factors"},
		explanations: []string{
			"Elements of %s that can be controlled internally",
			"External environment and constraints affecting %s",
		},
	},
}

// selectionRule picks a framework when the topic mentions one of its keywords.
type selectionRule struct {
	framework Framework
	keywords  []string
}

// selectionRules are evaluated in order; the first match wins.
var selectionRules = []selectionRule{
	{Framework4P, []string{"marketing", "sales", "product", "merchandise", "マーケティング", "販売", "商品", "製品"}},
	{FrameworkSWOT, []string{"organization", "organisation", "company", "enterprise", "strength", "weakness", "組織", "企業", "会社", "強み", "弱み"}},
	{Framework3C, []string{"strategy", "competitor", "competition", "analysis", "market", "戦略", "競合", "分析", "市場"}},
	{FrameworkTimeline, []string{"change", "trend", "history", "future", "変化", "推移", "履歴", "将来"}},
}

// SelectFramework chooses a framework for topic using keyword rules,
// falling back to internal-external.
func SelectFramework(topic string) Framework {
	lower := strings.ToLower(topic)
	for _, rule := range selectionRules {
		if containsAny(lower, rule.keywords) {
			return rule.framework
		}
	}
	return FrameworkInternalExternal
}

// CategoriesOf returns the categories of f, or nil for an unknown framework.
func CategoriesOf(f Framework) []string {
	tpl, ok := frameworkTemplates[f]
	if !ok {
		return nil
	}
	return append([]string(nil), tpl.categories...)
}

func supportedFrameworks() string {
	names := make([]string, len(Frameworks))
	for i, f := range Frameworks {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func explain(tpl frameworkTemplate, topic string) []CategoryExplanation {
	out := make([]CategoryExplanation, len(tpl.categories))
	for i, c := range tpl.categories {
		out[i] = CategoryExplanation{
			Category:    c,
			Explanation: fmt.Sprintf(tpl.explanations[i], topic),
		}
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
