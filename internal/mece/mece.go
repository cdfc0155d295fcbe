// Package mece checks category sets for the MECE principle (mutually
// exclusive, collectively exhaustive) and proposes framework structures.
//
// Both checks are keyword heuristics: overlaps are shared words between
// category labels, gaps are generic analysis aspects whose keywords never
// appear in the labels. Gap detection only runs for business, operations or
// project topics.
package mece

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/HendryAvila/analysis-support/internal/apperr"
	"github.com/HendryAvila/analysis-support/internal/registry"
)

var timeNow = time.Now

// Violation classifies a category set.
type Violation string

const (
	ViolationNone    Violation = "none"
	ViolationOverlap Violation = "overlap"
	ViolationGap     Violation = "gap"
	ViolationBoth    Violation = "both"
)

// Description returns a readable explanation of the classification.
func (v Violation) Description() string {
	switch v {
	case ViolationOverlap:
		return "overlap (mutual exclusivity violated)"
	case ViolationGap:
		return "gap (collective exhaustiveness violated)"
	case ViolationBoth:
		return "both overlap and gap"
	default:
		return "compliant with the MECE principle"
	}
}

func classify(hasOverlaps, hasGaps bool) Violation {
	switch {
	case hasOverlaps && hasGaps:
		return ViolationBoth
	case hasOverlaps:
		return ViolationOverlap
	case hasGaps:
		return ViolationGap
	default:
		return ViolationNone
	}
}

// Overlap records two categories sharing a keyword.
type Overlap struct {
	CategoryA string `json:"category_a"`
	CategoryB string `json:"category_b"`
	Keyword   string `json:"keyword"`
	Reason    string `json:"reason"`
}

// Analysis is a stored category check. It is immutable after creation.
type Analysis struct {
	ID          string
	Topic       string
	Categories  []string
	Overlaps    []Overlap
	Gaps        []string
	Violation   Violation
	Suggestions []string
	Notes       []string
	CreatedAt   time.Time
}

// minKeywordRunes is the length a word must exceed to count as a keyword.
const minKeywordRunes = 2

// aspect is a generic analysis axis checked for gaps.
type aspect struct {
	name     string
	keywords []string
}

var aspects = []aspect{
	{"time", []string{"time", "period", "timing", "schedule", "時間", "期間", "タイミング", "スケジュール"}},
	{"place", []string{"place", "region", "area", "location", "場所", "地域", "エリア", "位置"}},
	{"person", []string{"person", "people", "owner", "user", "customer", "人", "担当者", "責任者", "ユーザー", "顧客"}},
	{"method", []string{"method", "procedure", "process", "approach", "方法", "手順", "プロセス", "やり方"}},
	{"reason", []string{"reason", "cause", "purpose", "motive", "理由", "原因", "目的", "動機"}},
	{"cost", []string{"cost", "budget", "price", "expense", "費用", "コスト", "予算", "価格"}},
}

// gapTopics enable gap detection when they appear in the topic.
var gapTopics = []string{"business", "operations", "project", "ビジネス", "業務", "プロジェクト"}

// Classifier owns every stored MECE analysis.
type Classifier struct {
	analyses *registry.Registry[Analysis]
}

// NewClassifier creates an empty Classifier.
func NewClassifier() *Classifier {
	return &Classifier{analyses: registry.New[Analysis]()}
}

// AnalyzeCategories checks categories for overlaps and gaps and stores the result.
func (c *Classifier) AnalyzeCategories(topic string, categories []string) AnalysisResult {
	cats := append([]string(nil), categories...)
	overlaps := findOverlaps(cats)
	gaps := findGaps(topic, cats)

	a := Analysis{
		Topic:      topic,
		Categories: cats,
		Overlaps:   overlaps,
		Gaps:       gaps,
		Violation:  classify(len(overlaps) > 0, len(gaps) > 0),
		CreatedAt:  timeNow(),
	}
	a.Suggestions = suggestions(&a)
	a.Notes = notes(&a)

	id := c.analyses.Create(func(id string) Analysis {
		a.ID = id
		return a
	})
	a.ID = id
	return project(&a)
}

// GetAnalysis returns a stored analysis.
func (c *Classifier) GetAnalysis(id string) (AnalysisResult, error) {
	var res AnalysisResult
	err := c.analyses.View(id, func(a *Analysis) error {
		res = project(a)
		return nil
	})
	if errors.Is(err, registry.ErrNotFound) {
		return AnalysisResult{}, apperr.NotFound("analysis", id)
	}
	return res, err
}

// ListAnalyses returns every stored analysis, newest first.
func (c *Classifier) ListAnalyses() []ListEntry {
	type row struct {
		entry   ListEntry
		created time.Time
	}
	var rows []row
	c.analyses.Each(func(id string, a *Analysis) {
		rows = append(rows, row{
			entry: ListEntry{
				AnalysisID:    a.ID,
				Topic:         registry.ListLabel(a.Topic),
				CategoryCount: len(a.Categories),
				Violation:     a.Violation,
				CreatedAt:     registry.Stamp(a.CreatedAt),
			},
			created: a.CreatedAt,
		})
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].created.After(rows[j].created)
	})

	out := make([]ListEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.entry)
	}
	return out
}

// CreateStructure proposes a framework structure for topic. framework may
// be "auto" (or empty) to select one from the topic's keywords.
func (c *Classifier) CreateStructure(topic, framework string) (Structure, error) {
	var f Framework
	if framework == "" || strings.EqualFold(framework, Auto) {
		f = SelectFramework(topic)
	} else {
		var ok bool
		f, ok = ParseFramework(framework)
		if !ok {
			return Structure{}, apperr.New(apperr.KindUnsupported, apperr.UnsupportedFramework,
				"framework %q is not supported: must be one of: %s", framework, supportedFrameworks())
		}
	}

	tpl := frameworkTemplates[f]
	return Structure{
		Topic:        topic,
		Framework:    f,
		Categories:   append([]string(nil), tpl.categories...),
		Explanations: explain(tpl, topic),
		Characteristics: Characteristics{
			MutuallyExclusive:      "Each category is an independent area with no overlap",
			CollectivelyExhaustive: fmt.Sprintf("Together the categories cover %s completely", topic),
		},
		UsageTips: []string{
			fmt.Sprintf("Analyse %s from the viewpoint of each category", topic),
			"Check for overlaps between categories while organising",
			"Reviewing every category prevents omissions",
		},
	}, nil
}

// findOverlaps reports every pair of categories sharing a keyword, in
// order of the keyword's first appearance.
func findOverlaps(categories []string) []Overlap {
	byWord := make(map[string][]int)
	var order []string
	for i, cat := range categories {
		seen := make(map[string]bool)
		for _, w := range strings.Fields(strings.ToLower(cat)) {
			if utf8.RuneCountInString(w) <= minKeywordRunes || seen[w] {
				continue
			}
			seen[w] = true
			if _, ok := byWord[w]; !ok {
				order = append(order, w)
			}
			byWord[w] = append(byWord[w], i)
		}
	}

	overlaps := []Overlap{}
	for _, w := range order {
		idx := byWord[w]
		for a := 0; a < len(idx); a++ {
			for b := a + 1; b < len(idx); b++ {
				overlaps = append(overlaps, Overlap{
					CategoryA: categories[idx[a]],
					CategoryB: categories[idx[b]],
					Keyword:   w,
					Reason:    fmt.Sprintf("shares the keyword %q", w),
				})
			}
		}
	}
	return overlaps
}

// findGaps reports generic aspects missing from the categories. It only
// runs for business, operations or project topics.
func findGaps(topic string, categories []string) []string {
	gaps := []string{}
	if !containsAny(strings.ToLower(topic), gapTopics) {
		return gaps
	}
	text := strings.ToLower(strings.Join(categories, " "))
	for _, a := range aspects {
		if !containsAny(text, a.keywords) {
			gaps = append(gaps, a.name+" perspective")
		}
	}
	return gaps
}

func suggestions(a *Analysis) []string {
	var out []string
	if len(a.Overlaps) > 0 {
		out = append(out, "Merge or clearly separate the overlapping categories")
		for _, o := range a.Overlaps[:min(2, len(a.Overlaps))] {
			out = append(out, fmt.Sprintf("  - %q and %q: %s", o.CategoryA, o.CategoryB, o.Reason))
		}
	}
	if len(a.Gaps) > 0 {
		out = append(out, "The following perspectives may be missing")
		for _, g := range a.Gaps[:min(3, len(a.Gaps))] {
			out = append(out, "  - "+g)
		}
	}
	if a.Violation == ViolationNone {
		out = append(out, "The categories satisfy the MECE principle")
	}
	return out
}

func notes(a *Analysis) []string {
	out := []string{
		"Topic: " + a.Topic,
		fmt.Sprintf("Categories: %d", len(a.Categories)),
		"MECE evaluation: " + a.Violation.Description(),
	}
	if len(a.Overlaps) > 0 {
		out = append(out, fmt.Sprintf("Overlaps detected: %d", len(a.Overlaps)))
	}
	if len(a.Gaps) > 0 {
		out = append(out, fmt.Sprintf("Gaps detected: %d", len(a.Gaps)))
	}
	return out
}

func project(a *Analysis) AnalysisResult {
	return AnalysisResult{
		AnalysisID: a.ID,
		Topic:      a.Topic,
		Categories: append([]string(nil), a.Categories...),
		Evaluation: Evaluation{
			Violation:   a.Violation,
			Description: a.Violation.Description(),
			Compliant:   a.Violation == ViolationNone,
			Overlaps:    append([]Overlap{}, a.Overlaps...),
			Gaps:        append([]string{}, a.Gaps...),
		},
		Suggestions: append([]string(nil), a.Suggestions...),
		Notes:       append([]string(nil), a.Notes...),
		CreatedAt:   registry.Stamp(a.CreatedAt),
	}
}
