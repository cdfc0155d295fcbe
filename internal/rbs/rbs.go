// Package rbs keeps a risk register organised as a PMBOK-style risk
// breakdown structure: risks are filed under one of four categories and
// scored as probability × impact on a 5×5 matrix.
package rbs

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/HendryAvila/analysis-support/internal/apperr"
	"github.com/HendryAvila/analysis-support/internal/registry"
)

var timeNow = time.Now

// Rating bounds for probability and impact. Omitted ratings default to
// DefaultRating.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// highPriorityScore is the score from which a risk counts as high priority.
const highPriorityScore = 12

// largeRegister is the risk count above which staged mitigation is advised.
const largeRegister = 10

var probabilityLabels = [...]string{"", "very low", "low", "medium", "high", "very high"}

var impactLabels = [...]string{"", "very minor", "minor", "moderate", "major", "very major"}

// Priority is the band a risk score falls into.
type Priority string

const (
	PriorityHighest Priority = "highest"
	PriorityHigh    Priority = "high"
	PriorityMedium  Priority = "medium"
	PriorityLow     Priority = "low"
	PriorityLowest  Priority = "lowest"
)

// Priorities lists the bands from most to least urgent.
var Priorities = []Priority{PriorityHighest, PriorityHigh, PriorityMedium, PriorityLow, PriorityLowest}

// PriorityFor maps a score to its band.
func PriorityFor(score int) Priority {
	switch {
	case score >= 16:
		return PriorityHighest
	case score >= 12:
		return PriorityHigh
	case score >= 8:
		return PriorityMedium
	case score >= 4:
		return PriorityLow
	default:
		return PriorityLowest
	}
}

// Risk is one register entry.
type Risk struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Subcategory string
	Probability int
	Impact      int
	CreatedAt   time.Time
}

// Score is probability × impact. It is derived on every read.
func (r Risk) Score() int {
	return r.Probability * r.Impact
}

// Analysis is one risk register.
type Analysis struct {
	ID          string
	ProjectName string
	ProjectType string
	Context     string
	Risks       []Risk
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (a *Analysis) highPriorityCount() int {
	n := 0
	for _, r := range a.Risks {
		if r.Score() >= highPriorityScore {
			n++
		}
	}
	return n
}

// RiskInput describes a risk to add. Nil ratings default to DefaultRating.
type RiskInput struct {
	Name        string
	Description string
	Probability *int
	Impact      *int
}

// Register owns every risk analysis.
type Register struct {
	analyses *registry.Registry[Analysis]
}

// NewRegister creates an empty register.
func NewRegister() *Register {
	return &Register{analyses: registry.New[Analysis]()}
}

// CreateStructure opens an empty analysis and returns the full template
// tree with the focus areas recommended for projectType.
func (g *Register) CreateStructure(projectName, projectType, context string) StructureResult {
	now := timeNow()
	id := g.analyses.Create(func(id string) Analysis {
		return Analysis{
			ID:          id,
			ProjectName: projectName,
			ProjectType: projectType,
			Context:     context,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	})
	return StructureResult{
		AnalysisID:       id,
		ProjectName:      projectName,
		ProjectType:      projectType,
		Structure:        buildStructureTree(),
		RecommendedFocus: recommendedFocus(projectType),
		CreatedAt:        registry.Stamp(now),
	}
}

// IdentifyRisks files items under category/subcategory in order. An
// invalid item stops the batch; items before it stay in the register.
func (g *Register) IdentifyRisks(id, category, subcategory string, items []RiskInput) (IdentifyResult, error) {
	var res IdentifyResult
	err := g.analyses.Update(id, func(a *Analysis) error {
		c, ok := ParseCategory(category)
		if !ok {
			return apperr.Validation(apperr.InvalidCategory,
				"risk category %q is not valid: must be one of: %s", category, validCategoryNames())
		}

		added := []RiskView{}
		for i, item := range items {
			r, err := newRisk(item, c, subcategory)
			if err != nil {
				err.Message = fmt.Sprintf("risk %d: %s", i+1, err.Message)
				return err
			}
			a.Risks = append(a.Risks, r)
			a.UpdatedAt = r.CreatedAt
			added = append(added, viewRisk(r))
		}

		res = IdentifyResult{
			AnalysisID:  a.ID,
			Category:    c,
			Subcategory: subcategory,
			AddedRisks:  added,
			TotalRisks:  len(a.Risks),
		}
		return nil
	})
	if err != nil {
		return IdentifyResult{}, lookupErr(err, id)
	}
	return res, nil
}

func newRisk(in RiskInput, c Category, subcategory string) (Risk, *apperr.Error) {
	if in.Name == "" {
		return Risk{}, apperr.Validation(apperr.InvalidArgument, "risk name is required")
	}
	p, err := rating("probability", in.Probability)
	if err != nil {
		return Risk{}, err
	}
	im, err := rating("impact", in.Impact)
	if err != nil {
		return Risk{}, err
	}
	return Risk{
		ID:          uuid.NewString()[:8],
		Name:        in.Name,
		Description: in.Description,
		Category:    c,
		Subcategory: subcategory,
		Probability: p,
		Impact:      im,
		CreatedAt:   timeNow(),
	}, nil
}

func rating(field string, v *int) (int, *apperr.Error) {
	if v == nil {
		return DefaultRating, nil
	}
	if *v < MinRating || *v > MaxRating {
		return 0, apperr.Validation(apperr.InvalidRating,
			"%s %d is out of range [%d, %d]", field, *v, MinRating, MaxRating)
	}
	return *v, nil
}

// EvaluateRisks builds the risk matrix, statistics and priority groups of
// an analysis.
func (g *Register) EvaluateRisks(id string) (EvaluateResult, error) {
	var res EvaluateResult
	err := g.analyses.View(id, func(a *Analysis) error {
		if len(a.Risks) == 0 {
			return apperr.New(apperr.KindNoData, apperr.NoRisks, "analysis %q has no risks to evaluate", id)
		}
		res = EvaluateResult{
			AnalysisID:      a.ID,
			ProjectName:     a.ProjectName,
			Matrix:          buildMatrix(a.Risks),
			Statistics:      statistics(a.Risks),
			PriorityGroups:  groupByPriority(a.Risks),
			Recommendations: recommendations(a.Risks),
		}
		return nil
	})
	if err != nil {
		return EvaluateResult{}, lookupErr(err, id)
	}
	return res, nil
}

// GetAnalysis returns an analysis with every risk.
func (g *Register) GetAnalysis(id string) (Detail, error) {
	var d Detail
	err := g.analyses.View(id, func(a *Analysis) error {
		d = Detail{Summary: summarize(a), Risks: []RiskView{}}
		for _, r := range a.Risks {
			d.Risks = append(d.Risks, viewRisk(r))
		}
		if len(a.Risks) > 0 {
			s := statistics(a.Risks)
			d.RiskSummary = &s
		}
		return nil
	})
	if err != nil {
		return Detail{}, lookupErr(err, id)
	}
	return d, nil
}

// ListAnalyses returns every analysis, newest first.
func (g *Register) ListAnalyses() []Summary {
	type row struct {
		summary Summary
		created time.Time
	}
	var rows []row
	g.analyses.Each(func(id string, a *Analysis) {
		rows = append(rows, row{summary: summarize(a), created: a.CreatedAt})
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].created.After(rows[j].created)
	})

	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.summary)
	}
	return out
}

func summarize(a *Analysis) Summary {
	return Summary{
		AnalysisID:        a.ID,
		ProjectName:       a.ProjectName,
		ProjectType:       a.ProjectType,
		Context:           a.Context,
		RiskCount:         len(a.Risks),
		HighPriorityCount: a.highPriorityCount(),
		CreatedAt:         registry.Stamp(a.CreatedAt),
		UpdatedAt:         registry.Stamp(a.UpdatedAt),
	}
}

func viewRisk(r Risk) RiskView {
	return RiskView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Probability: Rating{Value: r.Probability, Label: probabilityLabels[r.Probability]},
		Impact:      Rating{Value: r.Impact, Label: impactLabels[r.Impact]},
		RiskScore:   r.Score(),
		Priority:    PriorityFor(r.Score()),
		CreatedAt:   registry.Stamp(r.CreatedAt),
	}
}

// buildMatrix places every risk in its probability/impact cell. All 25
// cells are present, keyed "1".."5" on both axes.
func buildMatrix(risks []Risk) Matrix {
	m := make(Matrix, MaxRating)
	for p := MinRating; p <= MaxRating; p++ {
		row := make(map[string][]MatrixEntry, MaxRating)
		for i := MinRating; i <= MaxRating; i++ {
			row[strconv.Itoa(i)] = []MatrixEntry{}
		}
		m[strconv.Itoa(p)] = row
	}
	for _, r := range risks {
		p, i := strconv.Itoa(r.Probability), strconv.Itoa(r.Impact)
		m[p][i] = append(m[p][i], MatrixEntry{ID: r.ID, Name: r.Name, Score: r.Score()})
	}
	return m
}

func statistics(risks []Risk) Statistics {
	st := Statistics{
		TotalRisks:           len(risks),
		CategoryDistribution: make(map[Category]int),
	}
	sum := 0
	for i, r := range risks {
		s := r.Score()
		sum += s
		if i == 0 || s > st.MaxScore {
			st.MaxScore = s
		}
		if i == 0 || s < st.MinScore {
			st.MinScore = s
		}
		if s >= highPriorityScore {
			st.HighPriorityCount++
		}
		st.CategoryDistribution[r.Category]++
	}
	if len(risks) > 0 {
		st.AverageScore = registry.Round2(float64(sum) / float64(len(risks)))
	}
	return st
}

// groupByPriority returns all five bands, each sorted by score then
// impact, both descending.
func groupByPriority(risks []Risk) []PriorityGroup {
	byBand := make(map[Priority][]Risk)
	for _, r := range risks {
		p := PriorityFor(r.Score())
		byBand[p] = append(byBand[p], r)
	}

	groups := make([]PriorityGroup, 0, len(Priorities))
	for _, p := range Priorities {
		band := byBand[p]
		sort.SliceStable(band, func(i, j int) bool {
			if band[i].Score() != band[j].Score() {
				return band[i].Score() > band[j].Score()
			}
			return band[i].Impact > band[j].Impact
		})
		views := make([]RiskView, 0, len(band))
		for _, r := range band {
			views = append(views, viewRisk(r))
		}
		groups = append(groups, PriorityGroup{Priority: p, Risks: views})
	}
	return groups
}

func recommendations(risks []Risk) []string {
	var out []string

	high := 0
	counts := make(map[Category]int)
	var order []Category
	for _, r := range risks {
		if r.Score() >= highPriorityScore {
			high++
		}
		if counts[r.Category] == 0 {
			order = append(order, r.Category)
		}
		counts[r.Category]++
	}

	if high > 0 {
		out = append(out, fmt.Sprintf("%d high-priority risks need immediate mitigation", high))
	}

	// ties go to the category seen first
	var dominant Category
	for _, c := range order {
		if counts[c] > counts[dominant] {
			dominant = c
		}
	}
	if dominant != "" {
		out = append(out, fmt.Sprintf("Concentrate mitigation on %s", dominant.Label()))
	}

	if len(risks) > largeRegister {
		out = append(out, "The register is large; mitigate in stages ordered by priority")
	}

	return append(out,
		"Reassess risks regularly",
		"Document the risk response plan",
		"Share risk information with stakeholders",
	)
}

func lookupErr(err error, id string) error {
	if errors.Is(err, registry.ErrNotFound) {
		return apperr.NotFound("analysis", id)
	}
	return err
}
