// Package mshell runs m-SHELL human-factors analyses. A system is examined
// element by element (Machine, Software, Hardware, Environment and the two
// Liveware roles) and along the interfaces between elements, then rated as
// a whole.
package mshell

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/HendryAvila/analysis-support/internal/apperr"
	"github.com/HendryAvila/analysis-support/internal/registry"
)

var timeNow = time.Now

// Severity bounds. DefaultSeverity applies when the caller gives none.
const (
	MinSeverity     = 1
	MaxSeverity     = 4
	DefaultSeverity = 2
)

// Quality bounds. Out-of-range qualities are clamped, not rejected.
const (
	MinQuality     = 1
	MaxQuality     = 10
	DefaultQuality = 5
)

const (
	elementWeight   = 0.6
	interfaceWeight = 0.4

	// problemQuality is the quality below which an interface needs work.
	problemQuality = 6
)

var severityLabels = [...]string{"", "minor", "moderate", "serious", "critical"}

// SeverityLabel returns the label of a severity in [1,4].
func SeverityLabel(severity int) string {
	if severity < MinSeverity || severity > MaxSeverity {
		return ""
	}
	return severityLabels[severity]
}

// QualityLevel labels an interface quality score.
func QualityLevel(q int) string {
	switch {
	case q >= 8:
		return "good"
	case q >= 6:
		return "fair"
	case q >= 4:
		return "needs-improvement"
	default:
		return "problematic"
	}
}

// OverallLevel labels a composite system score.
func OverallLevel(score float64) string {
	switch {
	case score >= 8:
		return "excellent"
	case score >= 6:
		return "good"
	case score >= 4:
		return "fair"
	case score >= 2:
		return "needs-improvement"
	default:
		return "critical"
	}
}

func clampQuality(q int) int {
	return max(MinQuality, min(MaxQuality, q))
}

// ElementRecord is the latest analysis of one element.
type ElementRecord struct {
	ID              string
	Element         Element
	Findings        []string
	Severity        int
	Recommendations []string
	AnalyzedAt      time.Time
}

// InterfaceRecord is one analysis of the interface between two elements.
type InterfaceRecord struct {
	ID         string
	A, B       Element
	Issues     []string
	Quality    int
	AnalyzedAt time.Time
}

// Analysis is one m-SHELL analysis. Elements holds at most one record per
// element in first-analysed order.
type Analysis struct {
	ID                string
	SystemName        string
	Purpose           string
	Context           string
	Elements          []ElementRecord
	Interfaces        []InterfaceRecord
	OverallAssessment string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (a *Analysis) criticalElements() []ElementRecord {
	var out []ElementRecord
	for _, e := range a.Elements {
		if e.Severity == MaxSeverity {
			out = append(out, e)
		}
	}
	return out
}

func (a *Analysis) problemInterfaces() []InterfaceRecord {
	var out []InterfaceRecord
	for _, i := range a.Interfaces {
		if i.Quality < problemQuality {
			out = append(out, i)
		}
	}
	return out
}

// Analyzer owns every m-SHELL analysis.
type Analyzer struct {
	analyses *registry.Registry[Analysis]
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{analyses: registry.New[Analysis]()}
}

// Create opens an analysis and describes the six elements.
func (z *Analyzer) Create(systemName, purpose, context string) CreateResult {
	now := timeNow()
	id := z.analyses.Create(func(id string) Analysis {
		return Analysis{
			ID:         id,
			SystemName: systemName,
			Purpose:    purpose,
			Context:    context,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	})

	return CreateResult{
		AnalysisID:          id,
		SystemName:          systemName,
		Purpose:             purpose,
		AvailableElements:   append([]Element(nil), Elements...),
		ElementDescriptions: DescribeElements(),
		CreatedAt:           registry.Stamp(now),
	}
}

// AnalyzeElement records the analysis of one element, replacing any
// earlier analysis of the same element.
func (z *Analyzer) AnalyzeElement(id, element string, findings []string, severity int, recommendations []string) (ElementResult, error) {
	var res ElementResult
	err := z.analyses.Update(id, func(a *Analysis) error {
		e, ok := ParseElement(element)
		if !ok {
			return apperr.Validation(apperr.InvalidElement,
				"element %q is not valid: must be one of: %s", element, validElementNames())
		}
		if severity < MinSeverity || severity > MaxSeverity {
			return apperr.Validation(apperr.InvalidSeverity,
				"severity %d is out of range [%d, %d]", severity, MinSeverity, MaxSeverity)
		}

		rec := ElementRecord{
			ID:              uuid.NewString()[:8],
			Element:         e,
			Findings:        append([]string{}, findings...),
			Severity:        severity,
			Recommendations: append([]string{}, recommendations...),
			AnalyzedAt:      timeNow(),
		}
		replaced := false
		for i := range a.Elements {
			if a.Elements[i].Element == e {
				a.Elements[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			a.Elements = append(a.Elements, rec)
		}
		a.UpdatedAt = rec.AnalyzedAt

		res = ElementResult{
			AnalysisID:      a.ID,
			ElementAnalysis: viewElement(rec),
			Checkpoints:     checklistFor(e),
			Progress:        fmt.Sprintf("%d/%d", len(a.Elements), len(Elements)),
		}
		return nil
	})
	if err != nil {
		return ElementResult{}, lookupErr(err, id)
	}
	return res, nil
}

// AnalyzeInterface records the interface between two distinct elements.
// quality is clamped into [1,10].
func (z *Analyzer) AnalyzeInterface(id, element1, element2 string, issues []string, quality int) (InterfaceResult, error) {
	var res InterfaceResult
	err := z.analyses.Update(id, func(a *Analysis) error {
		e1, ok1 := ParseElement(element1)
		e2, ok2 := ParseElement(element2)
		if !ok1 || !ok2 {
			return apperr.Validation(apperr.InvalidElement,
				"element %q or %q is not valid: must be one of: %s", element1, element2, validElementNames())
		}
		if e1 == e2 {
			return apperr.Validation(apperr.SameElement,
				"an interface needs two different elements, got %s twice", e1)
		}

		rec := InterfaceRecord{
			ID:         uuid.NewString()[:8],
			A:          e1,
			B:          e2,
			Issues:     append([]string{}, issues...),
			Quality:    clampQuality(quality),
			AnalyzedAt: timeNow(),
		}
		a.Interfaces = append(a.Interfaces, rec)
		a.UpdatedAt = rec.AnalyzedAt

		res = InterfaceResult{
			AnalysisID:           a.ID,
			InterfaceAnalysis:    viewInterface(rec),
			SuggestedCheckpoints: interfaceChecklist(e1, e2),
			TotalInterfaces:      len(a.Interfaces),
		}
		return nil
	})
	if err != nil {
		return InterfaceResult{}, lookupErr(err, id)
	}
	return res, nil
}

// EvaluateSystem rates the analysis as a whole and stores the summary as
// its overall assessment.
func (z *Analyzer) EvaluateSystem(id string) (EvaluateResult, error) {
	var res EvaluateResult
	err := z.analyses.Update(id, func(a *Analysis) error {
		if len(a.Elements) == 0 && len(a.Interfaces) == 0 {
			return apperr.New(apperr.KindNoData, apperr.NoData, "analysis %q has nothing to evaluate yet", id)
		}

		ev := evaluate(a)
		a.OverallAssessment = ev.Summary

		res = EvaluateResult{
			AnalysisID:        a.ID,
			SystemName:        a.SystemName,
			Evaluation:        ev,
			CriticalIssues:    []ElementView{},
			InterfaceProblems: []InterfaceView{},
			Recommendations:   recommendations(a),
		}
		for _, e := range a.criticalElements() {
			res.CriticalIssues = append(res.CriticalIssues, viewElement(e))
		}
		for _, i := range a.problemInterfaces() {
			res.InterfaceProblems = append(res.InterfaceProblems, viewInterface(i))
		}
		return nil
	})
	if err != nil {
		return EvaluateResult{}, lookupErr(err, id)
	}
	return res, nil
}

func evaluate(a *Analysis) Evaluation {
	scores := make(map[Element]int, len(a.Elements))
	var elemMean float64
	if len(a.Elements) > 0 {
		sum := 0
		for _, e := range a.Elements {
			s := 5 - e.Severity
			scores[e.Element] = s
			sum += s
		}
		elemMean = float64(sum) / float64(len(a.Elements))
	}

	var ifaceMean float64
	if len(a.Interfaces) > 0 {
		ifaceMean = interfaceMean(a.Interfaces)
	}

	overall := elemMean
	if len(a.Interfaces) > 0 {
		overall = elemMean*elementWeight + ifaceMean*interfaceWeight
	}

	return Evaluation{
		OverallScore:          registry.Round2(overall),
		OverallLevel:          OverallLevel(overall),
		ElementScores:         scores,
		AverageElementScore:   registry.Round2(elemMean),
		AverageInterfaceScore: registry.Round2(ifaceMean),
		AnalysisCompleteness:  fmt.Sprintf("%d/%d elements analysed", len(a.Elements), len(Elements)),
		InterfaceCompleteness: fmt.Sprintf("%d interfaces analysed", len(a.Interfaces)),
		Summary:               summarySentence(a, overall),
	}
}

func interfaceMean(ifaces []InterfaceRecord) float64 {
	sum := 0
	for _, i := range ifaces {
		sum += i.Quality
	}
	return float64(sum) / float64(len(ifaces))
}

func summarySentence(a *Analysis, score float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The overall system rating is %q.", OverallLevel(score))
	if n := len(a.criticalElements()); n > 0 {
		fmt.Fprintf(&b, " %d critical issues were identified.", n)
	}
	if n := len(a.problemInterfaces()); n > 0 {
		fmt.Fprintf(&b, " %d interfaces have room for improvement.", n)
	}
	if score >= 6 {
		b.WriteString(" Basic system quality is in place.")
	} else {
		b.WriteString(" Improving the system should be a priority.")
	}
	return b.String()
}

func recommendations(a *Analysis) []string {
	var out []string
	if n := len(a.criticalElements()); n > 0 {
		out = append(out, fmt.Sprintf("Address the %d critical issues immediately", n))
	}
	if n := len(a.problemInterfaces()); n > 0 {
		out = append(out, fmt.Sprintf("Improve the %d weak interfaces", n))
	}

	analysed := make(map[Element]bool, len(a.Elements))
	for _, e := range a.Elements {
		analysed[e.Element] = true
	}
	var missing []string
	for _, e := range Elements {
		if !analysed[e] {
			missing = append(missing, string(e))
		}
	}
	if len(missing) > 0 {
		out = append(out, fmt.Sprintf("Analyse the remaining elements (%s)", strings.Join(missing, ", ")))
	}

	return append(out,
		"Repeat the m-SHELL analysis regularly",
		"Keep monitoring the interactions between elements",
		"Share the results with everyone involved",
		"Draw up an improvement plan from the findings",
	)
}

// GetAnalysis returns an analysis with every element and interface record.
func (z *Analyzer) GetAnalysis(id string) (Detail, error) {
	var d Detail
	err := z.analyses.View(id, func(a *Analysis) error {
		d = Detail{
			Summary:           summarize(a),
			ElementAnalyses:   []ElementView{},
			InterfaceAnalyses: []InterfaceView{},
			AnalysisSummary:   analysisSummary(a),
		}
		for _, e := range a.Elements {
			d.ElementAnalyses = append(d.ElementAnalyses, viewElement(e))
		}
		for _, i := range a.Interfaces {
			d.InterfaceAnalyses = append(d.InterfaceAnalyses, viewInterface(i))
		}
		return nil
	})
	if err != nil {
		return Detail{}, lookupErr(err, id)
	}
	return d, nil
}

// ListAnalyses returns every analysis, newest first.
func (z *Analyzer) ListAnalyses() []Summary {
	type row struct {
		summary Summary
		created time.Time
	}
	var rows []row
	z.analyses.Each(func(id string, a *Analysis) {
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

func analysisSummary(a *Analysis) AnalysisSummary {
	s := AnalysisSummary{
		CompletionRate:       fmt.Sprintf("%d/%d", len(a.Elements), len(Elements)),
		SeverityDistribution: make(map[string]int, MaxSeverity),
	}
	for sev := MinSeverity; sev <= MaxSeverity; sev++ {
		s.SeverityDistribution[severityLabels[sev]] = 0
	}
	for _, e := range a.Elements {
		s.TotalFindings += len(e.Findings)
		s.TotalRecommendations += len(e.Recommendations)
		s.SeverityDistribution[severityLabels[e.Severity]]++
	}
	if len(a.Interfaces) > 0 {
		avg := registry.Round2(interfaceMean(a.Interfaces))
		s.InterfaceQualityAvg = &avg
	}
	return s
}

func summarize(a *Analysis) Summary {
	s := Summary{
		AnalysisID:        a.ID,
		SystemName:        a.SystemName,
		Purpose:           a.Purpose,
		Context:           a.Context,
		ElementCount:      len(a.Elements),
		InterfaceCount:    len(a.Interfaces),
		CriticalIssues:    len(a.criticalElements()),
		InterfaceProblems: len(a.problemInterfaces()),
		CreatedAt:         registry.Stamp(a.CreatedAt),
		UpdatedAt:         registry.Stamp(a.UpdatedAt),
	}
	if a.OverallAssessment != "" {
		assessment := a.OverallAssessment
		s.OverallAssessment = &assessment
	}
	return s
}

func viewElement(e ElementRecord) ElementView {
	return ElementView{
		ID:              e.ID,
		Element:         e.Element,
		NativeName:      elementNativeNames[e.Element],
		Findings:        append([]string{}, e.Findings...),
		Severity:        SeverityView{Value: e.Severity, Label: SeverityLabel(e.Severity)},
		Recommendations: append([]string{}, e.Recommendations...),
		AnalyzedAt:      registry.Stamp(e.AnalyzedAt),
	}
}

func viewInterface(i InterfaceRecord) InterfaceView {
	return InterfaceView{
		ID:           i.ID,
		Interface:    fmt.Sprintf("%s ↔ %s", i.A, i.B),
		Issues:       append([]string{}, i.Issues...),
		QualityScore: i.Quality,
		QualityLevel: QualityLevel(i.Quality),
		AnalyzedAt:   registry.Stamp(i.AnalyzedAt),
	}
}

func lookupErr(err error, id string) error {
	if errors.Is(err, registry.ErrNotFound) {
		return apperr.NotFound("analysis", id)
	}
	return err
}
