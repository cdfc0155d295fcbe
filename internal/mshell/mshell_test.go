package mshell

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/analysis-support/internal/apperr"
)

func TestLabels(t *testing.T) {
	assert.Equal(t, "minor", SeverityLabel(1))
	assert.Equal(t, "critical", SeverityLabel(4))
	assert.Equal(t, "", SeverityLabel(5))

	for q, want := range map[int]string{10: "good", 8: "good", 7: "fair", 6: "fair", 5: "needs-improvement", 4: "needs-improvement", 3: "problematic", 1: "problematic"} {
		assert.Equal(t, want, QualityLevel(q), "quality %d", q)
	}

	for s, want := range map[float64]string{9: "excellent", 8: "excellent", 6: "good", 4.5: "fair", 2: "needs-improvement", 1.99: "critical", 0: "critical"} {
		assert.Equal(t, want, OverallLevel(s), "score %v", s)
	}
}

func TestParseElement(t *testing.T) {
	e, ok := ParseElement("liveware-central")
	require.True(t, ok)
	assert.Equal(t, LivewareCentral, e)

	e, ok = ParseElement("環境・条件")
	require.True(t, ok)
	assert.Equal(t, Environment, e)

	_, ok = ParseElement("Liveware")
	assert.False(t, ok)
}

func TestInterfaceChecklist(t *testing.T) {
	// every unordered pair has a dedicated list, in either order
	for i, a := range Elements {
		for _, b := range Elements[i+1:] {
			fwd := interfaceChecklist(a, b)
			assert.Len(t, fwd, 3)
			assert.Equal(t, fwd, interfaceChecklist(b, a))
			assert.NotContains(t, fwd[0], "Analyse the interaction")
		}
	}
	assert.Len(t, interfaceChecklists, 15)

	generic := interfaceChecklist(Machine, Machine)
	assert.Equal(t, "Analyse the interaction between Machine and Machine", generic[0])
}

func TestCreate(t *testing.T) {
	z := NewAnalyzer()
	res := z.Create("cockpit", "reduce operator error", "")

	assert.Len(t, res.AnalysisID, 8)
	assert.Equal(t, Elements, res.AvailableElements)
	require.Len(t, res.ElementDescriptions, 6)
	assert.Equal(t, "他者・チーム・組織", res.ElementDescriptions[5].NativeName)
}

func TestAnalyzeElement(t *testing.T) {
	z := NewAnalyzer()
	id := z.Create("plant", "", "").AnalysisID

	res, err := z.AnalyzeElement(id, "Machine", []string{"worn bearings"}, 3, []string{"replace bearings"})
	require.NoError(t, err)
	assert.Equal(t, "1/6", res.Progress)
	assert.Equal(t, SeverityView{Value: 3, Label: "serious"}, res.ElementAnalysis.Severity)
	require.Len(t, res.Checkpoints, 3)
	assert.Equal(t, "Design and function", res.Checkpoints[0].Group)

	// re-analysing an element replaces it
	res, err = z.AnalyzeElement(id, "machine", nil, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "1/6", res.Progress)

	d, err := z.GetAnalysis(id)
	require.NoError(t, err)
	require.Len(t, d.ElementAnalyses, 1)
	assert.Equal(t, 1, d.ElementAnalyses[0].Severity.Value)
	assert.Empty(t, d.ElementAnalyses[0].Findings)
}

func TestAnalyzeElement_Errors(t *testing.T) {
	z := NewAnalyzer()
	id := z.Create("plant", "", "").AnalysisID

	_, err := z.AnalyzeElement("missing0", "Robot", nil, 9, nil)
	assert.True(t, apperr.Is(err, apperr.NotFoundCode))

	_, err = z.AnalyzeElement(id, "Robot", nil, 2, nil)
	assert.True(t, apperr.Is(err, apperr.InvalidElement))

	for _, sev := range []int{0, 5} {
		_, err = z.AnalyzeElement(id, "Software", nil, sev, nil)
		assert.True(t, apperr.Is(err, apperr.InvalidSeverity), "severity %d", sev)
	}

	d, err := z.GetAnalysis(id)
	require.NoError(t, err)
	assert.Zero(t, d.ElementCount)
}

func TestAnalyzeInterface(t *testing.T) {
	z := NewAnalyzer()
	id := z.Create("plant", "", "").AnalysisID

	res, err := z.AnalyzeInterface(id, "Software", "Liveware-Central", []string{"cryptic errors"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.InterfaceAnalysis.QualityScore)
	assert.Equal(t, "problematic", res.InterfaceAnalysis.QualityLevel)
	assert.Equal(t, "Software ↔ Liveware-Central", res.InterfaceAnalysis.Interface)
	assert.Equal(t, "Is the user interface intuitive?", res.SuggestedCheckpoints[0])
	assert.Equal(t, 1, res.TotalInterfaces)

	res, err = z.AnalyzeInterface(id, "Liveware-Central", "Software", nil, 15)
	require.NoError(t, err)
	assert.Equal(t, 10, res.InterfaceAnalysis.QualityScore)
	assert.Equal(t, 2, res.TotalInterfaces)
}

func TestAnalyzeInterface_Errors(t *testing.T) {
	z := NewAnalyzer()
	id := z.Create("plant", "", "").AnalysisID

	_, err := z.AnalyzeInterface("missing0", "Machine", "Machine", nil, 5)
	assert.True(t, apperr.Is(err, apperr.NotFoundCode))

	_, err = z.AnalyzeInterface(id, "Machine", "Robot", nil, 5)
	assert.True(t, apperr.Is(err, apperr.InvalidElement))

	_, err = z.AnalyzeInterface(id, "Machine", "machine", nil, 5)
	assert.True(t, apperr.Is(err, apperr.SameElement))
}

func TestEvaluateSystem_CompositeScore(t *testing.T) {
	z := NewAnalyzer()
	id := z.Create("plant", "", "").AnalysisID

	for _, in := range []struct {
		element  string
		severity int
	}{{"Machine", 1}, {"Software", 3}, {"Hardware", 4}} {
		_, err := z.AnalyzeElement(id, in.element, []string{"finding"}, in.severity, nil)
		require.NoError(t, err)
	}
	_, err := z.AnalyzeInterface(id, "Machine", "Software", nil, 8)
	require.NoError(t, err)
	_, err = z.AnalyzeInterface(id, "Hardware", "Environment", nil, 3)
	require.NoError(t, err)

	res, err := z.EvaluateSystem(id)
	require.NoError(t, err)

	ev := res.Evaluation
	assert.Equal(t, 2.33, ev.AverageElementScore)
	assert.Equal(t, 5.5, ev.AverageInterfaceScore)
	assert.Equal(t, 3.6, ev.OverallScore)
	assert.Equal(t, "needs-improvement", ev.OverallLevel)
	assert.Equal(t, map[Element]int{Machine: 4, Software: 2, Hardware: 1}, ev.ElementScores)
	assert.Equal(t, "3/6 elements analysed", ev.AnalysisCompleteness)
	assert.Equal(t, "2 interfaces analysed", ev.InterfaceCompleteness)
	assert.Equal(t, `The overall system rating is "needs-improvement". 1 critical issues were identified. `+
		`1 interfaces have room for improvement. Improving the system should be a priority.`, ev.Summary)

	require.Len(t, res.CriticalIssues, 1)
	assert.Equal(t, Hardware, res.CriticalIssues[0].Element)
	require.Len(t, res.InterfaceProblems, 1)
	assert.Equal(t, 3, res.InterfaceProblems[0].QualityScore)

	assert.Equal(t, []string{
		"Address the 1 critical issues immediately",
		"Improve the 1 weak interfaces",
		"Analyse the remaining elements (Environment, Liveware-Central, Liveware-Other)",
		"Repeat the m-SHELL analysis regularly",
		"Keep monitoring the interactions between elements",
		"Share the results with everyone involved",
		"Draw up an improvement plan from the findings",
	}, res.Recommendations)

	list := z.ListAnalyses()
	require.Len(t, list, 1)
	require.NotNil(t, list[0].OverallAssessment)
	assert.Equal(t, ev.Summary, *list[0].OverallAssessment)
}

func TestEvaluateSystem_ElementsOnly(t *testing.T) {
	z := NewAnalyzer()
	id := z.Create("desk", "", "").AnalysisID
	for _, e := range Elements {
		_, err := z.AnalyzeElement(id, string(e), nil, 1, nil)
		require.NoError(t, err)
	}

	res, err := z.EvaluateSystem(id)
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.Evaluation.OverallScore)
	assert.Equal(t, 0.0, res.Evaluation.AverageInterfaceScore)
	assert.Equal(t, "fair", res.Evaluation.OverallLevel)
	assert.Len(t, res.Recommendations, 4)
}

func TestEvaluateSystem_InterfacesOnly(t *testing.T) {
	z := NewAnalyzer()
	id := z.Create("desk", "", "").AnalysisID
	_, err := z.AnalyzeInterface(id, "Environment", "Liveware-Other", nil, 10)
	require.NoError(t, err)

	res, err := z.EvaluateSystem(id)
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.Evaluation.OverallScore)
	assert.Equal(t, 0.0, res.Evaluation.AverageElementScore)
}

func TestEvaluateSystem_Errors(t *testing.T) {
	z := NewAnalyzer()
	id := z.Create("desk", "", "").AnalysisID

	_, err := z.EvaluateSystem(id)
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.NoData, ae.Code)
	assert.Equal(t, apperr.KindNoData, ae.Kind)

	_, err = z.EvaluateSystem("missing0")
	assert.True(t, apperr.Is(err, apperr.NotFoundCode))
}

func TestGetAnalysis_Summary(t *testing.T) {
	z := NewAnalyzer()
	id := z.Create("ward", "patient safety", "night shift").AnalysisID

	d, err := z.GetAnalysis(id)
	require.NoError(t, err)
	assert.Nil(t, d.AnalysisSummary.InterfaceQualityAvg)
	assert.Nil(t, d.OverallAssessment)
	assert.Equal(t, map[string]int{"minor": 0, "moderate": 0, "serious": 0, "critical": 0}, d.AnalysisSummary.SeverityDistribution)

	_, err = z.AnalyzeElement(id, "Liveware-Central", []string{"fatigue", "long shifts"}, 3, []string{"rota"})
	require.NoError(t, err)
	_, err = z.AnalyzeInterface(id, "Machine", "Liveware-Central", nil, 7)
	require.NoError(t, err)
	_, err = z.AnalyzeInterface(id, "Software", "Liveware-Central", nil, 8)
	require.NoError(t, err)

	d, err = z.GetAnalysis(id)
	require.NoError(t, err)
	s := d.AnalysisSummary
	assert.Equal(t, "1/6", s.CompletionRate)
	assert.Equal(t, 2, s.TotalFindings)
	assert.Equal(t, 1, s.TotalRecommendations)
	assert.Equal(t, 1, s.SeverityDistribution["serious"])
	require.NotNil(t, s.InterfaceQualityAvg)
	assert.Equal(t, 7.5, *s.InterfaceQualityAvg)
	assert.Equal(t, "patient safety", d.Purpose)

	again, err := z.GetAnalysis(id)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(d, again))
}

func TestProjections_Idempotent(t *testing.T) {
	z := NewAnalyzer()
	id := z.Create("control room", "", "").AnalysisID
	_, err := z.AnalyzeElement(id, "Software", []string{"alarm flood"}, 3, nil)
	require.NoError(t, err)
	_, err = z.AnalyzeInterface(id, "Software", "Liveware-Central", nil, 4)
	require.NoError(t, err)
	_, err = z.EvaluateSystem(id)
	require.NoError(t, err)

	first, err := z.GetAnalysis(id)
	require.NoError(t, err)
	second, err := z.GetAnalysis(id)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(first, second))
	assert.Empty(t, cmp.Diff(z.ListAnalyses(), z.ListAnalyses()))
}
