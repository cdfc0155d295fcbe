package tools

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/HendryAvila/analysis-support/internal/journal"
	"github.com/HendryAvila/analysis-support/internal/mece"
	"github.com/HendryAvila/analysis-support/internal/mshell"
	"github.com/HendryAvila/analysis-support/internal/rbs"
	"github.com/HendryAvila/analysis-support/internal/scamper"
	"github.com/HendryAvila/analysis-support/internal/whys"
)

// Recorder is notified when an analysis reaches a completed or evaluated
// state. It's an optional dependency: tools work fine with a nil recorder.
type Recorder interface {
	Record(framework, analysisID, title, content string)
}

// JournalBridge saves compact analysis summaries to the journal using
// topic-key upserts, so each analysis has one evolving entry.
type JournalBridge struct {
	store *journal.Store
	log   *zap.Logger
}

// NewJournalBridge creates a bridge to store. Returns nil if store is nil.
func NewJournalBridge(store *journal.Store, log *zap.Logger) *JournalBridge {
	if store == nil {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &JournalBridge{store: store, log: log}
}

// Record upserts the summary. Failures are logged, never returned: the
// analysis result is the primary concern.
func (b *JournalBridge) Record(framework, analysisID, title, content string) {
	if b == nil {
		return
	}
	_, err := b.store.Record(journal.RecordParams{
		Framework:  framework,
		AnalysisID: analysisID,
		Title:      title,
		Content:    content,
	})
	if err != nil {
		b.log.Warn("journal record failed",
			zap.String("framework", framework),
			zap.String("analysis_id", analysisID),
			zap.Error(err),
		)
	}
}

// notifyRecorder is a nil-safe helper called from tool Handle methods.
func notifyRecorder(rec Recorder, framework, analysisID, title, content string) {
	if rec == nil {
		return
	}
	rec.Record(framework, analysisID, title, content)
}

// ─── Compact summaries ───────────────────────────────────────────────────────

func whysEntry(s *whys.Summary) (title, content string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Problem: %s\nRoot cause: %s\nDepth: %s\n", s.OriginalProblem, s.RootCause, s.AnalysisDepth)
	for _, w := range s.WhyChain {
		fmt.Fprintf(&b, "%d. %s -> %s\n", w.Level+1, w.Question, w.Answer)
	}
	return "5 Whys: " + s.OriginalProblem, b.String()
}

func meceEntry(r mece.AnalysisResult) (title, content string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\nCategories: %s\nResult: %s\n", r.Topic, strings.Join(r.Categories, ", "), r.Evaluation.Description)
	for _, o := range r.Evaluation.Overlaps {
		fmt.Fprintf(&b, "Overlap: %s / %s (%s)\n", o.CategoryA, o.CategoryB, o.Keyword)
	}
	if len(r.Evaluation.Gaps) > 0 {
		fmt.Fprintf(&b, "Gaps: %s\n", strings.Join(r.Evaluation.Gaps, ", "))
	}
	return "MECE: " + r.Topic, b.String()
}

func scamperEntry(r scamper.EvaluateResult) (title, content string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\nEvaluated: %d (avg feasibility %.2f, avg impact %.2f)\n",
		r.Topic, r.EvaluationSummary.TotalEvaluated, r.EvaluationSummary.AvgFeasibility, r.EvaluationSummary.AvgImpact)
	for i, idea := range r.TopIdeas {
		fmt.Fprintf(&b, "%d. %s [%s] score %d\n", i+1, idea.Idea, idea.Technique, idea.TotalScore)
	}
	return "SCAMPER: " + r.Topic, b.String()
}

func rbsEntry(r rbs.EvaluateResult) (title, content string) {
	var b strings.Builder
	st := r.Statistics
	fmt.Fprintf(&b, "Project: %s\nRisks: %d (avg score %.2f, max %d, high priority %d)\n",
		r.ProjectName, st.TotalRisks, st.AverageScore, st.MaxScore, st.HighPriorityCount)
	for _, g := range r.PriorityGroups {
		for _, risk := range g.Risks {
			fmt.Fprintf(&b, "[%s] %s (%s, score %d)\n", g.Priority, risk.Name, risk.Category, risk.RiskScore)
		}
	}
	return "RBS: " + r.ProjectName, b.String()
}

func mshellEntry(r mshell.EvaluateResult) (title, content string) {
	var b strings.Builder
	ev := r.Evaluation
	fmt.Fprintf(&b, "System: %s\nScore: %.2f (%s)\n%s\n", r.SystemName, ev.OverallScore, ev.OverallLevel, ev.Summary)
	for _, e := range r.CriticalIssues {
		fmt.Fprintf(&b, "Critical: %s %s\n", e.Element, strings.Join(e.Findings, "; "))
	}
	for _, i := range r.InterfaceProblems {
		fmt.Fprintf(&b, "Weak interface: %s (%d)\n", i.Interface, i.QualityScore)
	}
	return "m-SHELL: " + r.SystemName, b.String()
}
