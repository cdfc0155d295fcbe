package whys

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/analysis-support/internal/apperr"
)

// fixedClock makes timeNow advance one second per call.
func fixedClock(t *testing.T) {
	t.Helper()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	calls := 0
	orig := timeNow
	timeNow = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	t.Cleanup(func() { timeNow = orig })
}

func answerAll(t *testing.T, tr *Tracker, id string, answers ...string) AnswerResult {
	t.Helper()
	var last AnswerResult
	for i, a := range answers {
		res, err := tr.Answer(id, i, a)
		require.NoError(t, err, "level %d", i)
		last = res
	}
	return last
}

func TestStart(t *testing.T) {
	tr := NewTracker()
	res := tr.Start("server crashes", "production cluster")

	assert.Len(t, res.AnalysisID, 8)
	assert.Equal(t, `Why does "server crashes" happen?`, res.FirstQuestion)
	assert.Equal(t, 0, res.Level)
	assert.Equal(t, "0/5", res.Progress)
}

func TestAnswer_FirstLevel(t *testing.T) {
	tr := NewTracker()
	start := tr.Start("server crashes", "")

	res, err := tr.Answer(start.AnalysisID, 0, "overload")
	require.NoError(t, err)

	assert.Equal(t, 1, res.NextLevel)
	assert.Equal(t, "1/5", res.Progress)
	assert.Equal(t, "overload", res.RecordedAnswer)
	assert.Equal(t, `Why is "overload" the case?`, res.NextQuestion)
	assert.Equal(t, StatusActive, res.Status)
	assert.Nil(t, res.Summary)
}

func TestAnswer_Errors(t *testing.T) {
	tr := NewTracker()
	id := tr.Start("late deliveries", "").AnalysisID
	_, err := tr.Answer(id, 0, "routing")
	require.NoError(t, err)

	tests := []struct {
		name  string
		id    string
		level int
		code  apperr.Code
	}{
		{"unknown id", "nope0000", 0, apperr.NotFoundCode},
		{"unknown id wins over bad level", "nope0000", 9, apperr.NotFoundCode},
		{"negative level", id, -1, apperr.InvalidLevel},
		{"level too high", id, 5, apperr.InvalidLevel},
		{"skipping ahead", id, 3, apperr.LevelNotReady},
		{"re-answering", id, 0, apperr.AlreadyAnswered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.Answer(tt.id, tt.level, "x")
			require.Error(t, err)
			assert.Equal(t, tt.code, apperr.CodeOf(err))
		})
	}
}

func TestAnswer_FailureLeavesChainUntouched(t *testing.T) {
	tr := NewTracker()
	id := tr.Start("churn", "").AnalysisID

	before, err := tr.Get(id)
	require.NoError(t, err)
	_, err = tr.Answer(id, 2, "premature")
	require.Error(t, err)
	after, err := tr.Get(id)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(before, after))
}

func TestAnswer_CompletesChain(t *testing.T) {
	fixedClock(t)
	tr := NewTracker()
	id := tr.Start("server crashes", "").AnalysisID

	res := answerAll(t, tr, id, "overload", "traffic spike", "no autoscaling", "manual capacity plan", "no capacity owner")

	assert.Equal(t, StatusCompleted, res.Status)
	assert.Equal(t, "5/5", res.Progress)
	assert.Empty(t, res.NextQuestion)
	require.NotNil(t, res.Summary)
	assert.Equal(t, "no capacity owner", res.Summary.RootCause)
	assert.Equal(t, "server crashes", res.Summary.OriginalProblem)
	assert.Equal(t, 5, res.Summary.TotalLevels)
	assert.Equal(t, "complete", res.Summary.AnalysisDepth)
	for i, w := range res.Summary.WhyChain {
		assert.Equal(t, i, w.Level)
		assert.NotEmpty(t, w.AnsweredAt)
	}

	_, err := tr.Answer(id, 4, "again")
	assert.True(t, apperr.Is(err, apperr.AlreadyAnswered))
}

func TestGet_TracksCurrentQuestion(t *testing.T) {
	tr := NewTracker()
	id := tr.Start("missed deadlines", "team of 4").AnalysisID
	answerAll(t, tr, id, "scope creep", "unclear requirements")

	d, err := tr.Get(id)
	require.NoError(t, err)

	assert.Equal(t, "2/5", d.Progress)
	require.NotNil(t, d.CurrentLevel)
	assert.Equal(t, 2, *d.CurrentLevel)
	assert.Equal(t, `Why is "unclear requirements" the case?`, d.CurrentQuestion)
	assert.Len(t, d.Whys, 3)
	assert.Empty(t, d.RootCause)
	assert.Equal(t, "team of 4", d.Context)
}

func TestGet_CompletedHasNoCurrentQuestion(t *testing.T) {
	tr := NewTracker()
	id := tr.Start("p", "").AnalysisID
	answerAll(t, tr, id, "a", "b", "c", "d", "e")

	d, err := tr.Get(id)
	require.NoError(t, err)
	assert.Nil(t, d.CurrentLevel)
	assert.Equal(t, "e", d.RootCause)
	assert.Equal(t, StatusCompleted, d.Status)
}

func TestGet_NotFound(t *testing.T) {
	_, err := NewTracker().Get("missing1")
	assert.True(t, apperr.Is(err, apperr.NotFoundCode))
}

func TestProjections_Idempotent(t *testing.T) {
	tr := NewTracker()
	id := tr.Start("inventory drift", "").AnalysisID
	answerAll(t, tr, id, "manual counts")

	first, err := tr.Get(id)
	require.NoError(t, err)
	second, err := tr.Get(id)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(first, second))
	assert.Empty(t, cmp.Diff(tr.List(), tr.List()))
}

func TestList_NewestFirstAndTruncated(t *testing.T) {
	fixedClock(t)
	tr := NewTracker()
	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(ids, tr.Start(fmt.Sprintf("problem number %d with a rather long description", i), "").AnalysisID)
	}

	list := tr.List()
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].AnalysisID)
	assert.Equal(t, ids[0], list[2].AnalysisID)
	assert.Equal(t, "problem number 2 with a rat...", list[0].Problem)
	assert.Equal(t, "0/5", list[0].Progress)
}

func TestList_SameTimestampKeepsNewestFirst(t *testing.T) {
	orig := timeNow
	frozen := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return frozen }
	t.Cleanup(func() { timeNow = orig })

	tr := NewTracker()
	a := tr.Start("a", "").AnalysisID
	b := tr.Start("b", "").AnalysisID

	list := tr.List()
	require.Len(t, list, 2)
	assert.Equal(t, b, list[0].AnalysisID)
	assert.Equal(t, a, list[1].AnalysisID)
}
