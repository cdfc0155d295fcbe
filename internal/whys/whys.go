// Package whys implements 5-Whys root-cause analysis: a chain of at most
// five questions, answered strictly in order, where each answer seeds the
// next question.
package whys

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/HendryAvila/analysis-support/internal/apperr"
	"github.com/HendryAvila/analysis-support/internal/registry"
)

// MaxLevels is the depth of a complete chain (levels 0 through 4).
const MaxLevels = 5

// unidentified is reported as the root cause before level 4 is answered.
const unidentified = "unidentified"

// timeNow is a package-level var to allow deterministic timestamps in tests.
var timeNow = time.Now

// Status is the lifecycle state of a chain.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Why is one question of the chain and, once given, its answer.
type Why struct {
	Level      int       `json:"level"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	AnsweredAt time.Time `json:"-"`
}

// answered reports whether the question has an answer.
func (w Why) answered() bool {
	return !w.AnsweredAt.IsZero()
}

// Chain is a single 5-Whys analysis.
type Chain struct {
	ID        string
	Problem   string
	Context   string
	Whys      []Why
	Status    Status
	CreatedAt time.Time
}

func (c *Chain) answeredCount() int {
	n := 0
	for _, w := range c.Whys {
		if w.answered() {
			n++
		}
	}
	return n
}

func (c *Chain) progress() string {
	return fmt.Sprintf("%d/%d", c.answeredCount(), MaxLevels)
}

// Tracker owns every 5-Whys chain of the process.
type Tracker struct {
	chains *registry.Registry[Chain]
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{chains: registry.New[Chain]()}
}

// firstQuestion and nextQuestion render the prompts of the chain.
func firstQuestion(problem string) string {
	return fmt.Sprintf("Why does %q happen?", problem)
}

func nextQuestion(answer string) string {
	return fmt.Sprintf("Why is %q the case?", answer)
}

// Start opens a new chain with its level-0 question pending.
func (t *Tracker) Start(problem, context string) StartResult {
	question := firstQuestion(problem)
	id := t.chains.Create(func(id string) Chain {
		return Chain{
			ID:        id,
			Problem:   problem,
			Context:   context,
			Whys:      []Why{{Level: 0, Question: question}},
			Status:    StatusActive,
			CreatedAt: timeNow(),
		}
	})
	return StartResult{
		AnalysisID:    id,
		Problem:       problem,
		FirstQuestion: question,
		Level:         0,
		Progress:      fmt.Sprintf("0/%d", MaxLevels),
	}
}

// Answer records the answer for level. Levels must be answered in order
// and each exactly once; answering level 4 completes the chain.
func (t *Tracker) Answer(id string, level int, text string) (AnswerResult, error) {
	var res AnswerResult
	err := t.chains.Update(id, func(c *Chain) error {
		if level < 0 || level >= MaxLevels {
			return apperr.Validation(apperr.InvalidLevel,
				"level %d is out of range: must be between 0 and %d", level, MaxLevels-1)
		}
		if level >= len(c.Whys) {
			return apperr.Validation(apperr.LevelNotReady,
				"level %d has no question yet: answer level %d first", level, len(c.Whys)-1)
		}
		if c.Whys[level].answered() {
			return apperr.Validation(apperr.AlreadyAnswered,
				"level %d is already answered", level)
		}

		c.Whys[level].Answer = text
		c.Whys[level].AnsweredAt = timeNow()

		res = AnswerResult{
			AnalysisID:     c.ID,
			Level:          level,
			RecordedAnswer: text,
			Progress:       fmt.Sprintf("%d/%d", level+1, MaxLevels),
		}

		if level < MaxLevels-1 {
			q := nextQuestion(text)
			c.Whys = append(c.Whys, Why{Level: level + 1, Question: q})
			res.NextQuestion = q
			res.NextLevel = level + 1
			res.Status = c.Status
			return nil
		}

		c.Status = StatusCompleted
		res.Status = c.Status
		summary := summarize(c)
		res.Summary = &summary
		return nil
	})
	if err != nil {
		return AnswerResult{}, lookupErr(err, id)
	}
	return res, nil
}

// Get returns the current state of a chain.
func (t *Tracker) Get(id string) (Detail, error) {
	var d Detail
	err := t.chains.View(id, func(c *Chain) error {
		d = Detail{
			AnalysisID: c.ID,
			Problem:    c.Problem,
			Context:    c.Context,
			Status:     c.Status,
			Progress:   c.progress(),
			Whys:       projectWhys(c.Whys, false),
			CreatedAt:  registry.Stamp(c.CreatedAt),
		}
		for _, w := range c.Whys {
			if !w.answered() {
				level := w.Level
				d.CurrentQuestion = w.Question
				d.CurrentLevel = &level
				break
			}
		}
		if c.Status == StatusCompleted {
			d.RootCause = c.Whys[MaxLevels-1].Answer
		}
		return nil
	})
	if err != nil {
		return Detail{}, lookupErr(err, id)
	}
	return d, nil
}

// List returns every chain, newest first.
func (t *Tracker) List() []ListEntry {
	type row struct {
		entry   ListEntry
		created time.Time
	}
	var rows []row
	t.chains.Each(func(id string, c *Chain) {
		rows = append(rows, row{
			entry: ListEntry{
				AnalysisID: c.ID,
				Problem:    registry.ListLabel(c.Problem),
				Status:     c.Status,
				Progress:   c.progress(),
				CreatedAt:  registry.Stamp(c.CreatedAt),
			},
			created: c.CreatedAt,
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

func summarize(c *Chain) Summary {
	rootCause := unidentified
	if len(c.Whys) == MaxLevels && c.Whys[MaxLevels-1].answered() {
		rootCause = c.Whys[MaxLevels-1].Answer
	}
	chain := projectWhys(c.Whys, true)
	depth := "complete"
	if len(chain) < MaxLevels {
		depth = fmt.Sprintf("partial (%d/%d)", len(chain), MaxLevels)
	}
	return Summary{
		OriginalProblem: c.Problem,
		RootCause:       rootCause,
		WhyChain:        chain,
		TotalLevels:     len(chain),
		AnalysisDepth:   depth,
	}
}

func projectWhys(whys []Why, answeredOnly bool) []WhyView {
	out := make([]WhyView, 0, len(whys))
	for _, w := range whys {
		if answeredOnly && !w.answered() {
			continue
		}
		v := WhyView{Level: w.Level, Question: w.Question, Answer: w.Answer}
		if w.answered() {
			v.AnsweredAt = registry.Stamp(w.AnsweredAt)
		}
		out = append(out, v)
	}
	return out
}

func lookupErr(err error, id string) error {
	if errors.Is(err, registry.ErrNotFound) {
		return apperr.NotFound("analysis", id)
	}
	return err
}
