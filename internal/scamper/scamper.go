// Package scamper runs SCAMPER idea-generation sessions: ideas are
// collected per technique and scored afterwards for feasibility and impact.
package scamper

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/HendryAvila/analysis-support/internal/apperr"
	"github.com/HendryAvila/analysis-support/internal/registry"
)

var timeNow = time.Now

// Score bounds for feasibility and impact.
const (
	MinScore = 0
	MaxScore = 10
)

const (
	topIdeas    = 5
	recentIdeas = 5
)

// Idea is one recorded idea. Scores stay nil until the idea is evaluated.
type Idea struct {
	ID          string
	Technique   Technique
	Text        string
	Explanation string
	Feasibility *int
	Impact      *int
	CreatedAt   time.Time
}

func (i Idea) evaluated() bool {
	return i.Feasibility != nil && i.Impact != nil
}

// Session is one SCAMPER run.
type Session struct {
	ID              string
	Topic           string
	Situation       string
	Context         string
	Ideas           []Idea
	ActiveTechnique Technique
	Notes           []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Evaluation scores the idea whose text equals Idea.
type Evaluation struct {
	Idea        string `json:"idea"`
	Feasibility int    `json:"feasibility"`
	Impact      int    `json:"impact"`
}

// Sessions owns every SCAMPER session.
type Sessions struct {
	sessions *registry.Registry[Session]
}

// NewSessions creates an empty session store.
func NewSessions() *Sessions {
	return &Sessions{sessions: registry.New[Session]()}
}

func (s *Sessions) create(topic, situation, context string) string {
	now := timeNow()
	return s.sessions.Create(func(id string) Session {
		return Session{
			ID:        id,
			Topic:     topic,
			Situation: situation,
			Context:   context,
			CreatedAt: now,
			UpdatedAt: now,
		}
	})
}

// Start opens a session and returns the technique overview.
func (s *Sessions) Start(topic, situation, context string) StartResult {
	id := s.create(topic, situation, context)
	return StartResult{
		SessionID:          id,
		Topic:              topic,
		TechniquesOverview: techniqueOverview(),
		UsageGuide: []string{
			"Pick one technique and generate ideas from its viewpoint",
			"Every technique comes with three guide questions",
			"Record ideas in the session with scamper_apply_technique",
			"Score the ideas at the end with scamper_evaluate_ideas",
		},
	}
}

// ApplyTechnique records ideas generated with one technique. Explanations
// pair with ideas by index; missing ones are empty.
func (s *Sessions) ApplyTechnique(id, technique string, ideas, explanations []string) (ApplyResult, error) {
	var res ApplyResult
	err := s.sessions.Update(id, func(sess *Session) error {
		t, ok := ParseTechnique(technique)
		if !ok {
			return apperr.Validation(apperr.InvalidTechnique,
				"technique %q is not valid: must be one of: %s", technique, validTechniqueNames())
		}

		now := timeNow()
		sess.ActiveTechnique = t
		sess.UpdatedAt = now

		added := make([]AddedIdea, 0, len(ideas))
		for i, text := range ideas {
			explanation := ""
			if i < len(explanations) {
				explanation = explanations[i]
			}
			idea := Idea{
				ID:          uuid.NewString()[:8],
				Technique:   t,
				Text:        text,
				Explanation: explanation,
				CreatedAt:   now,
			}
			sess.Ideas = append(sess.Ideas, idea)
			added = append(added, AddedIdea{ID: idea.ID, Idea: text, Explanation: explanation})
		}
		sess.Notes = append(sess.Notes, fmt.Sprintf("Generated %d ideas with %s", len(ideas), t))

		res = ApplyResult{
			SessionID:      sess.ID,
			Technique:      t,
			AddedIdeas:     added,
			TechniqueGuide: GuideFor(t),
			SessionStats:   sessionStats(sess),
		}
		return nil
	})
	if err != nil {
		return ApplyResult{}, lookupErr(err, id)
	}
	return res, nil
}

// EvaluateIdeas attaches scores to ideas. Each evaluation applies to the
// first idea with exactly matching text; evaluations that match nothing
// are skipped.
func (s *Sessions) EvaluateIdeas(id string, evaluations []Evaluation) (EvaluateResult, error) {
	var res EvaluateResult
	err := s.sessions.Update(id, func(sess *Session) error {
		for _, ev := range evaluations {
			if ev.Feasibility < MinScore || ev.Feasibility > MaxScore ||
				ev.Impact < MinScore || ev.Impact > MaxScore {
				return apperr.Validation(apperr.InvalidScore,
					"scores for %q must be between %d and %d", ev.Idea, MinScore, MaxScore)
			}
		}

		results := []EvaluatedIdea{}
		for _, ev := range evaluations {
			for i := range sess.Ideas {
				idea := &sess.Ideas[i]
				if idea.Text != ev.Idea {
					continue
				}
				f, im := ev.Feasibility, ev.Impact
				idea.Feasibility = &f
				idea.Impact = &im
				results = append(results, EvaluatedIdea{
					Idea:        idea.Text,
					Technique:   idea.Technique,
					Feasibility: f,
					Impact:      im,
					TotalScore:  f + im,
				})
				break
			}
		}

		sort.SliceStable(results, func(i, j int) bool {
			return results[i].TotalScore > results[j].TotalScore
		})

		summary := EvaluationSummary{TotalEvaluated: len(results)}
		if len(results) > 0 {
			var fs, is int
			for _, r := range results {
				fs += r.Feasibility
				is += r.Impact
			}
			summary.AvgFeasibility = registry.Round2(float64(fs) / float64(len(results)))
			summary.AvgImpact = registry.Round2(float64(is) / float64(len(results)))
		}

		sess.UpdatedAt = timeNow()
		sess.Notes = append(sess.Notes, fmt.Sprintf("Evaluated %d ideas", len(results)))

		res = EvaluateResult{
			SessionID:           sess.ID,
			Topic:               sess.Topic,
			EvaluationResults:   results,
			TopIdeas:            append([]EvaluatedIdea{}, results[:min(topIdeas, len(results))]...),
			TechniqueStatistics: techniqueStats(sess),
			EvaluationSummary:   summary,
		}
		return nil
	})
	if err != nil {
		return EvaluateResult{}, lookupErr(err, id)
	}
	return res, nil
}

// Get returns the current state of a session with its most recent ideas.
func (s *Sessions) Get(id string) (Detail, error) {
	var d Detail
	err := s.sessions.View(id, func(sess *Session) error {
		recent := []RecentIdea{}
		for i := len(sess.Ideas) - 1; i >= 0 && len(recent) < recentIdeas; i-- {
			idea := sess.Ideas[i]
			recent = append(recent, RecentIdea{
				Idea:        idea.Text,
				Technique:   idea.Technique,
				Explanation: idea.Explanation,
				Evaluated:   idea.evaluated(),
			})
		}
		d = Detail{
			SessionID:           sess.ID,
			Topic:               sess.Topic,
			Situation:           sess.Situation,
			Context:             sess.Context,
			ActiveTechnique:     sess.ActiveTechnique,
			TotalIdeas:          len(sess.Ideas),
			TechniqueStatistics: techniqueStats(sess),
			RecentIdeas:         recent,
			Notes:               append([]string{}, sess.Notes...),
			CreatedAt:           registry.Stamp(sess.CreatedAt),
			UpdatedAt:           registry.Stamp(sess.UpdatedAt),
		}
		return nil
	})
	if err != nil {
		return Detail{}, lookupErr(err, id)
	}
	return d, nil
}

// List returns every session, most recently updated first.
func (s *Sessions) List() []ListEntry {
	type row struct {
		entry   ListEntry
		updated time.Time
	}
	var rows []row
	s.sessions.Each(func(id string, sess *Session) {
		rows = append(rows, row{
			entry: ListEntry{
				SessionID:      sess.ID,
				Topic:          registry.ListLabel(sess.Topic),
				TotalIdeas:     len(sess.Ideas),
				TechniquesUsed: len(distribution(sess)),
				CreatedAt:      registry.Stamp(sess.CreatedAt),
				UpdatedAt:      registry.Stamp(sess.UpdatedAt),
			},
			updated: sess.UpdatedAt,
		})
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].updated.After(rows[j].updated)
	})

	out := make([]ListEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.entry)
	}
	return out
}

// GenerateComprehensive opens a fresh session and returns the guide
// questions of all seven techniques at once.
func (s *Sessions) GenerateComprehensive(topic, situation, context string) ComprehensiveResult {
	id := s.create(topic, situation, context)

	prompts := make([]TechniquePrompt, 0, len(Techniques))
	for _, t := range Techniques {
		prompts = append(prompts, TechniquePrompt{Technique: t, Guide: GuideFor(t)})
	}
	return ComprehensiveResult{
		SessionID:        id,
		Topic:            topic,
		Situation:        situation,
		TechniquePrompts: prompts,
		ComprehensiveApproach: []string{
			"Work through the techniques in S-C-A-M-P-E-R order",
			"Aim for two or three ideas per technique",
			"Explain why each idea would work",
			"After trying every technique, pick the best ideas with scamper_evaluate_ideas",
		},
		NextSteps: "Record the ideas of each technique with scamper_apply_technique",
	}
}

func techniqueOverview() []TechniqueOverview {
	out := make([]TechniqueOverview, 0, len(Techniques))
	for _, t := range Techniques {
		out = append(out, TechniqueOverview{
			Technique:  t,
			NativeName: guides[t].NativeName,
			Summary:    overview[t],
		})
	}
	return out
}

func distribution(sess *Session) map[Technique]int {
	counts := make(map[Technique]int)
	for _, idea := range sess.Ideas {
		counts[idea.Technique]++
	}
	return counts
}

func sessionStats(sess *Session) SessionStats {
	dist := distribution(sess)
	return SessionStats{
		TotalIdeas:            len(sess.Ideas),
		TechniquesUsed:        len(dist),
		TechniqueDistribution: dist,
	}
}

// techniqueStats aggregates scores per technique, covering all seven.
func techniqueStats(sess *Session) []TechniqueStat {
	out := make([]TechniqueStat, 0, len(Techniques))
	for _, t := range Techniques {
		st := TechniqueStat{Technique: t}
		var fs, is int
		for _, idea := range sess.Ideas {
			if idea.Technique != t {
				continue
			}
			st.TotalIdeas++
			if idea.evaluated() {
				st.EvaluatedIdeas++
				fs += *idea.Feasibility
				is += *idea.Impact
			}
		}
		if st.EvaluatedIdeas > 0 {
			n := float64(st.EvaluatedIdeas)
			st.AvgFeasibility = registry.Round2(float64(fs) / n)
			st.AvgImpact = registry.Round2(float64(is) / n)
			st.AvgTotalScore = registry.Round2(float64(fs+is) / n)
		}
		out = append(out, st)
	}
	return out
}

func lookupErr(err error, id string) error {
	if errors.Is(err, registry.ErrNotFound) {
		return apperr.NotFound("session", id)
	}
	return err
}
