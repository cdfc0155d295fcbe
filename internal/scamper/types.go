package scamper

// TechniqueOverview is one line of the session opener.
type TechniqueOverview struct {
	Technique  Technique `json:"technique"`
	NativeName string    `json:"native_name"`
	Summary    string    `json:"summary"`
}

// StartResult is returned when a session opens.
type StartResult struct {
	SessionID          string              `json:"session_id"`
	Topic              string              `json:"topic"`
	TechniquesOverview []TechniqueOverview `json:"techniques_overview"`
	UsageGuide         []string            `json:"usage_guide"`
}

// AddedIdea echoes a recorded idea.
type AddedIdea struct {
	ID          string `json:"id"`
	Idea        string `json:"idea"`
	Explanation string `json:"explanation"`
}

// SessionStats summarises the ideas of a session.
type SessionStats struct {
	TotalIdeas            int               `json:"total_ideas"`
	TechniquesUsed        int               `json:"techniques_used"`
	TechniqueDistribution map[Technique]int `json:"technique_distribution"`
}

// ApplyResult is returned after ideas are recorded.
type ApplyResult struct {
	SessionID      string       `json:"session_id"`
	Technique      Technique    `json:"technique"`
	AddedIdeas     []AddedIdea  `json:"added_ideas"`
	TechniqueGuide Guide        `json:"technique_guide"`
	SessionStats   SessionStats `json:"session_stats"`
}

// EvaluatedIdea is one scored idea.
type EvaluatedIdea struct {
	Idea        string    `json:"idea"`
	Technique   Technique `json:"technique"`
	Feasibility int       `json:"feasibility"`
	Impact      int       `json:"impact"`
	TotalScore  int       `json:"total_score"`
}

// TechniqueStat aggregates the ideas of one technique.
type TechniqueStat struct {
	Technique      Technique `json:"technique"`
	TotalIdeas     int       `json:"total_ideas"`
	EvaluatedIdeas int       `json:"evaluated_ideas"`
	AvgFeasibility float64   `json:"avg_feasibility"`
	AvgImpact      float64   `json:"avg_impact"`
	AvgTotalScore  float64   `json:"avg_total_score"`
}

// EvaluationSummary averages the scores of one evaluation call.
type EvaluationSummary struct {
	TotalEvaluated int     `json:"total_evaluated"`
	AvgFeasibility float64 `json:"avg_feasibility"`
	AvgImpact      float64 `json:"avg_impact"`
}

// EvaluateResult is returned after scoring.
type EvaluateResult struct {
	SessionID           string            `json:"session_id"`
	Topic               string            `json:"topic"`
	EvaluationResults   []EvaluatedIdea   `json:"evaluation_results"`
	TopIdeas            []EvaluatedIdea   `json:"top_ideas"`
	TechniqueStatistics []TechniqueStat   `json:"technique_statistics"`
	EvaluationSummary   EvaluationSummary `json:"evaluation_summary"`
}

// RecentIdea is an idea shown in the session detail.
type RecentIdea struct {
	Idea        string    `json:"idea"`
	Technique   Technique `json:"technique"`
	Explanation string    `json:"explanation"`
	Evaluated   bool      `json:"evaluated"`
}

// Detail is the full projection of a session.
type Detail struct {
	SessionID           string          `json:"session_id"`
	Topic               string          `json:"topic"`
	Situation           string          `json:"current_situation"`
	Context             string          `json:"context"`
	ActiveTechnique     Technique       `json:"active_technique,omitempty"`
	TotalIdeas          int             `json:"total_ideas"`
	TechniqueStatistics []TechniqueStat `json:"technique_statistics"`
	RecentIdeas         []RecentIdea    `json:"recent_ideas"`
	Notes               []string        `json:"session_notes"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
}

// ListEntry is one row of the session listing.
type ListEntry struct {
	SessionID      string `json:"session_id"`
	Topic          string `json:"topic"`
	TotalIdeas     int    `json:"total_ideas"`
	TechniquesUsed int    `json:"techniques_used"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// TechniquePrompt pairs a technique with its guide.
type TechniquePrompt struct {
	Technique Technique `json:"technique"`
	Guide     Guide     `json:"guide"`
}

// ComprehensiveResult is returned by GenerateComprehensive.
type ComprehensiveResult struct {
	SessionID             string            `json:"session_id"`
	Topic                 string            `json:"topic"`
	Situation             string            `json:"current_situation"`
	TechniquePrompts      []TechniquePrompt `json:"technique_prompts"`
	ComprehensiveApproach []string          `json:"comprehensive_approach"`
	NextSteps             string            `json:"next_steps"`
}
