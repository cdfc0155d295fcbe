package whys

// StartResult is returned when a chain is opened.
type StartResult struct {
	AnalysisID    string `json:"analysis_id"`
	Problem       string `json:"problem"`
	FirstQuestion string `json:"first_question"`
	Level         int    `json:"level"`
	Progress      string `json:"progress"`
}

// AnswerResult is returned after an answer is recorded. NextQuestion and
// NextLevel are set while the chain is active; Summary once it completes.
type AnswerResult struct {
	AnalysisID     string   `json:"analysis_id"`
	Level          int      `json:"level"`
	RecordedAnswer string   `json:"recorded_answer"`
	NextQuestion   string   `json:"next_question,omitempty"`
	NextLevel      int      `json:"next_level,omitempty"`
	Progress       string   `json:"progress"`
	Status         Status   `json:"status"`
	Summary        *Summary `json:"summary,omitempty"`
}

// Summary describes a completed chain.
type Summary struct {
	OriginalProblem string    `json:"original_problem"`
	RootCause       string    `json:"root_cause"`
	WhyChain        []WhyView `json:"why_chain"`
	TotalLevels     int       `json:"total_levels"`
	AnalysisDepth   string    `json:"analysis_depth"`
}

// WhyView is the projection of one level.
type WhyView struct {
	Level      int    `json:"level"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	AnsweredAt string `json:"answered_at,omitempty"`
}

// Detail is the full projection of a chain.
type Detail struct {
	AnalysisID      string    `json:"analysis_id"`
	Problem         string    `json:"problem"`
	Context         string    `json:"context"`
	Status          Status    `json:"status"`
	Progress        string    `json:"progress"`
	CurrentQuestion string    `json:"current_question,omitempty"`
	CurrentLevel    *int      `json:"current_level"`
	RootCause       string    `json:"root_cause,omitempty"`
	Whys            []WhyView `json:"whys"`
	CreatedAt       string    `json:"created_at"`
}

// ListEntry is one row of the chain listing.
type ListEntry struct {
	AnalysisID string `json:"analysis_id"`
	Problem    string `json:"problem"`
	Status     Status `json:"status"`
	Progress   string `json:"progress"`
	CreatedAt  string `json:"created_at"`
}
