package mece

// AnalysisResult is the projection of a category check.
type AnalysisResult struct {
	AnalysisID  string     `json:"analysis_id"`
	Topic       string     `json:"topic"`
	Categories  []string   `json:"categories"`
	Evaluation  Evaluation `json:"mece_evaluation"`
	Suggestions []string   `json:"improvement_suggestions"`
	Notes       []string   `json:"analysis_notes"`
	CreatedAt   string     `json:"created_at"`
}

// Evaluation holds the detected violations.
type Evaluation struct {
	Violation   Violation `json:"violation_type"`
	Description string    `json:"description"`
	Compliant   bool      `json:"is_mece_compliant"`
	Overlaps    []Overlap `json:"overlaps"`
	Gaps        []string  `json:"gaps"`
}

// ListEntry is one row of the analysis listing.
type ListEntry struct {
	AnalysisID    string    `json:"analysis_id"`
	Topic         string    `json:"topic"`
	CategoryCount int       `json:"category_count"`
	Violation     Violation `json:"violation_type"`
	CreatedAt     string    `json:"created_at"`
}

// Structure is a proposed framework breakdown of a topic.
type Structure struct {
	Topic           string                `json:"topic"`
	Framework       Framework             `json:"framework"`
	Categories      []string              `json:"categories"`
	Explanations    []CategoryExplanation `json:"explanations"`
	Characteristics Characteristics       `json:"characteristics"`
	UsageTips       []string              `json:"usage_tips"`
}

// CategoryExplanation pairs a category with its topic-specific description.
type CategoryExplanation struct {
	Category    string `json:"category"`
	Explanation string `json:"explanation"`
}

// Characteristics states why the structure is MECE.
type Characteristics struct {
	MutuallyExclusive      string `json:"mutually_exclusive"`
	CollectivelyExhaustive string `json:"collectively_exhaustive"`
}
