package mshell

// ElementDescription introduces one element when an analysis opens.
type ElementDescription struct {
	Element     Element `json:"element"`
	NativeName  string  `json:"native_name"`
	Description string  `json:"description"`
}

// CreateResult is returned when an analysis opens.
type CreateResult struct {
	AnalysisID          string               `json:"analysis_id"`
	SystemName          string               `json:"system_name"`
	Purpose             string               `json:"analysis_purpose"`
	AvailableElements   []Element            `json:"available_elements"`
	ElementDescriptions []ElementDescription `json:"element_descriptions"`
	CreatedAt           string               `json:"created_at"`
}

// SeverityView is a severity with its label.
type SeverityView struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// ElementView is the projection of an element record.
type ElementView struct {
	ID              string       `json:"id"`
	Element         Element      `json:"element"`
	NativeName      string       `json:"native_name"`
	Findings        []string     `json:"findings"`
	Severity        SeverityView `json:"severity"`
	Recommendations []string     `json:"recommendations"`
	AnalyzedAt      string       `json:"analyzed_at"`
}

// ElementResult is returned after an element is analysed.
type ElementResult struct {
	AnalysisID      string       `json:"analysis_id"`
	ElementAnalysis ElementView  `json:"element_analysis"`
	Checkpoints     []CheckGroup `json:"available_checkpoints"`
	Progress        string       `json:"progress"`
}

// InterfaceView is the projection of an interface record.
type InterfaceView struct {
	ID           string   `json:"id"`
	Interface    string   `json:"interface"`
	Issues       []string `json:"issues"`
	QualityScore int      `json:"quality_score"`
	QualityLevel string   `json:"quality_level"`
	AnalyzedAt   string   `json:"analyzed_at"`
}

// InterfaceResult is returned after an interface is analysed.
type InterfaceResult struct {
	AnalysisID           string        `json:"analysis_id"`
	InterfaceAnalysis    InterfaceView `json:"interface_analysis"`
	SuggestedCheckpoints []string      `json:"suggested_checkpoints"`
	TotalInterfaces      int           `json:"total_interfaces"`
}

// Evaluation is the composite rating of a system.
type Evaluation struct {
	OverallScore          float64         `json:"overall_score"`
	OverallLevel          string          `json:"overall_level"`
	ElementScores         map[Element]int `json:"element_scores"`
	AverageElementScore   float64         `json:"average_element_score"`
	AverageInterfaceScore float64         `json:"average_interface_score"`
	AnalysisCompleteness  string          `json:"analysis_completeness"`
	InterfaceCompleteness string          `json:"interface_completeness"`
	Summary               string          `json:"summary"`
}

// EvaluateResult is returned by EvaluateSystem.
type EvaluateResult struct {
	AnalysisID        string          `json:"analysis_id"`
	SystemName        string          `json:"system_name"`
	Evaluation        Evaluation      `json:"evaluation"`
	CriticalIssues    []ElementView   `json:"critical_issues"`
	InterfaceProblems []InterfaceView `json:"interface_problems"`
	Recommendations   []string        `json:"recommendations"`
}

// Summary is the list projection of an analysis.
type Summary struct {
	AnalysisID        string  `json:"analysis_id"`
	SystemName        string  `json:"system_name"`
	Purpose           string  `json:"analysis_purpose"`
	Context           string  `json:"context"`
	ElementCount      int     `json:"element_count"`
	InterfaceCount    int     `json:"interface_count"`
	CriticalIssues    int     `json:"critical_issues"`
	InterfaceProblems int     `json:"interface_problems"`
	OverallAssessment *string `json:"overall_assessment"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// AnalysisSummary is derived on every read.
type AnalysisSummary struct {
	CompletionRate       string         `json:"completion_rate"`
	TotalFindings        int            `json:"total_findings"`
	TotalRecommendations int            `json:"total_recommendations"`
	SeverityDistribution map[string]int `json:"severity_distribution"`
	InterfaceQualityAvg  *float64       `json:"interface_quality_avg"`
}

// Detail is an analysis with all of its records.
type Detail struct {
	Summary
	ElementAnalyses   []ElementView   `json:"element_analyses"`
	InterfaceAnalyses []InterfaceView `json:"interface_analyses"`
	AnalysisSummary   AnalysisSummary `json:"analysis_summary"`
}
