package rbs

// SubcategoryNode is one leaf group of the template tree.
type SubcategoryNode struct {
	Name         string   `json:"name"`
	RiskExamples []string `json:"risk_examples"`
	Count        int      `json:"count"`
}

// CategoryNode is one branch of the template tree.
type CategoryNode struct {
	Category      Category          `json:"category"`
	Label         string            `json:"label"`
	Subcategories []SubcategoryNode `json:"subcategories"`
	TotalExamples int               `json:"total_examples"`
}

// StructureResult is returned when an analysis is created.
type StructureResult struct {
	AnalysisID       string         `json:"analysis_id"`
	ProjectName      string         `json:"project_name"`
	ProjectType      string         `json:"project_type"`
	Structure        []CategoryNode `json:"rbs_structure"`
	RecommendedFocus []string       `json:"recommended_focus"`
	CreatedAt        string         `json:"created_at"`
}

// Rating is a 1–5 value with its label.
type Rating struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// RiskView is the projection of a risk.
type RiskView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Subcategory string   `json:"subcategory"`
	Probability Rating   `json:"probability"`
	Impact      Rating   `json:"impact"`
	RiskScore   int      `json:"risk_score"`
	Priority    Priority `json:"priority"`
	CreatedAt   string   `json:"created_at"`
}

// IdentifyResult is returned after risks are filed.
type IdentifyResult struct {
	AnalysisID  string     `json:"analysis_id"`
	Category    Category   `json:"category"`
	Subcategory string     `json:"subcategory"`
	AddedRisks  []RiskView `json:"added_risks"`
	TotalRisks  int        `json:"total_risks"`
}

// MatrixEntry is a risk placed in a matrix cell.
type MatrixEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Matrix maps probability to impact to the risks in that cell.
type Matrix map[string]map[string][]MatrixEntry

// Statistics aggregates the scores of a register.
type Statistics struct {
	TotalRisks           int              `json:"total_risks"`
	AverageScore         float64          `json:"average_score"`
	MaxScore             int              `json:"max_score"`
	MinScore             int              `json:"min_score"`
	HighPriorityCount    int              `json:"high_priority_count"`
	CategoryDistribution map[Category]int `json:"category_distribution"`
}

// PriorityGroup holds the risks of one priority band.
type PriorityGroup struct {
	Priority Priority   `json:"priority"`
	Risks    []RiskView `json:"risks"`
}

// EvaluateResult is the risk evaluation of an analysis.
type EvaluateResult struct {
	AnalysisID      string          `json:"analysis_id"`
	ProjectName     string          `json:"project_name"`
	Matrix          Matrix          `json:"risk_matrix"`
	Statistics      Statistics      `json:"statistics"`
	PriorityGroups  []PriorityGroup `json:"priority_groups"`
	Recommendations []string        `json:"recommendations"`
}

// Summary is the list projection of an analysis.
type Summary struct {
	AnalysisID        string `json:"analysis_id"`
	ProjectName       string `json:"project_name"`
	ProjectType       string `json:"project_type"`
	Context           string `json:"context"`
	RiskCount         int    `json:"risk_count"`
	HighPriorityCount int    `json:"high_priority_count"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// Detail is an analysis with its risks.
type Detail struct {
	Summary
	Risks       []RiskView  `json:"risks"`
	RiskSummary *Statistics `json:"risk_summary,omitempty"`
}
