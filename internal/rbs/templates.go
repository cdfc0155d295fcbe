package rbs

import "strings"

// Category is one of the four top-level branches of the risk breakdown
// structure.
type Category string

const (
	Technical         Category = "technical"
	External          Category = "external"
	Organizational    Category = "organizational"
	ProjectManagement Category = "project-management"
)

// Categories lists the branches in presentation order.
var Categories = []Category{Technical, External, Organizational, ProjectManagement}

var categoryLabels = map[Category][2]string{
	Technical:         {"Technical risk", "技術的リスク"},
	External:          {"External risk", "外部リスク"},
	Organizational:    {"Organizational risk", "組織リスク"},
	ProjectManagement: {"Project management risk", "プロジェクト管理リスク"},
}

// Label returns the display name of c.
func (c Category) Label() string {
	return categoryLabels[c][0]
}

// ParseCategory accepts a category id, its English label or its Japanese
// label. Ids and English labels are case-insensitive.
func ParseCategory(name string) (Category, bool) {
	for _, c := range Categories {
		labels := categoryLabels[c]
		if strings.EqualFold(name, string(c)) || strings.EqualFold(name, labels[0]) || name == labels[1] {
			return c, true
		}
	}
	return "", false
}

func validCategoryNames() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

type subcategory struct {
	name     string
	examples []string
}

// templates holds three subcategories with three example risks for every
// category.
var templates = map[Category][]subcategory{
	Technical: {
		{"Technical requirements", []string{
			"Learning cost of new technology",
			"Changes to technical specifications",
			"Uncertain technical feasibility",
		}},
		{"System integration", []string{
			"Compatibility with existing systems",
			"Complexity of data migration",
			"System performance problems",
		}},
		{"Quality assurance", []string{
			"Quality problems from insufficient testing",
			"Security vulnerabilities",
			"Scalability problems",
		}},
	},
	External: {
		{"Market and competition", []string{
			"Changes in the market environment",
			"Competitor moves",
			"Changing customer needs",
		}},
		{"Regulation and law", []string{
			"Changes to regulatory requirements",
			"Impact of legal amendments",
			"Compliance violations",
		}},
		{"External dependencies", []string{
			"Delays from external vendors",
			"Problems with third-party libraries",
			"Outages of external services",
		}},
	},
	Organizational: {
		{"Human resources", []string{
			"Departure of key people",
			"Skill shortages",
			"Poor communication between teams",
		}},
		{"Organizational structure", []string{
			"Impact of reorganisation",
			"Unclear authority and responsibility",
			"Delayed decision making",
		}},
		{"Corporate culture", []string{
			"Resistance to change",
			"Competing priorities",
			"Resource allocation problems",
		}},
	},
	ProjectManagement: {
		{"Schedule", []string{
			"Delivery delays",
			"Increasingly complex dependencies",
			"Missed milestones",
		}},
		{"Budget and cost", []string{
			"Budget overrun",
			"Hidden costs",
			"Exchange rate fluctuations",
		}},
		{"Scope and requirements", []string{
			"Changed or added requirements",
			"Scope creep",
			"Changing stakeholder demands",
		}},
	},
}

// StructureTemplate returns the full category, subcategory and example
// risk tree.
func StructureTemplate() []CategoryNode {
	return buildStructureTree()
}

func buildStructureTree() []CategoryNode {
	tree := make([]CategoryNode, 0, len(Categories))
	for _, c := range Categories {
		node := CategoryNode{Category: c, Label: c.Label()}
		for _, sub := range templates[c] {
			node.Subcategories = append(node.Subcategories, SubcategoryNode{
				Name:         sub.name,
				RiskExamples: append([]string(nil), sub.examples...),
				Count:        len(sub.examples),
			})
			node.TotalExamples += len(sub.examples)
		}
		tree = append(tree, node)
	}
	return tree
}

type projectFocus struct {
	names []string
	focus []string
}

var projectFocuses = []projectFocus{
	{
		names: []string{"IT/system development", "IT・システム開発"},
		focus: []string{
			"Examine technical risks first",
			"Watch system integration and data migration",
			"Confirm security requirements early",
		},
	},
	{
		names: []string{"infrastructure/construction", "インフラ・建設"},
		focus: []string{
			"Weigh external factors such as weather and regulation",
			"Put safety management and quality assurance first",
			"Manage material procurement and the supply chain",
		},
	},
	{
		names: []string{"new product development", "新商品開発"},
		focus: []string{
			"Analyse market and competition risks in depth",
			"Verify technical feasibility",
			"Consider intellectual property and patents",
		},
	},
	{
		names: []string{"organizational change", "組織変革"},
		focus: []string{
			"Treat organizational risk as most important",
			"Plan for resistance to change and change management",
			"Establish a communication strategy",
		},
	},
}

var defaultFocus = []string{
	"Examine every category in balance",
	"Identify risks specific to the project",
	"Carry out a stakeholder analysis",
}

func recommendedFocus(projectType string) []string {
	for _, pf := range projectFocuses {
		for _, n := range pf.names {
			if strings.EqualFold(projectType, n) {
				return append([]string(nil), pf.focus...)
			}
		}
	}
	return append([]string(nil), defaultFocus...)
}
