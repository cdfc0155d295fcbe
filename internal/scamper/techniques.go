package scamper

import (
	"strings"
)

// Technique is one of the seven SCAMPER lenses.
type Technique string

const (
	Substitute    Technique = "Substitute"
	Combine       Technique = "Combine"
	Adapt         Technique = "Adapt"
	Modify        Technique = "Modify"
	PutToOtherUse Technique = "Put to other use"
	Eliminate     Technique = "Eliminate"
	Reverse       Technique = "Reverse"
)

// Techniques lists the seven techniques in S-C-A-M-P-E-R order.
var Techniques = []Technique{Substitute, Combine, Adapt, Modify, PutToOtherUse, Eliminate, Reverse}

// Guide is the static reference text for a technique.
type Guide struct {
	NativeName     string   `json:"native_name"`
	Description    string   `json:"description"`
	GuideQuestions []string `json:"guide_questions"`
}

var guides = map[Technique]Guide{
	Substitute: {
		NativeName:  "代替",
		Description: "Replace something with something else",
		GuideQuestions: []string{
			"What could be replaced with something else?",
			"Which materials or components could be substituted?",
			"Could it happen in another place or at another time?",
		},
	},
	Combine: {
		NativeName:  "結合",
		Description: "Combine different elements",
		GuideQuestions: []string{
			"Which elements could be combined?",
			"Which processes could be merged?",
			"Which functions could be bundled into one?",
		},
	},
	Adapt: {
		NativeName:  "応用",
		Description: "Apply ideas from elsewhere",
		GuideQuestions: []string{
			"How are similar problems solved in other fields?",
			"Is there anything to learn from nature?",
			"Can past successes serve as a reference?",
		},
	},
	Modify: {
		NativeName:  "変更",
		Description: "Change shape or attributes",
		GuideQuestions: []string{
			"What could be made bigger or smaller?",
			"What could be emphasised or toned down?",
			"Could the shape or colour change?",
		},
	},
	PutToOtherUse: {
		NativeName:  "転用",
		Description: "Put it to another use",
		GuideQuestions: []string{
			"What other uses does it have?",
			"Can by-products be put to use?",
			"Could it serve a different market?",
		},
	},
	Eliminate: {
		NativeName:  "除去",
		Description: "Remove what is unnecessary",
		GuideQuestions: []string{
			"What could be deleted or removed?",
			"Which functions could be simplified?",
			"Which steps could be skipped?",
		},
	},
	Reverse: {
		NativeName:  "逆転",
		Description: "Reverse order or roles",
		GuideQuestions: []string{
			"Could the order be reversed?",
			"Could roles be swapped?",
			"What does it look like from the opposite viewpoint?",
		},
	},
}

// overview describes every technique for session openers.
var overview = map[Technique]string{
	Substitute:    "Consider whether replacing something with something else improves it",
	Combine:       "Consider whether combining different elements creates new value",
	Adapt:         "Consider whether ideas from other fields can be applied",
	Modify:        "Consider whether changing shape, size or strength improves it",
	PutToOtherUse: "Consider whether it can serve another use or purpose",
	Eliminate:     "Consider whether removing parts simplifies it",
	Reverse:       "Consider whether reversing order or roles gives a new perspective",
}

// techniqueNames maps every accepted spelling to its technique.
var techniqueNames = buildTechniqueNames()

func buildTechniqueNames() map[string]Technique {
	m := make(map[string]Technique)
	for _, t := range Techniques {
		lower := strings.ToLower(string(t))
		m[string(t)] = t
		m[lower] = t
		m[strings.ReplaceAll(lower, " ", "_")] = t
		m[guides[t].NativeName] = t
	}
	return m
}

// ParseTechnique normalises a technique name. The lowercase form is tried
// first, then the name as given.
func ParseTechnique(name string) (Technique, bool) {
	if t, ok := techniqueNames[strings.ToLower(name)]; ok {
		return t, true
	}
	t, ok := techniqueNames[name]
	return t, ok
}

// GuideFor returns the static guide of t.
func GuideFor(t Technique) Guide {
	g := guides[t]
	g.GuideQuestions = append([]string(nil), g.GuideQuestions...)
	return g
}

func validTechniqueNames() string {
	names := make([]string, len(Techniques))
	for i, t := range Techniques {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
