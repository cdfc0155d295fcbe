package mshell

import (
	"fmt"
	"strings"
)

// Element is one of the six m-SHELL components.
type Element string

const (
	Machine         Element = "Machine"
	Software        Element = "Software"
	Hardware        Element = "Hardware"
	Environment     Element = "Environment"
	LivewareCentral Element = "Liveware-Central"
	LivewareOther   Element = "Liveware-Other"
)

// Elements lists the components in canonical order.
var Elements = []Element{Machine, Software, Hardware, Environment, LivewareCentral, LivewareOther}

var elementDescriptions = map[Element]string{
	Machine:         "Machines, equipment and devices (the physical core of the system)",
	Software:        "Software, procedures and rules (the logical side of the system)",
	Hardware:        "Hardware, physical surroundings and interfaces (the physical boundary of the system)",
	Environment:     "Environment, conditions and context (the situation around the system)",
	LivewareCentral: "The central person or main operator (the human core of the system)",
	LivewareOther:   "Others, the team and the organisation (the people around the central person)",
}

var elementNativeNames = map[Element]string{
	Machine:         "機械・設備",
	Software:        "ソフトウェア・手順",
	Hardware:        "ハードウェア・物理環境",
	Environment:     "環境・条件",
	LivewareCentral: "中心人物・主要オペレーター",
	LivewareOther:   "他者・チーム・組織",
}

// DescribeElements returns every element with its names and description.
func DescribeElements() []ElementDescription {
	descs := make([]ElementDescription, 0, len(Elements))
	for _, e := range Elements {
		descs = append(descs, ElementDescription{
			Element:     e,
			NativeName:  elementNativeNames[e],
			Description: elementDescriptions[e],
		})
	}
	return descs
}

// ParseElement accepts an element name case-insensitively or its native
// (Japanese) name.
func ParseElement(name string) (Element, bool) {
	for _, e := range Elements {
		if strings.EqualFold(name, string(e)) || name == elementNativeNames[e] {
			return e, true
		}
	}
	return "", false
}

func validElementNames() string {
	names := make([]string, len(Elements))
	for i, e := range Elements {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}

// CheckGroup is a named list of checks for an element.
type CheckGroup struct {
	Group  string   `json:"group"`
	Checks []string `json:"checks"`
}

var elementChecklists = map[Element][]CheckGroup{
	Machine: {
		{"Design and function", []string{
			"Is the equipment designed for its intended use?",
			"Are the required functions implemented properly?",
			"Is behaviour under abnormal conditions predictable?",
		}},
		{"Reliability and maintainability", []string{
			"Is the failure rate acceptable?",
			"Can maintenance and inspection be done easily?",
			"Can parts be replaced quickly?",
		}},
		{"Operability", []string{
			"Is operation intuitive and easy to understand?",
			"Are there mechanisms that prevent errors?",
			"Is emergency operation easy?",
		}},
	},
	Software: {
		{"Procedures and processes", []string{
			"Are work procedures clearly defined?",
			"Are procedures for exceptions in place?",
			"Are the manuals kept up to date?",
		}},
		{"Programs and systems", []string{
			"Does the software behave as specified?",
			"Is the user interface easy to use?",
			"Is data consistency maintained?",
		}},
		{"Rules and standards", []string{
			"Does it comply with relevant laws and regulations?",
			"Are internal rules properly maintained?",
			"Does it meet industry standards?",
		}},
	},
	Hardware: {
		{"Physical surroundings", []string{
			"Is there enough working space?",
			"Are lighting and temperature properly controlled?",
			"Is the noise level acceptable?",
		}},
		{"Interfaces", []string{
			"Are control panels laid out legibly?",
			"Are displays easy to read?",
			"Are the controls arranged for ease of use?",
		}},
		{"Safety equipment", []string{
			"Are safety devices properly placed?",
			"Are emergency stops easy to reach?",
			"Does protective equipment work adequately?",
		}},
	},
	Environment: {
		{"Working environment", []string{
			"Are temperature and humidity comfortable?",
			"Is ventilation sufficient?",
			"Is there no effect from vibration or shock?",
		}},
		{"Organisational environment", []string{
			"Does the organisational culture put safety first?",
			"Is it easy to report and ask for advice?",
			"Is there a mechanism for continuous improvement?",
		}},
		{"External environment", []string{
			"Are weather conditions taken into account?",
			"Is there no influence from nearby facilities?",
			"Are legal and social constraints understood?",
		}},
	},
	LivewareCentral: {
		{"Knowledge and skills", []string{
			"Have the required knowledge and skills been acquired?",
			"Is experience put to good use?",
			"Is there continuous learning and improvement?",
		}},
		{"Physical and mental state", []string{
			"Is the person in good health?",
			"Are fatigue and stress managed?",
			"Is motivation maintained?",
		}},
		{"Judgement and decisions", []string{
			"Can the situation be judged appropriately?",
			"Are priorities set sensibly?",
			"Are risks recognised and assessed properly?",
		}},
	},
	LivewareOther: {
		{"Team and cooperation", []string{
			"Does communication within the team flow smoothly?",
			"Are roles clearly defined?",
			"Is there a mechanism for mutual support?",
		}},
		{"Organisation and management", []string{
			"Is the management structure appropriate?",
			"Is information shared effectively?",
			"Is the decision process fast?",
		}},
		{"External parties", []string{
			"Is cooperation with related bodies good?",
			"Are relations with customers and users appropriate?",
			"Is coordination with partner companies smooth?",
		}},
	},
}

func checklistFor(e Element) []CheckGroup {
	src := elementChecklists[e]
	out := make([]CheckGroup, len(src))
	for i, g := range src {
		out[i] = CheckGroup{Group: g.Group, Checks: append([]string(nil), g.Checks...)}
	}
	return out
}

type pair [2]Element

var interfaceChecklists = map[pair][]string{
	{Machine, Software}: {
		"Does the machine control software work properly?",
		"Is the feedback from the machine accurate?",
		"Is the effect of software updates on the machine verified?",
	},
	{Machine, Hardware}: {
		"Are the machine and its control panel positioned sensibly?",
		"Do displays and alarms reflect the machine state accurately?",
		"Are physical connections and wiring sound?",
	},
	{Machine, Environment}: {
		"Do environmental conditions leave machine performance unaffected?",
		"Do heat, noise or vibration from the machine harm the environment?",
		"Is there space for cleaning and maintenance?",
	},
	{Machine, LivewareCentral}: {
		"Does the operator know how to run the machine?",
		"Can machine faults be recognised correctly?",
		"Are emergency procedures second nature?",
	},
	{Machine, LivewareOther}: {
		"Is cooperation with maintenance staff smooth?",
		"Is machine information shared properly?",
		"Are shift handover notes clear?",
	},
	{Software, Hardware}: {
		"Are software and hardware compatible?",
		"Is the mapping between screen and physical controls clear?",
		"Are input devices responsive enough?",
	},
	{Software, Environment}: {
		"Do environmental changes leave software behaviour unaffected?",
		"Is the network environment stable?",
		"Is a data backup environment in place?",
	},
	{Software, LivewareCentral}: {
		"Is the user interface intuitive?",
		"Are error messages easy to understand?",
		"Are operating steps logically designed?",
	},
	{Software, LivewareOther}: {
		"Is information shared properly between users?",
		"Are access rights managed properly?",
		"Is collaborative work well supported?",
	},
	{Hardware, Environment}: {
		"Does the hardware withstand the environmental conditions?",
		"Are the physical constraints of the site considered?",
		"Is there an access route for maintenance?",
	},
	{Hardware, LivewareCentral}: {
		"Are operability and visibility considered?",
		"Is the design ergonomic?",
		"Are there measures against fatigue during long use?",
	},
	{Hardware, LivewareOther}: {
		"Are the rules for shared equipment clear?",
		"Is maintenance and inspection work safe?",
		"Are rights to change equipment settings managed?",
	},
	{Environment, LivewareCentral}: {
		"Does the environment allow sustained concentration?",
		"Are health and safety sufficiently considered?",
		"Are there measures that reduce stress?",
	},
	{Environment, LivewareOther}: {
		"Does the environment encourage communication?",
		"Does the physical layout support teamwork?",
		"Is the organisational culture cooperative?",
	},
	{LivewareCentral, LivewareOther}: {
		"Are roles clear and appropriate?",
		"Do information sharing and reporting work?",
		"Is there mutual support and backup?",
	},
}

// interfaceChecklist returns the checks for a pair in either order, or a
// generic list for pairs without a dedicated one.
func interfaceChecklist(a, b Element) []string {
	if c, ok := interfaceChecklists[pair{a, b}]; ok {
		return append([]string(nil), c...)
	}
	if c, ok := interfaceChecklists[pair{b, a}]; ok {
		return append([]string(nil), c...)
	}
	return []string{
		fmt.Sprintf("Analyse the interaction between %s and %s", a, b),
		"Evaluate the interface quality",
		"Identify improvements",
	}
}
