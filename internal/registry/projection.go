package registry

import (
	"math"
	"time"
	"unicode/utf8"
)

// TimeLayout is the timestamp format used in every projection.
const TimeLayout = "2006-01-02 15:04:05"

// listLabelWidth is the maximum rune length of a label shown in listings.
const listLabelWidth = 30

// ListLabel shortens s for list views: anything longer than 30 runes is
// cut to 27 runes followed by "...".
func ListLabel(s string) string {
	if utf8.RuneCountInString(s) <= listLabelWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:listLabelWidth-3]) + "..."
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Stamp formats t with TimeLayout.
func Stamp(t time.Time) string {
	return t.Format(TimeLayout)
}
