package actionitems

import (
	"regexp"
	"slices"

	"github.com/johnquangdev/meeting-actions/pkg/datetime"
)

// DeadlineKind identifies which rule produced a deadline
type DeadlineKind string

const (
	DeadlineRelative    DeadlineKind = "relative"
	DeadlineNumericDate DeadlineKind = "numeric_date"
	DeadlineClockTime   DeadlineKind = "clock_time"
	DeadlineNextWeekday DeadlineKind = "next_weekday"
	DeadlineWeekday     DeadlineKind = "weekday"
	// DeadlineSentence means no pattern matched and the whole sentence parsed as a date
	DeadlineSentence DeadlineKind = "sentence"
	DeadlineNone     DeadlineKind = "none"
)

// DeadlinePattern is one row of a deadline table. The first capture group is the
// fragment handed to the date parser.
type DeadlinePattern struct {
	Kind    DeadlineKind
	Pattern *regexp.Regexp
}

const weekdays = `monday|tuesday|wednesday|thursday|friday|saturday|sunday`

// KeywordDeadlinePatterns is the deadline table of the keyword strategy, in priority order.
var KeywordDeadlinePatterns = []DeadlinePattern{
	{DeadlineRelative, regexp.MustCompile(`(?i)\bby\s+(tomorrow|today|this week|next week|this weekend|end of week|end of month|EOD|end of day)\b`)},
	{DeadlineNumericDate, regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?)\b`)},
	{DeadlineClockTime, regexp.MustCompile(`(?i)\b(\d{1,2}(?:am|pm))\b`)},
	{DeadlineNextWeekday, regexp.MustCompile(`(?i)\b(next\s+(?:` + weekdays + `))\b`)},
}

// SyntacticDeadlinePatterns extends the keyword table with bare weekday names.
var SyntacticDeadlinePatterns = append(slices.Clone(KeywordDeadlinePatterns),
	DeadlinePattern{DeadlineWeekday, regexp.MustCompile(`(?i)\b(` + weekdays + `)\b`)},
)

// Deadline is a matched deadline
type Deadline struct {
	// Value is an RFC 3339 timestamp, or the raw fragment when it could not be parsed
	Value    string
	Kind     DeadlineKind
	Fragment string
}

// DeadlineMatcher finds deadlines using an ordered pattern table
type DeadlineMatcher struct {
	patterns []DeadlinePattern
	parser   datetime.Parser
}

// NewDeadlineMatcher creates a matcher over patterns. A nil parser keeps raw fragments
// and disables the whole-sentence fallback.
func NewDeadlineMatcher(patterns []DeadlinePattern, parser datetime.Parser) *DeadlineMatcher {
	return &DeadlineMatcher{patterns: patterns, parser: parser}
}

// Match returns the deadline of sentence. The first matching pattern wins.
func (m *DeadlineMatcher) Match(sentence string) (Deadline, bool) {
	for _, p := range m.patterns {
		sub := p.Pattern.FindStringSubmatch(sentence)
		if len(sub) < 2 || sub[1] == "" {
			continue
		}
		d := Deadline{Value: sub[1], Kind: p.Kind, Fragment: sub[1]}
		if t, ok := m.parse(sub[1]); ok {
			d.Value = t
		}
		return d, true
	}

	if t, ok := m.parse(sentence); ok {
		return Deadline{Value: t, Kind: DeadlineSentence, Fragment: sentence}, true
	}
	return Deadline{Kind: DeadlineNone}, false
}

func (m *DeadlineMatcher) parse(text string) (string, bool) {
	if m.parser == nil {
		return "", false
	}
	t, err := m.parser.Parse(text)
	if err != nil {
		return "", false
	}
	return datetime.Format(t), true
}
