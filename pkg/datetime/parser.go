// Package datetime turns loose natural-language date expressions into absolute times.
package datetime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// ErrUnparseable is returned when no date or time could be recognised in the text.
var ErrUnparseable = errors.New("no date found")

// Parser converts text into an absolute timestamp.
type Parser interface {
	Parse(text string) (time.Time, error)
}

// Clock returns the reference time relative expressions are resolved against
type Clock func() time.Time

// numericDate is a month-first date with an optional year: 12/10, 3-4-2027, 3/4/27.
var numericDate = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2}|\d{4}))?$`)

// NaturalParser resolves relative English expressions ("tomorrow", "next friday",
// "5pm") first and falls back to absolute formats ("2025-03-14", "March 14 2025").
// Numeric dates are always read month first; a missing year is the current one.
type NaturalParser struct {
	when *when.Parser
	now  Clock
	loc  *time.Location
}

// NewNaturalParser creates a parser resolving against clock in loc. A nil clock
// uses time.Now and a nil location uses UTC.
func NewNaturalParser(clock Clock, loc *time.Location) *NaturalParser {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}

	w := when.New(nil)
	w.Add(en.All...)

	return &NaturalParser{when: w, now: clock, loc: loc}
}

// Parse finds the first date expression in text.
func (p *NaturalParser) Parse(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, ErrUnparseable
	}

	base := p.now().In(p.loc)
	if m := numericDate.FindStringSubmatch(text); m != nil {
		return p.parseNumeric(m, base)
	}

	if res, err := p.when.Parse(text, base); err == nil && res != nil {
		return res.Time.In(p.loc), nil
	}

	t, err := dateparse.ParseIn(text, p.loc, dateparse.PreferMonthFirst(true))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, text)
	}
	return t, nil
}

func (p *NaturalParser) parseNumeric(m []string, base time.Time) (time.Time, error) {
	year := m[3]
	if year == "" {
		year = strconv.Itoa(base.Year())
	}
	normalized := m[1] + "/" + m[2] + "/" + year

	t, err := dateparse.ParseIn(normalized, p.loc, dateparse.PreferMonthFirst(true))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, m[0])
	}
	return t, nil
}

// Format renders a parsed deadline the way it is stored on an action item.
func Format(t time.Time) string {
	return t.Format(time.RFC3339)
}
