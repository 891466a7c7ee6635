package actionitems

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineMatcher_PatternTable(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		kind     DeadlineKind
		fragment string
	}{
		{name: "relative", sentence: "Send it by tomorrow.", kind: DeadlineRelative, fragment: "tomorrow"},
		{name: "relative multiword", sentence: "Wrap up by end of month please.", kind: DeadlineRelative, fragment: "end of month"},
		{name: "relative upper case", sentence: "Ship BY EOD.", kind: DeadlineRelative, fragment: "EOD"},
		{name: "numeric date", sentence: "Invoices are due 12/10.", kind: DeadlineNumericDate, fragment: "12/10"},
		{name: "numeric date with year", sentence: "Kickoff on 3-4-2027 confirmed.", kind: DeadlineNumericDate, fragment: "3-4-2027"},
		{name: "clock time", sentence: "Call the vendor at 5PM.", kind: DeadlineClockTime, fragment: "5PM"},
		{name: "next weekday", sentence: "Demo next Tuesday.", kind: DeadlineNextWeekday, fragment: "next Tuesday"},
		{name: "relative beats numeric", sentence: "Finish it by tomorrow, not 12/10.", kind: DeadlineRelative, fragment: "tomorrow"},
		{name: "numeric beats clock", sentence: "Move 10/11 meeting to 3pm.", kind: DeadlineNumericDate, fragment: "10/11"},
		{name: "clock beats next weekday", sentence: "Next Monday at 9am works.", kind: DeadlineClockTime, fragment: "9am"},
	}

	m := NewDeadlineMatcher(KeywordDeadlinePatterns, noDates{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := m.Match(tt.sentence)
			require.True(t, ok)
			assert.Equal(t, tt.kind, d.Kind)
			assert.Equal(t, tt.fragment, d.Fragment)
			// unparsed fragments are kept verbatim
			assert.Equal(t, tt.fragment, d.Value)
		})
	}
}

func TestDeadlineMatcher_BareWeekdayOnlyInSyntacticTable(t *testing.T) {
	const sentence = "Alice to prepare the slides by Friday."

	d, ok := NewDeadlineMatcher(SyntacticDeadlinePatterns, noDates{}).Match(sentence)
	require.True(t, ok)
	assert.Equal(t, DeadlineWeekday, d.Kind)
	assert.Equal(t, "Friday", d.Value)

	_, ok = NewDeadlineMatcher(KeywordDeadlinePatterns, noDates{}).Match(sentence)
	assert.False(t, ok)
}

func TestDeadlineMatcher_Normalizes(t *testing.T) {
	m := NewDeadlineMatcher(KeywordDeadlinePatterns, realDates())

	d, ok := m.Match("Send it by tomorrow.")
	require.True(t, ok)
	assert.Equal(t, DeadlineRelative, d.Kind)
	got, err := time.Parse(time.RFC3339, d.Value)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Day())

	d, ok = m.Match("John Carter will finalize the deck by 5pm")
	require.True(t, ok)
	assert.Equal(t, DeadlineClockTime, d.Kind)
	got, err = time.Parse(time.RFC3339, d.Value)
	require.NoError(t, err)
	assert.Equal(t, 17, got.Hour())
}

func TestDeadlineMatcher_NumericDatesAreMonthFirst(t *testing.T) {
	tests := []struct {
		sentence string
		want     string
	}{
		{sentence: "Invoices are due 12/10.", want: "2026-12-10T00:00:00Z"},
		{sentence: "Kickoff on 3-4-2027 confirmed.", want: "2027-03-04T00:00:00Z"},
		{sentence: "Renewal lands 3/4/27 at the latest.", want: "2027-03-04T00:00:00Z"},
	}

	m := NewDeadlineMatcher(KeywordDeadlinePatterns, realDates())
	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			d, ok := m.Match(tt.sentence)
			require.True(t, ok)
			assert.Equal(t, DeadlineNumericDate, d.Kind)
			assert.Equal(t, tt.want, d.Value)
		})
	}
}

func TestDeadlineMatcher_RawFragmentWhenUnparseable(t *testing.T) {
	d, ok := NewDeadlineMatcher(KeywordDeadlinePatterns, realDates()).Match("Close the books by EOD.")
	require.True(t, ok)
	assert.Equal(t, DeadlineRelative, d.Kind)
	assert.Equal(t, "EOD", d.Value)
}

func TestDeadlineMatcher_SentenceFallback(t *testing.T) {
	m := NewDeadlineMatcher(KeywordDeadlinePatterns, realDates())

	d, ok := m.Match("Alice to prepare the slides by Friday.")
	require.True(t, ok)
	assert.Equal(t, DeadlineSentence, d.Kind)
	got, err := time.Parse(time.RFC3339, d.Value)
	require.NoError(t, err)
	assert.Equal(t, time.Friday, got.Weekday())

	d, ok = m.Match("Please review the quarterly roadmap.")
	assert.False(t, ok)
	assert.Equal(t, DeadlineNone, d.Kind)
	assert.Empty(t, d.Value)
}

func TestDeadlineMatcher_NilParser(t *testing.T) {
	m := NewDeadlineMatcher(KeywordDeadlinePatterns, nil)

	d, ok := m.Match("Send it by tomorrow.")
	require.True(t, ok)
	assert.Equal(t, "tomorrow", d.Value)

	_, ok = m.Match("Alice to prepare the slides by Friday.")
	assert.False(t, ok)
}
