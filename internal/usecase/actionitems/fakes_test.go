package actionitems

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-actions/pkg/datetime"
	"github.com/johnquangdev/meeting-actions/pkg/nlp"
)

// Wednesday 14 October 2026, 09:30 UTC
var base = time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return base }

func realDates() datetime.Parser {
	return datetime.NewNaturalParser(fixedClock, time.UTC)
}

// noDates never parses anything, so deadlines stay raw fragments
type noDates struct{}

func (noDates) Parse(string) (time.Time, error) { return time.Time{}, datetime.ErrUnparseable }

type recognizerFunc func(ctx context.Context, sentence string) ([]nlp.Entity, error)

func (f recognizerFunc) Recognize(ctx context.Context, sentence string) ([]nlp.Entity, error) {
	return f(ctx, sentence)
}

type parserFunc func(ctx context.Context, sentence string) (*nlp.Parse, error)

func (f parserFunc) Parse(ctx context.Context, sentence string) (*nlp.Parse, error) {
	return f(ctx, sentence)
}

func recognizerHandle(f recognizerFunc) *nlp.Handle[nlp.Recognizer] {
	return nlp.NewHandle(CapabilityNER, func(context.Context) (nlp.Recognizer, error) {
		return f, nil
	})
}

func parserHandle(f parserFunc) *nlp.Handle[nlp.DependencyParser] {
	return nlp.NewHandle(CapabilityParser, func(context.Context) (nlp.DependencyParser, error) {
		return f, nil
	})
}

func disabledNER() *nlp.Handle[nlp.Recognizer] {
	return nlp.NewDisabledHandle[nlp.Recognizer](CapabilityNER)
}

func failingNER() *nlp.Handle[nlp.Recognizer] {
	return nlp.NewHandle(CapabilityNER, func(context.Context) (nlp.Recognizer, error) {
		return nil, errors.New("weights not found")
	})
}

// personsIn tags every listed name that appears in the sentence as PERSON
func personsIn(names ...string) recognizerFunc {
	return func(_ context.Context, sentence string) ([]nlp.Entity, error) {
		var ents []nlp.Entity
		for _, n := range names {
			if strings.Contains(sentence, n) {
				ents = append(ents, nlp.Entity{Text: n, Label: nlp.LabelPerson, Score: 0.99})
			}
		}
		return ents, nil
	}
}

// tok builds a token; head is the index of the governing token
func tok(i int, text, pos, lemma, dep string, head int) nlp.Token {
	return nlp.Token{Index: i, Text: text, POS: pos, Lemma: lemma, Dep: dep, Head: head}
}

// parses serves canned parses by sentence
func parses(known map[string]*nlp.Parse) parserFunc {
	return func(_ context.Context, sentence string) (*nlp.Parse, error) {
		if p, ok := known[sentence]; ok {
			return p, nil
		}
		return nil, errors.New("no parse")
	}
}
