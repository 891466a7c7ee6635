package actionitems

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-actions/pkg/nlp"
)

func TestKeywordDetector(t *testing.T) {
	tests := []struct {
		sentence string
		want     bool
	}{
		{"Action: update the roadmap.", true},
		{"TODO clean the backlog", true},
		{"Please review the PR.", true},
		{"Let's sync on Monday.", true},
		{"We need to hire.", true},
		{"Bob will follow-up with legal.", true},
		{"The deadline moved.", true},
		{"Done by noon.", true},
		{"That was a great demo.", false},
		{"Thanks everyone.", false},
		{"", false},
	}

	d := KeywordDetector{}
	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			a, ok := d.Detect(context.Background(), tt.sentence)
			assert.Equal(t, tt.want, ok)
			if ok {
				assert.Equal(t, tt.sentence, a.Task)
				assert.Equal(t, tt.sentence, a.Sentence)
				assert.Nil(t, a.Parse)
			}
		})
	}
}

var (
	sendSentence = "Please send the report to Bob."
	sendParse    = &nlp.Parse{
		Text: sendSentence,
		Tokens: []nlp.Token{
			tok(0, "Please", "INTJ", "please", "intj", 1),
			tok(1, "send", "VERB", "send", "ROOT", 1),
			tok(2, "the", "DET", "the", "det", 3),
			tok(3, "report", "NOUN", "report", "dobj", 1),
			tok(4, "to", "ADP", "to", "prep", 1),
			tok(5, "Bob", "PROPN", "Bob", "pobj", 4),
			tok(6, ".", "PUNCT", ".", "punct", 1),
		},
		Entities: []nlp.Entity{{Text: "Bob", Label: nlp.LabelPerson}},
	}

	bookSentence = "Book it."
	bookParse    = &nlp.Parse{
		Text: bookSentence,
		Tokens: []nlp.Token{
			tok(0, "Book", "VERB", "book", "ROOT", 0),
			tok(1, "it", "PRON", "it", "dobj", 0),
			tok(2, ".", "PUNCT", ".", "punct", 0),
		},
	}

	musingSentence = "The weather was nice."
	musingParse    = &nlp.Parse{
		Text: musingSentence,
		Tokens: []nlp.Token{
			tok(0, "The", "DET", "the", "det", 1),
			tok(1, "weather", "NOUN", "weather", "nsubj", 2),
			tok(2, "was", "AUX", "be", "ROOT", 2),
			tok(3, "nice", "ADJ", "nice", "acomp", 2),
			tok(4, ".", "PUNCT", ".", "punct", 2),
		},
	}

	dueSentence = "Report due soon."
	dueParse    = &nlp.Parse{
		Text: dueSentence,
		Tokens: []nlp.Token{
			tok(0, "Report", "NOUN", "report", "nsubj", 1),
			tok(1, "due", "ADJ", "due", "ROOT", 1),
			tok(2, "soon", "ADV", "soon", "advmod", 1),
			tok(3, ".", "PUNCT", ".", "punct", 1),
		},
	}

	requestSentence = "Please, we need someone to look into the flaky build."
	requestParse    = &nlp.Parse{
		Text: requestSentence,
		Tokens: []nlp.Token{
			tok(0, "Please", "INTJ", "please", "intj", 3),
			tok(1, ",", "PUNCT", ",", "punct", 3),
			tok(2, "we", "PRON", "we", "nsubj", 3),
			tok(3, "need", "VERB", "need", "ROOT", 3),
			tok(4, "someone", "PRON", "someone", "dobj", 3),
			tok(5, "to", "PART", "to", "aux", 6),
			tok(6, "look", "VERB", "look", "xcomp", 3),
			tok(7, "into", "ADP", "into", "prep", 6),
			tok(8, "the", "DET", "the", "det", 10),
			tok(9, "flaky", "ADJ", "flaky", "amod", 10),
			tok(10, "build", "NOUN", "build", "pobj", 7),
			tok(11, ".", "PUNCT", ".", "punct", 3),
		},
	}
)

func TestSyntacticDetector(t *testing.T) {
	d := NewSyntacticDetector(parserHandle(parses(map[string]*nlp.Parse{
		sendSentence:    sendParse,
		bookSentence:    bookParse,
		musingSentence:  musingParse,
		dueSentence:     dueParse,
		requestSentence: requestParse,
	})), nil)
	ctx := context.Background()

	t.Run("assignment verb subtree becomes the task", func(t *testing.T) {
		a, ok := d.Detect(ctx, sendSentence)
		require.True(t, ok)
		assert.Equal(t, "Please send the report to Bob .", a.Task)
		assert.Same(t, sendParse, a.Parse)
	})

	t.Run("short subtree keeps the sentence", func(t *testing.T) {
		a, ok := d.Detect(ctx, bookSentence)
		require.True(t, ok)
		assert.Equal(t, bookSentence, a.Task)
	})

	t.Run("request phrase takes the first verb", func(t *testing.T) {
		a, ok := d.Detect(ctx, requestSentence)
		require.True(t, ok)
		assert.Equal(t, "Please , we need someone to look into the flaky build .", a.Task)
	})

	t.Run("task keyword without qualifying verb", func(t *testing.T) {
		a, ok := d.Detect(ctx, dueSentence)
		require.True(t, ok)
		assert.Equal(t, dueSentence, a.Task)
	})

	t.Run("no verb and no keyword", func(t *testing.T) {
		_, ok := d.Detect(ctx, musingSentence)
		assert.False(t, ok)
	})

	t.Run("parse failure falls back to keywords", func(t *testing.T) {
		a, ok := d.Detect(ctx, "Bob will handle it.")
		require.True(t, ok)
		assert.Nil(t, a.Parse)
		assert.Equal(t, "Bob will handle it.", a.Task)

		_, ok = d.Detect(ctx, "Nice weather.")
		assert.False(t, ok)
	})
}

func TestSyntacticDetector_SubtreeLengthCountsCharacters(t *testing.T) {
	const sentence = "Book Zoë."
	parse := &nlp.Parse{
		Text: sentence,
		Tokens: []nlp.Token{
			tok(0, "Book", "VERB", "book", "ROOT", 0),
			tok(1, "Zoë", "PROPN", "Zoë", "dobj", 0),
			tok(2, ".", "PUNCT", ".", "punct", 0),
		},
	}
	d := NewSyntacticDetector(parserHandle(parses(map[string]*nlp.Parse{sentence: parse})), nil)

	// "Book Zoë ." is ten characters but eleven bytes
	a, ok := d.Detect(context.Background(), sentence)
	require.True(t, ok)
	assert.Equal(t, sentence, a.Task)
}

func TestSyntacticDetector_DisabledParser(t *testing.T) {
	d := NewSyntacticDetector(nlp.NewDisabledHandle[nlp.DependencyParser](CapabilityParser), nil)

	a, ok := d.Detect(context.Background(), "Todo: rotate the keys.")
	require.True(t, ok)
	assert.Nil(t, a.Parse)
}
