// Package nlp defines the language capabilities the extraction pipeline depends on
// and the lazily loaded handles that own them.
package nlp

import (
	"context"
	"errors"
	"strings"
)

// ErrModelDisabled is returned by a handle whose single load attempt failed.
var ErrModelDisabled = errors.New("nlp model disabled")

// Label is an entity category as reported by a recognizer
type Label string

const (
	LabelPerson       Label = "PERSON"
	LabelOrganization Label = "ORG"
	LabelMisc         Label = "MISC"
	LabelLocation     Label = "LOC"
)

// Entity is a recognized span of text
type Entity struct {
	Text  string  `json:"text"`
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

// Recognizer finds named entities in a single sentence.
type Recognizer interface {
	Recognize(ctx context.Context, sentence string) ([]Entity, error)
}

// Token is one word of a dependency parse. Head is the index of the governing
// token; the root token points at itself.
type Token struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	POS   string `json:"pos"`
	Lemma string `json:"lemma"`
	Dep   string `json:"dep"`
	Head  int    `json:"head"`
}

// IsVerb reports whether the token is a verb or the root of the sentence.
func (t Token) IsVerb() bool {
	return t.POS == "VERB" || strings.EqualFold(t.Dep, "ROOT")
}

// Parse is the dependency analysis of one sentence
type Parse struct {
	Text     string   `json:"text"`
	Tokens   []Token  `json:"tokens"`
	Entities []Entity `json:"entities"`
}

// DependencyParser analyses a single sentence syntactically.
type DependencyParser interface {
	Parse(ctx context.Context, sentence string) (*Parse, error)
}

// Verbs returns the verb and root tokens in sentence order.
func (p *Parse) Verbs() []Token {
	if p == nil {
		return nil
	}
	verbs := make([]Token, 0, 2)
	for _, tok := range p.Tokens {
		if tok.IsVerb() {
			verbs = append(verbs, tok)
		}
	}
	return verbs
}

// Subtree returns the tokens dominated by the token at index i (itself included),
// in sentence order.
func (p *Parse) Subtree(i int) []Token {
	if p == nil || i < 0 || i >= len(p.Tokens) {
		return nil
	}

	out := make([]Token, 0, len(p.Tokens))
	for j := range p.Tokens {
		if p.dominates(i, j) {
			out = append(out, p.Tokens[j])
		}
	}
	return out
}

// SubtreeText joins the subtree of token i with single spaces.
func (p *Parse) SubtreeText(i int) string {
	tokens := p.Subtree(i)
	words := make([]string, len(tokens))
	for k, tok := range tokens {
		words[k] = tok.Text
	}
	return strings.Join(words, " ")
}

// dominates walks the head chain from j upward looking for i. The walk is bounded
// by the token count so malformed (cyclic) head data terminates.
func (p *Parse) dominates(i, j int) bool {
	cur := j
	for steps := 0; steps <= len(p.Tokens); steps++ {
		if cur == i {
			return true
		}
		head := p.Tokens[cur].Head
		if head == cur || head < 0 || head >= len(p.Tokens) {
			return false
		}
		cur = head
	}
	return false
}
