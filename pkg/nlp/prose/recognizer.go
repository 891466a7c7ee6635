// Package prose provides an in-process entity recognizer.
package prose

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/johnquangdev/meeting-actions/pkg/nlp"
)

// prose does not report confidences
const defaultScore = 1.0

// Recognizer tags entities with the averaged perceptron model bundled with prose.
type Recognizer struct{}

// Load initialises the bundled model by analysing a probe sentence
func Load(ctx context.Context) (nlp.Recognizer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := prose.NewDocument("Alice will send the report.", prose.WithSegmentation(false)); err != nil {
		return nil, fmt.Errorf("prose model: %w", err)
	}
	return &Recognizer{}, nil
}

// Recognize implements nlp.Recognizer
func (r *Recognizer) Recognize(ctx context.Context, sentence string) ([]nlp.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(sentence, prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}

	found := doc.Entities()
	ents := make([]nlp.Entity, 0, len(found))
	for _, e := range found {
		ents = append(ents, nlp.Entity{
			Text:  strings.TrimSpace(e.Text),
			Label: label(e.Label),
			Score: defaultScore,
		})
	}
	return ents, nil
}

func label(l string) nlp.Label {
	switch l {
	case "PERSON":
		return nlp.LabelPerson
	case "ORG", "ORGANIZATION":
		return nlp.LabelOrganization
	case "GPE", "LOC", "LOCATION":
		return nlp.LabelLocation
	default:
		return nlp.Label(l)
	}
}
