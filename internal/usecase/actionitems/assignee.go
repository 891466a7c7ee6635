package actionitems

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-actions/pkg/fuzzy"
	"github.com/johnquangdev/meeting-actions/pkg/nlp"
)

// Tier names
const (
	TierNER     = "ner"
	TierRegex   = "regex"
	TierPattern = "pattern"
	TierNone    = "none"
)

// DefaultRosterThreshold is the fuzzy score a roster name must exceed to replace a candidate
const DefaultRosterThreshold = 65

// AssigneeTier is one step of the assignee fallback chain.
type AssigneeTier interface {
	Name() string
	Resolve(ctx context.Context, a Analysis) (string, bool)
}

// NERTier takes the first person, organization or misc entity of the sentence.
// It uses the sentence's parse when there is one and the recognizer otherwise.
type NERTier struct {
	recognizer *nlp.Handle[nlp.Recognizer]
	logger     *zap.Logger
}

// NewNERTier creates the entity tier
func NewNERTier(recognizer *nlp.Handle[nlp.Recognizer], logger *zap.Logger) *NERTier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NERTier{recognizer: recognizer, logger: logger}
}

func (t *NERTier) Name() string { return TierNER }

// Resolve implements AssigneeTier
func (t *NERTier) Resolve(ctx context.Context, a Analysis) (string, bool) {
	var ents []nlp.Entity
	fromParse := a.Parse != nil
	switch {
	case fromParse:
		ents = a.Parse.Entities
	case t.recognizer != nil:
		var err error
		ents, err = nlp.Infer(ctx, t.recognizer, func(ctx context.Context, r nlp.Recognizer) ([]nlp.Entity, error) {
			return r.Recognize(ctx, a.Sentence)
		})
		if err != nil {
			t.logger.Debug("nlp.recognize.failed", zap.Error(err))
			return "", false
		}
	}

	for _, e := range ents {
		switch e.Label {
		case nlp.LabelPerson, nlp.LabelOrganization, nlp.LabelMisc:
		default:
			continue
		}
		name := strings.TrimSpace(e.Text)
		if name == "" {
			continue
		}
		// parse entities cover the unstripped sentence, so a label may be among them
		if fromParse && !strings.Contains(a.Sentence, name) {
			continue
		}
		return name, true
	}
	return "", false
}

var (
	capitalizedRun = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	nameStoplist   = map[string]struct{}{
		"team": {}, "today": {}, "tomorrow": {}, "thanks": {}, "everyone": {}, "we": {}, "this": {},
	}
)

// RegexTier takes the first run of capitalized words that is not a stoplisted word.
type RegexTier struct{}

func (RegexTier) Name() string { return TierRegex }

// Resolve implements AssigneeTier
func (RegexTier) Resolve(_ context.Context, a Analysis) (string, bool) {
	for _, candidate := range capitalizedRun.FindAllString(a.Sentence, -1) {
		if len(candidate) <= 2 {
			continue
		}
		if _, stop := nameStoplist[strings.ToLower(candidate)]; stop {
			continue
		}
		return candidate, true
	}
	return "", false
}

var nameBeforeInfinitive = regexp.MustCompile(`\b([A-Z][a-z]+)\s+to\s+\w+`)

// PatternTier matches "<Name> to <verb>", as in "Alice to prepare".
type PatternTier struct{}

func (PatternTier) Name() string { return TierPattern }

// Resolve implements AssigneeTier
func (PatternTier) Resolve(_ context.Context, a Analysis) (string, bool) {
	m := nameBeforeInfinitive.FindStringSubmatch(a.Sentence)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Assignee is a resolved assignee with its provenance
type Assignee struct {
	Name string
	Raw  string
	Tier string
	// Score is the roster match score, zero when no roster was consulted
	Score int
}

// Resolver runs its tiers in order and stops at the first name found. The winning
// name is then normalized against the participant roster.
type Resolver struct {
	tiers     []AssigneeTier
	matcher   fuzzy.Matcher
	threshold int
}

// NewResolver creates a resolver over tiers
func NewResolver(tiers []AssigneeTier, matcher fuzzy.Matcher, threshold int) *Resolver {
	if matcher == nil {
		matcher = fuzzy.NewWeightedMatcher()
	}
	return &Resolver{tiers: tiers, matcher: matcher, threshold: threshold}
}

// Resolve returns the assignee of an analysed sentence
func (r *Resolver) Resolve(ctx context.Context, a Analysis, roster []string) (Assignee, bool) {
	for _, tier := range r.tiers {
		name, ok := tier.Resolve(ctx, a)
		if !ok || name == "" {
			continue
		}
		res := Assignee{Name: name, Raw: name, Tier: tier.Name()}
		if len(roster) > 0 {
			if m, ok := r.matcher.BestMatch(name, roster); ok {
				res.Score = m.Score
				if m.Score > r.threshold {
					res.Name = m.Value
				}
			}
		}
		return res, true
	}
	return Assignee{Tier: TierNone}, false
}

// Tiers returns the tier names in resolution order
func (r *Resolver) Tiers() []string {
	names := make([]string, len(r.tiers))
	for i, t := range r.tiers {
		names[i] = t.Name()
	}
	return names
}
