package actionitems

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-actions/pkg/nlp"
)

// Analysis is what a detector learned about a candidate sentence
type Analysis struct {
	Sentence string
	Task     string
	// Parse is set when the sentence was dependency parsed
	Parse *nlp.Parse
}

// Detector decides whether a sentence carries an action item.
type Detector interface {
	Detect(ctx context.Context, sentence string) (Analysis, bool)
}

var actionKeywords = []string{
	"action", "todo", "task", "please", "we need to", "lets", "let's", "assign",
	"prepare", "finalize", "must", "will", "should", "follow up", "follow-up",
	"by", "deadline", "complete",
}

var standaloneBy = regexp.MustCompile(`\bby\b`)

// KeywordDetector flags sentences containing action keywords. It needs no model.
type KeywordDetector struct{}

// Detect implements Detector
func (KeywordDetector) Detect(_ context.Context, sentence string) (Analysis, bool) {
	lower := strings.ToLower(sentence)
	if !containsAny(lower, actionKeywords) && !standaloneBy.MatchString(lower) {
		return Analysis{}, false
	}
	return Analysis{Sentence: sentence, Task: sentence}, true
}

var (
	assignmentVerbs = map[string]struct{}{
		"assign": {}, "do": {}, "create": {}, "prepare": {}, "finalize": {},
		"send": {}, "follow": {}, "complete": {}, "setup": {}, "schedule": {},
		"organize": {}, "book": {}, "present": {},
	}
	requestPhrases   = []string{"please", "we need", "we should"}
	deadlineKeywords = []string{"by", "deadline", "due", "todo", "action", "task", "follow up"}
)

// minSubtreeLen is the length a verb subtree must exceed to replace the sentence as task text
const minSubtreeLen = 10

// SyntacticDetector flags sentences by their verbs using a dependency parse.
type SyntacticDetector struct {
	parser   *nlp.Handle[nlp.DependencyParser]
	fallback KeywordDetector
	logger   *zap.Logger
}

// NewSyntacticDetector creates a detector backed by the parser handle
func NewSyntacticDetector(parser *nlp.Handle[nlp.DependencyParser], logger *zap.Logger) *SyntacticDetector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyntacticDetector{parser: parser, logger: logger}
}

// Detect implements Detector. A sentence the parser fails on is judged by the keyword rule.
func (d *SyntacticDetector) Detect(ctx context.Context, sentence string) (Analysis, bool) {
	if d.parser == nil {
		return d.fallback.Detect(ctx, sentence)
	}
	parse, err := nlp.Infer(ctx, d.parser, func(ctx context.Context, p nlp.DependencyParser) (*nlp.Parse, error) {
		return p.Parse(ctx, sentence)
	})
	if err != nil || parse == nil {
		d.logger.Debug("nlp.parse.failed", zap.String("sentence", sentence), zap.Error(err))
		return d.fallback.Detect(ctx, sentence)
	}

	lower := strings.ToLower(sentence)
	verb := -1
	firstVerb := -1
	for i, tok := range parse.Tokens {
		if !tok.IsVerb() {
			continue
		}
		if firstVerb < 0 {
			firstVerb = i
		}
		if _, ok := assignmentVerbs[strings.ToLower(tok.Lemma)]; ok {
			verb = i
			break
		}
	}
	if verb < 0 && containsAny(lower, requestPhrases) {
		verb = firstVerb
	}

	analysis := Analysis{Sentence: sentence, Task: sentence, Parse: parse}
	if verb < 0 {
		return analysis, containsAny(lower, deadlineKeywords)
	}

	if subtree := parse.SubtreeText(verb); utf8.RuneCountInString(subtree) > minSubtreeLen {
		analysis.Task = subtree
	}
	return analysis, true
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
