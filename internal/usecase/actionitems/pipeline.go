package actionitems

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-actions/internal/domain/entities"
	"github.com/johnquangdev/meeting-actions/pkg/datetime"
	"github.com/johnquangdev/meeting-actions/pkg/fuzzy"
	"github.com/johnquangdev/meeting-actions/pkg/nlp"
)

var taskLabel = regexp.MustCompile(`(?i)^(action:|todo:)\s*`)

// Result is an extracted item together with how its fields were found
type Result struct {
	Item         entities.ActionItem
	AssigneeTier string
	DeadlineKind DeadlineKind
}

// Pipeline extracts action items with one detection strategy. It keeps no state
// between calls.
type Pipeline struct {
	strategy   Strategy
	detector   Detector
	deadlines  *DeadlineMatcher
	resolver   *Resolver
	dedupLimit int
	logger     *zap.Logger
}

type pipelineOptions struct {
	matcher   fuzzy.Matcher
	threshold int
	logger    *zap.Logger
}

// PipelineOption configures a Pipeline
type PipelineOption func(*pipelineOptions)

// WithMatcher sets the roster matcher
func WithMatcher(m fuzzy.Matcher) PipelineOption {
	return func(o *pipelineOptions) {
		if m != nil {
			o.matcher = m
		}
	}
}

// WithRosterThreshold sets the score a roster match must exceed
func WithRosterThreshold(threshold int) PipelineOption {
	return func(o *pipelineOptions) {
		o.threshold = threshold
	}
}

// WithPipelineLogger sets the pipeline logger
func WithPipelineLogger(logger *zap.Logger) PipelineOption {
	return func(o *pipelineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []PipelineOption) pipelineOptions {
	o := pipelineOptions{
		matcher:   fuzzy.NewWeightedMatcher(),
		threshold: DefaultRosterThreshold,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewKeywordPipeline builds the keyword strategy: keyword gate, NER then regex tiers,
// 120 character dedup keys.
func NewKeywordPipeline(recognizer *nlp.Handle[nlp.Recognizer], dates datetime.Parser, opts ...PipelineOption) *Pipeline {
	o := buildOptions(opts)
	return &Pipeline{
		strategy:  StrategyKeyword,
		detector:  KeywordDetector{},
		deadlines: NewDeadlineMatcher(KeywordDeadlinePatterns, dates),
		resolver: NewResolver([]AssigneeTier{
			NewNERTier(recognizer, o.logger),
			RegexTier{},
		}, o.matcher, o.threshold),
		dedupLimit: keywordDedupLimit,
		logger:     o.logger,
	}
}

// NewSyntacticPipeline builds the syntactic strategy: verb gate, NER, regex and
// "<Name> to <verb>" tiers, weekday deadlines, 160 character dedup keys.
func NewSyntacticPipeline(
	parser *nlp.Handle[nlp.DependencyParser],
	recognizer *nlp.Handle[nlp.Recognizer],
	dates datetime.Parser,
	opts ...PipelineOption,
) *Pipeline {
	o := buildOptions(opts)
	return &Pipeline{
		strategy:  StrategySyntactic,
		detector:  NewSyntacticDetector(parser, o.logger),
		deadlines: NewDeadlineMatcher(SyntacticDeadlinePatterns, dates),
		resolver: NewResolver([]AssigneeTier{
			NewNERTier(recognizer, o.logger),
			RegexTier{},
			PatternTier{},
		}, o.matcher, o.threshold),
		dedupLimit: syntacticDedupLimit,
		logger:     o.logger,
	}
}

// Strategy returns the detection strategy of the pipeline
func (p *Pipeline) Strategy() Strategy {
	return p.strategy
}

// Run extracts items from text in sentence order, deduplicated. Blank text yields
// no results. Capability failures only leave fields empty.
func (p *Pipeline) Run(ctx context.Context, text string, roster []string) []Result {
	results := make([]Result, 0)
	if strings.TrimSpace(text) == "" {
		return results
	}

	for sentence := range Sentences(text) {
		if ctx.Err() != nil {
			break
		}

		analysis, ok := p.detector.Detect(ctx, sentence)
		if !ok {
			continue
		}

		task := strings.TrimSpace(taskLabel.ReplaceAllString(analysis.Task, ""))
		item, err := entities.NewActionItem(task, sentence)
		if err != nil {
			p.logger.Debug("actionitems.task.empty", zap.String("sentence", sentence))
			continue
		}

		res := Result{Item: *item, AssigneeTier: TierNone, DeadlineKind: DeadlineNone}

		if d, ok := p.deadlines.Match(sentence); ok {
			item.WithDeadline(d.Value)
			res.DeadlineKind = d.Kind
		}

		resolverInput := analysis
		resolverInput.Sentence = taskLabel.ReplaceAllString(sentence, "")
		if a, ok := p.resolver.Resolve(ctx, resolverInput, roster); ok {
			item.WithAssignee(a.Name)
			res.AssigneeTier = a.Tier
		}

		res.Item = *item
		results = append(results, res)
	}

	return Dedup(results, func(r Result) string {
		return DedupKey(r.Item.Task, p.dedupLimit)
	})
}

// Extract returns the action items of text
func (p *Pipeline) Extract(ctx context.Context, text string, roster []string) []entities.ActionItem {
	results := p.Run(ctx, text, roster)
	items := make([]entities.ActionItem, len(results))
	for i, r := range results {
		items[i] = r.Item
	}
	return items
}
