package actionitems

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-actions/internal/domain/entities"
	"github.com/johnquangdev/meeting-actions/internal/domain/repositories"
	ucerrors "github.com/johnquangdev/meeting-actions/internal/usecase/errors"
	"github.com/johnquangdev/meeting-actions/pkg/datetime"
	"github.com/johnquangdev/meeting-actions/pkg/metrics"
	"github.com/johnquangdev/meeting-actions/pkg/nlp"
)

// Capability names reported by Capabilities
const (
	CapabilityNER    = "ner"
	CapabilityParser = "parser"
)

const cacheKeyPrefix = "actionitems:"

// Service defines action item extraction methods
type Service interface {
	Extract(ctx context.Context, req ExtractRequest) (*Extraction, error)
	Warmup(ctx context.Context)
	Capabilities() map[string]nlp.State
}

// ExtractRequest is one transcript to extract from
type ExtractRequest struct {
	Text         string
	Participants []string
	// Strategy overrides the configured default when set
	Strategy Strategy
}

// Extraction is the outcome of an extraction call
type Extraction struct {
	Strategy Strategy
	Items    []entities.ActionItem
	Cached   bool
}

// Config holds service settings
type Config struct {
	DefaultStrategy Strategy
	RosterThreshold int
	CacheTTL        time.Duration
	Location        *time.Location
	Clock           datetime.Clock
}

type service struct {
	keyword         *Pipeline
	syntactic       *Pipeline
	recognizer      *nlp.Handle[nlp.Recognizer]
	parser          *nlp.Handle[nlp.DependencyParser]
	defaultStrategy Strategy
	cache           repositories.ExtractionCache
	cacheTTL        time.Duration
	clock           datetime.Clock
	loc             *time.Location
	metrics         *metrics.Manager
	logger          *zap.Logger
}

// NewService constructs the extraction service. Nil handles are treated as
// disabled capabilities and a nil cache disables caching.
func NewService(
	recognizer *nlp.Handle[nlp.Recognizer],
	parser *nlp.Handle[nlp.DependencyParser],
	dates datetime.Parser,
	cache repositories.ExtractionCache,
	m *metrics.Manager,
	cfg Config,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recognizer == nil {
		recognizer = nlp.NewDisabledHandle[nlp.Recognizer](CapabilityNER)
	}
	if parser == nil {
		parser = nlp.NewDisabledHandle[nlp.DependencyParser](CapabilityParser)
	}
	if cfg.DefaultStrategy == "" {
		cfg.DefaultStrategy = StrategyAuto
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	threshold := DefaultRosterThreshold
	if cfg.RosterThreshold > 0 {
		threshold = cfg.RosterThreshold
	}

	opts := []PipelineOption{
		WithRosterThreshold(threshold),
		WithPipelineLogger(logger),
	}

	return &service{
		keyword:         NewKeywordPipeline(recognizer, dates, opts...),
		syntactic:       NewSyntacticPipeline(parser, recognizer, dates, opts...),
		recognizer:      recognizer,
		parser:          parser,
		defaultStrategy: cfg.DefaultStrategy,
		cache:           cache,
		cacheTTL:        cfg.CacheTTL,
		clock:           cfg.Clock,
		loc:             cfg.Location,
		metrics:         m,
		logger:          logger,
	}
}

// Extract runs the selected pipeline over the transcript. It fails on an unknown
// strategy or when ctx ends before every sentence was processed; capability and
// cache failures degrade silently.
func (s *service) Extract(ctx context.Context, req ExtractRequest) (*Extraction, error) {
	p, err := s.selectPipeline(ctx, req.Strategy)
	if err != nil {
		return nil, err
	}

	out := &Extraction{Strategy: p.Strategy(), Items: []entities.ActionItem{}}
	if strings.TrimSpace(req.Text) == "" {
		return out, nil
	}

	key := s.cacheKey(p.Strategy(), req)
	if items, ok := s.lookup(ctx, key); ok {
		out.Items = items
		out.Cached = true
		return out, nil
	}

	start := time.Now()
	for _, r := range p.Run(ctx, req.Text, req.Participants) {
		out.Items = append(out.Items, r.Item)
		s.metrics.RecordAssignee(r.AssigneeTier)
		s.metrics.RecordDeadline(string(r.DeadlineKind))
	}
	elapsed := time.Since(start)
	s.metrics.RecordExtraction(p.Strategy().String(), len(out.Items), elapsed)

	s.logger.Info("actionitems.extracted",
		zap.String("strategy", p.Strategy().String()),
		zap.Int("items", len(out.Items)),
		zap.Int("participants", len(req.Participants)),
		zap.Duration("duration", elapsed),
	)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extraction interrupted after %d items: %w", len(out.Items), err)
	}

	s.store(ctx, key, out.Items)
	return out, nil
}

func (s *service) selectPipeline(ctx context.Context, requested Strategy) (*Pipeline, error) {
	if requested == "" {
		requested = s.defaultStrategy
	}

	switch requested {
	case StrategyKeyword:
		return s.keyword, nil
	case StrategyAuto, StrategySyntactic:
		if s.parser.Available(ctx) {
			return s.syntactic, nil
		}
		if requested == StrategySyntactic {
			s.logger.Debug("actionitems.strategy.degraded",
				zap.String("requested", requested.String()),
				zap.String("using", StrategyKeyword.String()),
			)
		}
		return s.keyword, nil
	default:
		return nil, fmt.Errorf("%w: %q", ucerrors.ErrUnknownStrategy, requested)
	}
}

// cacheKey fingerprints everything the result depends on, including the current
// date in the configured zone since relative deadlines resolve against it.
func (s *service) cacheKey(strategy Strategy, req ExtractRequest) string {
	h := sha256.New()
	h.Write([]byte(strategy))
	h.Write([]byte{0})
	h.Write([]byte(req.Text))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(req.Participants, "\x1f")))
	h.Write([]byte{0})
	h.Write([]byte(s.clock().In(s.loc).Format(time.DateOnly)))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (s *service) lookup(ctx context.Context, key string) ([]entities.ActionItem, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.metrics.RecordCacheLookup("error")
		s.logger.Warn("actionitems.cache.get_failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		s.metrics.RecordCacheLookup("miss")
		return nil, false
	}

	var items []entities.ActionItem
	if err := json.Unmarshal(raw, &items); err != nil {
		s.metrics.RecordCacheLookup("error")
		s.logger.Warn("actionitems.cache.decode_failed", zap.Error(err))
		return nil, false
	}
	s.metrics.RecordCacheLookup("hit")
	return items, true
}

func (s *service) store(ctx context.Context, key string, items []entities.ActionItem) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.Warn("actionitems.cache.set_failed", zap.Error(err))
	}
}

// Warmup attempts to load every capability so the first request does not pay for it
func (s *service) Warmup(ctx context.Context) {
	ner := s.recognizer.Available(ctx)
	parser := s.parser.Available(ctx)
	s.logger.Info("actionitems.warmup.done",
		zap.Bool("ner", ner),
		zap.Bool("parser", parser),
	)
}

// Capabilities reports the state of each capability without loading it
func (s *service) Capabilities() map[string]nlp.State {
	return map[string]nlp.State{
		CapabilityNER:    s.recognizer.State(),
		CapabilityParser: s.parser.State(),
	}
}
