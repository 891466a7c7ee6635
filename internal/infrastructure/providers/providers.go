// Package providers builds the NLP capability handles selected by configuration.
package providers

import (
	"fmt"

	"go.uber.org/zap"

	ucerrors "github.com/johnquangdev/meeting-actions/internal/usecase/errors"
	"github.com/johnquangdev/meeting-actions/pkg/config"
	"github.com/johnquangdev/meeting-actions/pkg/metrics"
	"github.com/johnquangdev/meeting-actions/pkg/nlp"
	"github.com/johnquangdev/meeting-actions/pkg/nlp/prose"
	"github.com/johnquangdev/meeting-actions/pkg/nlp/remote"
)

// Capability names
const (
	NER    = "ner"
	Parser = "parser"
)

// Handles holds the capability handles of one process
type Handles struct {
	Recognizer *nlp.Handle[nlp.Recognizer]
	Parser     *nlp.Handle[nlp.DependencyParser]
}

// New creates lazily loaded handles for the configured providers. Nothing is
// loaded here; the first use (or a warm-up) performs the single load attempt.
func New(cfg *config.NLPConfig, m *metrics.Manager, logger *zap.Logger) (*Handles, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []nlp.HandleOption{
		nlp.WithLogger(logger),
		nlp.WithMaxConcurrency(cfg.MaxConcurrency),
		nlp.WithLoadTimeout(cfg.Timeout),
		nlp.WithLoadHook(m.RecordModelLoad),
	}

	var client *remote.Client
	sidecar := func() *remote.Client {
		if client == nil {
			client = remote.NewClient(cfg, remote.WithLogger(logger))
		}
		return client
	}

	h := &Handles{}

	switch cfg.NERProvider {
	case "prose":
		h.Recognizer = nlp.NewHandle(NER, prose.Load, opts...)
	case "remote":
		h.Recognizer = nlp.NewHandle(NER, remote.RecognizerLoader(sidecar()), opts...)
	case "none", "":
		h.Recognizer = nlp.NewDisabledHandle[nlp.Recognizer](NER)
	default:
		return nil, fmt.Errorf("%w: ner %q", ucerrors.ErrUnknownProvider, cfg.NERProvider)
	}

	switch cfg.ParserProvider {
	case "remote":
		h.Parser = nlp.NewHandle(Parser, remote.ParserLoader(sidecar()), opts...)
	case "none", "":
		h.Parser = nlp.NewDisabledHandle[nlp.DependencyParser](Parser)
	default:
		return nil, fmt.Errorf("%w: parser %q", ucerrors.ErrUnknownProvider, cfg.ParserProvider)
	}

	logger.Info("nlp.providers.configured",
		zap.String("ner", cfg.NERProvider),
		zap.String("parser", cfg.ParserProvider),
	)
	return h, nil
}
