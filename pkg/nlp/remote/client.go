// Package remote talks to an NLP sidecar serving entity recognition and
// dependency parsing over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-actions/errors"
	"github.com/johnquangdev/meeting-actions/pkg/config"
	"github.com/johnquangdev/meeting-actions/pkg/nlp"
)

const (
	serviceName = "nlp-sidecar"

	nerPath    = "/ner"
	parsePath  = "/parse"
	healthPath = "/health"
)

// Client is a minimal client for the NLP sidecar
type Client struct {
	apiKey          string
	baseURL         string
	client          *http.Client
	maxRetries      uint64
	initialInterval time.Duration
	logger          *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithRetryInterval sets the first backoff interval
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.initialInterval = d
		}
	}
}

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a sidecar client using values from the provided config
func NewClient(cfg *config.NLPConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		apiKey:          cfg.APIKey,
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		client:          &http.Client{Timeout: timeout},
		maxRetries:      cfg.MaxRetries,
		initialInterval: 200 * time.Millisecond,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type textRequest struct {
	Text string `json:"text"`
}

// nerEntity is one aggregated entity as returned by a token-classification pipeline
type nerEntity struct {
	EntityGroup string  `json:"entity_group"`
	Word        string  `json:"word"`
	Score       float64 `json:"score"`
}

type parseToken struct {
	Index int    `json:"i"`
	Text  string `json:"text"`
	POS   string `json:"pos"`
	Lemma string `json:"lemma"`
	Dep   string `json:"dep"`
	Head  int    `json:"head"`
}

type parseEntity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

type parseResponse struct {
	Tokens []parseToken  `json:"tokens"`
	Ents   []parseEntity `json:"ents"`
}

// Health checks that the sidecar is up and its models are loaded
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.ErrNLPServiceUnavailable(serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.ErrNLPServiceUnavailable(serviceName, fmt.Errorf("health returned status %d", resp.StatusCode))
	}
	return nil
}

// Recognize implements nlp.Recognizer
func (c *Client) Recognize(ctx context.Context, sentence string) ([]nlp.Entity, error) {
	var raw []nerEntity
	if err := c.post(ctx, nerPath, textRequest{Text: sentence}, &raw); err != nil {
		return nil, apperrors.ErrNLPInferenceFailed("ner", err)
	}

	ents := make([]nlp.Entity, 0, len(raw))
	for _, e := range raw {
		ents = append(ents, nlp.Entity{
			Text:  strings.TrimSpace(e.Word),
			Label: normalizeLabel(e.EntityGroup),
			Score: e.Score,
		})
	}
	return ents, nil
}

// Parse implements nlp.DependencyParser
func (c *Client) Parse(ctx context.Context, sentence string) (*nlp.Parse, error) {
	var raw parseResponse
	if err := c.post(ctx, parsePath, textRequest{Text: sentence}, &raw); err != nil {
		return nil, apperrors.ErrNLPInferenceFailed("parser", err)
	}

	p := &nlp.Parse{
		Text:     sentence,
		Tokens:   make([]nlp.Token, len(raw.Tokens)),
		Entities: make([]nlp.Entity, 0, len(raw.Ents)),
	}
	for i, t := range raw.Tokens {
		p.Tokens[i] = nlp.Token{Index: i, Text: t.Text, POS: t.POS, Lemma: t.Lemma, Dep: t.Dep, Head: t.Head}
	}
	for _, e := range raw.Ents {
		p.Entities = append(p.Entities, nlp.Entity{Text: e.Text, Label: normalizeLabel(e.Label), Score: 1})
	}
	return p, nil
}

// post sends body as JSON and decodes the answer into out, retrying transport
// errors and 5xx answers with exponential backoff. 4xx answers are not retried.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	call := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
		if err != nil {
			return backoff.Permanent(err)
		}
		c.authorize(req)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			err := apperrors.ErrExternalAPIFailed("nlp"+path,
				fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))))
			if resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode %s response: %w", path, err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialInterval
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = 10 * time.Second

	notify := func(err error, wait time.Duration) {
		c.logger.Debug("nlp.remote.retry", zap.String("path", path), zap.Duration("wait", wait), zap.Error(err))
	}

	return backoff.RetryNotify(call, backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx), notify)
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// normalizeLabel maps the label sets of common NER models onto nlp labels
func normalizeLabel(label string) nlp.Label {
	switch strings.ToUpper(strings.TrimPrefix(strings.TrimPrefix(label, "B-"), "I-")) {
	case "PER", "PERSON":
		return nlp.LabelPerson
	case "ORG":
		return nlp.LabelOrganization
	case "MISC":
		return nlp.LabelMisc
	case "LOC", "GPE":
		return nlp.LabelLocation
	default:
		return nlp.Label(strings.ToUpper(label))
	}
}

// RecognizerLoader returns a load function that checks the sidecar before handing
// out the client as a recognizer
func RecognizerLoader(c *Client) nlp.LoadFunc[nlp.Recognizer] {
	return func(ctx context.Context) (nlp.Recognizer, error) {
		if err := c.Health(ctx); err != nil {
			return nil, err
		}
		return c, nil
	}
}

// ParserLoader returns a load function that checks the sidecar before handing
// out the client as a dependency parser
func ParserLoader(c *Client) nlp.LoadFunc[nlp.DependencyParser] {
	return func(ctx context.Context) (nlp.DependencyParser, error) {
		if err := c.Health(ctx); err != nil {
			return nil, err
		}
		return c, nil
	}
}
