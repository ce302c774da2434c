package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/tonescan/tonescan/internal/model"
)

// Perspective engine defaults.
const (
	// DefaultPerspectiveEndpoint is the Comment Analyzer analyze endpoint.
	DefaultPerspectiveEndpoint = "https://commentanalyzer.googleapis.com/v1alpha1/comments:analyze"

	// DefaultPerspectiveMaxChars is the engine-side length ceiling.
	// Longer lines fail locally before any network call is attempted.
	DefaultPerspectiveMaxChars = 2900

	// DefaultPerspectiveTimeout bounds each analyze call so one slow or
	// unreachable remote cannot stall the batch.
	DefaultPerspectiveTimeout = 10 * time.Second

	// perspectiveAttribute is the attribute requested from the service.
	perspectiveAttribute = "TOXICITY"

	// perspectiveMaxErrorBody limits how much of an error response body
	// is read when extracting the service's error message.
	perspectiveMaxErrorBody = 64 * 1024
)

// ErrMissingAPIKey is returned when the Perspective engine is constructed
// without a credential.
var ErrMissingAPIKey = errors.New("perspective: API key is required")

// sharedClient is the process-wide HTTP client for remote engines.
// It is lazily initialized, read-only after construction, and reused
// across requests so connection pooling works. Per-call deadlines come
// from the context, not from the client.
var (
	sharedClientOnce sync.Once
	sharedClient     *http.Client
)

// httpClient returns the shared remote-engine HTTP client.
func httpClient() *http.Client {
	sharedClientOnce.Do(func() {
		sharedClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	})
	return sharedClient
}

// Perspective is a remote engine scoring toxicity in [0.0, 1.0] via the
// Comment Analyzer API. It is opt-in per request, quota-limited, and
// fallible: every failure surfaces as an error from Score, which the
// pipeline records in the line's cell. Single attempt per line, no retries.
type Perspective struct {
	// endpoint is the analyze URL, overridable for tests.
	endpoint string

	// apiKey authenticates the call. Never logged; the logging layer
	// redacts key-shaped values as a second line of defense.
	apiKey string

	// languageHint is sent with every request ("en").
	languageHint string

	// maxChars is the local precheck ceiling.
	maxChars int

	// timeout bounds each call.
	timeout time.Duration

	// client is the HTTP client, shared across requests.
	client *http.Client
}

// PerspectiveOption configures a Perspective engine.
type PerspectiveOption func(*Perspective)

// WithEndpoint overrides the analyze endpoint. Used by tests to point the
// engine at a local server.
func WithEndpoint(endpoint string) PerspectiveOption {
	return func(e *Perspective) {
		e.endpoint = endpoint
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) PerspectiveOption {
	return func(e *Perspective) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// WithMaxChars sets the local precheck length ceiling.
func WithMaxChars(n int) PerspectiveOption {
	return func(e *Perspective) {
		if n > 0 {
			e.maxChars = n
		}
	}
}

// WithLanguageHint sets the language hint sent to the service.
func WithLanguageHint(lang string) PerspectiveOption {
	return func(e *Perspective) {
		if lang != "" {
			e.languageHint = lang
		}
	}
}

// WithHTTPClient replaces the shared HTTP client. Used by tests.
func WithHTTPClient(client *http.Client) PerspectiveOption {
	return func(e *Perspective) {
		if client != nil {
			e.client = client
		}
	}
}

// NewPerspective creates the remote toxicity engine.
// The API key is required; everything else has working defaults.
func NewPerspective(apiKey string, opts ...PerspectiveOption) (*Perspective, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	e := &Perspective{
		endpoint:     DefaultPerspectiveEndpoint,
		apiKey:       apiKey,
		languageHint: "en",
		maxChars:     DefaultPerspectiveMaxChars,
		timeout:      DefaultPerspectiveTimeout,
		client:       httpClient(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Name returns the engine identifier.
func (e *Perspective) Name() string { return "perspective" }

// Label returns the display column header.
func (e *Perspective) Label() string {
	return "perspective: " + e.Scale().Description
}

// Scale returns the toxicity probability range.
func (e *Perspective) Scale() model.Scale {
	return model.Scale{
		Min:         0.0,
		Max:         1.0,
		Description: "0.0 (not toxic) to +1.0 (toxic)",
	}
}

// analyzeRequest is the Comment Analyzer request body.
type analyzeRequest struct {
	Comment             analyzeComment      `json:"comment"`
	Languages           []string            `json:"languages"`
	RequestedAttributes map[string]struct{} `json:"requestedAttributes"`
}

// analyzeComment carries the text under analysis.
type analyzeComment struct {
	Text string `json:"text"`
}

// analyzeResponse is the subset of the Comment Analyzer response we read.
type analyzeResponse struct {
	AttributeScores map[string]attributeScore `json:"attributeScores"`
}

// attributeScore holds per-span and summary scores for one attribute.
type attributeScore struct {
	SpanScores []spanScore `json:"spanScores"`
}

// spanScore is the score for one span of the analyzed text.
type spanScore struct {
	Score scoreValue `json:"score"`
}

// scoreValue is the numeric score node.
type scoreValue struct {
	Value float64 `json:"value"`
}

// apiError is the error envelope Google APIs return on failure.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Score requests a toxicity score for the text.
//
// Over-length text fails locally without a network call. The call itself
// is bounded by the engine's timeout on top of the caller's context.
// All failure modes (precheck, transport, quota/auth, malformed response)
// come back as errors for the pipeline to record in the cell.
func (e *Perspective) Score(ctx context.Context, text string) (float64, error) {
	// The ceiling counts characters, not bytes; multibyte text under the
	// limit must still go through.
	if utf8.RuneCountInString(text) > e.maxChars {
		return 0, fmt.Errorf("line too long (max %d characters)", e.maxChars)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	body, err := json.Marshal(analyzeRequest{
		Comment:   analyzeComment{Text: text},
		Languages: []string{e.languageHint},
		RequestedAttributes: map[string]struct{}{
			perspectiveAttribute: {},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.requestURL(), bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("perspective request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	data, err := io.ReadAll(io.LimitReader(resp.Body, perspectiveMaxErrorBody))
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, serviceError(resp.StatusCode, data)
	}

	return extractScore(data)
}

// requestURL appends the API key to the endpoint.
func (e *Perspective) requestURL() string {
	return e.endpoint + "?key=" + url.QueryEscape(e.apiKey)
}

// serviceError converts a non-200 response into a descriptive error,
// preferring the service's own message when the envelope parses.
func serviceError(status int, data []byte) error {
	var ae apiError
	if err := json.Unmarshal(data, &ae); err == nil && ae.Error.Message != "" {
		return fmt.Errorf("perspective API error (HTTP %d): %s", status, ae.Error.Message)
	}
	return fmt.Errorf("perspective API error: HTTP %d", status)
}

// extractScore pulls the first span score for the requested attribute out
// of the response, the same path the service documents for single-span
// submissions.
func extractScore(data []byte) (float64, error) {
	var ar analyzeResponse
	if err := json.Unmarshal(data, &ar); err != nil {
		return 0, fmt.Errorf("malformed response: %w", err)
	}

	attr, ok := ar.AttributeScores[perspectiveAttribute]
	if !ok {
		return 0, fmt.Errorf("malformed response: missing %s attribute scores", perspectiveAttribute)
	}
	if len(attr.SpanScores) == 0 {
		return 0, fmt.Errorf("malformed response: no span scores for %s", perspectiveAttribute)
	}
	return attr.SpanScores[0].Score.Value, nil
}
