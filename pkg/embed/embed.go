// Package embed maps text to dense vectors through an OpenAI-compatible embeddings API.
package embed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Reason classifies an embedding failure
type Reason string

const (
	ReasonEmptyText Reason = "empty_text"
	ReasonTimeout   Reason = "timeout" // deadline or cancellation
	ReasonAPI       Reason = "api"
	ReasonNoData    Reason = "no_data"
)

// Error is returned for any failed embedding call
type Error struct {
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("embedding failed: %s", e.Reason)
	}
	return fmt.Sprintf("embedding failed (%s): %v", e.Reason, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Config holds embedder settings
type Config struct {
	Endpoint   string
	APIKey     string
	Model      string
	Dimensions int
	Timeout    time.Duration // per call, retries included
	Retries    int
	RateLimit  float64 // requests per second, 0 disables pacing
	Burst      int
	MaxChars   int // input is truncated to this many runes, 0 disables truncation
}

// Embedder calls the embeddings endpoint with bounded time, pacing and retries
type Embedder struct {
	client  *openai.Client
	config  Config
	limiter *rate.Limiter
}

// New creates an embedder for the given configuration
func New(cfg Config) *Embedder {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Model == "" {
		cfg.Model = string(openai.LargeEmbedding3)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retries < 1 {
		cfg.Retries = 1
	}

	res := &Embedder{client: openai.NewClientWithConfig(clientConfig), config: cfg}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		res.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return res
}

// Embed returns the embedding vector of text. Every failure, including the timeout, comes back as *Error.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &Error{Reason: ReasonEmptyText}
	}
	text = truncate(text, e.config.MaxChars)

	ctx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, &Error{Reason: ReasonTimeout, Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	req := openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(e.config.Model),
		Dimensions: e.config.Dimensions,
	}

	var vec []float32
	retrier := repeater.NewBackoff(e.config.Retries, 200*time.Millisecond, repeater.WithMaxDelay(5*time.Second))
	err := retrier.Do(ctx, func() error {
		resp, err := e.client.CreateEmbeddings(ctx, req)
		if err != nil {
			if isPermanent(err) {
				return &Error{Reason: ReasonAPI, Err: err}
			}
			return err
		}
		if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
			return &Error{Reason: ReasonNoData, Err: errors.New("empty embedding in response")}
		}
		vec = resp.Data[0].Embedding
		return nil
	}, errPermanent)

	if err != nil {
		var embErr *Error
		switch {
		case errors.As(err, &embErr):
			return nil, embErr
		case ctx.Err() != nil && errors.Is(err, ctx.Err()):
			return nil, &Error{Reason: ReasonTimeout, Err: err}
		case ctx.Err() != nil: // timed out or canceled while the last attempt failed for another reason
			return nil, &Error{Reason: ReasonTimeout, Err: fmt.Errorf("%w: %v", ctx.Err(), err)}
		default:
			return nil, &Error{Reason: ReasonAPI, Err: err}
		}
	}

	lgr.Printf("[DEBUG] embedded %d chars into %d dimensions", len(text), len(vec))
	return vec, nil
}

// errPermanent is the terminal error for the retrier, matched by *Error of reason api or no_data
var errPermanent = errors.New("permanent embedding error")

// Is makes permanent failures stop the retrier
func (e *Error) Is(target error) bool {
	return target == errPermanent && (e.Reason == ReasonAPI || e.Reason == ReasonNoData)
}

// isPermanent reports whether an API error can't be fixed by retrying, i.e. 4xx except 408 and 429
func isPermanent(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= 400 && apiErr.HTTPStatusCode < 500 &&
			apiErr.HTTPStatusCode != 408 && apiErr.HTTPStatusCode != 429
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= 400 && reqErr.HTTPStatusCode < 500 &&
			reqErr.HTTPStatusCode != 408 && reqErr.HTTPStatusCode != 429
	}
	return false
}

func truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}
