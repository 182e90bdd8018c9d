// Package llm talks to hosted language models over their HTTP APIs.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aliskhannn/batyr-bol/internal/metrics"
)

var (
	ErrNotConfigured = errors.New("llm provider is not configured")
	ErrEmptyResponse = errors.New("no choices in llm response")
	ErrNoProvider    = errors.New("no llm provider returned a response")
)

// Prompt is a single system + user exchange.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	JSON        bool // ask the provider for a JSON object
}

// Client completes prompts with one provider.
type Client interface {
	Name() string
	Model() string
	Configured() bool
	Complete(ctx context.Context, p Prompt) (string, error)
}

const maxErrorBody = 300 // runes of the provider response kept in errors

// APIError is returned when a provider answers with a non-200 status.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if r := []rune(body); len(r) > maxErrorBody {
		body = string(r[:maxErrorBody]) + "..."
	}
	return fmt.Sprintf("%s api request failed with status %d: %s", e.Provider, e.StatusCode, body)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func observe(provider string, start time.Time, err error) {
	status := "ok"
	switch {
	case errors.Is(err, ErrNotConfigured):
		return
	case err != nil:
		status = "error"
	}

	metrics.LLMRequestsTotal.WithLabelValues(provider, status).Inc()
	metrics.LLMRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
