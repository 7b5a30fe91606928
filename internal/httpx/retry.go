// Package httpx wraps outbound HTTP calls to third-party APIs with a capped,
// jittered retry. Failures stay inside the collaborator boundary: callers get
// an error to surface inline, never a crash of quiz state.
package httpx

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

const (
	maxRetries = 3
	baseDelay  = 250 * time.Millisecond
	maxDelay   = 2 * time.Second
)

// APIError carries the status and trimmed body of a non-2xx response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

// NewClient returns an HTTP client with the given timeout.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Do executes the request produced by build, retrying 429/5xx responses with
// exponential backoff. build is called per attempt so request bodies are
// fresh. On success the caller owns the response body.
func Do(ctx context.Context, client *http.Client, build func() (*http.Request, error)) (*http.Response, error) {
	if client == nil {
		client = http.DefaultClient
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		req, err := build()
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		lastErr = &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}

		if !retryable(resp.StatusCode) || attempt == maxRetries {
			return nil, lastErr
		}
		if err := backoff(ctx, attempt); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func backoff(ctx context.Context, attempt int) error {
	delay := baseDelay * time.Duration(1<<attempt)
	if delay > maxDelay {
		delay = maxDelay
	}
	delay += time.Duration(rand.Int63n(int64(delay/2) + 1))
	if delay > maxDelay {
		delay = maxDelay
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
