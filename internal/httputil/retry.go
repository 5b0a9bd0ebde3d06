// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across API clients.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RetryBaseDelay is the first backoff interval. Tests override it.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 5

// Retryable reports whether a response status is worth another attempt.
// RePORTER answers 429 under load and 503 during maintenance windows.
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// Backoff returns the wait before retry number attempt (zero based):
// RetryBaseDelay doubled once per prior attempt.
func Backoff(attempt int) time.Duration {
	return RetryBaseDelay << attempt
}

// DoWithRetry sends req and retries Retryable responses with exponential
// backoff, up to maxRetries extra attempts (the default of 5 when
// maxRetries is not positive). Request bodies are replayed through
// GetBody, which http.NewRequest sets for bytes and strings readers.
//
// After the last attempt the retryable response is returned unread so the
// caller can report its status. Cancelling ctx during a wait returns
// ctx.Err(). Each wait is announced on log when log is non-nil.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, log io.Writer) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if log == nil {
		log = io.Discard
	}

	attempt := 0
	for {
		resp, err := send(ctx, client, req)
		if err != nil {
			return nil, err
		}
		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		wait := Backoff(attempt)
		attempt++
		fmt.Fprintf(log, "HTTP %d, retrying in %v (attempt %d/%d)\n", resp.StatusCode, wait, attempt, maxRetries)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func send(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	r := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rewinding request body: %w", err)
		}
		r.Body = body
	}
	return client.Do(r)
}
