// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	RetryBaseDelay = time.Millisecond
}

// scriptedServer answers with statuses in order, repeating the last one,
// and records every request body it sees.
type scriptedServer struct {
	*httptest.Server
	mu       sync.Mutex
	statuses []int
	bodies   []string
}

func newScriptedServer(t *testing.T, statuses ...int) *scriptedServer {
	t.Helper()
	s := &scriptedServer{statuses: statuses}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		n := len(s.bodies)
		s.bodies = append(s.bodies, string(data))
		s.mu.Unlock()
		if n >= len(s.statuses) {
			n = len(s.statuses) - 1
		}
		w.WriteHeader(s.statuses[n])
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *scriptedServer) calls() int {
	return len(s.seen())
}

func (s *scriptedServer) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bodies...)
}

func searchRequest(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(`{"criteria":{},"offset":0,"limit":500}`))
	require.NoError(t, err)
	return req
}

func TestDoWithRetry(t *testing.T) {
	tests := []struct {
		name       string
		statuses   []int
		maxRetries int
		wantStatus int
		wantCalls  int
	}{
		{"immediate success", []int{200}, 5, 200, 1},
		{"429 then success", []int{429, 429, 200}, 5, 200, 3},
		{"503 then success", []int{503, 200}, 5, 200, 2},
		{"exhausted returns last response", []int{429}, 3, 429, 4},
		{"default retry count", []int{429}, 0, 429, 6},
		{"bad request not retried", []int{400}, 5, 400, 1},
		{"server error not retried", []int{500}, 5, 500, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newScriptedServer(t, tt.statuses...)

			resp, err := DoWithRetry(context.Background(), srv.Client(), searchRequest(t, srv.URL), tt.maxRetries, nil)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCalls, srv.calls())
		})
	}
}

func TestDoWithRetry_ReplaysBody(t *testing.T) {
	srv := newScriptedServer(t, 429, 200)

	var log bytes.Buffer
	resp, err := DoWithRetry(context.Background(), srv.Client(), searchRequest(t, srv.URL), 3, &log)
	require.NoError(t, err)
	defer resp.Body.Close()

	bodies := srv.seen()
	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
	assert.Contains(t, bodies[1], `"limit":500`)
	assert.Contains(t, log.String(), "HTTP 429, retrying in 1ms (attempt 1/3)")
}

func TestDoWithRetry_ContextCancelledDuringWait(t *testing.T) {
	srv := newScriptedServer(t, 429)

	old := RetryBaseDelay
	RetryBaseDelay = 500 * time.Millisecond
	defer func() { RetryBaseDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := DoWithRetry(ctx, srv.Client(), searchRequest(t, srv.URL), 5, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, srv.calls())
}

func TestBackoff(t *testing.T) {
	old := RetryBaseDelay
	RetryBaseDelay = 10 * time.Second
	defer func() { RetryBaseDelay = old }()

	assert.Equal(t, 10*time.Second, Backoff(0))
	assert.Equal(t, 20*time.Second, Backoff(1))
	assert.Equal(t, 160*time.Second, Backoff(4))
}
