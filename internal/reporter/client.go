// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reporter is a client for the NIH RePORTER v2 project search API.
// It builds the criteria payload from caller filters, posts it to
// projects/search, and decodes the returned page of projects.
package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/nih-reporter/internal/httputil"
	"github.com/pdiddy/nih-reporter/pkg/types"
)

// DefaultBaseURL is the public RePORTER v2 API root.
const DefaultBaseURL = "https://api.reporter.nih.gov/v2"

const (
	searchEndpoint   = "projects/search"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "nih-reporter/dev"
)

// MaxPageSize is the largest limit RePORTER accepts for one request.
const MaxPageSize = 500

// ErrAPI marks a RePORTER request that completed with a non-200 status.
var ErrAPI = errors.New("NIH Reporter API error")

// Sort orders accepted by RePORTER.
const (
	SortDesc = "desc"
	SortAsc  = "asc"
)

// SearchRequest is the projects/search request body.
type SearchRequest struct {
	Criteria      Criteria `json:"criteria"`
	IncludeFields []string `json:"include_fields,omitempty"`
	Offset        int      `json:"offset"`
	Limit         int      `json:"limit"`
	SortField     string   `json:"sort_field,omitempty"`
	SortOrder     string   `json:"sort_order,omitempty"`
}

// SearchResponse is one page of projects/search results.
type SearchResponse struct {
	Meta    Meta            `json:"meta"`
	Results []types.Project `json:"results"`
}

// Meta carries RePORTER's paging metadata.
type Meta struct {
	SearchID   string `json:"search_id,omitempty"`
	Total      int    `json:"total"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
	SortField  string `json:"sort_field,omitempty"`
	SortOrder  string `json:"sort_order,omitempty"`
	Properties any    `json:"properties,omitempty"`
}

// Client posts search requests to RePORTER.
type Client struct {
	HTTP       *http.Client
	BaseURL    string
	UserAgent  string
	MaxRetries int
	// Log receives rate-limit progress lines. Nil discards them.
	Log io.Writer
}

// NewClient returns a Client configured from cfg, filling defaults for
// unset fields.
func NewClient(cfg types.ReporterConfig, log io.Writer) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		BaseURL:    baseURL,
		UserAgent:  ua,
		MaxRetries: cfg.MaxRetries,
		Log:        log,
	}
}

// SearchProjects posts req to projects/search and decodes the page.
func (c *Client) SearchProjects(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	raw, err := c.SearchRaw(ctx, req)
	if err != nil {
		return nil, err
	}
	var out SearchResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: parsing response: %v", ErrAPI, err)
	}
	return &out, nil
}

// SearchRaw posts req to projects/search and returns the response body
// unchanged. Fields the Project type does not model survive, which is what
// the pass-through tools hand back to callers.
func (c *Client) SearchRaw(ctx context.Context, req SearchRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	url := strings.TrimSuffix(c.BaseURL, "/") + "/" + searchEndpoint
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	resp, err := httputil.DoWithRetry(ctx, client, httpReq, c.MaxRetries, c.Log)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(detail))
		if msg != "" {
			return nil, fmt.Errorf("%w: HTTP %d: %s", ErrAPI, resp.StatusCode, msg)
		}
		return nil, fmt.Errorf("%w: HTTP %d", ErrAPI, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrAPI, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: parsing response: invalid JSON", ErrAPI)
	}
	return json.RawMessage(data), nil
}
