// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package omdb fetches search result pages from the OMDb API.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/movie-grid/internal/httputil"
	"github.com/pdiddy/movie-grid/pkg/types"
)

// PageSize is the number of results OMDb returns on a full search page.
const PageSize = 10

// DefaultBaseURL is the OMDb endpoint used when no base URL is configured.
const DefaultBaseURL = "http://www.omdbapi.com/"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client queries the OMDb search endpoint one page at a time.
type Client struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	// MaxRetries is the number of 429 retries per page; 0 disables retries.
	MaxRetries int
	HTTP       *http.Client
	Logger     *zap.Logger
}

// NewClient builds a Client from cfg with an HTTP client that applies
// cfg.Timeout to every request.
func NewClient(cfg types.SourceConfig, logger *zap.Logger) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		BaseURL:    base,
		APIKey:     cfg.APIKey,
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
		HTTP:       &http.Client{Timeout: cfg.Timeout},
		Logger:     logger,
	}
}

// searchResponse mirrors the OMDb search JSON. Search is a pointer so that
// an absent or null field can be told apart from an empty list.
type searchResponse struct {
	Search       *[]types.Movie `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error"`
}

// PageSize returns the fixed OMDb page size.
func (c *Client) PageSize() int { return PageSize }

// FetchPage requests page of the search for keyword. The body is decoded
// whatever the HTTP status, because OMDb reports failures such as an invalid
// key as a JSON error payload with a 401. A body that is not a JSON object
// is returned as an error that names the status.
func (c *Client) FetchPage(ctx context.Context, keyword string, page int) (types.SearchPage, error) {
	reqURL, err := c.pageURL(keyword, page)
	if err != nil {
		return types.SearchPage{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.SearchPage{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.Do(ctx, client, req, c.MaxRetries, c.Logger)
	if err != nil {
		return types.SearchPage{}, fmt.Errorf("OMDb API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return types.SearchPage{}, fmt.Errorf("reading OMDb response: %w", err)
	}

	var sr *searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return types.SearchPage{}, fmt.Errorf("parsing OMDb response (HTTP %d): %w", resp.StatusCode, err)
	}
	if sr == nil {
		return types.SearchPage{}, fmt.Errorf("parsing OMDb response (HTTP %d): empty JSON document", resp.StatusCode)
	}

	sp := types.SearchPage{
		Error:        sr.Error,
		TotalResults: parseTotal(sr.TotalResults),
	}
	if sr.Search != nil {
		sp.HasResults = true
		sp.Results = *sr.Search
	}
	return sp, nil
}

func (c *Client) pageURL(keyword string, page int) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL %q: %w", c.BaseURL, err)
	}
	params := u.Query()
	params.Set("apikey", c.APIKey)
	params.Set("s", keyword)
	params.Set("page", strconv.Itoa(page))
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// parseTotal reads OMDb's string-typed totalResults, returning 0 when it is
// absent or malformed.
func parseTotal(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
