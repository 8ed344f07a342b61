package courtlistener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/briefcheck/briefcheck/internal/cache"
	"github.com/briefcheck/briefcheck/internal/model"
	"github.com/briefcheck/briefcheck/internal/util"
)

// ErrRateLimited is returned when the provider answers HTTP 429.
var ErrRateLimited = errors.New("rate limited by provider")

// Provider status codes carried inside citation-lookup result objects.
const (
	StatusFound        = 200
	StatusAmbiguous    = 300
	StatusBadReporter  = 400
	StatusNotFound     = 404
)

// LookupResult is one entry from the citation-lookup endpoint
type LookupResult struct {
	Citation     string    `json:"citation"`
	Status       int       `json:"status"`
	ErrorMessage string    `json:"error_message"`
	Clusters     []Cluster `json:"clusters"`
}

// Cluster is a matched opinion cluster
type Cluster struct {
	CaseName    string `json:"caseName"`
	AbsoluteURL string `json:"absolute_url"`
}

// SearchResult is one entry from the full-text search endpoint
type SearchResult struct {
	CaseName string   `json:"caseName"`
	Citation []string `json:"citation"`
	Court    string   `json:"court"`
	Snippet  string   `json:"snippet"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// Client talks to the CourtListener REST API. Callers are responsible for
// spacing requests; the client does not throttle on its own.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	maxResults int
	cache      cache.Cache
}

// NewClient creates a provider client. cache may be nil to disable
// response caching.
func NewClient(cfg model.ProviderConfig, c cache.Cache) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
		},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		maxResults: cfg.MaxResults,
		cache:      c,
	}
}

// LookupCitation posts a "volume reporter page" string to the
// citation-lookup endpoint and returns the per-citation results.
func (c *Client) LookupCitation(ctx context.Context, citeText string) ([]LookupResult, error) {
	key := cache.Key("lookup:" + citeText)
	if body, ok := c.cached(key); ok {
		return decodeLookup(body)
	}

	form := url.Values{"text": {citeText}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/citation-lookup/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.authorize(req)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	results, err := decodeLookup(body)
	if err != nil {
		return nil, err
	}
	c.store(key, body)
	return results, nil
}

// Search runs a full-text search. court optionally restricts results to a
// provider court identifier; empty means all courts.
func (c *Client) Search(ctx context.Context, query, court string) ([]SearchResult, error) {
	params := url.Values{"q": {query}, "type": {"o"}}
	if court != "" {
		params.Set("court", court)
	}

	key := cache.Key("search:" + court + ":" + query)
	if body, ok := c.cached(key); ok {
		return c.decodeSearch(body)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	results, err := c.decodeSearch(body)
	if err != nil {
		return nil, err
	}
	c.store(key, body)
	return results, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func decodeLookup(body []byte) ([]LookupResult, error) {
	var results []LookupResult
	if err := json.Unmarshal(body, &results); err == nil {
		return results, nil
	}

	// Some responses come back as a single object rather than a list.
	var single LookupResult
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, fmt.Errorf("invalid provider response: %w", err)
	}
	return []LookupResult{single}, nil
}

func (c *Client) decodeSearch(body []byte) ([]SearchResult, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("invalid search response: %w", err)
	}

	results := resp.Results
	if c.maxResults > 0 && len(results) > c.maxResults {
		results = results[:c.maxResults]
	}
	// Search fields carry highlight markup; strip it once here.
	for i := range results {
		results[i].CaseName = StripHTML(results[i].CaseName)
		results[i].Snippet = StripHTML(results[i].Snippet)
	}
	return results, nil
}

func (c *Client) cached(key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

func (c *Client) store(key string, body []byte) {
	if c.cache == nil {
		return
	}
	_ = c.cache.Set(key, body, 0)
}
