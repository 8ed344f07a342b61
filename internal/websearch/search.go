// Package websearch is the last-resort phrase lookup used when a quoted
// passage cannot be found in the case-law database. It queries a public
// HTML search endpoint, honoring robots.txt.
package websearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/briefcheck/briefcheck/internal/util"
)

const (
	defaultEndpoint = "https://html.duckduckgo.com/html/"
	defaultTimeout  = 15 * time.Second
	maxBodyBytes    = 2 << 20
	userAgent       = "briefcheck/1.0"
)

// Searcher checks whether an exact phrase appears anywhere on the public
// web. It reports only presence and the first result's host; snippets are
// never stored.
type Searcher struct {
	endpoint   string
	httpClient *http.Client
	robots     *util.RobotsChecker
}

// NewSearcher creates a web phrase searcher. Pass empty strings to use no
// explicit proxies.
func NewSearcher(httpProxy, httpsProxy, noProxy string) *Searcher {
	return &Searcher{
		endpoint: defaultEndpoint,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
			},
		},
		robots: util.NewRobotsChecker(userAgent, defaultTimeout),
	}
}

// SearchPhrase runs an exact-phrase query and reports whether any result
// came back, along with the host of the first result.
func (s *Searcher) SearchPhrase(ctx context.Context, phrase string) (bool, string, error) {
	query := url.Values{}
	query.Set("q", `"`+phrase+`"`)
	searchURL := s.endpoint + "?" + query.Encode()

	if !s.robots.IsAllowed(ctx, searchURL) {
		return false, "", fmt.Errorf("search endpoint disallows fetching")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return false, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, "", fmt.Errorf("web search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, "", fmt.Errorf("web search: status %d", resp.StatusCode)
	}

	links, err := extractResultLinks(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return false, "", fmt.Errorf("parse results: %w", err)
	}
	if len(links) == 0 {
		return false, "", nil
	}
	return true, resultHost(links[0]), nil
}

// extractResultLinks pulls result anchor hrefs out of the search page.
func extractResultLinks(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" && hasClass(n, "result__a") {
			if href := attr(n, "href"); href != "" {
				links = append(links, href)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// resultHost extracts a displayable host from a result link. Search
// engines wrap targets in redirect URLs with the destination in a query
// parameter.
func resultHost(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	if target := u.Query().Get("uddg"); target != "" {
		if tu, err := url.Parse(target); err == nil && tu.Host != "" {
			return tu.Host
		}
	}
	if u.Host != "" {
		return u.Host
	}
	return link
}
