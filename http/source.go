// Package http provides an HTTP implementation of docview.Source for
// documentation sites served by any static file host.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/docview"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Source implements docview.Source at compile time.
var _ docview.Source = (*Source)(nil)

// Source fetches site files relative to a base URL.
type Source struct {
	base    *url.URL
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// Option configures a Source.
type Option func(*Source)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithClient replaces the HTTP client. The timeout option is ignored when
// a client is supplied.
func WithClient(c *http.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// WithRateLimit paces requests to at most rps per second, so a burst of
// prefetches does not hammer small static hosts.
func WithRateLimit(rps float64) Option {
	return func(s *Source) {
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewSource creates a Source rooted at baseURL. Names are resolved
// relative to it, so "https://example.com/handbook" and
// "https://example.com/handbook/" are equivalent.
func NewSource(baseURL string, opts ...Option) (*Source, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, docview.Errorf(docview.EINVALID, "invalid site URL %q: %v", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, docview.Errorf(docview.EINVALID, "site URL %q must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	s := &Source{
		base:    u,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{
			Timeout: s.timeout,
		}
	}

	return s, nil
}

// URL returns the absolute URL of name.
func (s *Source) URL(name string) (string, error) {
	path, query, _ := strings.Cut(name, "?")
	ref := &url.URL{Path: path, RawQuery: query}
	if ref.Path != "" && strings.HasPrefix(ref.Path, "/") {
		return "", docview.Errorf(docview.EINVALID, "name %q must be relative", name)
	}
	return s.base.ResolveReference(ref).String(), nil
}

// Fetch retrieves name from the site. A 404 response is ENOTFOUND.
func (s *Source) Fetch(ctx context.Context, name string) (string, error) {
	target, err := s.URL(name)
	if err != nil {
		return "", err
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", docview.Errorf(docview.ENOTFOUND, "HTTP 404 for %s", target)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}
