// Package netfetch retrieves pages and sub-resources (stylesheets,
// scripts) over HTTP(S), resolving relative URIs against a document's base
// URL. Nothing is cached: every Fetch call issues a new request.
//
// Grounded on std/net/net.go (Fetch/ResolveURL/IsNetworkURL) and
// pkg/resource/fetcher.go (the Fetcher interface and its
// base-URL-resolving DefaultFetcher), generalized from a single-caller
// renderer into something safe for the concurrent sub-resource loads
// SPEC_FULL.md's reflow protocol issues.
package netfetch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const userAgent = "kestrel/1.0 (compatible; Go)"

// Fetcher retrieves resources by URI, resolving relative URIs against a
// base URL.
type Fetcher interface {
	Fetch(uri string) (body []byte, contentType string, err error)
}

// HTTPFetcher is the default Fetcher: HTTP/HTTPS over a shared client.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher with the given base URL and a
// 30-second-timeout client, matching std/net/net.go's httpClient.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *HTTPFetcher) Fetch(uri string) ([]byte, string, error) {
	resolved := uri
	if !IsNetworkURL(uri) && f.BaseURL != "" {
		resolved = ResolveURL(f.BaseURL, uri)
	}
	if !IsNetworkURL(resolved) {
		return nil, "", fmt.Errorf("cannot fetch non-network URI: %s", resolved)
	}

	req, err := http.NewRequest("GET", resolved, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", resolved, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, resolved)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// FetchCSS fetches uri and returns its text content, rejecting anything
// that doesn't look like CSS or plain text.
func (f *HTTPFetcher) FetchCSS(uri string) (string, error) {
	body, contentType, err := f.Fetch(uri)
	if err != nil {
		return "", err
	}
	ct := strings.ToLower(contentType)
	if ct != "" && !strings.HasPrefix(ct, "text/") && !strings.Contains(ct, "css") {
		return "", fmt.Errorf("unexpected content type for CSS: %s", contentType)
	}
	return string(body), nil
}

// ResolveURL resolves a possibly-relative URI against a base URL.
func ResolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// IsNetworkURL reports whether s looks like an HTTP or HTTPS URL.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
