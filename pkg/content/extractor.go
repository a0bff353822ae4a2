// Package content pulls readable article text from web pages
package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
)

// DefaultUserAgent is sent when no user agent is configured
const DefaultUserAgent = "Mozilla/5.0 (compatible; Topicscope/1.0)"

// HTTPExtractor extracts article text from URLs using trafilatura
type HTTPExtractor struct {
	client    *http.Client
	userAgent string
	maxChars  int
}

// NewHTTPExtractor creates a new content extractor, maxChars limits the returned text (0 means no limit)
func NewHTTPExtractor(timeout time.Duration, userAgent string, maxChars int) *HTTPExtractor {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPExtractor{client: &http.Client{Timeout: timeout}, userAgent: userAgent, maxChars: maxChars}
}

// Extract retrieves the page and returns its main text as a single paragraph
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (string, error) {
	// validate URL
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %q", urlStr)
	}

	// create request with context
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	// set browser-like headers
	SetBrowserHeaders(req, e.userAgent, AcceptHTML)

	// fetch content
	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, urlStr)
	}

	// configure trafilatura options
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   true,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	}
	// extract content
	result, err := trafilatura.Extract(resp.Body, opts)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", urlStr, err)
	}
	if result == nil {
		return "", fmt.Errorf("no content extracted from %s", urlStr)
	}

	// collapse whitespace into a single paragraph
	text := strings.Join(strings.Fields(result.ContentText), " ")
	if text == "" {
		return "", fmt.Errorf("no text content extracted from %s", urlStr)
	}
	return Shorten(text, e.maxChars), nil
}

// Shorten cuts text to at most maxChars runes on a word boundary and adds an ellipsis.
// Zero or negative maxChars returns text as is.
func Shorten(text string, maxChars int) string {
	runes := []rune(text)
	if maxChars <= 0 || len(runes) <= maxChars {
		return text
	}
	cut := string(runes[:maxChars])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "..."
}
