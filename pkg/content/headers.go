package content

import (
	"math/rand"
	"net/http"
)

// AcceptHTML and AcceptFeed are Accept header values for article pages and feeds
const (
	AcceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	AcceptFeed = "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,text/html;q=0.7,*/*;q=0.5"
)

var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,de;q=0.8",
	"en-US,en;q=0.9,fr;q=0.8",
}

// SetBrowserHeaders makes the request look like a regular browser one, some sites refuse bots.
// Accept-Encoding is left to the transport so responses are decompressed transparently.
func SetBrowserHeaders(req *http.Request, userAgent, accept string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // header variation only

	if rand.Float32() < 0.3 { //nolint:gosec // header variation only
		req.Header.Set("DNT", "1")
	}
	if accept == AcceptHTML {
		req.Header.Set("Sec-Fetch-Dest", "document")
		req.Header.Set("Sec-Fetch-Mode", "navigate")
		req.Header.Set("Upgrade-Insecure-Requests", "1")
	}
}
