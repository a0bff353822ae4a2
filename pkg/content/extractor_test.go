package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPExtractor_Extract(t *testing.T) {
	tests := []struct {
		name        string
		htmlContent string
		wantContent string
		wantErr     bool
		statusCode  int
	}{
		{
			name: "article text",
			htmlContent: `<!DOCTYPE html>
				<html>
				<head><title>Test Article</title></head>
				<body>
					<article>
						<h1>New transformer model</h1>
						<p>Researchers released a new transformer model that is faster than the previous one.</p>
						<p>It was trained on a large corpus and evaluated on standard benchmarks.</p>
					</article>
				</body>
				</html>`,
			wantContent: "Researchers released a new transformer model",
			statusCode:  http.StatusOK,
		},
		{name: "server error", htmlContent: "error", wantErr: true, statusCode: http.StatusInternalServerError},
		{name: "not found", htmlContent: "not found", wantErr: true, statusCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
				assert.Equal(t, AcceptHTML, r.Header.Get("Accept"))
				w.Header().Set("Content-Type", "text/html")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.htmlContent))
			}))
			defer server.Close()

			extractor := NewHTTPExtractor(10*time.Second, "test-agent", 0)
			text, err := extractor.Extract(context.Background(), server.URL)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, text, tt.wantContent)
			assert.NotContains(t, text, "\n")
		})
	}
}

func TestHTTPExtractor_Extract_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	extractor := NewHTTPExtractor(100*time.Millisecond, "", 0)
	_, err := extractor.Extract(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Client.Timeout")
}

func TestHTTPExtractor_Extract_InvalidURL(t *testing.T) {
	extractor := NewHTTPExtractor(time.Second, "", 0)
	for _, u := range []string{"", "not-a-url", "http://localhost:99999/test"} {
		t.Run(u, func(t *testing.T) {
			_, err := extractor.Extract(context.Background(), u)
			require.Error(t, err)
		})
	}
}

func TestHTTPExtractor_Extract_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHTTPExtractor(5*time.Second, "", 0).Extract(ctx, server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "short text", Shorten("short text", 100))
	assert.Equal(t, "short text", Shorten("short text", 0))
	assert.Equal(t, "one two...", Shorten("one two three four", 9))
	assert.Equal(t, "abcdef...", Shorten("abcdefghij", 6))
	assert.Equal(t, strings.Repeat("ж", 3)+"...", Shorten(strings.Repeat("ж", 10), 3))
}

func TestSetBrowserHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", http.NoBody)
	SetBrowserHeaders(req, "agent", AcceptFeed)
	assert.Equal(t, "agent", req.Header.Get("User-Agent"))
	assert.Equal(t, AcceptFeed, req.Header.Get("Accept"))
	assert.NotEmpty(t, req.Header.Get("Accept-Language"))
	assert.Empty(t, req.Header.Get("Sec-Fetch-Mode"))
	assert.Empty(t, req.Header.Get("Accept-Encoding"))
}
