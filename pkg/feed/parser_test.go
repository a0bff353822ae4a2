package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
	<title>Test Feed</title>
	<link>http://example.com</link>
	<description>Test Description</description>
	<item>
		<title>Test Article 1</title>
		<link>http://example.com/article1</link>
		<description>Article 1 description</description>
		<content:encoded><![CDATA[<p>Full content of article 1</p>]]></content:encoded>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		<guid>guid-1</guid>
	</item>
	<item>
		<title>Test Article 2</title>
		<link>http://example.com/article2</link>
		<pubDate>Tue, 03 Jan 2006 15:04:05 -0700</pubDate>
	</item>
</channel>
</rss>`

func TestParser_Parse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("Accept"), "application/rss+xml")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testRSS))
	}))
	defer server.Close()

	feed, err := NewParser(5*time.Second, "test-agent").Parse(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Test Feed", feed.Title)
	assert.Equal(t, "http://example.com", feed.Link)
	require.Len(t, feed.Items, 2)

	first := feed.Items[0]
	assert.Equal(t, "guid-1", first.GUID)
	assert.Equal(t, "Test Article 1", first.Title)
	assert.Equal(t, "http://example.com/article1", first.Link)
	assert.Equal(t, "Article 1 description", first.Description)
	assert.Equal(t, "<p>Full content of article 1</p>", first.Content)
	assert.Equal(t, 2006, first.Published.Year())

	second := feed.Items[1]
	assert.Equal(t, "http://example.com/article2", second.GUID, "link is used when guid is missing")
	assert.Empty(t, second.Description)
}

func TestParser_ParseErrors(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()
		_, err := NewParser(time.Second, "").Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("not a feed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("just text"))
		}))
		defer server.Close()
		_, err := NewParser(time.Second, "").Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("unreachable", func(t *testing.T) {
		_, err := NewParser(time.Second, "").Parse(context.Background(), "http://localhost:99999/rss")
		require.Error(t, err)
	})
}
