package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/topicscope/pkg/content"
	"github.com/umputun/topicscope/pkg/domain"
)

// Parser fetches and parses RSS/Atom feeds
type Parser struct {
	client    *http.Client
	userAgent string
}

// NewParser creates a new feed parser
func NewParser(timeout time.Duration, userAgent string) *Parser {
	if userAgent == "" {
		userAgent = content.DefaultUserAgent
	}
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Parse fetches a feed from the given URL and converts its entries, feed order is kept
func (p *Parser) Parse(ctx context.Context, url string) (*domain.ParsedFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	content.SetBrowserHeaders(req, p.userAgent, content.AcceptFeed)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status code %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	res := &domain.ParsedFeed{Title: feed.Title, Link: feed.Link, Items: make([]domain.ParsedItem, 0, len(feed.Items))}
	for _, item := range feed.Items {
		parsed := domain.ParsedItem{
			GUID:        item.GUID,
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Content:     item.Content,
		}
		if parsed.GUID == "" {
			parsed.GUID = item.Link
		}
		switch {
		case item.PublishedParsed != nil:
			parsed.Published = *item.PublishedParsed
		case item.UpdatedParsed != nil:
			parsed.Published = *item.UpdatedParsed
		}
		res.Items = append(res.Items, parsed)
	}
	return res, nil
}
