package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/topicscope/pkg/domain"
)

// Generator renders topics as an RSS 2.0 feed
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// TopicsRSS creates an RSS feed with one entry per topic, in the given order
func (g *Generator) TopicsRSS(topics []domain.TopicView) (string, error) {
	items := make([]*RSSItem, 0, len(topics))
	for _, t := range topics {
		items = append(items, g.topicItem(t))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         "Topicscope - Popular Topics",
			Link:          g.baseURL + "/",
			Description:   "News topics ranked by popularity",
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss/topics", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

func (g *Generator) topicItem(t domain.TopicView) *RSSItem {
	link := t.URL
	if link == "" {
		link = g.baseURL + "/"
	}
	desc := fmt.Sprintf("Popularity: %.1f, articles: %d", t.Popularity, t.ItemCount)
	if t.Summary != "" {
		desc += "\n\n" + t.Summary
	}
	return &RSSItem{
		Title:       t.Title,
		Link:        link,
		GUID:        fmt.Sprintf("%s/topics/%d", g.baseURL, t.ID),
		Description: desc,
		PubDate:     t.CreatedAt.Format(time.RFC1123Z),
	}
}
