package domain

import "time"

// Item represents an ingested news article
type Item struct {
	ID         int64
	SourceID   int64
	SourceName string
	Title      string
	Summary    string
	URL        string
	Published  time.Time
	TopicID    *int64 // nil until the clustering engine assigns the item
	Favorite   bool
	CreatedAt  time.Time
}

// Text returns the text used for relevance checks and embedding
func (i Item) Text() string {
	return joinText(i.Title, i.Summary)
}

// Source represents a feed the ingestion polls
type Source struct {
	ID     int64
	Name   string
	URL    string
	Type   string
	Active bool
}

// ParsedFeed represents a parsed RSS/Atom feed
type ParsedFeed struct {
	Title string
	Link  string
	Items []ParsedItem
}

// ParsedItem represents a single entry of a parsed feed
type ParsedItem struct {
	GUID        string
	Title       string
	Link        string
	Description string
	Content     string
	Published   time.Time
}

func joinText(title, summary string) string {
	switch {
	case summary == "":
		return title
	case title == "":
		return summary
	}
	return title + ". " + summary
}
