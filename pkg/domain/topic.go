package domain

import "time"

// Topic is a cluster of semantically related items
type Topic struct {
	ID         int64
	Title      string
	Summary    string
	Embedding  []float32 // nil until computed or backfilled
	Popularity float64
	CreatedAt  time.Time
}

// Ready reports whether the topic has an embedding and can be matched against
func (t Topic) Ready() bool {
	return len(t.Embedding) > 0
}

// Text returns the text used to backfill the topic embedding
func (t Topic) Text() string {
	return joinText(t.Title, t.Summary)
}

// TopicStats holds aggregate membership statistics of a topic
type TopicStats struct {
	Items   int
	Sources int
}

// TopicView is a topic prepared for presentation
type TopicView struct {
	Topic
	ItemCount int
	URL       string // link of the earliest member item
}

// Stats holds overall store counters
type Stats struct {
	Items         int
	AssignedItems int
	Topics        int
	ActiveSources int
	LastRun       *RunSummary
}
