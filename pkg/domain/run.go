package domain

import "time"

// OutcomeAction describes what happened to an item during a clustering run
type OutcomeAction string

const (
	OutcomeFiltered    OutcomeAction = "filtered"
	OutcomeEmbedFailed OutcomeAction = "embed_failed"
	OutcomeAssigned    OutcomeAction = "assigned"
	OutcomeCreated     OutcomeAction = "created"
)

// ItemOutcome records the decision made for a single item.
// Similarity is the best candidate similarity seen, kept even when it was below the threshold.
type ItemOutcome struct {
	ItemID     int64
	Action     OutcomeAction
	TopicID    int64
	Similarity float64
	Candidates int
	Reason     string
}

// RunSummary summarizes one clustering run
type RunSummary struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    time.Time
	TopicsCreated int
	ItemsAssigned int
	ItemsSkipped  int
	ItemsFiltered int
	EmbedFailures int
	Outcomes      []ItemOutcome
}

// Add accounts a single item outcome in the summary
func (s *RunSummary) Add(o ItemOutcome) {
	switch o.Action {
	case OutcomeFiltered:
		s.ItemsFiltered++
		s.ItemsSkipped++
	case OutcomeEmbedFailed:
		s.EmbedFailures++
		s.ItemsSkipped++
	case OutcomeAssigned:
		s.ItemsAssigned++
	case OutcomeCreated:
		s.TopicsCreated++
	}
	s.Outcomes = append(s.Outcomes, o)
}
