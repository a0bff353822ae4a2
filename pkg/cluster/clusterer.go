// Package cluster implements incremental semantic clustering of items into topics.
// Each run walks the unassigned items in order, gates them with the relevance filter,
// embeds them, and either joins the most similar recent topic or founds a new one.
package cluster

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/oklog/ulid/v2"

	"github.com/umputun/topicscope/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/embedder.go -pkg mocks -skip-ensure -fmt goimports . Embedder
//go:generate moq -out mocks/filter.go -pkg mocks -skip-ensure -fmt goimports . Filter

// Store is the persistence the clusterer depends on
type Store interface {
	GetUnassignedItems(ctx context.Context, filterSig string) ([]domain.Item, error)
	MarkItemFiltered(ctx context.Context, itemID int64, filterSig string) error
	GetRecentTopics(ctx context.Context, limit int) ([]domain.Topic, error)
	UpdateTopicEmbedding(ctx context.Context, topicID int64, embedding []float32) error
	CreateTopic(ctx context.Context, topic *domain.Topic, itemID int64) error
	AssignItem(ctx context.Context, itemID, topicID int64) error
	GetTopicStats(ctx context.Context, topicID int64) (domain.TopicStats, error)
	UpdateTopicPopularity(ctx context.Context, topicID int64, score float64) error
}

// Embedder maps text to a vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Filter gates items before embedding
type Filter interface {
	IsRelevant(title, summary string) bool
	Signature() string
}

// Params holds everything a clusterer needs. All tunables are passed explicitly,
// nothing is read from process-wide state.
type Params struct {
	Store     Store
	Embedder  Embedder
	Filter    Filter
	Threshold float64
	PoolSize  int
	Scorer    Scorer
}

// Clusterer runs clustering passes over unassigned items. Runs must not overlap on the same store,
// the caller serializes them.
type Clusterer struct {
	store    Store
	embedder Embedder
	filter   Filter
	matcher  Matcher
	poolSize int
	scorer   Scorer
	now      func() time.Time
}

// New makes a clusterer from params
func New(p Params) *Clusterer {
	return &Clusterer{
		store:    p.Store,
		embedder: p.Embedder,
		filter:   p.Filter,
		matcher:  Matcher{Threshold: p.Threshold, MaxCandidates: p.PoolSize},
		poolSize: p.PoolSize,
		scorer:   p.Scorer,
		now:      time.Now,
	}
}

// Run clusters all unassigned items. Filtered items and embedding failures are counted and skipped,
// store failures stop the run and are returned together with the summary of the work done so far.
func (c *Clusterer) Run(ctx context.Context) (domain.RunSummary, error) {
	summary := domain.RunSummary{RunID: ulid.Make().String(), StartedAt: c.now()}
	finish := func(err error) (domain.RunSummary, error) {
		summary.FinishedAt = c.now()
		return summary, err
	}

	sig := c.filter.Signature()
	items, err := c.store.GetUnassignedItems(ctx, sig)
	if err != nil {
		return finish(fmt.Errorf("get unassigned items: %w", err))
	}
	if len(items) == 0 {
		lgr.Printf("[DEBUG] run %s: no unassigned items", summary.RunID)
		return finish(nil)
	}

	topics, err := c.store.GetRecentTopics(ctx, c.poolSize)
	if err != nil {
		return finish(fmt.Errorf("get recent topics: %w", err))
	}
	p := newPool(c.store, c.embedder, c.poolSize, topics)
	lgr.Printf("[INFO] run %s: clustering %d items against %d recent topics", summary.RunID, len(items), p.size())

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return finish(fmt.Errorf("run interrupted: %w", err))
		}
		outcome, err := c.processItem(ctx, p, item, sig)
		if err != nil {
			return finish(fmt.Errorf("item %d: %w", item.ID, err))
		}
		summary.Add(outcome)
	}

	lgr.Printf("[INFO] run %s: %d topics created, %d items assigned, %d skipped (%d filtered, %d embedding failures)",
		summary.RunID, summary.TopicsCreated, summary.ItemsAssigned, summary.ItemsSkipped, summary.ItemsFiltered, summary.EmbedFailures)
	return finish(nil)
}

// processItem handles a single item. The returned error is a store failure only.
func (c *Clusterer) processItem(ctx context.Context, p *pool, item domain.Item, sig string) (domain.ItemOutcome, error) {
	outcome := domain.ItemOutcome{ItemID: item.ID}

	if !c.filter.IsRelevant(item.Title, item.Summary) {
		lgr.Printf("[INFO] skip out-of-domain item %d: %s", item.ID, shorten(item.Title, 60))
		if err := c.store.MarkItemFiltered(ctx, item.ID, sig); err != nil {
			return outcome, fmt.Errorf("mark filtered: %w", err)
		}
		outcome.Action, outcome.Reason = domain.OutcomeFiltered, "not relevant"
		return outcome, nil
	}

	vec, err := c.embedder.Embed(ctx, item.Text())
	if err != nil {
		lgr.Printf("[WARN] skip item %d, can't embed: %v", item.ID, err)
		outcome.Action, outcome.Reason = domain.OutcomeEmbedFailed, err.Error()
		return outcome, nil
	}

	cands, err := p.candidates(ctx)
	if err != nil {
		return outcome, err
	}
	m := c.matcher.Best(vec, cands)
	outcome.Similarity, outcome.Candidates = m.Similarity, m.Compared

	if m.Matched {
		if err := c.assign(ctx, item.ID, m.TopicID); err != nil {
			return outcome, err
		}
		lgr.Printf("[DEBUG] item %d joined topic %d (sim=%.3f)", item.ID, m.TopicID, m.Similarity)
		outcome.Action, outcome.TopicID = domain.OutcomeAssigned, m.TopicID
		return outcome, nil
	}

	if m.Index >= 0 {
		lgr.Printf("[DEBUG] item %d has no match, best topic %d sim=%.3f below %.3f",
			item.ID, m.TopicID, m.Similarity, c.matcher.Threshold)
	}

	topic := domain.Topic{
		Title:      TopicTitle(item.Title),
		Summary:    item.Summary,
		Embedding:  vec,
		Popularity: c.scorer.Initial,
		CreatedAt:  c.now().UTC(),
	}
	if err := c.store.CreateTopic(ctx, &topic, item.ID); err != nil {
		return outcome, fmt.Errorf("create topic: %w", err)
	}
	p.add(topic)
	lgr.Printf("[INFO] new topic %d: %s", topic.ID, topic.Title)
	outcome.Action, outcome.TopicID = domain.OutcomeCreated, topic.ID
	return outcome, nil
}

// assign links the item to the topic and refreshes the topic popularity
func (c *Clusterer) assign(ctx context.Context, itemID, topicID int64) error {
	if err := c.store.AssignItem(ctx, itemID, topicID); err != nil {
		return fmt.Errorf("assign to topic %d: %w", topicID, err)
	}
	stats, err := c.store.GetTopicStats(ctx, topicID)
	if err != nil {
		return fmt.Errorf("get stats of topic %d: %w", topicID, err)
	}
	if err := c.store.UpdateTopicPopularity(ctx, topicID, c.scorer.Score(stats)); err != nil {
		return fmt.Errorf("update popularity of topic %d: %w", topicID, err)
	}
	return nil
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
