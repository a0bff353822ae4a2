package cluster

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/topicscope/pkg/domain"
)

// pool is the per-run candidate buffer of the most recent topics, newest first.
// It is seeded once per run and extended in place as topics are created, so later items
// of the same run see topics created by earlier ones without another store round-trip.
type pool struct {
	store    Store
	embedder Embedder
	limit    int
	entries  []*poolEntry
}

type poolEntry struct {
	topic  domain.Topic
	failed bool // backfill failed, excluded for the rest of the run
}

func newPool(store Store, embedder Embedder, limit int, topics []domain.Topic) *pool {
	p := &pool{store: store, embedder: embedder, limit: limit}
	for _, t := range topics {
		if limit > 0 && len(p.entries) >= limit {
			break
		}
		p.entries = append(p.entries, &poolEntry{topic: t})
	}
	return p
}

// candidates returns ready topics in pool order, backfilling missing embeddings first.
// A failed backfill drops the topic for this run; a store failure is returned.
func (p *pool) candidates(ctx context.Context) ([]Candidate, error) {
	res := make([]Candidate, 0, len(p.entries))
	for _, e := range p.entries {
		if e.failed {
			continue
		}
		if !e.topic.Ready() {
			if err := p.backfill(ctx, e); err != nil {
				return nil, err
			}
			if e.failed {
				continue
			}
		}
		res = append(res, Candidate{TopicID: e.topic.ID, Embedding: e.topic.Embedding})
	}
	return res, nil
}

func (p *pool) backfill(ctx context.Context, e *poolEntry) error {
	vec, err := p.embedder.Embed(ctx, e.topic.Text())
	if err != nil {
		lgr.Printf("[WARN] can't backfill embedding for topic %d %q, skipped for this run: %v", e.topic.ID, e.topic.Title, err)
		e.failed = true
		return nil
	}
	if err := p.store.UpdateTopicEmbedding(ctx, e.topic.ID, vec); err != nil {
		return fmt.Errorf("save embedding of topic %d: %w", e.topic.ID, err)
	}
	e.topic.Embedding = vec
	lgr.Printf("[DEBUG] backfilled embedding for topic %d %q", e.topic.ID, e.topic.Title)
	return nil
}

// add puts a freshly created topic at the front and keeps the pool within its limit
func (p *pool) add(t domain.Topic) {
	p.entries = append([]*poolEntry{{topic: t}}, p.entries...)
	if p.limit > 0 && len(p.entries) > p.limit {
		p.entries = p.entries[:p.limit]
	}
}

func (p *pool) size() int {
	return len(p.entries)
}
