package cluster

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/topicscope/pkg/cluster/mocks"
	"github.com/umputun/topicscope/pkg/domain"
	"github.com/umputun/topicscope/pkg/filter"
)

// memStore is an in-memory Store keeping items and topics the way the sql store does
type memStore struct {
	mu       sync.Mutex
	items    []domain.Item
	filtered map[int64]string
	topics   []domain.Topic
	lastID   int64
	failOn   string
}

func newMemStore(items ...domain.Item) *memStore {
	return &memStore{items: items, filtered: map[int64]string{}}
}

func (s *memStore) fail(op string) error {
	if s.failOn == op {
		return fmt.Errorf("%s: disk I/O error", op)
	}
	return nil
}

func (s *memStore) GetUnassignedItems(_ context.Context, sig string) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("unassigned"); err != nil {
		return nil, err
	}
	var res []domain.Item
	for _, it := range s.items {
		if it.TopicID != nil || s.filtered[it.ID] == sig {
			continue
		}
		res = append(res, it)
	}
	return res, nil
}

func (s *memStore) MarkItemFiltered(_ context.Context, itemID int64, sig string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filtered[itemID] = sig
	return s.fail("filtered")
}

func (s *memStore) GetRecentTopics(_ context.Context, limit int) ([]domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := append([]domain.Topic(nil), s.topics...)
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID > res[j].ID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (s *memStore) UpdateTopicEmbedding(_ context.Context, topicID int64, vec []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("embedding"); err != nil {
		return err
	}
	for i := range s.topics {
		if s.topics[i].ID == topicID {
			s.topics[i].Embedding = vec
		}
	}
	return nil
}

func (s *memStore) CreateTopic(_ context.Context, topic *domain.Topic, itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("create"); err != nil {
		return err
	}
	s.lastID++
	topic.ID = s.lastID
	s.topics = append(s.topics, *topic)
	s.setTopic(itemID, topic.ID)
	return nil
}

func (s *memStore) AssignItem(_ context.Context, itemID, topicID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("assign"); err != nil {
		return err
	}
	s.setTopic(itemID, topicID)
	return nil
}

func (s *memStore) setTopic(itemID, topicID int64) {
	for i := range s.items {
		if s.items[i].ID == itemID && s.items[i].TopicID == nil {
			id := topicID
			s.items[i].TopicID = &id
		}
	}
}

func (s *memStore) GetTopicStats(_ context.Context, topicID int64) (domain.TopicStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := domain.TopicStats{}
	sources := map[int64]bool{}
	for _, it := range s.items {
		if it.TopicID != nil && *it.TopicID == topicID {
			res.Items++
			sources[it.SourceID] = true
		}
	}
	res.Sources = len(sources)
	return res, nil
}

func (s *memStore) UpdateTopicPopularity(_ context.Context, topicID int64, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("popularity"); err != nil {
		return err
	}
	for i := range s.topics {
		if s.topics[i].ID == topicID {
			s.topics[i].Popularity = score
		}
	}
	return nil
}

func (s *memStore) topic(id int64) domain.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.topics {
		if t.ID == id {
			return t
		}
	}
	return domain.Topic{}
}

// vecEmbedder returns preset vectors by text, unknown text is an api failure
type vecEmbedder struct {
	vectors map[string][]float32
	calls   []string
}

func (e *vecEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.calls = append(e.calls, text)
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("no vector for %q", text)
}

func defaultFilter(t *testing.T) *filter.Filter {
	f, err := filter.New(filter.DefaultKeywords, filter.DefaultExcludePatterns)
	require.NoError(t, err)
	return f
}

func newTestClusterer(t *testing.T, store Store, emb Embedder, threshold float64, poolSize int) *Clusterer {
	c := New(Params{Store: store, Embedder: emb, Filter: defaultFilter(t), Threshold: threshold, PoolSize: poolSize, Scorer: DefaultScorer()})
	ts := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time {
		ts = ts.Add(time.Second)
		return ts
	}
	return c
}

func item(id, sourceID int64, title, summary string) domain.Item {
	return domain.Item{ID: id, SourceID: sourceID, Title: title, Summary: summary, URL: fmt.Sprintf("https://example.com/%d", id)}
}

func TestClusterer_FirstItemCreatesTopic(t *testing.T) {
	it := item(1, 1, "OpenAI unveils a new reasoning model: benchmarks inside", "The LLM tops leaderboards.")
	store := newMemStore(it)
	emb := &vecEmbedder{vectors: map[string][]float32{it.Text(): {1, 0}}}

	summary, err := newTestClusterer(t, store, emb, 0.78, 30).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TopicsCreated)
	assert.Equal(t, 0, summary.ItemsAssigned)
	assert.Equal(t, 0, summary.ItemsSkipped)
	assert.NotEmpty(t, summary.RunID)
	assert.True(t, summary.FinishedAt.After(summary.StartedAt))
	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, domain.OutcomeCreated, summary.Outcomes[0].Action)
	assert.Equal(t, 0, summary.Outcomes[0].Candidates)

	require.Len(t, store.topics, 1)
	topic := store.topics[0]
	assert.Equal(t, "OpenAI unveils a new reasoning model", topic.Title)
	assert.Equal(t, "The LLM tops leaderboards.", topic.Summary)
	assert.InDelta(t, 10.0, topic.Popularity, 1e-9)
	assert.Equal(t, []float32{1, 0}, topic.Embedding)
	require.NotNil(t, store.items[0].TopicID)
	assert.Equal(t, topic.ID, *store.items[0].TopicID)
}

func TestClusterer_SimilarItemJoinsTopic(t *testing.T) {
	founder := item(1, 1, "New transformer architecture announced", "Researchers publish a faster model.")
	topicID := int64(1)
	founder.TopicID = &topicID
	it := item(2, 2, "Faster transformer model released", "Open weights for the new architecture.")

	store := newMemStore(founder, it)
	store.lastID = 1
	store.topics = []domain.Topic{{ID: 1, Title: "New transformer architecture announced", Embedding: []float32{1, 0},
		Popularity: 10, CreatedAt: time.Now()}}
	emb := &vecEmbedder{vectors: map[string][]float32{it.Text(): unit(0.81)}}

	summary, err := newTestClusterer(t, store, emb, 0.78, 30).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TopicsCreated)
	assert.Equal(t, 1, summary.ItemsAssigned)
	require.Len(t, summary.Outcomes, 1)
	out := summary.Outcomes[0]
	assert.Equal(t, domain.OutcomeAssigned, out.Action)
	assert.Equal(t, int64(1), out.TopicID)
	assert.InDelta(t, 0.81, out.Similarity, 1e-6)

	stats, err := store.GetTopicStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TopicStats{Items: 2, Sources: 2}, stats)
	assert.InDelta(t, DefaultScorer().Score(stats), store.topic(1).Popularity, 1e-9)
	assert.InDelta(t, 28.0, store.topic(1).Popularity, 1e-9)
}

func TestClusterer_ExcludedItemNeverEmbedded(t *testing.T) {
	it := item(1, 1, "Who's hiring — monthly thread", "Post your AI jobs here")
	store := newMemStore(it)
	emb := &vecEmbedder{}

	c := newTestClusterer(t, store, emb, 0.78, 30)
	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, emb.calls)
	assert.Equal(t, 1, summary.ItemsFiltered)
	assert.Equal(t, 1, summary.ItemsSkipped)
	assert.Equal(t, 0, summary.TopicsCreated)
	assert.Equal(t, domain.OutcomeFiltered, summary.Outcomes[0].Action)
	assert.Empty(t, store.topics)
	assert.Nil(t, store.items[0].TopicID)
	assert.Equal(t, defaultFilter(t).Signature(), store.filtered[1])

	// filtered under the same filter, not picked up again
	summary, err = c.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary.Outcomes)
}

func TestClusterer_DissimilarItemCreatesTopic(t *testing.T) {
	it := item(2, 1, "Robotics lab shows a walking robot", "A new humanoid platform.")
	store := newMemStore(it)
	store.lastID = 1
	store.topics = []domain.Topic{{ID: 1, Title: "LLM pricing war", Embedding: []float32{1, 0}, Popularity: 10,
		CreatedAt: time.Now()}}
	emb := &vecEmbedder{vectors: map[string][]float32{it.Text(): unit(0.65)}}

	summary, err := newTestClusterer(t, store, emb, 0.78, 30).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TopicsCreated)
	require.Len(t, summary.Outcomes, 1)
	out := summary.Outcomes[0]
	assert.Equal(t, domain.OutcomeCreated, out.Action)
	assert.Equal(t, int64(2), out.TopicID)
	assert.InDelta(t, 0.65, out.Similarity, 1e-6)
	assert.Equal(t, 1, out.Candidates)
	assert.Len(t, store.topics, 2)
}

func TestClusterer_ItemsSeeTopicsCreatedInSameRun(t *testing.T) {
	a := item(1, 1, "OpenAI releases GPT update", "The LLM got faster.")
	b := item(2, 2, "GPT update from OpenAI is out", "Faster LLM for everyone.")
	c := item(3, 3, "Robotics funding round", "Robot startup raised money.")
	store := newMemStore(a, b, c)
	emb := &vecEmbedder{vectors: map[string][]float32{
		a.Text(): {1, 0},
		b.Text(): unit(0.9),
		c.Text(): {0, 1},
	}}

	summary, err := newTestClusterer(t, store, emb, 0.78, 30).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TopicsCreated)
	assert.Equal(t, 1, summary.ItemsAssigned)
	require.Len(t, summary.Outcomes, 3)
	assert.Equal(t, domain.OutcomeCreated, summary.Outcomes[0].Action)
	assert.Equal(t, domain.OutcomeAssigned, summary.Outcomes[1].Action)
	assert.Equal(t, summary.Outcomes[0].TopicID, summary.Outcomes[1].TopicID)
	assert.Equal(t, domain.OutcomeCreated, summary.Outcomes[2].Action)

	for _, it := range store.items {
		require.NotNil(t, it.TopicID, "item %d", it.ID)
	}
}

func TestClusterer_PoolBound(t *testing.T) {
	// four mutually orthogonal items, pool of two, every item founds a topic
	var items []domain.Item
	vectors := map[string][]float32{}
	for i := 1; i <= 4; i++ {
		it := item(int64(i), 1, fmt.Sprintf("AI story %d", i), "")
		items = append(items, it)
		v := make([]float32, 4)
		v[i-1] = 1
		vectors[it.Text()] = v
	}
	store := newMemStore(items...)

	summary, err := newTestClusterer(t, store, &vecEmbedder{vectors: vectors}, 0.78, 2).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TopicsCreated)
	for _, out := range summary.Outcomes {
		assert.LessOrEqual(t, out.Candidates, 2)
	}
	assert.Equal(t, 2, summary.Outcomes[3].Candidates)
}

func TestClusterer_PoolDropsOldestTopic(t *testing.T) {
	// first item founds topic A, two more topics push A out of a pool of two,
	// so the last item, identical to A, founds a new topic instead of joining A
	a := item(1, 1, "AI chip news", "")
	b := item(2, 1, "Robotics arm demo", "")
	c := item(3, 1, "NLP benchmark results", "")
	d := item(4, 1, "AI chip follow-up", "")
	store := newMemStore(a, b, c, d)
	emb := &vecEmbedder{vectors: map[string][]float32{
		a.Text(): {1, 0, 0}, b.Text(): {0, 1, 0}, c.Text(): {0, 0, 1}, d.Text(): {1, 0, 0},
	}}

	summary, err := newTestClusterer(t, store, emb, 0.78, 2).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TopicsCreated)
	assert.Equal(t, 0, summary.ItemsAssigned)
}

func TestClusterer_BackfillsTopicEmbedding(t *testing.T) {
	it := item(2, 2, "Anthropic ships new model", "Claude gets better.")
	store := newMemStore(it)
	store.lastID = 1
	store.topics = []domain.Topic{{ID: 1, Title: "Anthropic model launch", Summary: "New model.", CreatedAt: time.Now()}}
	emb := &vecEmbedder{vectors: map[string][]float32{
		"Anthropic model launch. New model.": {1, 0},
		it.Text():                            unit(0.95),
	}}

	summary, err := newTestClusterer(t, store, emb, 0.78, 30).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ItemsAssigned)
	assert.Equal(t, []float32{1, 0}, store.topic(1).Embedding)
}

func TestClusterer_BackfillFailureExcludesTopic(t *testing.T) {
	a := item(2, 2, "Anthropic ships new model", "Claude gets better.")
	b := item(3, 2, "Anthropic model follow-up", "More details.")
	store := newMemStore(a, b)
	store.lastID = 1
	store.topics = []domain.Topic{{ID: 1, Title: "broken topic", CreatedAt: time.Now()}}
	emb := &vecEmbedder{vectors: map[string][]float32{a.Text(): {1, 0}, b.Text(): {1, 0}}}

	summary, err := newTestClusterer(t, store, emb, 0.78, 30).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TopicsCreated)
	assert.Equal(t, 1, summary.ItemsAssigned)
	assert.Nil(t, store.topic(1).Embedding)

	backfills := 0
	for _, call := range emb.calls {
		if call == "broken topic" {
			backfills++
		}
	}
	assert.Equal(t, 1, backfills, "failed backfill is not retried within a run")
}

func TestClusterer_EmbedFailureSkipsItem(t *testing.T) {
	a := item(1, 1, "AI item without vector", "")
	b := item(2, 1, "AI item with vector", "")
	store := newMemStore(a, b)
	emb := &vecEmbedder{vectors: map[string][]float32{b.Text(): {1, 0}}}

	summary, err := newTestClusterer(t, store, emb, 0.78, 30).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.EmbedFailures)
	assert.Equal(t, 1, summary.ItemsSkipped)
	assert.Equal(t, 1, summary.TopicsCreated)
	assert.Equal(t, domain.OutcomeEmbedFailed, summary.Outcomes[0].Action)
	assert.Contains(t, summary.Outcomes[0].Reason, "no vector")
	assert.Nil(t, store.items[0].TopicID)
}

func TestClusterer_StoreErrors(t *testing.T) {
	for _, op := range []string{"unassigned", "filtered", "create", "assign", "popularity", "embedding"} {
		t.Run(op, func(t *testing.T) {
			founder := item(1, 1, "AI founder", "")
			topicID := int64(1)
			founder.TopicID = &topicID
			noise := item(2, 1, "Weekly thread about AI", "")
			joiner := item(3, 1, "AI joiner", "")
			store := newMemStore(founder, noise, joiner)
			store.lastID = 1
			store.topics = []domain.Topic{{ID: 1, Title: "AI founder", CreatedAt: time.Now()}}
			if op != "embedding" {
				store.topics[0].Embedding = []float32{1, 0}
			}
			if op == "create" {
				store.topics = nil
			}
			store.failOn = op
			emb := &vecEmbedder{vectors: map[string][]float32{"AI founder": {1, 0}, joiner.Text(): {1, 0}}}

			_, err := newTestClusterer(t, store, emb, 0.78, 30).Run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "disk I/O error")
		})
	}
}

func TestClusterer_PartialSummaryOnStoreError(t *testing.T) {
	a := item(1, 1, "AI story one", "")
	b := item(2, 1, "AI story two", "")
	store := &mocks.StoreMock{
		GetUnassignedItemsFunc: func(context.Context, string) ([]domain.Item, error) { return []domain.Item{a, b}, nil },
		GetRecentTopicsFunc:    func(context.Context, int) ([]domain.Topic, error) { return nil, nil },
		CreateTopicFunc: func(_ context.Context, topic *domain.Topic, itemID int64) error {
			if itemID == 2 {
				return errors.New("database is locked")
			}
			topic.ID = 100
			return nil
		},
	}
	emb := &mocks.EmbedderMock{EmbedFunc: func(_ context.Context, text string) ([]float32, error) {
		if text == a.Text() {
			return []float32{1, 0}, nil
		}
		return []float32{0, 1}, nil
	}}

	summary, err := newTestClusterer(t, store, emb, 0.78, 30).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 2: create topic: database is locked")
	assert.Equal(t, 1, summary.TopicsCreated)
	assert.Len(t, summary.Outcomes, 1)
	assert.False(t, summary.FinishedAt.IsZero())
	assert.Len(t, store.CreateTopicCalls(), 2)
}

func TestClusterer_CanceledContextStopsRun(t *testing.T) {
	store := newMemStore(item(1, 1, "AI story", ""))
	emb := &mocks.EmbedderMock{EmbedFunc: func(context.Context, string) ([]float32, error) {
		return []float32{1}, nil
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := newTestClusterer(t, store, emb, 0.78, 30).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, summary.Outcomes)
	assert.Empty(t, emb.EmbedCalls())
}

func TestClusterer_NoItems(t *testing.T) {
	store := &mocks.StoreMock{
		GetUnassignedItemsFunc: func(context.Context, string) ([]domain.Item, error) { return nil, nil },
	}
	flt := &mocks.FilterMock{SignatureFunc: func() string { return "sig" }}
	c := New(Params{Store: store, Embedder: &mocks.EmbedderMock{}, Filter: flt, Threshold: 0.78, PoolSize: 30, Scorer: DefaultScorer()})

	summary, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary.Outcomes)
	require.Len(t, store.GetUnassignedItemsCalls(), 1)
	assert.Equal(t, "sig", store.GetUnassignedItemsCalls()[0].FilterSig)
}

func TestClusterer_AtMostOneAssignment(t *testing.T) {
	// run twice over the same store with different thresholds, assigned items are never reprocessed
	items := []domain.Item{item(1, 1, "AI one", ""), item(2, 2, "AI two", ""), item(3, 3, "AI three", "")}
	store := newMemStore(items...)
	emb := &vecEmbedder{vectors: map[string][]float32{
		items[0].Text(): {1, 0}, items[1].Text(): unit(0.8), items[2].Text(): unit(0.6),
	}}

	first, err := newTestClusterer(t, store, emb, 0.78, 30).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, first.Outcomes, 3)

	second, err := newTestClusterer(t, store, emb, 0.5, 30).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second.Outcomes)
	assert.Equal(t, 3, len(emb.calls))
}
