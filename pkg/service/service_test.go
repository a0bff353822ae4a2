package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/topicscope/pkg/cluster"
	"github.com/umputun/topicscope/pkg/domain"
	"github.com/umputun/topicscope/pkg/filter"
	"github.com/umputun/topicscope/pkg/repository"
)

// staticEmbedder maps known texts to vectors
type staticEmbedder map[string][]float32

func (e staticEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if v, ok := e[text]; ok {
		return v, nil
	}
	return nil, assert.AnError
}

func setupService(t *testing.T) *Service {
	t.Helper()
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return New(repos)
}

func TestService_ClusteringOverSQLite(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	hn := domain.Source{Name: "hn", URL: "https://hn.example.com/rss", Active: true}
	arxiv := domain.Source{Name: "arxiv", URL: "https://arxiv.example.com/rss", Active: true}
	require.NoError(t, svc.UpsertSource(ctx, &hn))
	require.NoError(t, svc.UpsertSource(ctx, &arxiv))

	items := []domain.Item{
		{SourceID: hn.ID, Title: "OpenAI ships a new model: details", Summary: "LLM news.", URL: "https://a/1"},
		{SourceID: arxiv.ID, Title: "New OpenAI model benchmarked", Summary: "LLM evals.", URL: "https://a/2"},
		{SourceID: hn.ID, Title: "Who's hiring AI engineers, monthly thread", Summary: "jobs", URL: "https://a/3"},
		{SourceID: hn.ID, Title: "Robotics arm folds laundry", Summary: "Robot demo.", URL: "https://a/4"},
	}
	n, err := svc.CreateItems(ctx, items)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	emb := staticEmbedder{
		"OpenAI ships a new model: details. LLM news.": {1, 0},
		"New OpenAI model benchmarked. LLM evals.":     {0.9, 0.1},
		"Robotics arm folds laundry. Robot demo.":      {0, 1},
	}
	flt, err := filter.New(filter.DefaultKeywords, filter.DefaultExcludePatterns)
	require.NoError(t, err)
	c := cluster.New(cluster.Params{Store: svc, Embedder: emb, Filter: flt, Threshold: 0.78, PoolSize: 30,
		Scorer: cluster.DefaultScorer()})

	summary, err := c.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TopicsCreated)
	assert.Equal(t, 1, summary.ItemsAssigned)
	assert.Equal(t, 1, summary.ItemsFiltered)
	require.NoError(t, svc.SaveRun(ctx, summary, nil))

	topics, err := svc.GetTopics(ctx, 10)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "OpenAI ships a new model", topics[0].Title)
	assert.Equal(t, 2, topics[0].ItemCount)
	assert.Equal(t, "https://a/1", topics[0].URL)
	assert.InDelta(t, 28.0, topics[0].Popularity, 1e-9)
	assert.InDelta(t, 10.0, topics[1].Popularity, 1e-9)

	topic, err := svc.GetTopic(ctx, topics[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "OpenAI ships a new model", topic.Title)
	assert.True(t, topic.Ready())

	_, err = svc.GetTopic(ctx, 9999)
	require.ErrorIs(t, err, repository.ErrNotFound)

	members, err := svc.GetTopicItems(ctx, topics[0].ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	// second run has nothing to do
	summary, err = c.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, summary.Outcomes)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Items)
	assert.Equal(t, 3, stats.AssignedItems)
	assert.Equal(t, 2, stats.Topics)
	assert.Equal(t, 2, stats.ActiveSources)
	require.NotNil(t, stats.LastRun)
	assert.Equal(t, 2, stats.LastRun.TopicsCreated)
}

func TestService_ItemsAndFavorites(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	src := domain.Source{Name: "hn", URL: "https://hn.example.com/rss", Active: true}
	require.NoError(t, svc.UpsertSource(ctx, &src))
	_, err := svc.CreateItems(ctx, []domain.Item{
		{SourceID: src.ID, Title: "older", URL: "https://a/1", Published: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{SourceID: src.ID, Title: "newer", URL: "https://a/2", Published: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	items, err := svc.GetItems(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "newer", items[0].Title)
	assert.Equal(t, "hn", items[0].SourceName)

	fav, err := svc.ToggleFavorite(ctx, items[0].ID)
	require.NoError(t, err)
	assert.True(t, fav)

	sources, err := svc.GetActiveSources(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, 1)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Nil(t, stats.LastRun)
	assert.Equal(t, 0, stats.Topics)
}
