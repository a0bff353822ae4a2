// Package service binds repositories into the interfaces used by the clusterer, scheduler and server
package service

import (
	"context"
	"fmt"

	"github.com/umputun/topicscope/pkg/domain"
	"github.com/umputun/topicscope/pkg/repository"
)

// Service provides unified access to repositories
type Service struct {
	repos *repository.Repositories
}

// New creates a service on top of repositories
func New(repos *repository.Repositories) *Service {
	return &Service{repos: repos}
}

// clustering store

func (s *Service) GetUnassignedItems(ctx context.Context, filterSig string) ([]domain.Item, error) {
	return s.repos.Item.GetUnassignedItems(ctx, filterSig)
}

func (s *Service) MarkItemFiltered(ctx context.Context, itemID int64, filterSig string) error {
	return s.repos.Item.MarkItemFiltered(ctx, itemID, filterSig)
}

func (s *Service) GetRecentTopics(ctx context.Context, limit int) ([]domain.Topic, error) {
	return s.repos.Topic.GetRecentTopics(ctx, limit)
}

func (s *Service) UpdateTopicEmbedding(ctx context.Context, topicID int64, embedding []float32) error {
	return s.repos.Topic.UpdateTopicEmbedding(ctx, topicID, embedding)
}

func (s *Service) CreateTopic(ctx context.Context, topic *domain.Topic, itemID int64) error {
	return s.repos.Topic.CreateTopic(ctx, topic, itemID)
}

func (s *Service) AssignItem(ctx context.Context, itemID, topicID int64) error {
	return s.repos.Item.AssignItem(ctx, itemID, topicID)
}

func (s *Service) GetTopicStats(ctx context.Context, topicID int64) (domain.TopicStats, error) {
	return s.repos.Topic.GetTopicStats(ctx, topicID)
}

func (s *Service) UpdateTopicPopularity(ctx context.Context, topicID int64, score float64) error {
	return s.repos.Topic.UpdateTopicPopularity(ctx, topicID, score)
}

// ingestion and run history

func (s *Service) GetActiveSources(ctx context.Context) ([]domain.Source, error) {
	return s.repos.Source.GetSources(ctx, true)
}

func (s *Service) UpsertSource(ctx context.Context, source *domain.Source) error {
	return s.repos.Source.UpsertSource(ctx, source)
}

func (s *Service) CreateItems(ctx context.Context, items []domain.Item) (int, error) {
	return s.repos.Item.CreateItems(ctx, items)
}

func (s *Service) SaveRun(ctx context.Context, summary domain.RunSummary, runErr error) error {
	return s.repos.Run.SaveRun(ctx, summary, runErr)
}

// presentation

func (s *Service) GetTopics(ctx context.Context, limit int) ([]domain.TopicView, error) {
	return s.repos.Topic.GetTopics(ctx, limit)
}

func (s *Service) GetTopic(ctx context.Context, topicID int64) (*domain.Topic, error) {
	return s.repos.Topic.GetTopic(ctx, topicID)
}

func (s *Service) GetTopicItems(ctx context.Context, topicID int64) ([]domain.Item, error) {
	return s.repos.Item.GetTopicItems(ctx, topicID)
}

func (s *Service) GetItems(ctx context.Context, skip, limit int) ([]domain.Item, error) {
	return s.repos.Item.GetItems(ctx, skip, limit)
}

func (s *Service) ToggleFavorite(ctx context.Context, itemID int64) (bool, error) {
	return s.repos.Item.ToggleFavorite(ctx, itemID)
}

// GetStats collects overall counters and the last run summary
func (s *Service) GetStats(ctx context.Context) (domain.Stats, error) {
	var res domain.Stats
	var err error
	if res.Items, res.AssignedItems, err = s.repos.Item.CountItems(ctx); err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	if res.Topics, err = s.repos.Topic.CountTopics(ctx); err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	if res.ActiveSources, err = s.repos.Source.CountActive(ctx); err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	if res.LastRun, err = s.repos.Run.GetLastRun(ctx); err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return res, nil
}
