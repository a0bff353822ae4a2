package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/topicscope/pkg/domain"
)

// RunRepository keeps the history of clustering runs
type RunRepository struct {
	db *sqlx.DB
}

// runSQL represents a clustering run for SQL operations
type runSQL struct {
	RunID         string    `db:"run_id"`
	StartedAt     time.Time `db:"started_at"`
	FinishedAt    time.Time `db:"finished_at"`
	TopicsCreated int       `db:"topics_created"`
	ItemsAssigned int       `db:"items_assigned"`
	ItemsSkipped  int       `db:"items_skipped"`
	ItemsFiltered int       `db:"items_filtered"`
	EmbedFailures int       `db:"embed_failures"`
	Error         string    `db:"error"`
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// SaveRun records a finished run, runErr is the error the run ended with, if any
func (r *RunRepository) SaveRun(ctx context.Context, summary domain.RunSummary, runErr error) error {
	rec := runSQL{
		RunID:         summary.RunID,
		StartedAt:     summary.StartedAt.UTC(),
		FinishedAt:    summary.FinishedAt.UTC(),
		TopicsCreated: summary.TopicsCreated,
		ItemsAssigned: summary.ItemsAssigned,
		ItemsSkipped:  summary.ItemsSkipped,
		ItemsFiltered: summary.ItemsFiltered,
		EmbedFailures: summary.EmbedFailures,
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	return retryOnLock(ctx, func() error {
		query := `
			INSERT OR REPLACE INTO cluster_runs (
				run_id, started_at, finished_at, topics_created, items_assigned,
				items_skipped, items_filtered, embed_failures, error
			) VALUES (
				:run_id, :started_at, :finished_at, :topics_created, :items_assigned,
				:items_skipped, :items_filtered, :embed_failures, :error
			)
		`
		if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
			return classify(fmt.Errorf("save run: %w", err))
		}
		return nil
	})
}

// GetLastRun returns the most recent run, nil if there were no runs yet
func (r *RunRepository) GetLastRun(ctx context.Context) (*domain.RunSummary, error) {
	var rec runSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM cluster_runs ORDER BY started_at DESC, run_id DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get last run: %w", err)
	}
	return &domain.RunSummary{
		RunID:         rec.RunID,
		StartedAt:     rec.StartedAt,
		FinishedAt:    rec.FinishedAt,
		TopicsCreated: rec.TopicsCreated,
		ItemsAssigned: rec.ItemsAssigned,
		ItemsSkipped:  rec.ItemsSkipped,
		ItemsFiltered: rec.ItemsFiltered,
		EmbedFailures: rec.EmbedFailures,
	}, nil
}
