package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/topicscope/pkg/domain"
)

// SourceRepository handles source-related database operations
type SourceRepository struct {
	db *sqlx.DB
}

// sourceSQL represents a source for SQL operations
type sourceSQL struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	URL    string `db:"url"`
	Type   string `db:"type"`
	Active bool   `db:"active"`
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// UpsertSource inserts the source or updates the existing one with the same url, sets source.ID
func (r *SourceRepository) UpsertSource(ctx context.Context, source *domain.Source) error {
	if source.Type == "" {
		source.Type = "rss"
	}
	rec := sourceSQL{Name: source.Name, URL: source.URL, Type: source.Type, Active: source.Active}
	return retryOnLock(ctx, func() error {
		query := `
			INSERT INTO sources (name, url, type, active)
			VALUES (:name, :url, :type, :active)
			ON CONFLICT(url) DO UPDATE SET
				name = excluded.name,
				type = excluded.type,
				active = excluded.active
		`
		if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
			return classify(fmt.Errorf("upsert source: %w", err))
		}
		if err := r.db.GetContext(ctx, &source.ID, "SELECT id FROM sources WHERE url = ?", source.URL); err != nil {
			return classify(fmt.Errorf("get source id: %w", err))
		}
		return nil
	})
}

// GetSources returns sources ordered by name, only active ones if activeOnly is set
func (r *SourceRepository) GetSources(ctx context.Context, activeOnly bool) ([]domain.Source, error) {
	query := "SELECT id, name, url, type, active FROM sources"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY name, id"

	var recs []sourceSQL
	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}
	res := make([]domain.Source, len(recs))
	for i, s := range recs {
		res[i] = domain.Source{ID: s.ID, Name: s.Name, URL: s.URL, Type: s.Type, Active: s.Active}
	}
	return res, nil
}

// CountActive returns the number of active sources
func (r *SourceRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM sources WHERE active = 1"); err != nil {
		return 0, fmt.Errorf("count active sources: %w", err)
	}
	return count, nil
}
