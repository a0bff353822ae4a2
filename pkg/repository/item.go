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

// ItemRepository handles item-related database operations
type ItemRepository struct {
	db *sqlx.DB
}

// itemSQL represents an item for SQL operations
type itemSQL struct {
	ID          int64         `db:"id"`
	SourceID    int64         `db:"source_id"`
	Title       string        `db:"title"`
	Summary     string        `db:"summary"`
	URL         string        `db:"url"`
	Published   sql.NullTime  `db:"published"`
	TopicID     sql.NullInt64 `db:"topic_id"`
	Favorite    bool          `db:"favorite"`
	FilteredSig string        `db:"filtered_sig"`
	CreatedAt   time.Time     `db:"created_at"`

	// joined data (not stored in items, populated by queries)
	SourceName string `db:"source_name"`
}

const itemColumns = `i.id, i.source_id, i.title, i.summary, i.url, i.published, i.topic_id, i.favorite,
	i.filtered_sig, i.created_at, COALESCE(s.name, '') AS source_name`

// NewItemRepository creates a new item repository
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// CreateItems inserts items, skipping the ones with an already known url. Returns the number of new items.
func (r *ItemRepository) CreateItems(ctx context.Context, items []domain.Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	var created int
	err := retryOnLock(ctx, func() error {
		created = 0
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return classify(fmt.Errorf("begin transaction: %w", err))
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		query := `
			INSERT INTO items (source_id, title, summary, url, published, created_at)
			VALUES (:source_id, :title, :summary, :url, :published, :created_at)
			ON CONFLICT(url) DO NOTHING
		`
		now := time.Now().UTC()
		for _, it := range items {
			rec := itemSQL{SourceID: it.SourceID, Title: it.Title, Summary: it.Summary, URL: it.URL,
				Published: sql.NullTime{Time: it.Published.UTC(), Valid: !it.Published.IsZero()},
				CreatedAt: now}
			res, err := tx.NamedExecContext(ctx, query, rec)
			if err != nil {
				return classify(fmt.Errorf("insert item %q: %w", it.URL, err))
			}
			if n, err := res.RowsAffected(); err == nil {
				created += int(n)
			}
		}
		if err := tx.Commit(); err != nil {
			return classify(fmt.Errorf("commit items: %w", err))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// GetItem retrieves an item by id
func (r *ItemRepository) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	var rec itemSQL
	query := "SELECT " + itemColumns + " FROM items i LEFT JOIN sources s ON s.id = i.source_id WHERE i.id = ?"
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	res := rec.toDomain()
	return &res, nil
}

// GetItems returns a page of items, newest published first
func (r *ItemRepository) GetItems(ctx context.Context, skip, limit int) ([]domain.Item, error) {
	query := "SELECT " + itemColumns + ` FROM items i LEFT JOIN sources s ON s.id = i.source_id
		ORDER BY COALESCE(i.published, i.created_at) DESC, i.id DESC
		LIMIT ? OFFSET ?`
	return r.selectItems(ctx, "get items", query, limit, skip)
}

// GetUnassignedItems returns items without a topic, oldest first.
// Items already rejected by the filter with the given signature are left out.
func (r *ItemRepository) GetUnassignedItems(ctx context.Context, filterSig string) ([]domain.Item, error) {
	query := "SELECT " + itemColumns + ` FROM items i LEFT JOIN sources s ON s.id = i.source_id
		WHERE i.topic_id IS NULL AND i.filtered_sig != ?
		ORDER BY i.created_at ASC, i.id ASC`
	return r.selectItems(ctx, "get unassigned items", query, filterSig)
}

// GetTopicItems returns items of a topic in the order they joined it
func (r *ItemRepository) GetTopicItems(ctx context.Context, topicID int64) ([]domain.Item, error) {
	query := "SELECT " + itemColumns + ` FROM items i LEFT JOIN sources s ON s.id = i.source_id
		WHERE i.topic_id = ?
		ORDER BY i.created_at ASC, i.id ASC`
	return r.selectItems(ctx, "get topic items", query, topicID)
}

func (r *ItemRepository) selectItems(ctx context.Context, op, query string, args ...any) ([]domain.Item, error) {
	var recs []itemSQL
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res := make([]domain.Item, len(recs))
	for i := range recs {
		res[i] = recs[i].toDomain()
	}
	return res, nil
}

// MarkItemFiltered stamps the item as rejected by the filter with the given signature
func (r *ItemRepository) MarkItemFiltered(ctx context.Context, itemID int64, filterSig string) error {
	return retryOnLock(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, "UPDATE items SET filtered_sig = ? WHERE id = ?", filterSig, itemID); err != nil {
			return classify(fmt.Errorf("mark item filtered: %w", err))
		}
		return nil
	})
}

// AssignItem links an unassigned item to a topic. Assignment is sticky, an item that
// already has a topic is never moved and ErrNotFound is returned for it.
func (r *ItemRepository) AssignItem(ctx context.Context, itemID, topicID int64) error {
	return retryOnLock(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE items SET topic_id = ? WHERE id = ? AND topic_id IS NULL", topicID, itemID)
		if err != nil {
			return classify(fmt.Errorf("assign item: %w", err))
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return &criticalError{err: fmt.Errorf("unassigned item %d: %w", itemID, ErrNotFound)}
		}
		return nil
	})
}

// ToggleFavorite flips the favorite flag of the item and returns the new value
func (r *ItemRepository) ToggleFavorite(ctx context.Context, itemID int64) (bool, error) {
	var fav bool
	err := retryOnLock(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE items SET favorite = NOT favorite WHERE id = ?", itemID)
		if err != nil {
			return classify(fmt.Errorf("toggle favorite: %w", err))
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return &criticalError{err: fmt.Errorf("item %d: %w", itemID, ErrNotFound)}
		}
		if err := r.db.GetContext(ctx, &fav, "SELECT favorite FROM items WHERE id = ?", itemID); err != nil {
			return classify(fmt.Errorf("get favorite: %w", err))
		}
		return nil
	})
	return fav, err
}

// CountItems returns the total number of items and the number of items assigned to a topic
func (r *ItemRepository) CountItems(ctx context.Context) (total, assigned int, err error) {
	var counts struct {
		Total    int `db:"total"`
		Assigned int `db:"assigned"`
	}
	query := "SELECT COUNT(*) AS total, COUNT(topic_id) AS assigned FROM items"
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return 0, 0, fmt.Errorf("count items: %w", err)
	}
	return counts.Total, counts.Assigned, nil
}

func (rec *itemSQL) toDomain() domain.Item {
	res := domain.Item{
		ID:         rec.ID,
		SourceID:   rec.SourceID,
		SourceName: rec.SourceName,
		Title:      rec.Title,
		Summary:    rec.Summary,
		URL:        rec.URL,
		Favorite:   rec.Favorite,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.Published.Valid {
		res.Published = rec.Published.Time
	}
	if rec.TopicID.Valid {
		id := rec.TopicID.Int64
		res.TopicID = &id
	}
	return res
}
