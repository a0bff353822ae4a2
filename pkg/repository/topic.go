package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/topicscope/pkg/domain"
)

// TopicRepository handles topic-related database operations
type TopicRepository struct {
	db *sqlx.DB
}

// topicSQL represents a topic for SQL operations
type topicSQL struct {
	ID         int64        `db:"id"`
	Title      string       `db:"title"`
	Summary    string       `db:"summary"`
	Embedding  embeddingSQL `db:"embedding"`
	Popularity float64      `db:"popularity"`
	CreatedAt  time.Time    `db:"created_at"`

	// populated by listing queries only
	ItemCount int    `db:"item_count"`
	FirstURL  string `db:"first_url"`
}

// embeddingSQL is a vector stored as a JSON array, NULL for a topic without embedding
type embeddingSQL []float32

// Value implements driver.Valuer for database storage
func (e embeddingSQL) Value() (driver.Value, error) {
	if len(e) == 0 {
		return nil, nil
	}
	data, err := json.Marshal([]float32(e))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (e *embeddingSQL) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*e = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported embedding type %T", value)
	}
	if len(data) == 0 {
		*e = nil
		return nil
	}
	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		return fmt.Errorf("decode embedding: %w", err)
	}
	*e = vec
	return nil
}

const topicColumns = "t.id, t.title, t.summary, t.embedding, t.popularity, t.created_at"

// NewTopicRepository creates a new topic repository
func NewTopicRepository(db *sqlx.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// CreateTopic inserts the topic and assigns its founding item in one transaction, sets topic.ID
func (r *TopicRepository) CreateTopic(ctx context.Context, topic *domain.Topic, itemID int64) error {
	if topic.CreatedAt.IsZero() {
		topic.CreatedAt = time.Now().UTC()
	}
	rec := topicSQL{Title: topic.Title, Summary: topic.Summary, Embedding: topic.Embedding,
		Popularity: topic.Popularity, CreatedAt: topic.CreatedAt.UTC()}

	return retryOnLock(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return classify(fmt.Errorf("begin transaction: %w", err))
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		query := `
			INSERT INTO topics (title, summary, embedding, popularity, created_at)
			VALUES (:title, :summary, :embedding, :popularity, :created_at)
		`
		res, err := tx.NamedExecContext(ctx, query, rec)
		if err != nil {
			return classify(fmt.Errorf("insert topic: %w", err))
		}
		id, err := res.LastInsertId()
		if err != nil {
			return classify(fmt.Errorf("get insert id: %w", err))
		}

		upd, err := tx.ExecContext(ctx, "UPDATE items SET topic_id = ? WHERE id = ? AND topic_id IS NULL", id, itemID)
		if err != nil {
			return classify(fmt.Errorf("assign founding item: %w", err))
		}
		if n, err := upd.RowsAffected(); err == nil && n == 0 {
			return &criticalError{err: fmt.Errorf("unassigned item %d: %w", itemID, ErrNotFound)}
		}

		if err := tx.Commit(); err != nil {
			return classify(fmt.Errorf("commit topic: %w", err))
		}
		topic.ID = id
		return nil
	})
}

// GetTopic retrieves a topic by id
func (r *TopicRepository) GetTopic(ctx context.Context, id int64) (*domain.Topic, error) {
	var rec topicSQL
	if err := r.db.GetContext(ctx, &rec, "SELECT "+topicColumns+" FROM topics t WHERE t.id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("topic %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get topic: %w", err)
	}
	res := rec.toDomain()
	return &res, nil
}

// GetRecentTopics returns up to limit topics, newest first
func (r *TopicRepository) GetRecentTopics(ctx context.Context, limit int) ([]domain.Topic, error) {
	var recs []topicSQL
	query := "SELECT " + topicColumns + " FROM topics t ORDER BY t.created_at DESC, t.id DESC LIMIT ?"
	if err := r.db.SelectContext(ctx, &recs, query, limit); err != nil {
		return nil, fmt.Errorf("get recent topics: %w", err)
	}
	res := make([]domain.Topic, len(recs))
	for i := range recs {
		res[i] = recs[i].toDomain()
	}
	return res, nil
}

// GetTopics returns up to limit topics by popularity, with item count and the url of the earliest item
func (r *TopicRepository) GetTopics(ctx context.Context, limit int) ([]domain.TopicView, error) {
	query := "SELECT " + topicColumns + `,
		(SELECT COUNT(*) FROM items i WHERE i.topic_id = t.id) AS item_count,
		COALESCE((SELECT i.url FROM items i WHERE i.topic_id = t.id ORDER BY i.created_at, i.id LIMIT 1), '') AS first_url
		FROM topics t
		ORDER BY t.popularity DESC, t.created_at DESC, t.id DESC
		LIMIT ?`
	var recs []topicSQL
	if err := r.db.SelectContext(ctx, &recs, query, limit); err != nil {
		return nil, fmt.Errorf("get topics: %w", err)
	}
	res := make([]domain.TopicView, len(recs))
	for i := range recs {
		res[i] = domain.TopicView{Topic: recs[i].toDomain(), ItemCount: recs[i].ItemCount, URL: recs[i].FirstURL}
	}
	return res, nil
}

// UpdateTopicEmbedding stores a backfilled embedding
func (r *TopicRepository) UpdateTopicEmbedding(ctx context.Context, topicID int64, embedding []float32) error {
	return retryOnLock(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "UPDATE topics SET embedding = ? WHERE id = ?", embeddingSQL(embedding), topicID)
		if err != nil {
			return classify(fmt.Errorf("update topic embedding: %w", err))
		}
		return nil
	})
}

// UpdateTopicPopularity stores a recomputed popularity score
func (r *TopicRepository) UpdateTopicPopularity(ctx context.Context, topicID int64, score float64) error {
	return retryOnLock(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, "UPDATE topics SET popularity = ? WHERE id = ?", score, topicID); err != nil {
			return classify(fmt.Errorf("update topic popularity: %w", err))
		}
		return nil
	})
}

// GetTopicStats counts member items and distinct sources of the topic
func (r *TopicRepository) GetTopicStats(ctx context.Context, topicID int64) (domain.TopicStats, error) {
	var stats struct {
		Items   int `db:"items"`
		Sources int `db:"sources"`
	}
	query := "SELECT COUNT(*) AS items, COUNT(DISTINCT source_id) AS sources FROM items WHERE topic_id = ?"
	if err := r.db.GetContext(ctx, &stats, query, topicID); err != nil {
		return domain.TopicStats{}, fmt.Errorf("get topic stats: %w", err)
	}
	return domain.TopicStats{Items: stats.Items, Sources: stats.Sources}, nil
}

// CountTopics returns the number of topics
func (r *TopicRepository) CountTopics(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM topics"); err != nil {
		return 0, fmt.Errorf("count topics: %w", err)
	}
	return count, nil
}

func (rec *topicSQL) toDomain() domain.Topic {
	return domain.Topic{
		ID:         rec.ID,
		Title:      rec.Title,
		Summary:    rec.Summary,
		Embedding:  []float32(rec.Embedding),
		Popularity: rec.Popularity,
		CreatedAt:  rec.CreatedAt,
	}
}
