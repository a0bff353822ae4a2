package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/topicscope/pkg/domain"
	"github.com/umputun/topicscope/pkg/repository"
)

const (
	defaultTopicsLimit = 20
	defaultNewsLimit   = 20
	maxLimit           = 100
)

type topicResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Popularity float64   `json:"popularity"`
	ItemCount  int       `json:"item_count"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
}

type newsResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	URL       string    `json:"url"`
	Source    string    `json:"source"`
	Published time.Time `json:"published"`
	TopicID   *int64    `json:"topic_id"`
	Favorite  bool      `json:"favorite"`
}

type refreshResponse struct {
	NewItems      int    `json:"new_items"`
	RunID         string `json:"run_id"`
	TopicsCreated int    `json:"topics_created"`
	ItemsAssigned int    `json:"items_assigned"`
	ItemsSkipped  int    `json:"items_skipped"`
	ItemsFiltered int    `json:"items_filtered"`
	EmbedFailures int    `json:"embed_failures"`
}

type statsResponse struct {
	Items         int              `json:"items"`
	AssignedItems int              `json:"assigned_items"`
	Topics        int              `json:"topics"`
	ActiveSources int              `json:"active_sources"`
	LastRun       *refreshResponse `json:"last_run,omitempty"`
	LastRunAt     *time.Time       `json:"last_run_at,omitempty"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "version": s.version, "time": time.Now().UTC()})
}

// topicsHandler returns topics ordered by popularity
func (s *Server) topicsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultTopicsLimit)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	topics, err := s.db.GetTopics(r.Context(), min(limit, maxLimit))
	if err != nil {
		lgr.Printf("[ERROR] failed to get topics: %v", err)
		renderError(w, r, errors.New("can't get topics"), http.StatusInternalServerError)
		return
	}
	res := make([]topicResponse, len(topics))
	for i, t := range topics {
		res[i] = topicResponse{ID: t.ID, Title: t.Title, Summary: t.Summary, Popularity: t.Popularity,
			ItemCount: t.ItemCount, URL: t.URL, CreatedAt: t.CreatedAt}
	}
	renderJSON(w, r, http.StatusOK, res)
}

// topicNewsHandler returns items of a topic
func (s *Server) topicNewsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, errors.New("invalid topic ID"), http.StatusBadRequest)
		return
	}
	if _, err := s.db.GetTopic(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderError(w, r, errors.New("topic not found"), http.StatusNotFound)
			return
		}
		lgr.Printf("[ERROR] failed to get topic %d: %v", id, err)
		renderError(w, r, errors.New("can't get topic"), http.StatusInternalServerError)
		return
	}

	items, err := s.db.GetTopicItems(r.Context(), id)
	if err != nil {
		lgr.Printf("[ERROR] failed to get items of topic %d: %v", id, err)
		renderError(w, r, errors.New("can't get topic news"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, toNewsResponse(items))
}

// newsHandler returns a page of items, newest first
func (s *Server) newsHandler(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	limit, err := queryInt(r, "limit", defaultNewsLimit)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	items, err := s.db.GetItems(r.Context(), skip, min(limit, maxLimit))
	if err != nil {
		lgr.Printf("[ERROR] failed to get news: %v", err)
		renderError(w, r, errors.New("can't get news"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, toNewsResponse(items))
}

// favoriteHandler toggles the favorite flag of an item
func (s *Server) favoriteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, errors.New("invalid item ID"), http.StatusBadRequest)
		return
	}
	fav, err := s.db.ToggleFavorite(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderError(w, r, errors.New("news not found"), http.StatusNotFound)
			return
		}
		lgr.Printf("[ERROR] failed to toggle favorite for %d: %v", id, err)
		renderError(w, r, errors.New("can't update favorite"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"id": id, "favorite": fav})
}

// refreshHandler fetches news and clusters them, waiting for the result
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.scheduler.RunNow(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] refresh failed: %v", err)
		renderError(w, r, fmt.Errorf("refresh failed: %w", err), http.StatusInternalServerError)
		return
	}
	resp := toRunResponse(res.Summary)
	resp.NewItems = res.NewItems
	renderJSON(w, r, http.StatusOK, resp)
}

// statsHandler returns overall counters and the last run
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetStats(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get stats: %v", err)
		renderError(w, r, errors.New("can't get stats"), http.StatusInternalServerError)
		return
	}
	resp := statsResponse{Items: stats.Items, AssignedItems: stats.AssignedItems, Topics: stats.Topics,
		ActiveSources: stats.ActiveSources}
	if stats.LastRun != nil {
		run := toRunResponse(*stats.LastRun)
		resp.LastRun = &run
		resp.LastRunAt = &stats.LastRun.FinishedAt
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// queryInt reads a non-negative integer query parameter
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, v)
	}
	return n, nil
}

func toNewsResponse(items []domain.Item) []newsResponse {
	res := make([]newsResponse, len(items))
	for i, it := range items {
		res[i] = newsResponse{ID: it.ID, Title: it.Title, Summary: it.Summary, URL: it.URL, Source: it.SourceName,
			Published: it.Published, TopicID: it.TopicID, Favorite: it.Favorite}
	}
	return res
}

func toRunResponse(s domain.RunSummary) refreshResponse {
	return refreshResponse{RunID: s.RunID, TopicsCreated: s.TopicsCreated, ItemsAssigned: s.ItemsAssigned,
		ItemsSkipped: s.ItemsSkipped, ItemsFiltered: s.ItemsFiltered, EmbedFailures: s.EmbedFailures}
}
