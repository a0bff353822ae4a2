package server

import (
	"net/http"

	"github.com/go-pkgz/lgr"
)

const rssTopicsLimit = 50

// rssTopicsHandler serves popular topics as RSS
func (s *Server) rssTopicsHandler(w http.ResponseWriter, r *http.Request) {
	topics, err := s.db.GetTopics(r.Context(), rssTopicsLimit)
	if err != nil {
		lgr.Printf("[ERROR] failed to get topics for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}
	rss, err := s.generator.TopicsRSS(topics)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[WARN] failed to write RSS response: %v", err)
	}
}
