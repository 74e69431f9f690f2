package server

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"

	"aimlab/internal/analytics"

	"github.com/google/uuid"
)

func (s *Server) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.History.Recent(r.Context())
	if err != nil {
		log.Printf("[Analytics] history error: %v\n", err)
		http.Error(w, "Error loading analytics", http.StatusInternalServerError)
		return
	}
	best, err := s.History.Best(r.Context())
	if err != nil {
		log.Printf("[Analytics] best score error: %v\n", err)
		http.Error(w, "Error loading analytics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, analytics.Summarize(sessions, best))
}

func (s *Server) handleAnalyticsLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "Leaderboard requires a database connection", http.StatusServiceUnavailable)
		return
	}

	category := r.URL.Query().Get("cat")
	if category == "" {
		category = "score"
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := analytics.NewQueries(s.DB).GetLeaderboard(r.Context(), category, limit)
	if err != nil {
		log.Printf("[Analytics] leaderboard error: %v\n", err)
		http.Error(w, "Error loading leaderboard", http.StatusBadRequest)
		return
	}
	if entries == nil {
		entries = []analytics.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleSession returns one round's stats. With a database the reaction
// figures come from its shots; otherwise the round is looked up in the
// in-memory history.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	if s.DB != nil {
		stats, err := analytics.NewQueries(s.DB).GetSessionStats(r.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "Session not found", http.StatusNotFound)
				return
			}
			log.Printf("[Analytics] session stats error: %v\n", err)
			http.Error(w, "Error loading session", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, stats)
		return
	}

	sessions, err := s.History.Recent(r.Context())
	if err != nil {
		log.Printf("[History] Recent error: %v\n", err)
		http.Error(w, "Error loading session", http.StatusInternalServerError)
		return
	}
	for _, sess := range sessions {
		if sess.ID == id {
			writeJSON(w, http.StatusOK, analytics.StatsFor(sess))
			return
		}
	}
	http.Error(w, "Session not found", http.StatusNotFound)
}
