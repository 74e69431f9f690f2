package server

import (
	"net/http"

	"aimlab/internal/app"
	"aimlab/internal/broadcast"
	"aimlab/internal/config"
	"aimlab/internal/db"
	"aimlab/internal/events"
	"aimlab/internal/history"
	"aimlab/internal/metrics"
	"aimlab/internal/settings"
	"aimlab/internal/wshub"
)

type Server struct {
	Config      config.Config
	Settings    *settings.Store
	History     history.Store
	DB          *db.DB // nil if no database configured
	Metrics     *metrics.Metrics
	Bus         *events.Bus
	Broadcaster *broadcast.Broadcaster
	Hub         *wshub.Hub
}

// New wires a server around cfg. database may be nil, in which case history
// is kept in memory and analytics that need shot data are unavailable.
func New(cfg config.Config, database *db.DB, initial settings.Settings) *Server {
	bus := events.NewBus()
	return &Server{
		Config:      cfg,
		Settings:    settings.NewStore(initial),
		DB:          database,
		Metrics:     metrics.New(),
		Bus:         bus,
		Broadcaster: broadcast.NewBroadcaster(bus),
		History:     app.NewHistory(database, cfg),
		Hub:         wshub.NewHub(),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /settings", s.handleGetSettings)
	mux.HandleFunc("PUT /settings", s.handlePutSettings)
	mux.HandleFunc("DELETE /settings", s.handleResetSettings)
	mux.HandleFunc("GET /sessions", s.handleSessions)
	mux.HandleFunc("GET /sessions/best", s.handleBestScore)
	mux.HandleFunc("GET /sessions/{id}", s.handleSession)
	mux.HandleFunc("GET /analytics", s.handleAnalyticsSummary)
	mux.HandleFunc("GET /analytics/leaderboard", s.handleAnalyticsLeaderboard)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /play", s.handlePlay)
	mux.Handle("GET /metrics", s.Metrics.Handler())
	return mux
}
