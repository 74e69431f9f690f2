package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"aimlab/internal/settings"
	"aimlab/internal/wshub"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "ok", "variant": s.Config.Variant, "players": s.Hub.Len()}
	if s.DB != nil {
		if err := s.DB.Ping(r.Context()); err != nil {
			status["status"] = "db_error"
			status["error"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Settings.Snapshot())
}

// handlePutSettings applies a full or partial settings document on top of
// the current one. Fields left out keep their value.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	next := s.Settings.Snapshot()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&next); err != nil {
		http.Error(w, "Invalid settings document", http.StatusBadRequest)
		return
	}
	next.TargetColor = strings.ToLower(next.TargetColor)
	next.CrosshairColor = strings.ToLower(next.CrosshairColor)
	if err := s.Settings.Set(next); err != nil {
		if errors.Is(err, settings.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println(err)
		http.Error(w, "Failed to update settings", http.StatusInternalServerError)
		return
	}
	s.settingsChanged(r, next)
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	s.Settings.Reset()
	cur := s.Settings.Snapshot()
	s.settingsChanged(r, cur)
	writeJSON(w, http.StatusOK, cur)
}

// settingsChanged persists the new settings and tells every listener.
// Running simulations pick the change up on their next frame.
func (s *Server) settingsChanged(r *http.Request, cur settings.Settings) {
	data, err := json.Marshal(cur)
	if err != nil {
		log.Println(err)
		return
	}
	if s.DB != nil {
		if err := s.DB.SaveSettings(r.Context(), data); err != nil {
			log.Printf("[DB] SaveSettings error: %v\n", err)
		}
	}
	s.Broadcaster.Broadcast("settings", string(data))
	s.Hub.Broadcast(wshub.ServerMessage{Type: wshub.MsgConfig, Data: data})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.History.Recent(r.Context())
	if err != nil {
		log.Printf("[History] Recent error: %v\n", err)
		http.Error(w, "Error loading sessions", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleBestScore(w http.ResponseWriter, r *http.Request) {
	best, err := s.History.Best(r.Context())
	if err != nil {
		log.Printf("[History] Best error: %v\n", err)
		http.Error(w, "Error loading best score", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"best": best})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	msgChan := s.Broadcaster.Subscribe()
	defer s.Broadcaster.Unsubscribe(msgChan)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-msgChan:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\n", msg.Event)
			for _, line := range strings.Split(msg.Data, "\n") {
				fmt.Fprintf(w, "data: %s\n", line)
			}
			fmt.Fprint(w, "\n")
			flusher.Flush()
		}
	}
}
