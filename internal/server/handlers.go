package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/openhill/hillbot/internal/domain"
	"github.com/openhill/hillbot/internal/version"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type chatResponse struct {
	SessionID  string `json:"sessionId"`
	Response   string `json:"response"`
	Endpoint   string `json:"endpoint,omitempty"`
	Cached     bool   `json:"cached,omitempty"`
	Direct     bool   `json:"direct,omitempty"`
	DurationMS int64  `json:"durationMs"`
}

type clearRequest struct {
	SessionID string `json:"sessionId"`
}

type historyResponse struct {
	SessionID string           `json:"sessionId"`
	Messages  []domain.Message `json:"messages"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	result := s.runner.Run(r.Context(), req.SessionID, req.Message, nil)
	writeJSON(w, http.StatusOK, chatResponse{
		SessionID:  result.SessionID,
		Response:   result.Response,
		Endpoint:   result.Endpoint,
		Cached:     result.Cached,
		Direct:     result.Direct,
		DurationMS: result.Duration.Milliseconds(),
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	var req clearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	if s.sessions.History(req.SessionID) == nil {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	s.sessions.Clear(req.SessionID)
	writeJSON(w, http.StatusOK, map[string]any{"sessionId": req.SessionID, "cleared": true})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("sessionId")
	if id == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	msgs := s.sessions.History(id)
	if msgs == nil {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	// system prompt messages stay internal
	visible := make([]domain.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Role == domain.RoleSystem {
			continue
		}
		visible = append(visible, m)
	}
	writeJSON(w, http.StatusOK, historyResponse{SessionID: id, Messages: visible})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": s.sessions.List()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
