package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/openhill/hillbot/internal/bot"
)

const wsMaxMessageSize = 16 * 1024

// wsInbound is one chat message from the client.
type wsInbound struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

// wsOutbound is one event frame to the client. Routing events arrive
// before the response so the UI can show what is being looked up.
type wsOutbound struct {
	Type      string `json:"type"` // "routing", "response", "error"
	SessionID string `json:"sessionId,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	Text      string `json:"text,omitempty"`
}

func (s *Server) upgrader() websocket.Upgrader {
	allowed := make(map[string]bool, len(s.cfg.AllowedOrigins))
	for _, o := range s.cfg.AllowedOrigins {
		allowed[o] = true
	}
	return websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			// same-origin and non-browser clients send no Origin header
			return origin == "" || allowed["*"] || allowed[origin]
		},
	}
}

// handleWS runs a chat loop over a websocket. Each inbound message is
// one turn, answered with routing and response frames.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	up := s.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsMaxMessageSize)

	// gorilla allows one concurrent writer only
	var writeMu sync.Mutex
	send := func(frame wsOutbound) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(frame)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Err(err).Msg("websocket closed")
			}
			return
		}

		var in wsInbound
		if err := json.Unmarshal(data, &in); err != nil || in.Message == "" {
			if sendErr := send(wsOutbound{Type: "error", Text: "expected {\"message\": \"...\"}"}); sendErr != nil {
				return
			}
			continue
		}

		result := s.runner.Run(r.Context(), in.SessionID, in.Message, func(e bot.Event) {
			if e.Type == "routing" {
				send(wsOutbound{Type: "routing", Endpoint: e.Endpoint})
			}
		})
		if err := send(wsOutbound{
			Type:      "response",
			SessionID: result.SessionID,
			Endpoint:  result.Endpoint,
			Text:      result.Response,
		}); err != nil {
			return
		}
	}
}
