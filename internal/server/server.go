// Package server exposes the chat pipeline over HTTP and websocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openhill/hillbot/internal/bot"
	"github.com/openhill/hillbot/internal/config"
	"github.com/openhill/hillbot/internal/logging"
)

// Server is the HTTP front of the bot.
type Server struct {
	cfg      config.ServerConfig
	runner   *bot.Runner
	sessions bot.SessionStore
	log      *logging.Logger
	httpSrv  *http.Server
}

func New(cfg config.ServerConfig, runner *bot.Runner, sessions bot.SessionStore, log *logging.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		runner:   runner,
		sessions: sessions,
		log:      log.Sub("server"),
	}
	s.httpSrv = &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
	return s
}

// Addr resolves the listen address from the bind mode.
func (s *Server) Addr() (string, error) {
	host := ""
	switch s.cfg.Bind {
	case "", "loopback":
		host = "127.0.0.1"
	case "lan":
		host = "0.0.0.0"
	case "custom":
		if s.cfg.CustomBindHost == "" {
			return "", errors.New("bind mode custom requires customBindHost")
		}
		host = s.cfg.CustomBindHost
	default:
		return "", fmt.Errorf("unknown bind mode %q", s.cfg.Bind)
	}
	return fmt.Sprintf("%s:%d", host, s.cfg.Port), nil
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr, err := s.Addr()
	if err != nil {
		return err
	}
	s.httpSrv.Addr = addr

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /clear", s.handleClear)
	mux.HandleFunc("GET /history", s.handleHistory)
	mux.HandleFunc("GET /sessions", s.handleSessions)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWS)
	return s.withRequestID(s.withCORS(s.withLogging(mux)))
}
