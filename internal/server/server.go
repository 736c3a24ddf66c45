// Package server exposes a single game session over HTTP and a websocket
// snapshot stream.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/lgbarn/chessboard-go/internal/config"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server routes API requests to a Session and pushes every accepted
// mutation to websocket subscribers.
type Server struct {
	cfg     config.ServerConfig
	session *Session
	hub     *Hub
	logger  *slog.Logger
	handler http.Handler

	srvMu sync.Mutex
	srv   *http.Server
}

// New creates a server over session.
func New(cfg config.ServerConfig, session *Session, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		session: session,
		hub:     NewHub(logger),
		logger:  logger,
	}
	session.OnChange(s.broadcast)
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/board", s.handleBoard).Methods(http.MethodGet)
	api.HandleFunc("/moves", s.handleAllMoves).Methods(http.MethodGet)
	api.HandleFunc("/moves/{square}", s.handleSquareMoves).Methods(http.MethodGet)
	api.Handle("/move", handlers.ContentTypeHandler(http.HandlerFunc(s.handleMove), "application/json")).
		Methods(http.MethodPost)
	api.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)
	api.HandleFunc("/perft/{depth:[0-9]+}", s.handlePerft).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWebsocket).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found: "+r.URL.Path)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	})

	var h http.Handler = r
	h = handlers.LoggingHandler(&logWriter{logger: s.logger}, h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(&recoveryLogger{logger: s.logger}),
		handlers.PrintRecoveryStack(false),
	)(h)
	return h
}

// Handler returns the HTTP handler with logging and panic recovery.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// ListenAndServe serves until ctx is cancelled, then shuts down within the
// configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops the listener and disconnects websocket subscribers.
func (s *Server) Shutdown(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srv = nil
	s.srvMu.Unlock()

	s.hub.Close()
	if srv == nil {
		return nil
	}
	s.logger.Info("shutting down", "addr", srv.Addr)
	return srv.Shutdown(ctx)
}

// logWriter feeds access log lines from handlers.LoggingHandler to slog.
type logWriter struct {
	logger *slog.Logger
}

func (lw *logWriter) Write(p []byte) (int, error) {
	lw.logger.Info("http", "access", strings.TrimSpace(string(p)))
	return len(p), nil
}

// recoveryLogger satisfies handlers.RecoveryHandlerLogger.
type recoveryLogger struct {
	logger *slog.Logger
}

func (rl *recoveryLogger) Println(v ...interface{}) {
	rl.logger.Error("panic in handler", "err", fmt.Sprint(v...))
}
