package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/luca-patrignani/catena/node"
)

// Server exposes a node's operations over HTTP. The route set mirrors the
// classic five-endpoint node interface; GET /chain doubles as the wire
// contract peers consume during consensus resolution.
type Server struct {
	node    *node.Node
	logger  *slog.Logger
	handler http.Handler
	httpSrv *http.Server
}

// NewServer wires the routes for n and prepares an HTTP server on addr.
// Nothing listens until Start is called.
func NewServer(n *node.Node, addr string, logger *slog.Logger) *Server {
	s := &Server{node: n, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/mine", s.handleMine)
	mux.HandleFunc("/transactions/new", s.handleNewTransaction)
	mux.HandleFunc("/chain", s.handleChain)
	mux.HandleFunc("/nodes/register", s.handleRegisterNodes)
	mux.HandleFunc("/nodes/resolve", s.handleResolve)
	mux.HandleFunc("/healthz", s.handleHealthz)
	s.handler = s.logRequests(mux)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
		// No write timeout: /mine holds its response open for the whole
		// proof search.
	}
	return s
}

// Handler returns the root handler, for tests that serve it directly.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on the configured address and serves until the listener
// fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("api listening", "addr", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting new connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// statusRecorder captures the status code a handler writes so the request
// log can report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
