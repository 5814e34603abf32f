package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"
)

type Logger interface {
	Error(format string, v ...interface{})
	Info(format string, v ...interface{})
}

// Server serves /metrics. It runs under the service manager.
type Server struct {
	srv    *http.Server
	logger Logger
}

func NewServer(addr string, m *Manager, logger Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Init() error {
	return nil
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("metrics server listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("metrics server error: %v", err)
	}
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("metrics server shutdown: %v", err)
	}
}
