// Package server provides HTTP server lifecycle management.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Server wraps http.Server with graceful shutdown support.
type Server struct {
	httpServer      *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
	shutdownHooks   []func(context.Context) error
}

// Config holds server configuration.
type Config struct {
	Addr            string
	Handler         http.Handler
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// New creates a new Server.
func New(cfg Config) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      cfg.Handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  120 * time.Second,
		},
		logger:          cfg.Logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// OnShutdown registers a hook to run during graceful shutdown.
// Hooks run in reverse registration order (LIFO), after the HTTP
// server has stopped accepting requests.
func (s *Server) OnShutdown(hook func(context.Context) error) {
	s.shutdownHooks = append(s.shutdownHooks, hook)
}

// Run starts the server and blocks until shutdown.
// It handles SIGINT and SIGTERM for graceful shutdown.
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server starting", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown within the configured timeout.
func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down server",
		slog.Duration("timeout", s.shutdownTimeout),
	)

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("server shutdown error", slog.String("error", err.Error()))
		return err
	}

	// Run hooks LIFO so dependencies close after their dependents.
	for i := len(s.shutdownHooks) - 1; i >= 0; i-- {
		if err := s.shutdownHooks[i](ctx); err != nil {
			s.logger.Error("shutdown hook error", slog.String("error", err.Error()))
		}
	}

	s.logger.Info("server stopped")
	return nil
}
