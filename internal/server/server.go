// internal/server/server.go
// Package server exposes the leaderboard over a read-only JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mwiater/matboard/internal/leaderboard"
	"github.com/mwiater/matboard/internal/logging"
	"github.com/mwiater/matboard/internal/modelschema"
)

const GracefulShutdownTimeout = 10 * time.Second

// Config controls how the API listens.
type Config struct {
	Port        string
	UseHTTP2    bool
	CorsOrigins []string
	// Downloads maps an export format label to the URL of a prebuilt artifact.
	Downloads map[string]string
}

// Server serves one immutable record set. Every request builds its own leaderboard
// session, so handlers share no mutable state.
type Server struct {
	Echo *echo.Echo

	cfg      Config
	records  []modelschema.ModelRecord
	defaults leaderboard.Options
}

// New wires middleware and routes onto a fresh echo instance.
func New(records []modelschema.ModelRecord, defaults leaderboard.Options, cfg Config) (*Server, error) {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if err := validatePort(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}
	if len(cfg.CorsOrigins) == 0 {
		cfg.CorsOrigins = []string{"*"}
	}
	if _, err := leaderboard.New(nil, defaults); err != nil {
		return nil, fmt.Errorf("invalid leaderboard defaults: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.DisableHTTP2 = !cfg.UseHTTP2

	s := &Server{
		Echo:     e,
		cfg:      cfg,
		records:  records,
		defaults: defaults,
	}
	s.setupMiddlewares()
	s.bindRoutes()
	return s, nil
}

func (s *Server) setupMiddlewares() {
	s.Echo.Use(requestLogger())
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.CorsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.LogEvent("[SERVER] listening on :%s with %d models", s.cfg.Port, len(s.records))
		if err := s.Echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	logging.LogEvent("[SERVER] shutting down")
	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}
	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}
