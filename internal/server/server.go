package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hnrobert/envportal/internal/flows"
	"github.com/hnrobert/envportal/internal/logger"
)

type Config struct {
	ListenAddr string
	// SitePath is the YAML site config; it is created with defaults if missing.
	SitePath string
	// Secret signs API instance tokens. Empty generates an ephemeral one.
	Secret string
	// Flows are the flows served. Nil serves the standard four with the
	// placeholder verifier.
	Flows *flows.Registry
}

type Server struct {
	cfg Config
	app *App
	h   http.Handler
}

func New(cfg Config) *Server {
	app, err := newApp(appOptions{sitePath: cfg.SitePath, secret: cfg.Secret, registry: cfg.Flows})
	if err != nil {
		// Defer error to Run for a single error return path.
		return &Server{cfg: cfg, h: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		})}
	}
	return &Server{cfg: cfg, app: app, h: app.routes()}
}

func (s *Server) Handler() http.Handler {
	return s.h
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.app != nil {
		sweepCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go s.app.instances.Run(sweepCtx, time.Minute)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) ListenAndServe() error {
	return s.Run(context.Background())
}
