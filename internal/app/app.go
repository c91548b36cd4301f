package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/clockify-timeline/internal/config"
	"github.com/klokku/clockify-timeline/pkg/clockify"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, upstream client, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(cfg config.Application) (*Application, error) {
	client, err := clockify.NewClient(cfg.Clockify)
	if err != nil {
		return nil, err
	}
	return newApplication(cfg, client), nil
}

func newApplication(cfg config.Application, client clockify.Client) *Application {
	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(client, cfg)

	// Routes
	RegisterRoutes(r, deps)

	srv := &http.Server{
		// Middleware wraps the router so unmatched requests and preflights pass through it too
		Handler:      SetupMiddleware(r, cfg),
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv}
}

// Handler exposes the fully wrapped HTTP handler.
func (a *Application) Handler() http.Handler {
	return a.srv.Handler
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server fails.
// On cancellation in-flight requests get shutdownTimeout to complete.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("Server stopped")
	return nil
}
