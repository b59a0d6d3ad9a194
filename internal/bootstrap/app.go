package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/astro-prediction/internal/infra/config"
	"github.com/yanqian/astro-prediction/internal/infra/datastore"
	"github.com/yanqian/astro-prediction/pkg/telemetry"
)

// App encapsulates the HTTP server lifecycle and the resources it owns.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	store     *datastore.Store
	telemetry *telemetry.Telemetry
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, store *datastore.Store, tele *telemetry.Telemetry) *App {
	return &App{
		cfg:       cfg,
		logger:    logger.With("component", "bootstrap"),
		server:    server,
		store:     store,
		telemetry: tele,
	}
}

// Run starts the HTTP server and blocks until shutdown. The data store and
// tracer are released on every exit path.
func (a *App) Run(ctx context.Context) error {
	defer a.release()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address, "target_year", a.cfg.Prediction.TargetYear)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) release() {
	a.store.Close()
	if err := a.telemetry.Shutdown(context.Background()); err != nil {
		a.logger.Warn("telemetry shutdown failed", "error", err)
	}
	a.logger.Info("resources released")
}
