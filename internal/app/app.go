package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/okazakov/boardwire-server/internal/catalog"
	"github.com/okazakov/boardwire-server/internal/catalog/file"
	"github.com/okazakov/boardwire-server/internal/catalog/sqlite"
	"github.com/okazakov/boardwire-server/internal/config"
	"github.com/okazakov/boardwire-server/internal/core"
	transporthttp "github.com/okazakov/boardwire-server/internal/transport/http"
)

// App wires together the relay hub, the catalog store, and the transport.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	store           catalog.Store
	log             *zerolog.Logger
}

// New constructs the application with the provided configuration. The
// catalog backend is decided here, once, and never re-evaluated mid-run.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	store := openCatalog(cfg, logger)
	logger.Info().Str("mode", string(store.Mode())).Msg("catalog store ready")

	hub := core.NewHub(logger)
	server := transporthttp.NewServer(hub, store, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		store:           store,
		log:             logger,
	}
}

// openCatalog selects the backend: database mode when a path is configured
// and SQLite opens, file mode otherwise. An open failure is logged and
// falls back to file mode for the remainder of the process; it is not
// retried.
func openCatalog(cfg config.Config, logger *zerolog.Logger) catalog.Store {
	if cfg.DatabasePath == "" {
		return file.New(cfg.QuizFile)
	}

	st, err := sqlite.New(cfg.DatabasePath, logger)
	if err != nil {
		logger.Warn().Err(err).Str("db_path", cfg.DatabasePath).
			Msg("database unavailable, falling back to file mode")
		return file.New(cfg.QuizFile)
	}

	seedAndSync(st, cfg.QuizFile, logger)
	return st
}

// seedAndSync runs the one-time seed reconciliation. Failures are logged
// and non-fatal: the server serves whatever state the database has.
func seedAndSync(st *sqlite.Store, seedPath string, logger *zerolog.Logger) {
	seeds, err := file.Load(seedPath)
	if err != nil {
		logger.Warn().Err(err).Str("seed_file", seedPath).Msg("failed to load seed quizzes")
		return
	}

	valid := seeds[:0]
	for i := range seeds {
		if err := seeds[i].Validate(); err != nil {
			logger.Warn().Err(err).Str("quiz_id", seeds[i].ID).Msg("skipping invalid seed quiz")
			continue
		}
		valid = append(valid, seeds[i])
	}

	if err := st.SeedAndSync(context.Background(), valid); err != nil {
		logger.Warn().Err(err).Msg("seed sync failed")
	}
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the catalog store.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
