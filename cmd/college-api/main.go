// main is the entry point of the College API.
//
// STARTUP SEQUENCE:
//  1. Load configuration (.env, optional YAML, environment)
//  2. Initialise the logger
//  3. Connect to the document store (MongoDB, or embedded SQLite)
//  4. Build the counters, the joke client and the route table
//  5. Start the metrics listener and the API listener
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Shut both listeners down, then disconnect the store
//
// RUNNING THE SERVER:
//
//	MONGODB_URL=mongodb://localhost:27017/ go run ./cmd/college-api
//
// or with a config file:
//
//	go run ./cmd/college-api --config=config/local.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aanand-mishra/college-api/internal/config"
	"github.com/aanand-mishra/college-api/internal/http/router"
	"github.com/aanand-mishra/college-api/internal/joke"
	"github.com/aanand-mishra/college-api/internal/logger"
	"github.com/aanand-mishra/college-api/internal/metrics"
	"github.com/aanand-mishra/college-api/internal/storage"
	"github.com/aanand-mishra/college-api/internal/storage/mongo"
	"github.com/aanand-mishra/college-api/internal/storage/sqlite"
)

var version = "dev"

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad exits if MONGODB_URL (or anything else) is missing.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := logger.New(cfg, os.Stdout)

	log.Info("starting college-api",
		slog.String("env", cfg.Env),
		slog.String("version", version),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// One long-lived handle, shared by every request.
	store, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised", slog.String("driver", cfg.StorageDriver))

	// ── 4. Build the Route Table ──────────────────────────────────────────
	counters := metrics.New()

	api := router.New(router.Deps{
		Store:    store,
		Jokes:    joke.NewClient(cfg.Joke.URL, cfg.Joke.Timeout),
		Counters: counters,
		Log:      log,
	})

	server := &http.Server{
		Addr:              cfg.HTTPServer.Addr,
		Handler:           api,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       cfg.HTTPServer.IdleTimeout,
	}

	metricsServer := metrics.NewServer(cfg.Metrics.Addr, counters)

	// ── 5. Start Listeners ────────────────────────────────────────────────
	serve := func(name string, srv *http.Server) {
		log.Info("server started", slog.String("server", name), slog.String("address", srv.Addr))

		// ErrServerClosed is what Shutdown makes ListenAndServe return.
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("server", name),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	go serve("metrics", metricsServer)
	go serve("api", server)

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	failed := false
	for name, srv := range map[string]*http.Server{"api": server, "metrics": metricsServer} {
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("failed to shutdown server gracefully",
				slog.String("server", name),
				slog.String("error", err.Error()))
			failed = true
		}
	}

	if err := store.Close(ctx); err != nil {
		log.Error("failed to close storage", slog.String("error", err.Error()))
		failed = true
	}

	if failed {
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openStorage connects the backend named by cfg.StorageDriver.
func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.ConnectTimeout)
		defer cancel()

		return mongo.New(ctx, mongo.Options{
			URL:        cfg.MongoDB.URL,
			Database:   cfg.MongoDB.Database,
			Collection: cfg.MongoDB.Collection,
		})

	case config.DriverSQLite:
		if cfg.SQLite.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.SQLite.Path), 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		return sqlite.New(cfg.SQLite.Path)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
