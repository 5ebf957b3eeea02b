// Package app wires the site runtime: config, logging, stores, the auth
// gateway, HTTP routes, and graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portfolio/internal/auth"
	"portfolio/internal/content"
	"portfolio/internal/identity"
	"portfolio/internal/notify"
	"portfolio/internal/session"
	"portfolio/internal/web"
)

// sessionPurgeEvery bounds registry memory; expiry itself is lazy.
const sessionPurgeEvery = 1 * time.Hour

// App is the composed runtime. It owns the session registry and the DB pool;
// everything else holds references.
type App struct {
	cfg Config
	log *slog.Logger

	pool      *pgxpool.Pool
	dbEnabled bool

	sessions *session.Registry
	gateway  *auth.Gateway
	hub      *notify.Hub
	metrics  *Metrics
	web      *web.Handler
}

// New constructs a fully wired App instance from config and logger.
func New(ctx context.Context, cfg Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel)
	}

	var (
		pool      *pgxpool.Pool
		dbEnabled bool
		idStore   identity.Store
		ctStore   content.Store
	)

	if cfg.DatabaseURL == "" {
		log.Info("db.disabled.inmemory_store")
		idStore = identity.NewMemoryStore()
		ctStore = content.NewMemoryStore()
	} else {
		if err := RunMigrations(ctx, cfg.DatabaseURL); err != nil {
			return nil, err
		}
		p, err := NewDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		pool = p
		dbEnabled = true
		log.Info("db.enabled.postgres_store")

		is, err := identity.NewPostgresStore(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		cs, err := content.NewPostgresStore(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		idStore, ctStore = is, cs
	}

	now := time.Now().UTC()
	if err := idStore.EnsureDefaultAdmin(ctx, now); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if err := ctStore.Seed(ctx, now); err != nil {
		return nil, fmt.Errorf("seed content: %w", err)
	}

	sessions := session.NewRegistry()
	gateway := auth.NewGateway(log, auth.Config{
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.CookieSecureOverride(),
	}, idStore, sessions)

	hub := notify.NewHub(log)
	metrics := NewMetrics(func() float64 { return float64(sessions.Active()) })

	webHandler, err := web.NewHandler(log, gateway, ctStore, hub,
		web.WithLoginObserver(func(result string) {
			metrics.Logins.WithLabelValues(result).Inc()
		}))
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:       cfg,
		log:       log,
		pool:      pool,
		dbEnabled: dbEnabled,
		sessions:  sessions,
		gateway:   gateway,
		hub:       hub,
		metrics:   metrics,
		web:       webHandler,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal
// server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	a.registerOps(mux)
	a.web.Register(mux)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           WithRequestLogging(mux, a.log, a.metrics),
		ReadHeaderTimeout: a.cfg.ReadHeaderTimeout,
		ReadTimeout:       a.cfg.ReadTimeout,
		WriteTimeout:      a.cfg.WriteTimeout,
		IdleTimeout:       a.cfg.IdleTimeout,
		MaxHeaderBytes:    a.cfg.MaxHeaderBytes,
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_enabled", a.dbEnabled)

	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go a.purgeLoop(purgeCtx)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if a.pool != nil {
		a.pool.Close()
	}

	a.log.Info("server.stopped")
	return nil
}

func (a *App) registerOps(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if a.dbEnabled && a.pool != nil {
			if err := PingDB(r.Context(), a.pool, 2*time.Second); err != nil {
				a.log.Info("readyz.db.not_ready", "err", err)
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready\n"))
	})

	mux.Handle("GET /metrics", promhttp.HandlerFor(a.metrics.Registry, promhttp.HandlerOpts{}))
}

func (a *App) purgeLoop(ctx context.Context) {
	t := time.NewTicker(sessionPurgeEvery)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := a.sessions.Purge(now.UTC()); n > 0 {
				a.log.Debug("session.purge", "expired", n)
			}
		}
	}
}
