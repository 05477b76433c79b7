// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/handler"
	"github.com/dhanuj00123/HeadlessCms/internal/identity/metrics"
	"github.com/dhanuj00123/HeadlessCms/internal/identity/provider"
	"github.com/dhanuj00123/HeadlessCms/internal/identity/service"
	sessionstore "github.com/dhanuj00123/HeadlessCms/internal/identity/store/session"
	userstore "github.com/dhanuj00123/HeadlessCms/internal/identity/store/user"
	"github.com/dhanuj00123/HeadlessCms/internal/identity/token"
	"github.com/dhanuj00123/HeadlessCms/internal/platform/config"
	"github.com/dhanuj00123/HeadlessCms/internal/platform/httpserver"
	"github.com/dhanuj00123/HeadlessCms/internal/platform/logger"
	platformredis "github.com/dhanuj00123/HeadlessCms/internal/platform/redis"
	httptransport "github.com/dhanuj00123/HeadlessCms/internal/transport/http"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, cleanup, err := newUserStore(cfg)
	if err != nil {
		log.Error("failed to open user store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	sessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Error("failed to open session store", "error", err)
		os.Exit(1)
	}

	tokens := token.New(cfg.JWTSigningKey, cfg.TokenTTL)
	idp := provider.NewGoogle(provider.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		CallbackURL:  cfg.GoogleCallbackURL,
	})
	m := metrics.New(prometheus.DefaultRegisterer)

	svc := service.New(users, sessions, idp, tokens, m, log, cfg.SessionTTL)
	h := handler.New(svc, log)
	router := httptransport.NewRouter(h, tokens, users, log)

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newUserStore(cfg config.Config) (userstore.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		return userstore.NewMemory(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}
	return userstore.NewPostgres(db), func() { db.Close() }, nil
}

func newSessionStore(ctx context.Context, cfg config.Config) (sessionstore.Store, error) {
	client, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return sessionstore.NewMemory(), nil
	}
	return sessionstore.NewRedis(client.Client), nil
}
