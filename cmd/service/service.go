package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"events-api/internal/books"
	"events-api/internal/cache"
	"events-api/internal/config"
	"events-api/internal/database"
	"events-api/internal/handler"
	"events-api/internal/metrics"
	mw "events-api/internal/middleware"
	"events-api/internal/router"
	"events-api/internal/service"
	"events-api/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// 測試替換點
var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
)

// newEcho 建立 echo 實例並掛上全域中介層
func newEcho(logger zerolog.Logger, cfg config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Environment == "development"
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(logger)
	e.Use(mw.RequestLogger(logger))
	e.Use(metrics.Middleware)
	e.Use(middleware.Recover())
	return e
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg.Logging)
	metrics.Init()

	db, err := newPgxPool(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	cc, err := newRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer cc.Close()

	if err := runMigrationsFn(cfg.Database.URL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	bc := books.NewClient(cfg.Books.BaseURL, cfg.Auth.SecretKey,
		books.WithTimeout(cfg.Books.Timeout),
		books.WithRateLimit(cfg.Books.RateLimit),
		books.WithCache(cc, cfg.Books.CacheTTL),
		books.WithLogger(logger.With().Str("component", "books").Logger()),
		books.WithObserver(metrics.ObserveBooksCall),
	)
	tokens := service.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTL, cc)

	e := newEcho(logger, cfg)
	router.Setup(e, router.Deps{
		DB:         db,
		Cache:      cc,
		Tokens:     tokens,
		Accounts:   service.NewAccounts(db, bc, tokens, logger),
		Membership: service.NewMembership(db, bc, wp, logger),
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Str("environment", cfg.Environment).Msg("starting events-api")
		errCh <- startServer(e, cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
