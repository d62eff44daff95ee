package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"

	"saju_backend/internal/app/di"
	"saju_backend/internal/app/router"
	calhandler "saju_backend/internal/feature/calendar/transport/handler"
	charthandler "saju_backend/internal/feature/chart/transport/handler"
	"saju_backend/internal/platform/config"
	"saju_backend/internal/platform/http/handler"
	"saju_backend/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := di.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	checks := map[string]handler.Checker{
		"db": func(ctx context.Context) error {
			sqlDB, err := app.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if app.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return app.Redis.Ping(ctx).Err() }
	}

	r := router.NewRouter(
		charthandler.NewChartHandler(app.Charts),
		calhandler.NewCalendarHandler(app.Calendar),
		handler.NewReadinessHandler(checks),
		app.Metrics.Handler(),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
