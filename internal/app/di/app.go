package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	caladapters "saju_backend/internal/feature/calendar/adapters"
	calusecase "saju_backend/internal/feature/calendar/usecase"
	chartusecase "saju_backend/internal/feature/chart/usecase"
	"saju_backend/internal/platform/config"
	"saju_backend/internal/platform/db"
	"saju_backend/internal/platform/metrics"
	infraredis "saju_backend/internal/platform/redis"
)

// App holds the wired application components shared by the server and the CLI.
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client // nil when Redis is not configured or unreachable
	Metrics  *metrics.Metrics
	Calendar *calusecase.Adapter
	Charts   *chartusecase.ChartUsecase
}

// NewApp connects to the stores, imports the seed file when configured, loads the
// reference tables once and builds the use cases.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	gdb, err := db.OpenDB(cfg, caladapters.Models()...)
	if err != nil {
		return nil, err
	}

	rdb, err := infraredis.NewRedisClient(cfg)
	if err != nil {
		slog.Warn("Redis unavailable. Using in-process calendar cache.", "error", err)
		rdb = nil
	}

	repo := caladapters.NewReferenceRepository(gdb)
	if cfg.SeedFile != "" {
		days, terms, err := caladapters.ImportSeedFile(ctx, repo, cfg.SeedFile)
		if err != nil {
			closeRedis(rdb)
			return nil, fmt.Errorf("import seed file: %w", err)
		}
		slog.Info("seed file imported", "path", cfg.SeedFile, "days", days, "year_terms", terms)
	}

	m := metrics.New()
	calendar, err := calusecase.LoadAdapter(ctx, repo, CalendarOptions(cfg, rdb, m)...)
	if err != nil {
		closeRedis(rdb)
		return nil, err
	}

	overrides, err := repo.ListYearTermOverrides(ctx)
	if err != nil {
		closeRedis(rdb)
		return nil, fmt.Errorf("load year term overrides: %w", err)
	}
	table := chartusecase.NewYearTermTable(overrides)
	slog.Info("year term table loaded", "entries", table.Len())

	charts := chartusecase.NewChartUsecase(calendar, table, chartusecase.WithChartRecorder(m))

	return &App{
		Config:   cfg,
		DB:       gdb,
		Redis:    rdb,
		Metrics:  m,
		Calendar: calendar,
		Charts:   charts,
	}, nil
}

// Close releases the store connections.
func (a *App) Close() {
	closeRedis(a.Redis)
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Failed to close DB", "error", err)
		}
	}
}

func closeRedis(rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if err := rdb.Close(); err != nil {
		slog.Error("Failed to close Redis client", "error", err)
	}
}
