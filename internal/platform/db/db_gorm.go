// Package db opens the gorm connection used by the reference table repository.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"saju_backend/internal/platform/config"
)

// retryInterval は接続リトライの間隔です。
const retryInterval = 3 * time.Second

// connectTimeout は起動時にDB接続を待つ最大時間です。
const connectTimeout = 60 * time.Second

// Opener はDSNからgorm接続を開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor はドライバー名に対応するOpenerを返します。
func OpenerFor(driver string) (Opener, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}
	switch driver {
	case config.DriverSQLite:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), cfg)
		}, nil
	case config.DriverPostgres:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), cfg)
		}, nil
	}
	return nil, fmt.Errorf("unsupported db driver %q", driver)
}

// ConnectWithRetry は接続に成功するか timeout を超えるまで retryInterval ごとに再試行します。
// 次の試行が期限を超える場合は待たずに最後のエラーを返します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB は設定に従ってDBへ接続し、RunMigrations が有効なら models をマイグレーションします。
func OpenDB(cfg *config.Config, models ...any) (*gorm.DB, error) {
	open, err := OpenerFor(cfg.DBDriver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(cfg.DBDSN, connectTimeout, open)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	slog.Info("DB connection successful", "driver", cfg.DBDriver)
	return db, nil
}
