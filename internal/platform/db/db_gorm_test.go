package db

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"saju_backend/internal/platform/config"
)

// TestOpenerFor はドライバー名に応じたOpenerが返されることを検証します。
func TestOpenerFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		driver  string
		wantErr bool
	}{
		{config.DriverSQLite, false},
		{config.DriverPostgres, false},
		{"mysql", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			t.Parallel()

			open, err := OpenerFor(tt.driver)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil || open == nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attemptCount := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db != mockDB {
		t.Error("expected mock DB to be returned")
	}
	if attemptCount != 1 {
		t.Errorf("expected 1 attempt, got %d", attemptCount)
	}
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// リトライ間隔の待機があるため並列にしない

	mockDB := &gorm.DB{}
	attemptCount := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		if attemptCount < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 10*time.Second, opener)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db != mockDB {
		t.Error("expected mock DB to be returned")
	}
	if attemptCount != 3 {
		t.Errorf("expected 3 attempts, got %d", attemptCount)
	}
}

// TestConnectWithRetry_Timeout は期限内に次の試行ができない場合に即座にエラーを返すことを検証します。
func TestConnectWithRetry_Timeout(t *testing.T) {
	t.Parallel()

	attemptCount := 0
	refused := errors.New("connection refused")
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		return nil, refused
	}

	start := time.Now()
	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, opener)

	if !errors.Is(err, refused) {
		t.Fatalf("expected wrapped connection error, got %v", err)
	}
	if attemptCount != 1 {
		t.Errorf("expected 1 attempt, got %d", attemptCount)
	}
	if time.Since(start) > time.Second {
		t.Error("expected to give up without sleeping")
	}
}

type migrated struct {
	ID   uint
	Name string
}

// TestOpenDB_SQLite はインメモリSQLiteに接続しマイグレーションできることを検証します。
func TestOpenDB_SQLite(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{DBDriver: config.DriverSQLite, DBDSN: "file::memory:?cache=shared", RunMigrations: true}
	db, err := OpenDB(cfg, &migrated{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.Migrator().HasTable(&migrated{}) {
		t.Error("expected table to be migrated")
	}
}

func TestOpenDB_UnknownDriver(t *testing.T) {
	t.Parallel()

	if _, err := OpenDB(&config.Config{DBDriver: "oracle", DBDSN: "x"}); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
