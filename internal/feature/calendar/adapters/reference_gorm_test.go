package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"saju_backend/internal/feature/calendar/domain/entity"
	chartentity "saju_backend/internal/feature/chart/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(Models()...)
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func mustPillar(t *testing.T, label string) *chartentity.Pillar {
	t.Helper()
	p, err := chartentity.ParsePillar(label)
	require.NoError(t, err)
	return &p
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, entity.Zone)
}

func TestNewReferenceRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewReferenceRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

// TestReferenceGorm_UpsertAndListDays は保存した参照日が日付順に復元されることを検証します。
func TestReferenceGorm_UpsertAndListDays(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewReferenceRepository(db)
	ctx := context.Background()

	termAt := time.Date(2024, 2, 4, 17, 27, 0, 0, entity.Zone)
	days := []entity.CalendarDay{
		{Date: day(2024, 2, 10), LunarMonth: 1, LunarDay: 1, MonthOverride: mustPillar(t, "丙寅"), DayLabel: mustPillar(t, "甲辰")},
		{Date: day(2024, 2, 4), LunarMonth: 12, LunarDay: 25, SolarTerm: &entity.SolarTermEvent{Term: entity.Ipchun, At: termAt}},
	}
	require.NoError(t, repo.UpsertDays(ctx, days))

	got, err := repo.ListDays(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "2024-02-04", got[0].Key())
	assert.Equal(t, entity.SourceReference, got[0].Source)
	require.NotNil(t, got[0].SolarTerm)
	assert.Equal(t, entity.Ipchun, got[0].SolarTerm.Term)
	assert.True(t, got[0].SolarTerm.At.Equal(termAt))
	assert.Nil(t, got[0].MonthOverride)

	assert.Equal(t, "2024-02-10", got[1].Key())
	assert.Equal(t, 1, got[1].LunarMonth)
	require.NotNil(t, got[1].MonthOverride)
	assert.Equal(t, "丙寅", got[1].MonthOverride.String())
	assert.Equal(t, "甲辰", got[1].DayLabel.String())
}

// TestReferenceGorm_UpsertDaysUpdates は同じ日付の再登録で内容が更新されることを検証します。
func TestReferenceGorm_UpsertDaysUpdates(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewReferenceRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertDays(ctx, []entity.CalendarDay{{Date: day(2024, 2, 10), LunarMonth: 12, LunarDay: 30}}))
	require.NoError(t, repo.UpsertDays(ctx, []entity.CalendarDay{{Date: day(2024, 2, 10), LunarMonth: 1, LunarDay: 1}}))

	var count int64
	require.NoError(t, db.Model(&ReferenceDayModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.ListDays(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].LunarMonth)
	assert.Equal(t, 1, got[0].LunarDay)
}

// TestReferenceGorm_ListDaysSkipsInvalid は解析できない行を読み飛ばすことを検証します。
func TestReferenceGorm_ListDaysSkipsInvalid(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewReferenceRepository(db)

	require.NoError(t, db.Create(&ReferenceDayModel{Date: "2024-02-10", MonthOverride: "甲丑"}).Error)
	require.NoError(t, db.Create(&ReferenceDayModel{Date: "not-a-date"}).Error)
	require.NoError(t, db.Create(&ReferenceDayModel{Date: "2024-02-11", LunarMonth: 1, LunarDay: 2}).Error)

	got, err := repo.ListDays(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-02-11", got[0].Key())
}

// TestReferenceGorm_YearTerms は年干別特例の保存・更新・読み込みを検証します。
func TestReferenceGorm_YearTerms(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewReferenceRepository(db)
	ctx := context.Background()

	gap, _ := chartentity.ParseTenSymbol("甲")
	require.NoError(t, repo.UpsertYearTerms(ctx, []entity.YearTermOverride{
		{YearTen: gap, Term: entity.Ipchun, Pillar: *mustPillar(t, "甲寅")},
	}))
	require.NoError(t, repo.UpsertYearTerms(ctx, []entity.YearTermOverride{
		{YearTen: gap, Term: entity.Ipchun, Pillar: *mustPillar(t, "丙寅")},
	}))
	require.NoError(t, db.Create(&YearTermModel{YearTen: "X", Term: "ipchun", Pillar: "丙寅"}).Error)

	got, err := repo.ListYearTermOverrides(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, gap, got[0].YearTen)
	assert.Equal(t, entity.Ipchun, got[0].Term)
	assert.Equal(t, "丙寅", got[0].Pillar.String())
}

func TestReferenceGorm_UpsertEmpty(t *testing.T) {
	t.Parallel()

	repo := NewReferenceRepository(setupTestDB(t))
	assert.NoError(t, repo.UpsertDays(context.Background(), nil))
	assert.NoError(t, repo.UpsertYearTerms(context.Background(), nil))
}
