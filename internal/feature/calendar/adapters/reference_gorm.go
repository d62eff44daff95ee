// Package adapters はcalendarフィーチャーの永続化アダプター（参照テーブル）を提供します。
package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"saju_backend/internal/feature/calendar/domain/entity"
	"saju_backend/internal/feature/calendar/usecase"
	chartentity "saju_backend/internal/feature/chart/domain/entity"
)

type referenceGorm struct {
	db *gorm.DB
}

var _ usecase.ReferenceRepository = (*referenceGorm)(nil)

// NewReferenceRepository は参照テーブルのgormリポジトリを生成します。
func NewReferenceRepository(db *gorm.DB) *referenceGorm {
	return &referenceGorm{db: db}
}

// ReferenceDayModel は検証済みの暦情報1日分です。干支は漢字2文字（例: 丙寅）で保存します。
type ReferenceDayModel struct {
	ID         uint   `gorm:"primaryKey"`
	Date       string `gorm:"size:10;not null;uniqueIndex"` // YYYY-MM-DD
	LunarMonth int    `gorm:"not null;default:0"`
	LunarDay   int    `gorm:"not null;default:0"`
	LeapMonth  bool   `gorm:"not null;default:false"`

	SolarTerm   string     `gorm:"size:16"` // 当日の節気（ローマ字表記）
	SolarTermAt *time.Time // 節入り時刻

	MonthOverride string `gorm:"size:8"`
	DayLabel      string `gorm:"size:8"`
}

func (ReferenceDayModel) TableName() string {
	return "reference_days"
}

// YearTermModel は年干別の節気特例（年干・節気 → 月柱）です。
type YearTermModel struct {
	ID      uint   `gorm:"primaryKey"`
	YearTen string `gorm:"size:4;not null;uniqueIndex:year_term_ten_term,priority:1"`
	Term    string `gorm:"size:16;not null;uniqueIndex:year_term_ten_term,priority:2"`
	Pillar  string `gorm:"size:8;not null"`
}

func (YearTermModel) TableName() string {
	return "year_term_overrides"
}

// Models はマイグレーション対象のモデルを返します。
func Models() []any {
	return []any{&ReferenceDayModel{}, &YearTermModel{}}
}

func toDayModel(d entity.CalendarDay) ReferenceDayModel {
	m := ReferenceDayModel{
		Date:       d.Key(),
		LunarMonth: d.LunarMonth,
		LunarDay:   d.LunarDay,
		LeapMonth:  d.LeapMonth,
	}
	if d.SolarTerm != nil {
		m.SolarTerm = d.SolarTerm.Term.String()
		at := d.SolarTerm.At
		m.SolarTermAt = &at
	}
	if d.MonthOverride != nil {
		m.MonthOverride = d.MonthOverride.String()
	}
	if d.DayLabel != nil {
		m.DayLabel = d.DayLabel.String()
	}
	return m
}

func toDay(m ReferenceDayModel) (entity.CalendarDay, error) {
	date, err := time.ParseInLocation(entity.DateLayout, m.Date, entity.Zone)
	if err != nil {
		return entity.CalendarDay{}, fmt.Errorf("date %q: %w", m.Date, err)
	}
	d := entity.CalendarDay{
		Date:       date,
		LunarMonth: m.LunarMonth,
		LunarDay:   m.LunarDay,
		LeapMonth:  m.LeapMonth,
		Source:     entity.SourceReference,
	}
	if m.SolarTerm != "" {
		term, ok := entity.ParseSolarTerm(m.SolarTerm)
		if !ok {
			return entity.CalendarDay{}, fmt.Errorf("date %s: unknown solar term %q", m.Date, m.SolarTerm)
		}
		at := date
		if m.SolarTermAt != nil {
			at = m.SolarTermAt.In(entity.Zone)
		}
		d.SolarTerm = &entity.SolarTermEvent{Term: term, At: at}
	}
	if m.MonthOverride != "" {
		p, err := chartentity.ParsePillar(m.MonthOverride)
		if err != nil {
			return entity.CalendarDay{}, fmt.Errorf("date %s: month override: %w", m.Date, err)
		}
		d.MonthOverride = &p
	}
	if m.DayLabel != "" {
		p, err := chartentity.ParsePillar(m.DayLabel)
		if err != nil {
			return entity.CalendarDay{}, fmt.Errorf("date %s: day label: %w", m.Date, err)
		}
		d.DayLabel = &p
	}
	return d, nil
}

// ListDays は参照テーブルの全件を日付順に返します。解析できない行は警告を出して読み飛ばします。
func (r *referenceGorm) ListDays(ctx context.Context) ([]entity.CalendarDay, error) {
	var rows []ReferenceDayModel
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.CalendarDay, 0, len(rows))
	for _, m := range rows {
		d, err := toDay(m)
		if err != nil {
			slog.Warn("skipping invalid reference day", "id", m.ID, "error", err)
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// ListYearTermOverrides は年干別の節気特例を返します。解析できない行は読み飛ばします。
func (r *referenceGorm) ListYearTermOverrides(ctx context.Context) ([]entity.YearTermOverride, error) {
	var rows []YearTermModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.YearTermOverride, 0, len(rows))
	for _, m := range rows {
		o, err := toOverride(m)
		if err != nil {
			slog.Warn("skipping invalid year term override", "id", m.ID, "error", err)
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func toOverride(m YearTermModel) (entity.YearTermOverride, error) {
	ten, ok := chartentity.ParseTenSymbol(m.YearTen)
	if !ok {
		return entity.YearTermOverride{}, fmt.Errorf("unknown year ten symbol %q", m.YearTen)
	}
	term, ok := entity.ParseSolarTerm(m.Term)
	if !ok {
		return entity.YearTermOverride{}, fmt.Errorf("unknown solar term %q", m.Term)
	}
	p, err := chartentity.ParsePillar(m.Pillar)
	if err != nil {
		return entity.YearTermOverride{}, err
	}
	return entity.YearTermOverride{YearTen: ten, Term: term, Pillar: p}, nil
}

// UpsertDays は日付をキーに参照日を追加・更新します。
func (r *referenceGorm) UpsertDays(ctx context.Context, days []entity.CalendarDay) error {
	if len(days) == 0 {
		return nil
	}
	ms := make([]ReferenceDayModel, 0, len(days))
	for _, d := range days {
		ms = append(ms, toDayModel(d))
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"lunar_month", "lunar_day", "leap_month", "solar_term", "solar_term_at", "month_override", "day_label",
		}),
	}).Create(&ms).Error
}

// UpsertYearTerms は（年干, 節気）をキーに特例を追加・更新します。
func (r *referenceGorm) UpsertYearTerms(ctx context.Context, overrides []entity.YearTermOverride) error {
	if len(overrides) == 0 {
		return nil
	}
	ms := make([]YearTermModel, 0, len(overrides))
	for _, o := range overrides {
		ms = append(ms, YearTermModel{YearTen: o.YearTen.Hanja(), Term: o.Term.String(), Pillar: o.Pillar.String()})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "year_ten"}, {Name: "term"}},
		DoUpdates: clause.AssignmentColumns([]string{"pillar"}),
	}).Create(&ms).Error
}
