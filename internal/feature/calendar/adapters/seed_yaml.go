package adapters

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"saju_backend/internal/feature/calendar/domain/entity"
)

// SeedFile は参照テーブルのYAMLシードファイルの内容です。
//
//	days:
//	  - date: "2024-02-10"
//	    lunar_month: 1
//	    lunar_day: 1
//	    month_override: 丙寅
//	    day_label: 甲辰
//	year_terms:
//	  - year_ten: 甲
//	    term: ipchun
//	    pillar: 丙寅
type SeedFile struct {
	Days      []SeedDay      `yaml:"days"`
	YearTerms []SeedYearTerm `yaml:"year_terms"`
}

// SeedDay は参照日1件です。干支は「甲子」「갑자」どちらの表記でも構いません。
type SeedDay struct {
	Date          string     `yaml:"date"`
	LunarMonth    int        `yaml:"lunar_month"`
	LunarDay      int        `yaml:"lunar_day"`
	LeapMonth     bool       `yaml:"leap_month"`
	SolarTerm     string     `yaml:"solar_term"`
	SolarTermAt   *time.Time `yaml:"solar_term_at"`
	MonthOverride string     `yaml:"month_override"`
	DayLabel      string     `yaml:"day_label"`
}

// SeedYearTerm は年干別の節気特例1件です。
type SeedYearTerm struct {
	YearTen string `yaml:"year_ten"`
	Term    string `yaml:"term"`
	Pillar  string `yaml:"pillar"`
}

// ReadSeedFile はYAMLシードファイルを読み込みます。
func ReadSeedFile(path string) (SeedFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return SeedFile{}, fmt.Errorf("read seed file: %w", err)
	}
	var f SeedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return SeedFile{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return f, nil
}

// Decode はシードの内容をドメインモデルに変換します。不正な行はまとめてエラーとして返します。
func (f SeedFile) Decode() ([]entity.CalendarDay, []entity.YearTermOverride, error) {
	var errs []error

	days := make([]entity.CalendarDay, 0, len(f.Days))
	for i, s := range f.Days {
		d, err := toDay(ReferenceDayModel{
			Date:          s.Date,
			LunarMonth:    s.LunarMonth,
			LunarDay:      s.LunarDay,
			LeapMonth:     s.LeapMonth,
			SolarTerm:     s.SolarTerm,
			SolarTermAt:   s.SolarTermAt,
			MonthOverride: s.MonthOverride,
			DayLabel:      s.DayLabel,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("days[%d]: %w", i, err))
			continue
		}
		if d.LunarMonth < 0 || d.LunarMonth > 12 || d.LunarDay < 0 || d.LunarDay > 30 {
			errs = append(errs, fmt.Errorf("days[%d]: lunar date %d/%d out of range", i, d.LunarMonth, d.LunarDay))
			continue
		}
		days = append(days, d)
	}

	overrides := make([]entity.YearTermOverride, 0, len(f.YearTerms))
	for i, s := range f.YearTerms {
		o, err := toOverride(YearTermModel{YearTen: s.YearTen, Term: s.Term, Pillar: s.Pillar})
		if err != nil {
			errs = append(errs, fmt.Errorf("year_terms[%d]: %w", i, err))
			continue
		}
		overrides = append(overrides, o)
	}

	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}
	return days, overrides, nil
}

// SeedStore はシードの書き込み先です。
type SeedStore interface {
	UpsertDays(ctx context.Context, days []entity.CalendarDay) error
	UpsertYearTerms(ctx context.Context, overrides []entity.YearTermOverride) error
}

var _ SeedStore = (*referenceGorm)(nil)

// ImportSeedFile はシードファイルを読み込み、リポジトリへ追加・更新します。
// 取り込んだ日数と特例数を返します。
func ImportSeedFile(ctx context.Context, repo SeedStore, path string) (int, int, error) {
	f, err := ReadSeedFile(path)
	if err != nil {
		return 0, 0, err
	}
	days, overrides, err := f.Decode()
	if err != nil {
		return 0, 0, err
	}
	if err := repo.UpsertDays(ctx, days); err != nil {
		return 0, 0, fmt.Errorf("upsert reference days: %w", err)
	}
	if err := repo.UpsertYearTerms(ctx, overrides); err != nil {
		return 0, 0, fmt.Errorf("upsert year term overrides: %w", err)
	}
	return len(days), len(overrides), nil
}
