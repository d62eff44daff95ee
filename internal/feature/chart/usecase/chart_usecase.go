// Package usecase はchartフィーチャー（命式算出）のビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"time"

	calentity "saju_backend/internal/feature/calendar/domain/entity"
	"saju_backend/internal/feature/chart/domain"
	"saju_backend/internal/feature/chart/domain/entity"
)

// CalendarLookup は日付の暦情報を返す暦アダプターです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CalendarLookup interface {
	// Lookup は失敗しません。解決できない場合は太陽暦のみの日を返します。
	Lookup(ctx context.Context, date time.Time) calentity.CalendarDay
}

// Recorder は命式算出の結果を記録します（メトリクス用）。
type Recorder interface {
	ObserveChart(layer entity.MonthLayer, confidence entity.Confidence)
}

type nopRecorder struct{}

func (nopRecorder) ObserveChart(entity.MonthLayer, entity.Confidence) {}

// gregorianOnly は暦アダプターが設定されていない場合に使われます。
type gregorianOnly struct{}

func (gregorianOnly) Lookup(_ context.Context, date time.Time) calentity.CalendarDay {
	return calentity.GregorianDay(date)
}

// ChartUsecase は命式算出のユースケースです。
type ChartUsecase struct {
	calendar CalendarLookup
	months   MonthResolver
	recorder Recorder
	now      func() time.Time
}

// ChartOption はChartUsecaseの任意設定です。
type ChartOption func(*ChartUsecase)

// WithChartRecorder はメトリクスの記録先を設定します。
func WithChartRecorder(r Recorder) ChartOption {
	return func(u *ChartUsecase) {
		if r != nil {
			u.recorder = r
		}
	}
}

// WithClock は ComputeChartNow が使う時計を設定します。
func WithClock(now func() time.Time) ChartOption {
	return func(u *ChartUsecase) {
		if now != nil {
			u.now = now
		}
	}
}

// NewChartUsecase はChartUsecaseの新しいインスタンスを生成します。
func NewChartUsecase(calendar CalendarLookup, yearTerms YearTermTable, opts ...ChartOption) *ChartUsecase {
	if calendar == nil {
		calendar = gregorianOnly{}
	}
	u := &ChartUsecase{
		calendar: calendar,
		months:   NewMonthResolver(yearTerms),
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ComputeChart は出生日・出生時刻（時）・オプションから命式を算出します。
// birth のタイムゾーンが出生地の時計として扱われます。
// 返すエラーは domain.ErrInvalidInput のみで、暦情報の欠落は Confidence で表します。
func (u *ChartUsecase) ComputeChart(ctx context.Context, birth time.Time, hour int, opts entity.ResolutionOptions) (entity.Chart, error) {
	wallClock, err := BirthWallClock(birth, hour)
	if err != nil {
		return entity.Chart{}, err
	}
	birthTime, err := NormalizeTime(wallClock, opts)
	if err != nil {
		return entity.Chart{}, err
	}

	day := u.calendar.Lookup(ctx, birthTime.CivilDate())

	yearP := YearPillar(ChartYear(birthTime, day, opts))
	monthP, layer := u.months.Resolve(birthTime, day, yearP, opts)
	dayP := DayPillar(birthTime.Local)
	hourP, err := HourPillar(dayP.Ten, birthTime.Local.Hour())
	if err != nil {
		return entity.Chart{}, err
	}

	if day.DayLabel != nil && !day.DayLabel.Equal(dayP) {
		slog.Warn("provider day label disagrees with computed day pillar",
			"date", day.Key(), "provider", day.DayLabel.String(), "computed", dayP.String())
	}

	c := Assemble(AssembleInput{
		Year:           yearP,
		Month:          monthP,
		Day:            dayP,
		Hour:           hourP,
		MonthLayer:     layer,
		CalendarSource: string(day.Source),
		NormalizedTime: birthTime.Local,
	})
	if c.Confidence == entity.ConfidenceLow {
		slog.Warn("month pillar resolved by arithmetic fallback",
			"date", day.Key(), "error", domain.ErrCalendarUnavailable)
	}
	c.Luck = LuckCycleFor(c, opts.Gender, day, birthTime.Instant)

	u.recorder.ObserveChart(c.MonthLayer, c.Confidence)
	return c, nil
}

// ComputeChartNow は現在時刻を一度だけ取得し、ComputeChart に渡します。
// loc が nil の場合は韓国標準時の時計を使います。
func (u *ChartUsecase) ComputeChartNow(ctx context.Context, loc *time.Location, opts entity.ResolutionOptions) (entity.Chart, error) {
	if loc == nil {
		loc = calentity.Zone
	}
	now := u.now().In(loc)
	return u.ComputeChart(ctx, now, now.Hour(), opts)
}
