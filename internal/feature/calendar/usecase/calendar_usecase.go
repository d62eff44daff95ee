// Package usecase はcalendarフィーチャー（暦アダプター）のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"saju_backend/internal/feature/calendar/domain"
	"saju_backend/internal/feature/calendar/domain/almanac"
	"saju_backend/internal/feature/calendar/domain/entity"
)

const (
	// DefaultProviderTimeout は外部プロバイダー呼び出し1回あたりの上限時間です。
	DefaultProviderTimeout = 5 * time.Second
)

// ReferenceRepository は検証済み参照テーブルの読み取りレイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ReferenceRepository interface {
	// ListDays は参照テーブルのすべての日を返します。起動時に一度だけ呼ばれます。
	ListDays(ctx context.Context) ([]entity.CalendarDay, error)
}

// LunarProvider は外部の陰暦データ提供元です。
// 該当日がない場合は domain.ErrNotFound をラップしたエラーを返します。
type LunarProvider interface {
	FetchDay(ctx context.Context, date time.Time) (entity.CalendarDay, error)
}

// DayCache はプロバイダーの取得結果をTTL付きで保持するキャッシュです。
// TTLと破棄（Clear）の責務は実装側が持ちます。
type DayCache interface {
	Get(ctx context.Context, key string) (entity.CalendarDay, bool, error)
	Set(ctx context.Context, key string, day entity.CalendarDay) error
	Clear(ctx context.Context) error
}

// RateLimiter はプロバイダー呼び出しの頻度を制限します。
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// Recorder は解決レイヤーの選択結果を記録します（メトリクス用）。
type Recorder interface {
	ObserveCalendarSource(source string)
	ObserveProvider(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCalendarSource(string) {}
func (nopRecorder) ObserveProvider(string)       {}

// Option はAdapterの任意設定です。
type Option func(*Adapter)

// WithProvider は外部プロバイダーとキャッシュを設定します。cache は nil でも構いません。
func WithProvider(p LunarProvider, cache DayCache) Option {
	return func(a *Adapter) {
		a.provider = p
		a.cache = cache
	}
}

// WithProviderTimeout はプロバイダー呼び出しのタイムアウトを設定します。0以下は無視されます。
func WithProviderTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithRateLimiter はプロバイダー呼び出しのレートリミッターを設定します。
func WithRateLimiter(rl RateLimiter) Option {
	return func(a *Adapter) { a.limiter = rl }
}

// WithRecorder はメトリクスの記録先を設定します。
func WithRecorder(r Recorder) Option {
	return func(a *Adapter) {
		if r != nil {
			a.recorder = r
		}
	}
}

// Adapter は太陽暦の日付から暦情報（陰暦月日・節気）を解決します。
//
// 解決順序（最初に見つかったものを採用）:
//  1. 検証済み参照テーブル
//  2. 外部プロバイダー（TTL付きキャッシュ経由、同一キーの同時取得は1回にまとめる）
//  3. ローカル暦計算による近似
//  4. いずれも失敗した場合は太陽暦の日付のみ（低信頼）
type Adapter struct {
	reference map[string]entity.CalendarDay
	provider  LunarProvider
	cache     DayCache
	limiter   RateLimiter
	recorder  Recorder
	timeout   time.Duration
	flight    singleflight.Group
}

// NewAdapter は参照テーブルの内容とオプションからAdapterを生成します。
func NewAdapter(reference []entity.CalendarDay, opts ...Option) *Adapter {
	a := &Adapter{
		reference: make(map[string]entity.CalendarDay, len(reference)),
		recorder:  nopRecorder{},
		timeout:   DefaultProviderTimeout,
	}
	for _, d := range reference {
		d.Source = entity.SourceReference
		a.reference[d.Key()] = d
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoadAdapter は参照テーブルをリポジトリから一度だけ読み込んでAdapterを生成します。
func LoadAdapter(ctx context.Context, repo ReferenceRepository, opts ...Option) (*Adapter, error) {
	days, err := repo.ListDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("load calendar reference table: %w", err)
	}
	slog.Info("calendar reference table loaded", "days", len(days))
	return NewAdapter(days, opts...), nil
}

// ReferenceSize は参照テーブルの件数を返します。
func (a *Adapter) ReferenceSize() int { return len(a.reference) }

// Lookup は日付の暦情報を返します。エラーは返さず、失敗時は下位レイヤーへフォールバックします。
func (a *Adapter) Lookup(ctx context.Context, date time.Time) entity.CalendarDay {
	day := entity.DayStart(date)
	key := day.Format(entity.DateLayout)

	// 1) 参照テーブル
	if d, ok := a.reference[key]; ok {
		a.recorder.ObserveCalendarSource(string(entity.SourceReference))
		return withTerms(d)
	}

	// 2) 外部プロバイダー（キャッシュ経由）
	if a.provider != nil {
		d, err := a.fromProvider(ctx, key, day)
		if err == nil {
			a.recorder.ObserveCalendarSource(string(entity.SourceProvider))
			return withTerms(d)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Warn("lunar provider lookup failed, using local approximation", "date", key, "error", err)
		}
	}

	// 3) ローカル近似
	d, err := approximate(day)
	if err == nil {
		a.recorder.ObserveCalendarSource(string(entity.SourceApproximation))
		return d
	}
	slog.Warn("calendar approximation unavailable", "date", key, "error", err)

	// 4) 太陽暦のみ
	a.recorder.ObserveCalendarSource(string(entity.SourceGregorian))
	return entity.GregorianDay(day)
}

// Clear はプロバイダー結果のキャッシュを破棄します。
func (a *Adapter) Clear(ctx context.Context) error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Clear(ctx)
}

// fromProvider はキャッシュを確認し、ミス時にはプロバイダーから取得してキャッシュします。
func (a *Adapter) fromProvider(ctx context.Context, key string, day time.Time) (entity.CalendarDay, error) {
	if a.cache != nil {
		if d, ok, err := a.cache.Get(ctx, key); err == nil && ok {
			a.recorder.ObserveProvider("cache_hit")
			return d, nil
		} else if err != nil {
			slog.Warn("calendar cache read failed", "key", key, "error", err)
		}
	}

	// 同じキーの取得は同時に1回だけ行う。呼び出し元のキャンセルが他の待機者に波及しないよう
	// キャンセルを切り離し、タイムアウトだけを付与する。
	v, err, _ := a.flight.Do(key, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()

		if a.limiter != nil {
			if err := a.limiter.Wait(fctx); err != nil {
				return nil, classify(err)
			}
		}

		d, err := a.provider.FetchDay(fctx, day)
		if err != nil {
			return nil, classify(err)
		}
		d.Date = day
		d.Source = entity.SourceProvider

		if a.cache != nil {
			if err := a.cache.Set(fctx, key, d); err != nil {
				slog.Warn("calendar cache write failed", "key", key, "error", err)
			}
		}
		return d, nil
	})
	if err != nil {
		a.recorder.ObserveProvider(outcomeOf(err))
		return entity.CalendarDay{}, err
	}
	a.recorder.ObserveProvider("fetched")
	return v.(entity.CalendarDay), nil
}

// classify はプロバイダー呼び出しのエラーをドメインエラーに分類します。
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrProviderTimeout), errors.Is(err, domain.ErrProviderError):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrProviderTimeout, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrProviderError, err)
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrProviderTimeout):
		return "timeout"
	default:
		return "error"
	}
}

// approximate はローカル暦計算で暦情報を推定します。
func approximate(day time.Time) (entity.CalendarDay, error) {
	last, opening, termErr := almanac.Preceding(day)
	lunar, lunarErr := almanac.EstimateLunarDate(day)
	if termErr != nil && lunarErr != nil {
		return entity.CalendarDay{}, errors.Join(termErr, lunarErr)
	}

	d := entity.CalendarDay{Date: day, Source: entity.SourceApproximation}
	if termErr == nil {
		d.SolarTerm = &last
		d.MonthTerm = &opening
	}
	if lunarErr == nil {
		d.LunarMonth = lunar.Month
		d.LunarDay = lunar.Day
		d.LeapMonth = lunar.Leap
	}
	return d, nil
}

// withTerms は節気情報が欠けている日をローカル暦計算で補完します。
// プロバイダーは節気当日にしかラベルを返さないため、直前の節気と節入りはここで求めます。
func withTerms(d entity.CalendarDay) entity.CalendarDay {
	if d.SolarTerm != nil && d.MonthTerm != nil {
		return d
	}
	last, opening, err := almanac.Preceding(d.Date)
	if err != nil {
		if d.SolarTerm != nil && d.SolarTerm.Term.IsMonthOpening() {
			t := *d.SolarTerm
			d.MonthTerm = &t
		}
		return d
	}
	if d.SolarTerm == nil {
		d.SolarTerm = &last
	}
	if d.MonthTerm == nil {
		if d.SolarTerm.Term.IsMonthOpening() {
			t := *d.SolarTerm
			d.MonthTerm = &t
		} else {
			d.MonthTerm = &opening
		}
	}
	return d
}
