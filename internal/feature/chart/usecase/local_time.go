package usecase

import (
	"fmt"
	"math"
	"time"

	calentity "saju_backend/internal/feature/calendar/domain/entity"
	"saju_backend/internal/feature/chart/domain"
	"saju_backend/internal/feature/chart/domain/entity"
)

// HistoricalMeridian は韓国標準時が UTC+8:30 だった期間の基準子午線です。
const HistoricalMeridian = 127.5

type interval struct {
	from, to time.Time // [from, to)
}

func (iv interval) contains(t time.Time) bool {
	return !t.Before(iv.from) && t.Before(iv.to)
}

func wall(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, calentity.Zone)
}

// meridianPeriods は基準子午線が 127.5°E だった期間です。
var meridianPeriods = []interval{
	{wall(1908, time.April, 1, 0), wall(1912, time.January, 1, 0)},
	{wall(1954, time.March, 21, 0), wall(1961, time.August, 10, 0)},
}

// daylightSavingPeriods は韓国で夏時間が実施された期間（壁時計時刻）です。
// 切り替え時刻は開始 02:00、終了 03:00 で近似しています。
var daylightSavingPeriods = []interval{
	{wall(1948, time.June, 1, 2), wall(1948, time.September, 13, 3)},
	{wall(1949, time.April, 3, 2), wall(1949, time.September, 11, 3)},
	{wall(1950, time.April, 1, 2), wall(1950, time.September, 10, 3)},
	{wall(1951, time.May, 6, 2), wall(1951, time.September, 9, 3)},
	{wall(1955, time.May, 5, 2), wall(1955, time.September, 9, 3)},
	{wall(1956, time.May, 20, 2), wall(1956, time.September, 30, 3)},
	{wall(1957, time.May, 5, 2), wall(1957, time.September, 22, 3)},
	{wall(1958, time.May, 4, 2), wall(1958, time.September, 21, 3)},
	{wall(1959, time.May, 3, 2), wall(1959, time.September, 20, 3)},
	{wall(1960, time.May, 1, 2), wall(1960, time.September, 18, 3)},
	{wall(1987, time.May, 10, 2), wall(1987, time.October, 11, 3)},
	{wall(1988, time.May, 8, 2), wall(1988, time.October, 9, 3)},
}

// StandardMeridianAt は壁時計時刻 t における韓国標準時の基準子午線を返します。
func StandardMeridianAt(t time.Time) float64 {
	for _, p := range meridianPeriods {
		if p.contains(t) {
			return HistoricalMeridian
		}
	}
	return entity.DefaultReferenceMeridian
}

// InDaylightSaving は壁時計時刻 t が韓国の夏時間期間内かどうかを返します。
func InDaylightSaving(t time.Time) bool {
	for _, p := range daylightSavingPeriods {
		if p.contains(t) {
			return true
		}
	}
	return false
}

// BirthTime は補正済みの出生時刻です。
type BirthTime struct {
	// Instant は夏時間を除いた実際の出生時刻です。節入り時刻との比較に使います。
	Instant time.Time
	// Local は地方平均時の壁時計時刻です。日柱・時柱・暦日の判定はこの暦日と時刻で行います。
	Local time.Time
}

// CivilDate は Local の暦日を、暦アダプターの検索キーとなる韓国標準時の0時で返します。
func (b BirthTime) CivilDate() time.Time {
	return time.Date(b.Local.Year(), b.Local.Month(), b.Local.Day(), 0, 0, 0, 0, calentity.Zone)
}

// BirthWallClock は出生日の暦日と出生時刻（時）から壁時計時刻を組み立てます。
// 分とタイムゾーンは birth のものを使います。
func BirthWallClock(birth time.Time, hour int) (time.Time, error) {
	if birth.IsZero() {
		return time.Time{}, fmt.Errorf("birth date is required: %w", domain.ErrInvalidInput)
	}
	if hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("hour %d outside [0,23]: %w", hour, domain.ErrInvalidInput)
	}
	return time.Date(birth.Year(), birth.Month(), birth.Day(), hour, birth.Minute(), 0, 0, birth.Location()), nil
}

// ValidateLocation は経度・緯度が範囲内かどうかを検証します。
func ValidateLocation(loc *entity.Location) error {
	if loc == nil {
		return nil
	}
	if math.IsNaN(loc.Longitude) || loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("longitude %v: %w", loc.Longitude, domain.ErrInvalidInput)
	}
	if math.IsNaN(loc.Latitude) || loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("latitude %v: %w", loc.Latitude, domain.ErrInvalidInput)
	}
	return nil
}

// NormalizeTime は壁時計時刻に夏時間補正と地方時（経度）補正を適用します。
//
// 韓国標準時（calentity.Zone）の出生には歴史的な夏時間期間と基準子午線の表を使います。
// それ以外のタイムゾーンでは、出生時刻のUTCオフセットがその時計の子午線を表します。
func NormalizeTime(wall time.Time, opts entity.ResolutionOptions) (BirthTime, error) {
	if err := ValidateLocation(opts.Location); err != nil {
		return BirthTime{}, err
	}
	if m := opts.ReferenceMeridian; m != nil && (math.IsNaN(*m) || *m < -180 || *m > 180) {
		return BirthTime{}, fmt.Errorf("reference meridian %v: %w", *m, domain.ErrInvalidInput)
	}

	korean := wall.Location() == calentity.Zone
	dst := korean && InDaylightSaving(wall)
	if opts.UseDaylightSaving != nil {
		dst = *opts.UseDaylightSaving
	}

	// 壁時計の数字だけを取り出し、夏時間分を戻す
	clock := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), 0, time.UTC)
	if dst {
		clock = clock.Add(-time.Hour)
	}

	var meridian float64
	switch {
	case opts.ReferenceMeridian != nil:
		meridian = *opts.ReferenceMeridian
	case korean:
		meridian = StandardMeridianAt(onClock(clock, calentity.Zone))
	default:
		_, offset := wall.Zone()
		meridian = float64(offset) / secondsPerDegree
	}

	local := clock
	if opts.LocalTimeEnabled() {
		local = clock.Add(LongitudeShift(opts.Location.Longitude, meridian))
	}

	zone := calentity.Zone
	if !korean {
		name, offset := wall.Zone()
		zone = time.FixedZone(name, offset)
	}
	instant := clock.Add(-time.Duration(math.Round(meridian*secondsPerDegree)) * time.Second)
	return BirthTime{Instant: instant.In(zone), Local: onClock(local, zone)}, nil
}

// secondsPerDegree は経度1度あたりの時差（秒）です。
const secondsPerDegree = 240

// onClock は t の壁時計の数字をそのまま loc の時刻として解釈します。
func onClock(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// LongitudeShift は基準子午線から経度差1度あたり4分のずれを秒単位に丸めて返します。
func LongitudeShift(longitude, meridian float64) time.Duration {
	return time.Duration(math.Round((longitude-meridian)*secondsPerDegree)) * time.Second
}
