package usecase

import (
	"time"

	"saju_backend/internal/feature/chart/domain/entity"
	"saju_backend/internal/feature/chart/domain/sexagenary"
)

// 年柱・日柱の基準点。1984年 = 甲子年、1900-01-01 = 甲戌日。
const (
	YearEpoch = 1984

	DayEpochYear  = 1900
	DayEpochMonth = time.January
	DayEpochDay   = 1
)

var (
	YearEpochPair = entity.NewPillar(entity.Gap, entity.Rat)
	DayEpochPair  = entity.NewPillar(entity.Gap, entity.Dog)
)

// YearPillar は年（干支年）の柱を返します。
func YearPillar(year int) entity.Pillar {
	return sexagenary.ResolvePillar(year-YearEpoch, YearEpochPair)
}

// DayPillar は日付の柱を返します。t は補正済みの時刻で、日付への切り捨ては t の暦日で行います。
func DayPillar(t time.Time) entity.Pillar {
	return sexagenary.ResolvePillar(DayOffset(t.Year(), t.Month(), t.Day()), DayEpochPair)
}

// DayOffset は基準日からの通算日数を返します。基準日より前は負になります。
func DayOffset(year int, month time.Month, day int) int {
	return civilDays(year, int(month), day) - civilDays(DayEpochYear, int(DayEpochMonth), DayEpochDay)
}

// civilDays は 1970-01-01 を 0 とするグレゴリオ暦の通算日数です。
// time.Duration を経由しないため、約292年を超える範囲でも飽和しません。
func civilDays(y, m, d int) int {
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
