package usecase

import (
	"math"
	"time"

	"saju_backend/internal/feature/calendar/domain/almanac"
	calentity "saju_backend/internal/feature/calendar/domain/entity"
	"saju_backend/internal/feature/chart/domain/entity"
)

// LuckPillarCount は算出する大運の数です。
const LuckPillarCount = 10

// daysPerLuckYear は節入りまでの日数を大運数（年）に換算する係数です（3日 = 1年）。
const daysPerLuckYear = 3.0

// LuckForward は大運が順行かどうかを返します。
// 陽年の男性・陰年の女性は順行、それ以外は逆行です。
func LuckForward(gender entity.Gender, yearTen entity.TenSymbol) bool {
	positive := yearTen.Polarity() == entity.Positive
	return (gender == entity.Male && positive) || (gender == entity.Female && !positive)
}

// LuckCycleFor は命式の大運を求めます。性別が未指定の場合、
// または出生時刻がローカル暦の範囲外の場合は nil を返します。
// day は出生日の暦情報、at は出生の瞬間で、月柱と同じ節入り境界から日数を数えます。
func LuckCycleFor(c entity.Chart, gender entity.Gender, day calentity.CalendarDay, at time.Time) *entity.LuckCycle {
	if gender == entity.GenderUnspecified || !c.Month.Valid() {
		return nil
	}
	forward := LuckForward(gender, c.Year.Ten)

	current, next, err := monthBoundaries(day, at)
	if err != nil {
		return nil
	}
	var days float64
	if forward {
		days = next.At.Sub(at).Hours() / 24
	} else {
		days = at.Sub(current.At).Hours() / 24
	}

	start := int(math.Round(days / daysPerLuckYear))
	if start < 1 {
		start = 1
	}

	step := 1
	if !forward {
		step = -1
	}
	base := c.Month.CycleIndex()
	pillars := make([]entity.LuckPillar, 0, LuckPillarCount)
	for i := 1; i <= LuckPillarCount; i++ {
		pillars = append(pillars, entity.LuckPillar{
			StartAge: start + 10*(i-1),
			Pillar:   entity.PillarFromCycle(base + step*i),
		})
	}
	return &entity.LuckCycle{Forward: forward, StartAge: start, Pillars: pillars}
}

// monthBoundaries は at を含む節月の開始と次の節月の開始を返します。
// 暦アダプターが節入り時刻を記録している日はそれを境界とし、なければ近似暦を使います。
func monthBoundaries(day calentity.CalendarDay, at time.Time) (current, next calentity.SolarTermEvent, err error) {
	rec, ok := day.OpeningTerm()
	if !ok || rec.At.IsZero() {
		if _, current, err = almanac.Preceding(at); err != nil {
			return current, next, err
		}
		next, err = almanac.NextOpening(at)
		return current, next, err
	}

	if rec.At.After(at) {
		current, err = almanac.PreviousOpening(rec)
		return current, rec, err
	}
	next, err = almanac.NextOpening(at)
	if err == nil && next.Term == rec.Term {
		next, err = almanac.NextOpening(next.At)
	}
	return rec, next, err
}
