package usecase

import (
	"time"

	"saju_backend/internal/feature/chart/domain/entity"
)

// AssembleInput は Assemble に渡す解決済みの値です。
type AssembleInput struct {
	Year, Month, Day, Hour entity.Pillar
	MonthLayer             entity.MonthLayer
	CalendarSource         string
	NormalizedTime         time.Time
}

// Assemble は四柱から命式を組み立てます。
// 蔵干の付与、日干からの主五行・陰陽、月干からの副五行、十神、五行の分布を計算します。
func Assemble(in AssembleInput) entity.Chart {
	c := entity.Chart{
		Year:           entity.NewPillar(in.Year.Ten, in.Year.Twelve),
		Month:          entity.NewPillar(in.Month.Ten, in.Month.Twelve),
		Day:            entity.NewPillar(in.Day.Ten, in.Day.Twelve),
		Hour:           entity.NewPillar(in.Hour.Ten, in.Hour.Twelve),
		MonthLayer:     in.MonthLayer,
		Confidence:     entity.ConfidenceOf(in.MonthLayer),
		CalendarSource: in.CalendarSource,
		NormalizedTime: in.NormalizedTime,
	}
	c.DayMasterElement = c.Day.Element()
	c.DayMasterPolarity = c.Day.Polarity()
	c.MonthElement = c.Month.Element()
	c.Relations = Relations(c)
	c.ElementCounts = ElementCounts(c)
	return c
}

// Relations は日干以外のすべての天干と、すべての柱の蔵干について十神を返します。
// 並びは年・月・日・時の順で、各柱の中では天干、蔵干の順です。
func Relations(c entity.Chart) []entity.Relation {
	ref := c.Day.Ten
	out := make([]entity.Relation, 0, 16)
	for pos, p := range c.Pillars() {
		position := entity.PillarPosition(pos)
		if position != entity.DayPosition {
			out = append(out, entity.Relation{
				Position: position,
				Symbol:   p.Ten,
				Category: Classify(ref, p.Ten),
			})
		}
		for _, h := range p.Hidden() {
			out = append(out, entity.Relation{
				Position: position,
				Symbol:   h,
				Hidden:   true,
				Category: Classify(ref, h),
			})
		}
	}
	return out
}

// ElementCounts は四柱の天干・地支（8字）の五行ごとの個数です。
func ElementCounts(c entity.Chart) [entity.ElementCount]int {
	var counts [entity.ElementCount]int
	for _, p := range c.Pillars() {
		counts[p.Ten.Element()]++
		counts[p.Twelve.Element()]++
	}
	return counts
}
