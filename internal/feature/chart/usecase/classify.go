package usecase

import (
	"fmt"

	"saju_backend/internal/feature/chart/domain/entity"
)

// Classify は基準の天干（日干）に対する対象の天干の十神を返します。
//
// 判定順: 同じ五行 → 対象が基準を生じる → 対象が基準を剋する → 基準が対象を生じる → 基準が対象を剋する。
// 各組の中は陰陽が同じかどうかで分かれます。五行の相生・相剋は25通りの組をちょうど分割するため、
// どの分岐にも入らないことはありません。
func Classify(reference, target entity.TenSymbol) entity.RelationalCategory {
	re, te := reference.Element(), target.Element()
	same := reference.Polarity() == target.Polarity()

	pick := func(samePolarity, otherPolarity entity.RelationalCategory) entity.RelationalCategory {
		if same {
			return samePolarity
		}
		return otherPolarity
	}

	switch {
	case re == te:
		return pick(entity.Companion, entity.RobWealth)
	case te.Generates(re):
		return pick(entity.IndirectResource, entity.DirectResource)
	case te.Controls(re):
		return pick(entity.SevenKillings, entity.DirectOfficer)
	case re.Generates(te):
		return pick(entity.EatingGod, entity.HurtingOfficer)
	case re.Controls(te):
		return pick(entity.IndirectWealth, entity.DirectWealth)
	}
	panic(fmt.Sprintf("classify: no relation between %s and %s", reference, target))
}
