// Package sexagenary は十干・十二支の二つの周期を組み合わせた六十甲子の剰余演算を提供します。
package sexagenary

import "saju_backend/internal/feature/chart/domain/entity"

// Period は十干（10）と十二支（12）を組み合わせた周期の長さです。
const Period = 60

// FloorMod は常に [0, n) に収まる剰余を返します。
// Goの % は切り捨て除算なので、負のオフセットでは負の値になる点に注意してください。
func FloorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Resolve は基準点（refTen, refTwelve）から offset だけ進めた干支を返します。
// 基準日より前の日付（負のオフセット）でもインデックスは常に有効範囲に収まります。
func Resolve(offset int, refTen entity.TenSymbol, refTwelve entity.TwelveSymbol) (entity.TenSymbol, entity.TwelveSymbol) {
	ten := FloorMod(int(refTen)+offset, entity.TenCount)
	twelve := FloorMod(int(refTwelve)+offset, entity.TwelveCount)
	return entity.TenSymbol(ten), entity.TwelveSymbol(twelve)
}

// ResolvePillar は Resolve の結果を柱として返します。
func ResolvePillar(offset int, ref entity.Pillar) entity.Pillar {
	ten, twelve := Resolve(offset, ref.Ten, ref.Twelve)
	return entity.NewPillar(ten, twelve)
}
