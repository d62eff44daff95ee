package usecase

import (
	"fmt"

	"saju_backend/internal/feature/chart/domain"
	"saju_backend/internal/feature/chart/domain/entity"
	"saju_backend/internal/feature/chart/domain/sexagenary"
)

// HourBranch は時刻（0..23）の地支です。23:00〜00:59 が子（0）で、以後2時間ごとに1つ進みます。
func HourBranch(hour int) (entity.TwelveSymbol, error) {
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour %d outside [0,23]: %w", hour, domain.ErrInvalidInput)
	}
	return entity.TwelveSymbol(((hour + 1) % 24) / 2), nil
}

// HourGroupBase は日干の組（甲己・乙庚・丙辛・丁壬・戊癸）ごとの子時の天干です。
func HourGroupBase(dayTen entity.TenSymbol) entity.TenSymbol {
	return entity.TenSymbol((int(dayTen) % 5) * 2)
}

// HourPillar は日干と補正済みの時刻（時）から時柱を求めます。
// 組の基準天干から数える方法と (日干×2 + 地支) mod 10 の2通りで計算し、一致を確認します。
func HourPillar(dayTen entity.TenSymbol, hour int) (entity.Pillar, error) {
	if !dayTen.Valid() {
		return entity.Pillar{}, fmt.Errorf("day stem %d: %w", int(dayTen), domain.ErrInvalidInput)
	}
	branch, err := HourBranch(hour)
	if err != nil {
		return entity.Pillar{}, err
	}

	byGroup := sexagenary.FloorMod(int(HourGroupBase(dayTen))+int(branch), entity.TenCount)
	byProduct := sexagenary.FloorMod(int(dayTen)*2+int(branch), entity.TenCount)
	if byGroup != byProduct {
		return entity.Pillar{}, fmt.Errorf("hour stem mismatch for day stem %s hour %d: group=%d product=%d",
			dayTen, hour, byGroup, byProduct)
	}
	return entity.NewPillar(entity.TenSymbol(byGroup), branch), nil
}
