package entity

import chartentity "saju_backend/internal/feature/chart/domain/entity"

// YearTermOverride is one entry of the per-year-stem solar term table: for years whose
// stem is YearTen, the month governed by Term resolves to Pillar.
type YearTermOverride struct {
	YearTen chartentity.TenSymbol `json:"year_ten"`
	Term    SolarTerm             `json:"term"`
	Pillar  chartentity.Pillar    `json:"pillar"`
}
