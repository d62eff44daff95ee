package entity

import "time"

// PillarPosition は命式内の柱の位置（年・月・日・時）です。
type PillarPosition int

const (
	YearPosition PillarPosition = iota
	MonthPosition
	DayPosition
	HourPosition
)

func (p PillarPosition) String() string {
	switch p {
	case YearPosition:
		return "year"
	case MonthPosition:
		return "month"
	case DayPosition:
		return "day"
	case HourPosition:
		return "hour"
	}
	return "unknown"
}

// MonthLayer は月柱を決定した解決レイヤーです。値が小さいほど優先順位が高くなります。
type MonthLayer int

const (
	MonthLayerReference  MonthLayer = iota + 1 // 検証済み参照テーブル
	MonthLayerYearTerm                         // 年干別の節気特例
	MonthLayerSolarTerm                        // 一般節気規則
	MonthLayerLunarMonth                       // 暦月（陰暦月）標準式
	MonthLayerArithmetic                       // 算術近似（精度が最も低い）
)

func (l MonthLayer) String() string {
	switch l {
	case MonthLayerReference:
		return "reference"
	case MonthLayerYearTerm:
		return "year_term"
	case MonthLayerSolarTerm:
		return "solar_term"
	case MonthLayerLunarMonth:
		return "lunar_month"
	case MonthLayerArithmetic:
		return "arithmetic"
	}
	return "unknown"
}

// Confidence は命式の信頼度です。
type Confidence int

const (
	ConfidenceHigh     Confidence = iota // 参照テーブルで検証済み
	ConfidenceStandard                   // 節気・暦月の規則で算出
	ConfidenceLow                        // 暦情報なし（算術近似）
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceStandard:
		return "standard"
	}
	return "low"
}

// ConfidenceOf は月柱の解決レイヤーから信頼度を決めます。
func ConfidenceOf(layer MonthLayer) Confidence {
	switch layer {
	case MonthLayerReference:
		return ConfidenceHigh
	case MonthLayerArithmetic:
		return ConfidenceLow
	}
	return ConfidenceStandard
}

// Relation は日干以外の天干（または蔵干）の十神分類です。
type Relation struct {
	Position PillarPosition
	Symbol   TenSymbol
	Hidden   bool
	Category RelationalCategory
}

// LuckPillar は大運の1区間です。
type LuckPillar struct {
	StartAge int
	Pillar   Pillar
}

// LuckCycle は大運の並びです。
type LuckCycle struct {
	Forward  bool
	StartAge int
	Pillars  []LuckPillar
}

// Chart は四柱（年・月・日・時）からなる命式です。
// すべての値は (出生日時, 出生時刻, 出生地) から再計算でき、隠れた状態は持ちません。
type Chart struct {
	Year  Pillar
	Month Pillar
	Day   Pillar
	Hour  Pillar

	// 日干から導かれる主五行・陰陽と、月干から導かれる副五行
	DayMasterElement  Element
	DayMasterPolarity Polarity
	MonthElement      Element

	MonthLayer     MonthLayer
	Confidence     Confidence
	CalendarSource string

	// 地方時・サマータイム補正後の出生時刻
	NormalizedTime time.Time

	Relations     []Relation
	ElementCounts [ElementCount]int
	Luck          *LuckCycle
}

// Pillars は年・月・日・時の順に柱を返します。
func (c Chart) Pillars() [4]Pillar {
	return [4]Pillar{c.Year, c.Month, c.Day, c.Hour}
}

// Pillar は指定位置の柱を返します。
func (c Chart) Pillar(pos PillarPosition) Pillar {
	return c.Pillars()[pos]
}
