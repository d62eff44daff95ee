package dto

// PillarResponse は柱1本のDTOです。
type PillarResponse struct {
	Hanja    string   `json:"hanja"`    // 甲子
	Hangul   string   `json:"hangul"`   // 갑자
	Ten      string   `json:"ten"`      // 天干
	Twelve   string   `json:"twelve"`   // 地支
	Element  string   `json:"element"`  // 天干の五行
	Polarity string   `json:"polarity"` // 天干の陰陽
	Hidden   []string `json:"hidden"`   // 蔵干
}

// PillarsResponse は四柱のDTOです。
type PillarsResponse struct {
	Year  PillarResponse `json:"year"`
	Month PillarResponse `json:"month"`
	Day   PillarResponse `json:"day"`
	Hour  PillarResponse `json:"hour"`
}

// RelationResponse は十神分類1件のDTOです。
type RelationResponse struct {
	Position string `json:"position"`
	Symbol   string `json:"symbol"`
	Hidden   bool   `json:"hidden"`
	Category string `json:"category"`
}

// LuckPillarResponse は大運1区間のDTOです。
type LuckPillarResponse struct {
	StartAge int            `json:"start_age"`
	Pillar   PillarResponse `json:"pillar"`
}

// LuckResponse は大運のDTOです。
type LuckResponse struct {
	Forward  bool                 `json:"forward"`
	StartAge int                  `json:"start_age"`
	Pillars  []LuckPillarResponse `json:"pillars"`
}

// ChartResponse は命式のレスポンスDTOです。
type ChartResponse struct {
	Pillars           PillarsResponse    `json:"pillars"`
	DayMasterElement  string             `json:"day_master_element"`
	DayMasterPolarity string             `json:"day_master_polarity"`
	MonthElement      string             `json:"month_element"`
	MonthLayer        string             `json:"month_layer"`
	Confidence        string             `json:"confidence"`
	CalendarSource    string             `json:"calendar_source"`
	NormalizedTime    string             `json:"normalized_time"` // RFC3339
	Relations         []RelationResponse `json:"relations"`
	ElementCounts     map[string]int     `json:"element_counts"`
	Luck              *LuckResponse      `json:"luck,omitempty"`
}
