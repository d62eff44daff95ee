package dto

// SolarTermResponse は節気のDTOです。
type SolarTermResponse struct {
	Name   string `json:"name"`   // ipchun
	Hanja  string `json:"hanja"`  // 立春
	Hangul string `json:"hangul"` // 입춘
	At     string `json:"at"`     // RFC3339
}

// CalendarDayResponse は暦情報1日分のレスポンスDTOです。
type CalendarDayResponse struct {
	Date          string             `json:"date"`
	LunarMonth    int                `json:"lunar_month,omitempty"`
	LunarDay      int                `json:"lunar_day,omitempty"`
	LeapMonth     bool               `json:"leap_month"`
	SolarTerm     *SolarTermResponse `json:"solar_term,omitempty"`
	MonthTerm     *SolarTermResponse `json:"month_term,omitempty"`
	MonthOverride string             `json:"month_override,omitempty"`
	DayLabel      string             `json:"day_label,omitempty"`
	Source        string             `json:"source"`
}
