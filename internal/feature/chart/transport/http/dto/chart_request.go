package dto

// ChartOptionsRequest は命式算出の補正オプションです。
// POST のJSONボディと GET のクエリ文字列の両方で使います。
type ChartOptionsRequest struct {
	Gender   string `json:"gender" form:"gender"`       // male / female / 空
	TimeZone string `json:"time_zone" form:"time_zone"` // IANA名（例: America/New_York）。空なら韓国標準時

	Longitude *float64 `json:"longitude" form:"longitude"`
	Latitude  *float64 `json:"latitude" form:"latitude"`

	UseLocalTime      *bool    `json:"use_local_time" form:"use_local_time"`
	UseDaylightSaving *bool    `json:"use_daylight_saving" form:"use_daylight_saving"`
	UseSolarTerms     *bool    `json:"use_solar_terms" form:"use_solar_terms"`
	ReferenceMeridian *float64 `json:"reference_meridian" form:"reference_meridian"`
}

// ChartRequest は命式算出リクエストのDTOです。
// Hour はポインタにして、0時（子の刻）と未指定を区別します。
type ChartRequest struct {
	BirthDate string `json:"birth_date" binding:"required"` // YYYY-MM-DD（time_zone の壁時計）
	Hour      *int   `json:"hour" binding:"required,min=0,max=23"`
	Minute    int    `json:"minute" binding:"min=0,max=59"`

	ChartOptionsRequest
}
