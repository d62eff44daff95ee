package entity

// Gender は大運の順行・逆行の判定に使う性別です。
type Gender int

const (
	GenderUnspecified Gender = iota
	Male
	Female
)

// String はAPIで使う識別子を返します。
func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return ""
	}
}

// ParseGender は "male"/"female"（または "m"/"f"、"남"/"여"）を解析します。空文字は未指定です。
func ParseGender(s string) (Gender, bool) {
	switch s {
	case "":
		return GenderUnspecified, true
	case "male", "m", "M", "남":
		return Male, true
	case "female", "f", "F", "여":
		return Female, true
	}
	return GenderUnspecified, false
}

// Location は出生地の経度・緯度（度）です。
type Location struct {
	Longitude float64
	Latitude  float64
}

// DefaultReferenceMeridian は韓国標準時（UTC+9）の基準子午線です。
const DefaultReferenceMeridian = 135.0

// ResolutionOptions は命式算出の設定です。すべて省略可能で、nil はデフォルト値を意味します。
//
// デフォルト:
//   - UseLocalTime: Location がある場合 true
//   - UseDaylightSaving: 韓国標準時の出生なら歴史的サマータイム期間を自動判定、それ以外は false
//     （他のタイムゾーンではオフセット自体に夏時間が含まれるため）
//   - UseSolarTerms: true
//   - ReferenceMeridian: 韓国標準時の出生なら出生日時点の標準子午線（135°E、一部期間は127.5°E）、
//     それ以外は出生時刻のUTCオフセットを度に換算した値（15°/時）
type ResolutionOptions struct {
	Gender            Gender
	Location          *Location
	UseLocalTime      *bool
	UseDaylightSaving *bool
	UseSolarTerms     *bool
	ReferenceMeridian *float64
}

// Bool はオプション指定用に bool のポインタを返します。
func Bool(v bool) *bool { return &v }

// Float64 はオプション指定用に float64 のポインタを返します。
func Float64(v float64) *float64 { return &v }

// LocalTimeEnabled は地方時（経度）補正を行うかどうかを返します。
func (o ResolutionOptions) LocalTimeEnabled() bool {
	return o.Location != nil && (o.UseLocalTime == nil || *o.UseLocalTime)
}

// SolarTermsEnabled は節気による月柱判定を行うかどうかを返します。
func (o ResolutionOptions) SolarTermsEnabled() bool {
	return o.UseSolarTerms == nil || *o.UseSolarTerms
}
