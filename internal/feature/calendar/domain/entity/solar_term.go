// Package entity defines the domain models for the calendar feature.
package entity

import (
	"fmt"
	"strings"
	"time"
)

// SolarTerm is one of the 24 yearly solar terms (節気), ordered from Sohan (小寒, early January).
// Even indexes are month-opening terms (節), odd indexes are mid-month terms (中気).
type SolarTerm int

const (
	Sohan        SolarTerm = iota // 小寒
	Daehan                        // 大寒
	Ipchun                        // 立春
	Usu                           // 雨水
	Gyeongchip                    // 驚蟄
	Chunbun                       // 春分
	Cheongmyeong                  // 清明
	Gogu                          // 穀雨
	Ipha                          // 立夏
	Soman                         // 小滿
	Mangjong                      // 芒種
	Haji                          // 夏至
	Soseo                         // 小暑
	Daeseo                        // 大暑
	Ipchu                         // 立秋
	Cheoseo                       // 處暑
	Baengno                       // 白露
	Chubun                        // 秋分
	Hallo                         // 寒露
	Sanggang                      // 霜降
	Ipdong                        // 立冬
	Soseol                        // 小雪
	Daeseol                       // 大雪
	Dongji                        // 冬至
)

// SolarTermCount is the number of solar terms in a year.
const SolarTermCount = 24

var solarTermNames = [SolarTermCount]string{
	"sohan", "daehan", "ipchun", "usu", "gyeongchip", "chunbun",
	"cheongmyeong", "gogu", "ipha", "soman", "mangjong", "haji",
	"soseo", "daeseo", "ipchu", "cheoseo", "baengno", "chubun",
	"hallo", "sanggang", "ipdong", "soseol", "daeseol", "dongji",
}

var solarTermHanja = [SolarTermCount]string{
	"小寒", "大寒", "立春", "雨水", "驚蟄", "春分",
	"清明", "穀雨", "立夏", "小滿", "芒種", "夏至",
	"小暑", "大暑", "立秋", "處暑", "白露", "秋分",
	"寒露", "霜降", "立冬", "小雪", "大雪", "冬至",
}

var solarTermHangul = [SolarTermCount]string{
	"소한", "대한", "입춘", "우수", "경칩", "춘분",
	"청명", "곡우", "입하", "소만", "망종", "하지",
	"소서", "대서", "입추", "처서", "백로", "추분",
	"한로", "상강", "입동", "소설", "대설", "동지",
}

// Valid reports whether t is one of the 24 terms.
func (t SolarTerm) Valid() bool { return t >= 0 && int(t) < SolarTermCount }

// IsMonthOpening reports whether t opens a traditional month (節).
func (t SolarTerm) IsMonthOpening() bool { return t.Valid() && t%2 == 0 }

// Month returns the traditional month number (1..12) that t belongs to.
// Ipchun and Usu belong to month 1; Sohan and Daehan to month 12.
func (t SolarTerm) Month() int {
	m := int(t)/2 // Sohan=0 → 0, Ipchun=2 → 1
	if m == 0 {
		return 12
	}
	return m
}

// GregorianMonth returns the Gregorian month in which t falls.
func (t SolarTerm) GregorianMonth() time.Month { return time.Month(int(t)/2 + 1) }

// OpeningTerm returns the month-opening term of the month t belongs to.
func (t SolarTerm) OpeningTerm() SolarTerm { return t - t%2 }

// PreviousOpening returns the month-opening term of the month before the one t belongs to.
// Sohan wraps around to Daeseol of the previous year.
func (t SolarTerm) PreviousOpening() SolarTerm {
	return SolarTerm((int(t.OpeningTerm()) + SolarTermCount - 2) % SolarTermCount)
}

func (t SolarTerm) String() string {
	if !t.Valid() {
		return fmt.Sprintf("SolarTerm(%d)", int(t))
	}
	return solarTermNames[t]
}

// Hanja returns the traditional Chinese-character name.
func (t SolarTerm) Hanja() string {
	if !t.Valid() {
		return ""
	}
	return solarTermHanja[t]
}

// Hangul returns the Korean name.
func (t SolarTerm) Hangul() string {
	if !t.Valid() {
		return ""
	}
	return solarTermHangul[t]
}

// ParseSolarTerm accepts the romanized, hanja or hangul name of a term.
func ParseSolarTerm(s string) (SolarTerm, bool) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for i := 0; i < SolarTermCount; i++ {
		if lower == solarTermNames[i] || s == solarTermHanja[i] || s == solarTermHangul[i] {
			return SolarTerm(i), true
		}
	}
	return 0, false
}

// SolarTermEvent is the exact boundary instant of a solar term.
type SolarTermEvent struct {
	Term SolarTerm `json:"term"`
	At   time.Time `json:"at"`
}
