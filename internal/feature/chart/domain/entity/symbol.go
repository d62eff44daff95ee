// Package entity はchartフィーチャーのドメインモデル（天干・地支・柱・命式）を定義します。
package entity

import "fmt"

// Element は五行（木・火・土・金・水）を表します。
// 並び順は相生の順序そのもので、e は (e+1)%5 を生じ、(e+2)%5 を剋します。
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// ElementCount は五行の数です。
const ElementCount = 5

var elementNames = [ElementCount]string{"wood", "fire", "earth", "metal", "water"}
var elementHanja = [ElementCount]string{"木", "火", "土", "金", "水"}

// String は五行の英語名を返します。
func (e Element) String() string {
	if e < 0 || int(e) >= ElementCount {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// Hanja は五行の漢字表記を返します。
func (e Element) Hanja() string {
	if e < 0 || int(e) >= ElementCount {
		return ""
	}
	return elementHanja[e]
}

// Generates は e が other を生じる（相生）かどうかを返します。
func (e Element) Generates(other Element) bool {
	return (int(e)+1)%ElementCount == int(other)
}

// Controls は e が other を剋する（相剋）かどうかを返します。
func (e Element) Controls(other Element) bool {
	return (int(e)+2)%ElementCount == int(other)
}

// Polarity は陰陽を表します。
type Polarity int

const (
	Positive Polarity = iota // 陽
	Negative                 // 陰
)

// String は陰陽の英語名を返します。
func (p Polarity) String() string {
	if p == Positive {
		return "positive"
	}
	return "negative"
}

// polarityOf はインデックスの偶奇から陰陽を決めます（偶数→陽、奇数→陰）。
func polarityOf(index int) Polarity {
	if index%2 == 0 {
		return Positive
	}
	return Negative
}

// TenSymbol は十干（天干）です。0=甲 … 9=癸。
type TenSymbol int

const (
	Gap    TenSymbol = iota // 甲
	Eul                     // 乙
	Byeong                  // 丙
	Jeong                   // 丁
	Mu                      // 戊
	Gi                      // 己
	Gyeong                  // 庚
	Sin                     // 辛
	Im                      // 壬
	Gye                     // 癸
)

// TenCount は十干の数です。
const TenCount = 10

var tenHanja = [TenCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
var tenHangul = [TenCount]string{"갑", "을", "병", "정", "무", "기", "경", "신", "임", "계"}

// Valid は値が十干の範囲内かどうかを返します。
func (s TenSymbol) Valid() bool { return s >= 0 && int(s) < TenCount }

// Index は0始まりのインデックスを返します。
func (s TenSymbol) Index() int { return int(s) }

// Element は十干の五行です（2つずつ木火土金水）。
func (s TenSymbol) Element() Element { return Element(int(s) / 2) }

// Polarity は十干の陰陽です。
func (s TenSymbol) Polarity() Polarity { return polarityOf(int(s)) }

// Hanja は漢字表記を返します。
func (s TenSymbol) Hanja() string {
	if !s.Valid() {
		return ""
	}
	return tenHanja[s]
}

// Hangul はハングル表記を返します。
func (s TenSymbol) Hangul() string {
	if !s.Valid() {
		return ""
	}
	return tenHangul[s]
}

func (s TenSymbol) String() string {
	if !s.Valid() {
		return fmt.Sprintf("TenSymbol(%d)", int(s))
	}
	return tenHanja[s]
}

// TwelveSymbol は十二支（地支）です。0=子 … 11=亥。
type TwelveSymbol int

const (
	Rat     TwelveSymbol = iota // 子
	Ox                          // 丑
	Tiger                       // 寅
	Rabbit                      // 卯
	Dragon                      // 辰
	Snake                       // 巳
	Horse                       // 午
	Goat                        // 未
	Monkey                      // 申
	Rooster                     // 酉
	Dog                         // 戌
	Pig                         // 亥
)

// TwelveCount は十二支の数です。
const TwelveCount = 12

var twelveHanja = [TwelveCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
var twelveHangul = [TwelveCount]string{"자", "축", "인", "묘", "진", "사", "오", "미", "신", "유", "술", "해"}

var twelveElements = [TwelveCount]Element{
	Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water,
}

// hiddenSymbols は地支ごとの蔵干（余気・中気・正気の順）です。計算では求めず、常にこの表を引きます。
var hiddenSymbols = [TwelveCount][]TenSymbol{
	Rat:     {Im, Gye},
	Ox:      {Gye, Sin, Gi},
	Tiger:   {Mu, Byeong, Gap},
	Rabbit:  {Gap, Eul},
	Dragon:  {Eul, Gye, Mu},
	Snake:   {Mu, Gyeong, Byeong},
	Horse:   {Byeong, Gi, Jeong},
	Goat:    {Jeong, Eul, Gi},
	Monkey:  {Mu, Im, Gyeong},
	Rooster: {Gyeong, Sin},
	Dog:     {Sin, Jeong, Mu},
	Pig:     {Mu, Gap, Im},
}

// Valid は値が十二支の範囲内かどうかを返します。
func (s TwelveSymbol) Valid() bool { return s >= 0 && int(s) < TwelveCount }

// Index は0始まりのインデックスを返します。
func (s TwelveSymbol) Index() int { return int(s) }

// Element は十二支の五行です。
func (s TwelveSymbol) Element() Element { return twelveElements[s] }

// Polarity は十二支の陰陽です（インデックスの偶奇）。
func (s TwelveSymbol) Polarity() Polarity { return polarityOf(int(s)) }

// Hidden は蔵干のコピーを返します。長さは常に1〜3です。
func (s TwelveSymbol) Hidden() []TenSymbol {
	src := hiddenSymbols[s]
	out := make([]TenSymbol, len(src))
	copy(out, src)
	return out
}

// Hanja は漢字表記を返します。
func (s TwelveSymbol) Hanja() string {
	if !s.Valid() {
		return ""
	}
	return twelveHanja[s]
}

// Hangul はハングル表記を返します。
func (s TwelveSymbol) Hangul() string {
	if !s.Valid() {
		return ""
	}
	return twelveHangul[s]
}

func (s TwelveSymbol) String() string {
	if !s.Valid() {
		return fmt.Sprintf("TwelveSymbol(%d)", int(s))
	}
	return twelveHanja[s]
}

// ParseTenSymbol は漢字またはハングル1文字から十干を求めます。
func ParseTenSymbol(s string) (TenSymbol, bool) {
	for i := 0; i < TenCount; i++ {
		if s == tenHanja[i] || s == tenHangul[i] {
			return TenSymbol(i), true
		}
	}
	return 0, false
}

// ParseTwelveSymbol は漢字またはハングル1文字から十二支を求めます。
// 「신」は十干の辛とも同じ綴りなので、干支ラベルでは位置（1文字目=干、2文字目=支）で区別します。
func ParseTwelveSymbol(s string) (TwelveSymbol, bool) {
	for i := 0; i < TwelveCount; i++ {
		if s == twelveHanja[i] || s == twelveHangul[i] {
			return TwelveSymbol(i), true
		}
	}
	return 0, false
}
