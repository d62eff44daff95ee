package entity

import (
	"fmt"
	"strings"
)

// Pillar は柱（天干と地支の組）です。
// 比較可能な値型で、共有される参照を持たないため構築後に変更されることはありません。
type Pillar struct {
	Ten    TenSymbol    `json:"ten"`
	Twelve TwelveSymbol `json:"twelve"`
}

// NewPillar は天干と地支から柱を生成します。
func NewPillar(ten TenSymbol, twelve TwelveSymbol) Pillar {
	return Pillar{Ten: ten, Twelve: twelve}
}

// Hidden は地支の蔵干を返します。戻り値は呼び出しごとのコピーです。
func (p Pillar) Hidden() []TenSymbol { return p.Twelve.Hidden() }

// PillarFromCycle は六十甲子の通し番号（0=甲子 … 59=癸亥）から柱を生成します。
func PillarFromCycle(n int) Pillar {
	n = ((n % 60) + 60) % 60
	return NewPillar(TenSymbol(n%TenCount), TwelveSymbol(n%TwelveCount))
}

// Valid は天干・地支が範囲内で、かつ陰陽が一致する（六十甲子に現れる）組かどうかを返します。
func (p Pillar) Valid() bool {
	return p.Ten.Valid() && p.Twelve.Valid() && p.Ten.Polarity() == p.Twelve.Polarity()
}

// CycleIndex は六十甲子の通し番号を返します。Valid でない柱には -1 を返します。
func (p Pillar) CycleIndex() int {
	if !p.Valid() {
		return -1
	}
	n := (6*int(p.Ten) - 5*int(p.Twelve)) % 60
	if n < 0 {
		n += 60
	}
	return n
}

// Element は柱の天干の五行です。
func (p Pillar) Element() Element { return p.Ten.Element() }

// Polarity は柱の天干の陰陽です。
func (p Pillar) Polarity() Polarity { return p.Ten.Polarity() }

// Equal は天干・地支が一致するかどうかを返します。
func (p Pillar) Equal(o Pillar) bool { return p.Ten == o.Ten && p.Twelve == o.Twelve }

// String は漢字表記（例: 甲子）を返します。
func (p Pillar) String() string { return p.Ten.Hanja() + p.Twelve.Hanja() }

// Hangul はハングル表記（例: 갑자）を返します。
func (p Pillar) Hangul() string { return p.Ten.Hangul() + p.Twelve.Hangul() }

// ParsePillar は「甲子」「갑자」「갑자(甲子)」の形式の干支ラベルを解析します。
// 括弧付きの場合は括弧内の漢字を優先します。
func ParsePillar(label string) (Pillar, error) {
	s := strings.TrimSpace(label)
	if open := strings.IndexAny(s, "(（"); open >= 0 {
		inner := strings.TrimRight(s[open:], ")）")
		inner = strings.TrimLeft(inner, "(（")
		if p, err := parsePair(inner); err == nil {
			return p, nil
		}
		s = strings.TrimSpace(s[:open])
	}
	return parsePair(s)
}

func parsePair(s string) (Pillar, error) {
	r := []rune(s)
	if len(r) != 2 {
		return Pillar{}, fmt.Errorf("pillar label %q: expected two symbols", s)
	}
	ten, ok := ParseTenSymbol(string(r[0]))
	if !ok {
		return Pillar{}, fmt.Errorf("pillar label %q: unknown ten symbol %q", s, string(r[0]))
	}
	twelve, ok := ParseTwelveSymbol(string(r[1]))
	if !ok {
		return Pillar{}, fmt.Errorf("pillar label %q: unknown twelve symbol %q", s, string(r[1]))
	}
	p := NewPillar(ten, twelve)
	if !p.Valid() {
		return Pillar{}, fmt.Errorf("pillar label %q: polarity mismatch", s)
	}
	return p, nil
}
