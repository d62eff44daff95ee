package entity

// RelationalCategory は日干を基準とした十神（통변성）の分類です。
// 保存されることはなく、常に Classify で算出されます。
type RelationalCategory int

const (
	Companion       RelationalCategory = iota // 比肩: 同じ五行・同じ陰陽
	RobWealth                                 // 劫財: 同じ五行・異なる陰陽
	IndirectResource                          // 偏印: 自分を生じる・同じ陰陽
	DirectResource                            // 正印: 自分を生じる・異なる陰陽
	SevenKillings                             // 偏官: 自分を剋する・同じ陰陽
	DirectOfficer                             // 正官: 自分を剋する・異なる陰陽
	EatingGod                                 // 食神: 自分が生じる・同じ陰陽
	HurtingOfficer                            // 傷官: 自分が生じる・異なる陰陽
	IndirectWealth                            // 偏財: 自分が剋する・同じ陰陽
	DirectWealth                              // 正財: 自分が剋する・異なる陰陽
)

// CategoryCount は十神の数です。
const CategoryCount = 10

var categoryNames = [CategoryCount]string{
	"companion", "rob_wealth",
	"indirect_resource", "direct_resource",
	"seven_killings", "direct_officer",
	"eating_god", "hurting_officer",
	"indirect_wealth", "direct_wealth",
}

var categoryHanja = [CategoryCount]string{
	"比肩", "劫財", "偏印", "正印", "偏官", "正官", "食神", "傷官", "偏財", "正財",
}

var categoryHangul = [CategoryCount]string{
	"비견", "겁재", "편인", "정인", "편관", "정관", "식신", "상관", "편재", "정재",
}

func (c RelationalCategory) valid() bool { return c >= 0 && int(c) < CategoryCount }

// String はAPIで使う英語の識別子を返します。
func (c RelationalCategory) String() string {
	if !c.valid() {
		return "unknown"
	}
	return categoryNames[c]
}

// Hanja は漢字表記を返します。
func (c RelationalCategory) Hanja() string {
	if !c.valid() {
		return ""
	}
	return categoryHanja[c]
}

// Hangul はハングル表記を返します。
func (c RelationalCategory) Hangul() string {
	if !c.valid() {
		return ""
	}
	return categoryHangul[c]
}
