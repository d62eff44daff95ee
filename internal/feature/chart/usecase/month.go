package usecase

import (
	"log/slog"
	"time"

	calentity "saju_backend/internal/feature/calendar/domain/entity"
	"saju_backend/internal/feature/chart/domain/entity"
	"saju_backend/internal/feature/chart/domain/sexagenary"
)

// YearTermTable は年干ごとの節気特例表です（年干 → 節気 → 月柱）。
// 起動時に一度だけ構築され、以後は読み取り専用です。
type YearTermTable struct {
	entries map[entity.TenSymbol]map[calentity.SolarTerm]entity.Pillar
}

// NewYearTermTable は特例の一覧から表を構築します。
// 同じ (年干, 節気) が重複した場合は後のものが勝ち、不正な柱は捨てられます。
func NewYearTermTable(overrides []calentity.YearTermOverride) YearTermTable {
	t := YearTermTable{entries: make(map[entity.TenSymbol]map[calentity.SolarTerm]entity.Pillar)}
	for _, o := range overrides {
		if !o.YearTen.Valid() || !o.Term.Valid() || !o.Pillar.Valid() {
			slog.Warn("skipping invalid year-term override", "year_ten", o.YearTen, "term", o.Term, "pillar", o.Pillar.String())
			continue
		}
		m, ok := t.entries[o.YearTen]
		if !ok {
			m = make(map[calentity.SolarTerm]entity.Pillar)
			t.entries[o.YearTen] = m
		}
		m[o.Term] = entity.NewPillar(o.Pillar.Ten, o.Pillar.Twelve)
	}
	return t
}

// Lookup は年干と節気に対応する特例の月柱を返します。
func (t YearTermTable) Lookup(yearTen entity.TenSymbol, term calentity.SolarTerm) (entity.Pillar, bool) {
	p, ok := t.entries[yearTen][term]
	return p, ok
}

// Len は特例の総数を返します。
func (t YearTermTable) Len() int {
	n := 0
	for _, m := range t.entries {
		n += len(m)
	}
	return n
}

// MonthResolver は月柱を5段階の優先順位で解決します。
//
//  1. 参照テーブル（CalendarDay.MonthOverride）
//  2. 年干別の節気特例（YearTermTable）
//  3. 一般節気規則（節入りの節気 → 暦月）
//  4. 暦月（陰暦月）標準式
//  5. 算術近似
//
// 同じ入力は常に同じレイヤーで解決されます。
type MonthResolver struct {
	yearTerms YearTermTable
}

// NewMonthResolver はMonthResolverを生成します。
func NewMonthResolver(yearTerms YearTermTable) MonthResolver {
	return MonthResolver{yearTerms: yearTerms}
}

// Resolve は月柱と、それを決定したレイヤーを返します。
// birth は補正済みの出生時刻、day はその暦日の暦情報、year は命式の年柱です。
// 節入りの当日は、出生の瞬間が節入り時刻より前なら前月として扱います。
func (r MonthResolver) Resolve(birth BirthTime, day calentity.CalendarDay, year entity.Pillar, opts entity.ResolutionOptions) (entity.Pillar, entity.MonthLayer) {
	// 1) 参照テーブルはオプションに関係なく常に優先
	if day.MonthOverride != nil && day.MonthOverride.Valid() {
		return entity.NewPillar(day.MonthOverride.Ten, day.MonthOverride.Twelve), entity.MonthLayerReference
	}

	if opts.SolarTermsEnabled() {
		if term, ok := day.GoverningTerm(birth.Instant); ok {
			// 2) 年干別の特例は一般規則より優先
			if p, ok := r.yearTerms.Lookup(year.Ten, term.Term); ok {
				return p, entity.MonthLayerYearTerm
			}
			// 3) 一般節気規則
			return MonthFromNumber(year.Ten, term.Term.Month()), entity.MonthLayerSolarTerm
		}
	}

	// 4) 暦月標準式
	if day.HasLunar() {
		return MonthFromNumber(year.Ten, day.LunarMonth), entity.MonthLayerLunarMonth
	}

	// 5) 算術近似
	return ArithmeticMonth(birth.Local.Year(), birth.Local.Month()), entity.MonthLayerArithmetic
}

// FirstMonthStem は年干に対する正月（寅月）の天干です。
// 甲己→丙、乙庚→戊、丙辛→庚、丁壬→壬、戊癸→甲。
func FirstMonthStem(yearTen entity.TenSymbol) entity.TenSymbol {
	return entity.TenSymbol(sexagenary.FloorMod(2*(int(yearTen)%5)+2, entity.TenCount))
}

// MonthStemOffset は年干から正月の天干までの距離です。
func MonthStemOffset(yearTen entity.TenSymbol) int {
	return sexagenary.FloorMod(int(FirstMonthStem(yearTen))-int(yearTen), entity.TenCount)
}

// MonthFromNumber は暦月番号（1..12、1=寅月）から月柱を求めます。
// 地支 = (month + 1) mod 12、天干 = (年干 + オフセット + month - 1) mod 10。
func MonthFromNumber(yearTen entity.TenSymbol, month int) entity.Pillar {
	twelve := sexagenary.FloorMod(month+1, entity.TwelveCount)
	ten := sexagenary.FloorMod(int(yearTen)+MonthStemOffset(yearTen)+month-1, entity.TenCount)
	return entity.NewPillar(entity.TenSymbol(ten), entity.TwelveSymbol(twelve))
}

// ArithmeticMonth は暦情報がない場合の近似式です。グレゴリオ暦の年・月だけから求めるため、
// 節入り前後の日付では1か月ずれることがあります。
func ArithmeticMonth(year int, month time.Month) entity.Pillar {
	ten := sexagenary.FloorMod(2*year+int(month)+2, entity.TenCount)
	twelve := sexagenary.FloorMod(int(month), entity.TwelveCount)
	return entity.NewPillar(entity.TenSymbol(ten), entity.TwelveSymbol(twelve))
}

// ChartYear は命式の年（干支年）を決めます。
// 節気が使える場合は立春を年の境界とし、なければ陰暦の正月を、どちらもなければ太陽暦の年を使います。
// 立春の当日は月柱と同じく節入り時刻で前後を判定します。
func ChartYear(birth BirthTime, day calentity.CalendarDay, opts entity.ResolutionOptions) int {
	year := birth.Local.Year()
	early := birth.Local.Month() <= time.February
	if opts.SolarTermsEnabled() {
		if term, ok := day.GoverningTerm(birth.Instant); ok {
			if early && term.Term.Month() >= 11 {
				return year - 1
			}
			return year
		}
	}
	if day.HasLunar() {
		if early && day.LunarMonth >= 11 {
			return year - 1
		}
		return year
	}
	return year
}
