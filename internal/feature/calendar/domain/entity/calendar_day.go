package entity

import (
	"time"

	chartentity "saju_backend/internal/feature/chart/domain/entity"
)

// Source identifies which adapter layer produced a CalendarDay.
type Source string

const (
	SourceReference     Source = "reference"     // historically verified table entry
	SourceProvider      Source = "provider"      // external lunar calendar provider (possibly cached)
	SourceApproximation Source = "approximation" // local almanac computation
	SourceGregorian     Source = "gregorian"     // nothing resolved; Gregorian date only
)

// DateLayout is the key format used for calendar days everywhere (tables, cache keys, APIs).
const DateLayout = "2006-01-02"

// Zone is the civil time zone in which calendar days are keyed (KST, UTC+9).
var Zone = time.FixedZone("KST", 9*60*60)

// CalendarDay is the traditional-calendar view of one solar date.
// It is read-only once built: loaded at startup from the reference table, or fetched and cached.
type CalendarDay struct {
	Date time.Time `json:"date"` // midnight of the solar date in Zone

	// Traditional (lunar) month and day; zero when unknown.
	LunarMonth int  `json:"lunar_month"`
	LunarDay   int  `json:"lunar_day"`
	LeapMonth  bool `json:"leap_month"`

	// SolarTerm is the most recent of the 24 boundaries crossed on or before Date.
	SolarTerm *SolarTermEvent `json:"solar_term,omitempty"`
	// MonthTerm is the most recent month-opening boundary crossed on or before Date.
	MonthTerm *SolarTermEvent `json:"month_term,omitempty"`

	// MonthOverride is an exact month pillar from the reference table.
	MonthOverride *chartentity.Pillar `json:"month_override,omitempty"`
	// DayLabel is the day pillar reported by the provider, kept for cross-checking.
	DayLabel *chartentity.Pillar `json:"day_label,omitempty"`

	Source Source `json:"source"`
}

// Key returns the date key of the day.
func (d CalendarDay) Key() string { return d.Date.Format(DateLayout) }

// HasLunar reports whether a traditional month/day is known.
func (d CalendarDay) HasLunar() bool { return d.LunarMonth >= 1 && d.LunarMonth <= 12 }

// OpeningTerm returns the month-opening term recorded for the day: SolarTerm itself when it is
// month-opening, otherwise MonthTerm.
func (d CalendarDay) OpeningTerm() (SolarTermEvent, bool) {
	if d.SolarTerm != nil && d.SolarTerm.Term.IsMonthOpening() {
		return *d.SolarTerm, true
	}
	if d.MonthTerm != nil && d.MonthTerm.Term.IsMonthOpening() {
		return *d.MonthTerm, true
	}
	return SolarTermEvent{}, false
}

// GoverningTerm returns the month-opening term in force at the instant at.
// A boundary recorded on the day but later than at has not been crossed yet. In that case
// MonthTerm governs when it was crossed earlier, otherwise the opening term before the
// pending one does; the day does not record that earlier boundary, so its At is zero.
func (d CalendarDay) GoverningTerm(at time.Time) (SolarTermEvent, bool) {
	ev, ok := d.OpeningTerm()
	if !ok {
		return SolarTermEvent{}, false
	}
	if !ev.At.After(at) {
		return ev, true
	}
	if m := d.MonthTerm; m != nil && m.Term.IsMonthOpening() && m.Term != ev.Term && !m.At.After(at) {
		return *m, true
	}
	return SolarTermEvent{Term: ev.Term.PreviousOpening()}, true
}

// DayKey normalizes t to the calendar date key in Zone.
func DayKey(t time.Time) string { return t.In(Zone).Format(DateLayout) }

// DayStart returns midnight (in Zone) of the civil date of t.
func DayStart(t time.Time) time.Time {
	t = t.In(Zone)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Zone)
}

// GregorianDay builds the low-confidence day that carries only the Gregorian date.
func GregorianDay(t time.Time) CalendarDay {
	return CalendarDay{Date: DayStart(t), Source: SourceGregorian}
}
