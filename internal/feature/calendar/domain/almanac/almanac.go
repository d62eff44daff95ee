// Package almanac computes approximate solar-term boundaries and traditional (lunar) dates
// without any external data. Results are day-level approximations valid for 1901–2099.
package almanac

import (
	"fmt"
	"math"
	"time"

	"saju_backend/internal/feature/calendar/domain"
	"saju_backend/internal/feature/calendar/domain/entity"
)

const (
	// MinYear and MaxYear bound the years the term constants are calibrated for.
	MinYear = 1901
	MaxYear = 2099

	// tropicalYearFraction is the per-year drift used by the term day formula.
	tropicalYearFraction = 0.2422
)

// Per-term day constants (Sohan..Dongji) for the 20th and 21st centuries.
var (
	century20 = [entity.SolarTermCount]float64{
		6.11, 20.84, 4.6295, 19.4599, 6.3826, 21.4155,
		5.59, 20.888, 6.318, 21.86, 6.5, 22.2,
		7.928, 23.65, 8.35, 23.95, 8.44, 23.822,
		9.098, 24.218, 8.218, 23.08, 7.9, 22.6,
	}
	century21 = [entity.SolarTermCount]float64{
		5.4055, 20.12, 3.87, 18.73, 5.63, 20.646,
		4.81, 20.1, 5.52, 21.04, 5.678, 21.37,
		7.108, 22.83, 7.5, 23.13, 7.646, 23.042,
		8.318, 23.438, 7.438, 22.36, 7.18, 21.94,
	}
)

// InRange reports whether year is supported.
func InRange(year int) bool { return year >= MinYear && year <= MaxYear }

func checkYear(year int) error {
	if !InRange(year) {
		return fmt.Errorf("year %d: %w", year, domain.ErrOutOfRange)
	}
	return nil
}

// TermDay returns the day of month (in the term's Gregorian month) on which term falls in year.
func TermDay(year int, term entity.SolarTerm) (int, error) {
	if err := checkYear(year); err != nil {
		return 0, err
	}
	if !term.Valid() {
		return 0, fmt.Errorf("solar term %d: invalid", int(term))
	}

	y, c := year-1900, century20
	if year > 2000 {
		y, c = year-2000, century21
	}
	// Terms in January and February precede the leap day of the same year.
	leaps := y / 4
	if term <= entity.Usu {
		leaps = (y - 1) / 4
	}
	return int(math.Floor(float64(y)*tropicalYearFraction+c[term])) - leaps, nil
}

// TermsForYear returns the 24 term boundaries of a Gregorian year, in calendar order.
func TermsForYear(year int) ([entity.SolarTermCount]entity.SolarTermEvent, error) {
	var out [entity.SolarTermCount]entity.SolarTermEvent
	for i := 0; i < entity.SolarTermCount; i++ {
		term := entity.SolarTerm(i)
		day, err := TermDay(year, term)
		if err != nil {
			return out, err
		}
		out[i] = entity.SolarTermEvent{
			Term: term,
			At:   time.Date(year, term.GregorianMonth(), day, 0, 0, 0, 0, entity.Zone),
		}
	}
	return out, nil
}

// Preceding returns, for the civil date of t, the most recent term boundary crossed and the
// most recent month-opening boundary crossed (both on or before that date).
func Preceding(t time.Time) (last, opening entity.SolarTermEvent, err error) {
	day := entity.DayStart(t)
	events, err := termsAround(day.Year())
	if err != nil {
		return last, opening, err
	}
	foundLast, foundOpening := false, false
	for i := len(events) - 1; i >= 0 && !(foundLast && foundOpening); i-- {
		ev := events[i]
		if ev.At.After(day) {
			continue
		}
		if !foundLast {
			last, foundLast = ev, true
		}
		if !foundOpening && ev.Term.IsMonthOpening() {
			opening, foundOpening = ev, true
		}
	}
	if !foundLast || !foundOpening {
		return last, opening, fmt.Errorf("no preceding term for %s: %w", day.Format(entity.DateLayout), domain.ErrOutOfRange)
	}
	return last, opening, nil
}

// NextOpening returns the first month-opening boundary strictly after the civil date of t.
func NextOpening(t time.Time) (entity.SolarTermEvent, error) {
	day := entity.DayStart(t)
	events, err := termsAround(day.Year())
	if err != nil {
		return entity.SolarTermEvent{}, err
	}
	for _, ev := range events {
		if ev.Term.IsMonthOpening() && ev.At.After(day) {
			return ev, nil
		}
	}
	return entity.SolarTermEvent{}, fmt.Errorf("no following term for %s: %w", day.Format(entity.DateLayout), domain.ErrOutOfRange)
}

// PreviousOpening returns the month-opening boundary of the month before the one ev opens.
// It is derived from the term itself rather than from a date, so a recorded boundary that the
// day-level estimate places a day off still yields the right predecessor.
func PreviousOpening(ev entity.SolarTermEvent) (entity.SolarTermEvent, error) {
	prev := ev.Term.PreviousOpening()
	year := ev.At.In(entity.Zone).Year()
	if prev > ev.Term.OpeningTerm() {
		year--
	}
	day, err := TermDay(year, prev)
	if err != nil {
		return entity.SolarTermEvent{}, err
	}
	return entity.SolarTermEvent{
		Term: prev,
		At:   time.Date(year, prev.GregorianMonth(), day, 0, 0, 0, 0, entity.Zone),
	}, nil
}

// termsAround returns the terms of year-1, year and year+1 in chronological order. The
// neighbouring years are included only when they are in range.
func termsAround(year int) ([]entity.SolarTermEvent, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	out := make([]entity.SolarTermEvent, 0, 3*entity.SolarTermCount)
	for y := year - 1; y <= year+1; y++ {
		if !InRange(y) {
			continue
		}
		events, err := TermsForYear(y)
		if err != nil {
			return nil, err
		}
		out = append(out, events[:]...)
	}
	return out, nil
}
