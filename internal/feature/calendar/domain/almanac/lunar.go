package almanac

import (
	"fmt"
	"math"
	"time"

	"saju_backend/internal/feature/calendar/domain"
	"saju_backend/internal/feature/calendar/domain/entity"
)

// synodicMonth is the mean length of a lunation in days.
const synodicMonth = 29.530588853

// newMoonEpoch is a known mean new moon (2000-01-06 18:14 UTC).
var newMoonEpoch = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// LunarDate is an estimated traditional date.
type LunarDate struct {
	Month int
	Day   int
	Leap  bool
}

// EstimateLunarDate estimates the traditional month/day of the civil date of t from the mean
// new moon cycle. A lunation's month number is taken from the mid-month term (中気) it contains;
// a lunation without one is a leap month repeating the previous number.
func EstimateLunarDate(t time.Time) (LunarDate, error) {
	day := entity.DayStart(t)
	if err := checkYear(day.Year()); err != nil {
		return LunarDate{}, err
	}

	k := lunationIndex(day)
	start := entity.DayStart(newMoon(k))

	month, ok, err := lunationMonth(k)
	if err != nil {
		return LunarDate{}, err
	}
	leap := false
	if !ok {
		prev, prevOK, err := lunationMonth(k - 1)
		if err != nil {
			return LunarDate{}, err
		}
		if !prevOK {
			return LunarDate{}, fmt.Errorf("consecutive lunations without mid-month term near %s: %w",
				day.Format(entity.DateLayout), domain.ErrOutOfRange)
		}
		month, leap = prev, true
	}

	return LunarDate{
		Month: month,
		Day:   daysBetween(start, day) + 1,
		Leap:  leap,
	}, nil
}

// lunationIndex returns the index of the lunation whose civil start date is on or before day.
func lunationIndex(day time.Time) int {
	elapsed := day.Sub(newMoonEpoch).Hours() / 24
	k := int(math.Floor(elapsed / synodicMonth))
	for entity.DayStart(newMoon(k)).After(day) {
		k--
	}
	for !entity.DayStart(newMoon(k + 1)).After(day) {
		k++
	}
	return k
}

func newMoon(k int) time.Time {
	return newMoonEpoch.Add(time.Duration(float64(k) * synodicMonth * 24 * float64(time.Hour)))
}

// lunationMonth returns the month number given by the mid-month term inside lunation k.
func lunationMonth(k int) (int, bool, error) {
	start := entity.DayStart(newMoon(k))
	end := entity.DayStart(newMoon(k + 1))
	events, err := termsAround(start.Year())
	if err != nil {
		return 0, false, err
	}
	for _, ev := range events {
		if ev.Term.IsMonthOpening() {
			continue
		}
		if !ev.At.Before(start) && ev.At.Before(end) {
			return ev.Term.Month(), true, nil
		}
	}
	return 0, false, nil
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
