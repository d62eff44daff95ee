package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(d, h, m int) time.Time {
	return time.Date(2024, time.February, d, h, m, 0, 0, Zone)
}

// TestCalendarDay_GoverningTerm は節入り時刻の前後で効力のある節入りが切り替わることを検証します。
func TestCalendarDay_GoverningTerm(t *testing.T) {
	t.Parallel()

	ipchun := &SolarTermEvent{Term: Ipchun, At: at(4, 17, 27)}
	sohan := &SolarTermEvent{Term: Sohan, At: time.Date(2024, time.January, 6, 0, 0, 0, 0, Zone)}
	usu := &SolarTermEvent{Term: Usu, At: at(19, 0, 0)}

	tests := []struct {
		name     string
		day      CalendarDay
		at       time.Time
		wantTerm SolarTerm
		wantAt   time.Time
		wantOK   bool
	}{
		{"after the boundary", CalendarDay{SolarTerm: ipchun, MonthTerm: ipchun}, at(4, 20, 0), Ipchun, ipchun.At, true},
		{"exactly at the boundary", CalendarDay{SolarTerm: ipchun, MonthTerm: ipchun}, at(4, 17, 27), Ipchun, ipchun.At, true},
		{"before the boundary falls back to the previous month", CalendarDay{SolarTerm: ipchun, MonthTerm: ipchun}, at(4, 10, 0), Sohan, time.Time{}, true},
		{"before the boundary uses a crossed month term", CalendarDay{SolarTerm: ipchun, MonthTerm: sohan}, at(4, 10, 0), Sohan, sohan.At, true},
		{"mid-month term uses the month term", CalendarDay{SolarTerm: usu, MonthTerm: ipchun}, at(20, 9, 0), Ipchun, ipchun.At, true},
		{"no term information", CalendarDay{LunarMonth: 1, LunarDay: 1}, at(10, 12, 0), 0, time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tt.day.GoverningTerm(tt.at)
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantTerm, got.Term)
			assert.True(t, tt.wantAt.Equal(got.At), "want %s, got %s", tt.wantAt, got.At)
		})
	}
}

// TestSolarTerm_PreviousOpening は前月の節入りの節気を検証します。
func TestSolarTerm_PreviousOpening(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Sohan, Ipchun.PreviousOpening())
	assert.Equal(t, Sohan, Usu.PreviousOpening())
	assert.Equal(t, Daeseol, Sohan.PreviousOpening())
	assert.Equal(t, Daeseol, Daehan.PreviousOpening())
	assert.Equal(t, Ipdong, Daeseol.PreviousOpening())
}
