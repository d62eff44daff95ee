package usecase_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saju_backend/internal/feature/chart/domain"
	"saju_backend/internal/feature/chart/domain/entity"
	"saju_backend/internal/feature/chart/usecase"
)

var seoul = &entity.Location{Longitude: 126.978, Latitude: 37.5665}

// TestStandardMeridianAt は歴史的な基準子午線の期間を検証します。
func TestStandardMeridianAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		date time.Time
		want float64
	}{
		{kst(1907, time.June, 1, 12, 0), 135},
		{kst(1910, time.June, 1, 12, 0), 127.5},
		{kst(1930, time.June, 1, 12, 0), 135},
		{kst(1960, time.January, 1, 12, 0), 127.5},
		{kst(1961, time.August, 9, 23, 0), 127.5},
		{kst(1961, time.August, 10, 0, 0), 135},
		{kst(2024, time.June, 1, 12, 0), 135},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, usecase.StandardMeridianAt(tt.date), "%s", tt.date)
	}
}

// TestInDaylightSaving は韓国の夏時間期間の自動判定を検証します。
func TestInDaylightSaving(t *testing.T) {
	t.Parallel()

	assert.True(t, usecase.InDaylightSaving(kst(1987, time.July, 1, 12, 0)))
	assert.True(t, usecase.InDaylightSaving(kst(1988, time.May, 8, 2, 0)))
	assert.False(t, usecase.InDaylightSaving(kst(1988, time.May, 8, 1, 59)))
	assert.False(t, usecase.InDaylightSaving(kst(1988, time.October, 9, 3, 0)))
	assert.True(t, usecase.InDaylightSaving(kst(1950, time.August, 1, 12, 0)))
	assert.False(t, usecase.InDaylightSaving(kst(1970, time.July, 1, 12, 0)))
	assert.False(t, usecase.InDaylightSaving(kst(2024, time.July, 1, 12, 0)))
}

// TestLongitudeShift は経度1度あたり4分のずれを検証します。
func TestLongitudeShift(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -32*time.Minute-5*time.Second, usecase.LongitudeShift(126.978, 135))
	assert.Equal(t, time.Duration(0), usecase.LongitudeShift(135, 135))
	assert.Equal(t, 30*time.Minute, usecase.LongitudeShift(135, 127.5))
}

// TestNormalizeTime は補正の組み合わせを検証します。
func TestNormalizeTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		opts entity.ResolutionOptions
		want time.Time
	}{
		{
			name: "no location, no correction",
			in:   kst(2000, time.June, 15, 12, 0),
			want: kst(2000, time.June, 15, 12, 0),
		},
		{
			name: "seoul local mean time",
			in:   kst(2000, time.June, 15, 12, 0),
			opts: entity.ResolutionOptions{Location: seoul},
			want: kst(2000, time.June, 15, 11, 27).Add(55 * time.Second),
		},
		{
			name: "local time disabled",
			in:   kst(2000, time.June, 15, 12, 0),
			opts: entity.ResolutionOptions{Location: seoul, UseLocalTime: entity.Bool(false)},
			want: kst(2000, time.June, 15, 12, 0),
		},
		{
			name: "explicit reference meridian",
			in:   kst(2000, time.June, 15, 12, 0),
			opts: entity.ResolutionOptions{Location: &entity.Location{Longitude: 127.5}, ReferenceMeridian: entity.Float64(127.5)},
			want: kst(2000, time.June, 15, 12, 0),
		},
		{
			name: "historical meridian period",
			in:   kst(1958, time.January, 15, 12, 0),
			opts: entity.ResolutionOptions{Location: &entity.Location{Longitude: 127.5}},
			want: kst(1958, time.January, 15, 12, 0),
		},
		{
			name: "daylight saving auto-detected",
			in:   kst(1987, time.July, 1, 12, 0),
			want: kst(1987, time.July, 1, 11, 0),
		},
		{
			name: "daylight saving disabled",
			in:   kst(1987, time.July, 1, 12, 0),
			opts: entity.ResolutionOptions{UseDaylightSaving: entity.Bool(false)},
			want: kst(1987, time.July, 1, 12, 0),
		},
		{
			name: "daylight saving forced",
			in:   kst(2024, time.July, 1, 12, 0),
			opts: entity.ResolutionOptions{UseDaylightSaving: entity.Bool(true)},
			want: kst(2024, time.July, 1, 11, 0),
		},
		{
			name: "correction crosses midnight",
			in:   kst(2000, time.June, 15, 0, 10),
			opts: entity.ResolutionOptions{Location: seoul},
			want: kst(2000, time.June, 14, 23, 37).Add(55 * time.Second),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := usecase.NormalizeTime(tt.in, tt.opts)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Local), "want %s, got %s", tt.want, got.Local)
		})
	}
}

// TestNormalizeTime_Instant は節入りとの比較に使う瞬間が経度補正を含まないことを検証します。
func TestNormalizeTime_Instant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		opts entity.ResolutionOptions
		want time.Time
	}{
		{"local mean time does not move the instant", kst(2024, time.February, 4, 17, 0), entity.ResolutionOptions{Location: seoul}, kst(2024, time.February, 4, 17, 0)},
		{"daylight saving is removed", kst(1987, time.July, 1, 12, 0), entity.ResolutionOptions{}, kst(1987, time.July, 1, 11, 0)},
		{"historical meridian clock runs half an hour behind", kst(1958, time.January, 15, 12, 0), entity.ResolutionOptions{}, kst(1958, time.January, 15, 12, 30)},
		{"foreign clock", time.Date(2024, time.January, 15, 12, 0, 0, 0, time.FixedZone("EST", -5*3600)), entity.ResolutionOptions{}, kst(2024, time.January, 16, 2, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := usecase.NormalizeTime(tt.in, tt.opts)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Instant), "want %s, got %s", tt.want, got.Instant)
		})
	}
}

// TestNormalizeTime_ForeignZone は韓国標準時以外の出生で、タイムゾーンのオフセットから基準子午線を決めることを検証します。
func TestNormalizeTime_ForeignZone(t *testing.T) {
	t.Parallel()

	est := time.FixedZone("EST", -5*3600)
	gmt := time.FixedZone("GMT", 0)
	tests := []struct {
		name string
		in   time.Time
		opts entity.ResolutionOptions
		want time.Time
	}{
		{
			name: "new york uses the 75W meridian",
			in:   time.Date(2024, time.January, 15, 12, 0, 0, 0, est),
			opts: entity.ResolutionOptions{Location: &entity.Location{Longitude: -74, Latitude: 40.7}},
			want: time.Date(2024, time.January, 15, 12, 4, 0, 0, est),
		},
		{
			name: "explicit zero meridian",
			in:   time.Date(2024, time.January, 15, 12, 0, 0, 0, gmt),
			opts: entity.ResolutionOptions{Location: &entity.Location{Longitude: -0.1, Latitude: 51.5}, ReferenceMeridian: entity.Float64(0)},
			want: time.Date(2024, time.January, 15, 11, 59, 36, 0, gmt),
		},
		{
			name: "korean daylight saving table is not applied abroad",
			in:   time.Date(1987, time.July, 1, 12, 0, 0, 0, est),
			want: time.Date(1987, time.July, 1, 12, 0, 0, 0, est),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := usecase.NormalizeTime(tt.in, tt.opts)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Local), "want %s, got %s", tt.want, got.Local)
			_, offset := got.Local.Zone()
			_, wantOffset := tt.in.Zone()
			assert.Equal(t, wantOffset, offset)
			assert.Equal(t, tt.want.Day(), got.CivilDate().Day())
		})
	}
}

// TestNormalizeTime_InvalidMeridian は範囲外の基準子午線をエラーにすることを検証します。
func TestNormalizeTime_InvalidMeridian(t *testing.T) {
	t.Parallel()

	for _, m := range []float64{-181, 180.5, math.NaN()} {
		_, err := usecase.NormalizeTime(kst(2000, time.June, 15, 12, 0), entity.ResolutionOptions{ReferenceMeridian: entity.Float64(m)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%v", m)
	}
}

// TestNormalizeTime_InvalidLocation は範囲外の経度・緯度をエラーにすることを検証します。
func TestNormalizeTime_InvalidLocation(t *testing.T) {
	t.Parallel()

	bad := []entity.Location{
		{Longitude: 181, Latitude: 0},
		{Longitude: -200, Latitude: 0},
		{Longitude: 127, Latitude: 91},
		{Longitude: math.NaN(), Latitude: 37},
	}
	for _, loc := range bad {
		loc := loc
		_, err := usecase.NormalizeTime(kst(2000, time.June, 15, 12, 0), entity.ResolutionOptions{Location: &loc})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "%+v", loc)
	}
}

// TestBirthWallClock は入力検証を検証します。
func TestBirthWallClock(t *testing.T) {
	t.Parallel()

	got, err := usecase.BirthWallClock(time.Date(1990, time.March, 3, 0, 45, 0, 0, time.UTC), 14)
	require.NoError(t, err)
	assert.True(t, time.Date(1990, time.March, 3, 14, 45, 0, 0, time.UTC).Equal(got))
	assert.Equal(t, time.UTC, got.Location())

	got, err = usecase.BirthWallClock(kst(1990, time.March, 3, 0, 0), 9)
	require.NoError(t, err)
	assert.True(t, kst(1990, time.March, 3, 9, 0).Equal(got))

	_, err = usecase.BirthWallClock(time.Time{}, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = usecase.BirthWallClock(kst(1990, time.March, 3, 0, 0), 24)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = usecase.BirthWallClock(kst(1990, time.March, 3, 0, 0), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
