package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	calentity "saju_backend/internal/feature/calendar/domain/entity"
	"saju_backend/internal/feature/chart/domain/entity"
	charthandler "saju_backend/internal/feature/chart/transport/handler"
)

var chartFlags struct {
	date     string
	hour     int
	minute   int
	gender   string
	lng      float64
	lat      float64
	noLocal  bool
	noTerms  bool
	dst      string
	meridian float64
	tz       string
	jsonOut  bool
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Compute the four-pillar chart of a birth",
	Long: `Compute the year, month, day and hour pillars of a birth given as a
wall-clock date and hour. The clock is Korean standard time unless --tz
names another zone. Without --date the current time is used.

Examples:
  saju chart --date=2024-02-10 --hour=12 --gender=male
  saju chart --date=2024-01-15 --hour=12 --tz=America/New_York --lng=-74 --lat=40.7
  saju chart --date=1988-05-08 --hour=3 --lng=126.978 --lat=37.566 --json`,
	Args: cobra.NoArgs,
	RunE: runChart,
}

func init() {
	bindChartFlags(chartCmd)
}

func bindChartFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&chartFlags.date, "date", "", "Birth date YYYY-MM-DD (default: now)")
	f.IntVar(&chartFlags.hour, "hour", 0, "Birth hour 0-23")
	f.IntVar(&chartFlags.minute, "minute", 0, "Birth minute 0-59")
	f.StringVar(&chartFlags.gender, "gender", "", "male or female (enables luck pillars)")
	f.Float64Var(&chartFlags.lng, "lng", 0, "Birth place longitude in degrees east")
	f.Float64Var(&chartFlags.lat, "lat", 0, "Birth place latitude in degrees north")
	f.BoolVar(&chartFlags.noLocal, "no-local-time", false, "Skip the longitude correction")
	f.BoolVar(&chartFlags.noTerms, "no-solar-terms", false, "Resolve the month by lunar month instead of solar terms")
	f.StringVar(&chartFlags.dst, "dst", "auto", "Daylight saving correction: auto, on or off")
	f.Float64Var(&chartFlags.meridian, "meridian", 0, "Reference meridian in degrees (default: Korean standard for KST, else the zone offset)")
	f.StringVar(&chartFlags.tz, "tz", "", "IANA time zone of the birth clock (default: Korean standard time)")
	f.BoolVar(&chartFlags.jsonOut, "json", false, "Print the chart as JSON")
}

func chartOptions(cmd *cobra.Command) (entity.ResolutionOptions, error) {
	g, ok := entity.ParseGender(chartFlags.gender)
	if !ok {
		return entity.ResolutionOptions{}, fmt.Errorf("--gender must be male or female, got %q", chartFlags.gender)
	}
	opts := entity.ResolutionOptions{Gender: g}
	if cmd.Flags().Changed("meridian") {
		opts.ReferenceMeridian = entity.Float64(chartFlags.meridian)
	}

	lngSet, latSet := cmd.Flags().Changed("lng"), cmd.Flags().Changed("lat")
	if lngSet != latSet {
		return entity.ResolutionOptions{}, fmt.Errorf("--lng and --lat must be given together")
	}
	if lngSet {
		opts.Location = &entity.Location{Longitude: chartFlags.lng, Latitude: chartFlags.lat}
	}
	if chartFlags.noLocal {
		opts.UseLocalTime = entity.Bool(false)
	}
	if chartFlags.noTerms {
		opts.UseSolarTerms = entity.Bool(false)
	}
	switch chartFlags.dst {
	case "auto":
	case "on":
		opts.UseDaylightSaving = entity.Bool(true)
	case "off":
		opts.UseDaylightSaving = entity.Bool(false)
	default:
		return entity.ResolutionOptions{}, fmt.Errorf("--dst must be auto, on or off, got %q", chartFlags.dst)
	}
	return opts, nil
}

// chartLocation は --tz の時計を返します。未指定なら韓国標準時です。
func chartLocation() (*time.Location, error) {
	if chartFlags.tz == "" {
		return calentity.Zone, nil
	}
	loc, err := time.LoadLocation(chartFlags.tz)
	if err != nil {
		return nil, fmt.Errorf("--tz: %w", err)
	}
	return loc, nil
}

func runChart(cmd *cobra.Command, _ []string) error {
	opts, err := chartOptions(cmd)
	if err != nil {
		return err
	}
	loc, err := chartLocation()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	app, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	var c entity.Chart
	if chartFlags.date == "" {
		c, err = app.Charts.ComputeChartNow(ctx, loc, opts)
	} else {
		birth, perr := time.ParseInLocation(calentity.DateLayout, chartFlags.date, loc)
		if perr != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD: %w", perr)
		}
		birth = birth.Add(time.Duration(chartFlags.minute) * time.Minute)
		c, err = app.Charts.ComputeChart(ctx, birth, chartFlags.hour, opts)
	}
	if err != nil {
		return err
	}

	if chartFlags.jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(charthandler.ToChartResponse(c))
	}
	printChart(cmd.OutOrStdout(), c)
	return nil
}

func printChart(w io.Writer, c entity.Chart) {
	fmt.Fprintf(w, "        hour  day   month year\n")
	fmt.Fprintf(w, "stem    %-5s %-5s %-5s %s\n", c.Hour.Ten.Hanja(), c.Day.Ten.Hanja(), c.Month.Ten.Hanja(), c.Year.Ten.Hanja())
	fmt.Fprintf(w, "branch  %-5s %-5s %-5s %s\n", c.Hour.Twelve.Hanja(), c.Day.Twelve.Hanja(), c.Month.Twelve.Hanja(), c.Year.Twelve.Hanja())
	fmt.Fprintf(w, "\nday master: %s %s   month element: %s\n", c.DayMasterPolarity, c.DayMasterElement, c.MonthElement)

	counts := make([]string, 0, entity.ElementCount)
	for e, n := range c.ElementCounts {
		counts = append(counts, fmt.Sprintf("%s=%d", entity.Element(e), n))
	}
	fmt.Fprintf(w, "elements:   %s\n", strings.Join(counts, " "))
	fmt.Fprintf(w, "month by:   %s (confidence %s, calendar %s)\n", c.MonthLayer, c.Confidence, c.CalendarSource)
	fmt.Fprintf(w, "normalized: %s\n", c.NormalizedTime.Format(time.RFC3339))

	if c.Luck != nil {
		dir := "backward"
		if c.Luck.Forward {
			dir = "forward"
		}
		fmt.Fprintf(w, "\nluck pillars (%s, from age %d):\n", dir, c.Luck.StartAge)
		for _, lp := range c.Luck.Pillars {
			fmt.Fprintf(w, "  %3d  %s\n", lp.StartAge, lp.Pillar)
		}
	}
}
