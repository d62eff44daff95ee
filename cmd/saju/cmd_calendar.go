package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"saju_backend/internal/feature/calendar/domain/entity"
	calhandler "saju_backend/internal/feature/calendar/transport/handler"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar <YYYY-MM-DD>",
	Short: "Show the traditional calendar view of a solar date",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalendar,
}

func runCalendar(cmd *cobra.Command, args []string) error {
	date, err := time.ParseInLocation(entity.DateLayout, args[0], entity.Zone)
	if err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}

	ctx := cmd.Context()
	app, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(calhandler.ToCalendarDayResponse(app.Calendar.Lookup(ctx, date)))
}
