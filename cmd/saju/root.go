// saju is the command line front end: compute charts, inspect calendar days, import
// reference data and clear the provider cache.
//
// Usage:
//
//	saju chart --date=2024-02-10 --hour=12 [--gender=male] [--lng=126.98 --lat=37.57]
//	saju calendar 2024-02-10
//	saju seed -f data/reference.yaml
//	saju cache clear
package main

import (
	"context"
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"saju_backend/internal/app/di"
	"saju_backend/internal/platform/config"
	"saju_backend/internal/platform/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "saju",
	Short: "Four pillars birth chart engine",
	Long:  "saju computes four-pillar birth charts from a birth date, hour and place,\nbacked by the verified reference table and the lunar calendar provider.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.Version = version
}

// loadApp reads the configuration and wires the application. Logs go to stderr
// so that command output on stdout stays machine readable.
func loadApp(ctx context.Context) (*di.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.SetupWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	return di.NewApp(ctx, cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
