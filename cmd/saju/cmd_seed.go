package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	caladapters "saju_backend/internal/feature/calendar/adapters"
	"saju_backend/internal/platform/config"
	"saju_backend/internal/platform/db"
	"saju_backend/internal/platform/logger"
)

var seedFlags struct {
	file string
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import verified calendar days and year term overrides from YAML",
	Long: `Import a YAML seed file into the reference tables. Existing rows with the
same date (or the same year stem and term) are updated in place.

The running server loads the reference tables once at startup, so restart it
after seeding.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFlags.file, "file", "f", "data/reference.yaml", "Seed file path")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.SetupWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	// テーブルが無ければ作成する
	cfg.RunMigrations = true
	gdb, err := db.OpenDB(cfg, caladapters.Models()...)
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	days, terms, err := caladapters.ImportSeedFile(cmd.Context(), caladapters.NewReferenceRepository(gdb), seedFlags.file)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d days and %d year term overrides from %s\n", days, terms, seedFlags.file)
	return nil
}
