package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"saju_backend/internal/platform/cache"
	"saju_backend/internal/platform/config"
	"saju_backend/internal/platform/logger"
	infraredis "saju_backend/internal/platform/redis"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the lunar provider cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached provider result from Redis",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.SetupWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	rdb, err := infraredis.NewRedisClient(cfg)
	if err != nil {
		return err
	}
	if rdb == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "REDIS_HOST is not set; the in-process cache lives only inside the server")
		return nil
	}
	defer func() { _ = rdb.Close() }()

	if err := cache.NewRedisDayCache(rdb, cfg.CalendarCacheTTL, "calendar").Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clear calendar cache: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "calendar cache cleared")
	return nil
}
