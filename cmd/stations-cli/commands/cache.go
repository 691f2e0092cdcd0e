package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iRail/stations/cmd/stations-cli/ui"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the search result cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached search result",
	RunE:  runCacheClear,
}

var cacheWarmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Pre-compute results for every station name",
	RunE:  runCacheWarm,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd, cacheWarmCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Engine.ClearCache(ctx); err != nil {
		return err
	}
	ui.Success("Result cache cleared (%s)", a.Config.Cache.Driver)
	return nil
}

func runCacheWarm(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
	defer cancel()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ds, err := loadDataset(ctx, a)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := a.Logger.With().Str("run_id", runID).Logger()
	start := time.Now()

	stations := ds.Stations()
	bar := ui.NewProgressBar(int64(len(stations)), "Warming")
	queries := 0
	for _, s := range stations {
		for _, name := range s.Names() {
			if _, err := a.Engine.Search(ctx, name, "", false); err != nil {
				bar.Finish()
				return err
			}
			queries++
		}
		bar.Add()
	}
	bar.Finish()

	logger.Info().Int("queries", queries).Dur("elapsed", time.Since(start)).Msg("Result cache warmed")
	ui.Success("Cached %d queries for %d stations (%s)", queries, len(stations), a.Config.Cache.Driver)
	return nil
}
