package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iRail/stations/cmd/stations-cli/ui"
	"github.com/iRail/stations/internal/app"
	"github.com/iRail/stations/internal/config"
	"github.com/iRail/stations/internal/dataset"
	"github.com/iRail/stations/internal/station"
)

// openApp loads the configuration and wires the engine. CLI logs go to
// stderr in console format and stay quiet unless --verbose is set.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg.Observability.LogFormat = "console"
	cfg.Observability.LogLevel = "warn"
	if verbose {
		cfg.Observability.LogLevel = "debug"
	}

	a, err := app.New(ctx, cfg, app.NewLogger(cfg, "stations-cli"))
	if err != nil {
		return nil, err
	}
	return a, nil
}

// loadDataset reads the configured dataset behind a spinner.
func loadDataset(ctx context.Context, a *app.App) (*dataset.Dataset, error) {
	spin := ui.NewSpinner("Loading stations...")
	spin.Start()
	ds, err := a.Loader.Load(ctx)
	spin.Stop()
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ds, nil
}

func stationRows(stations []*station.Station) [][]string {
	rows := make([][]string, len(stations))
	for i, s := range stations {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			station.Code(s.ID),
			s.Name,
			s.CountryCode,
			strconv.FormatFloat(s.TrafficScore, 'f', -1, 64),
		}
	}
	return rows
}
