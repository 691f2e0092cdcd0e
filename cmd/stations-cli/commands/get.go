package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/iRail/stations/cmd/stations-cli/ui"
	"github.com/iRail/stations/internal/station"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a station by URI, code or BE.NMBS. id",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := loadDataset(ctx, a); err != nil {
		return err
	}

	s, err := a.Engine.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("station %s not found", args[0])
	}

	ui.Section(s.Name)
	ui.KeyValue("URI", s.ID)
	for _, l := range station.Locales {
		ui.KeyValue("Name ("+l+")", s.Alternate(l))
	}
	ui.KeyValue("Country", s.CountryCode)
	if s.HasCoordinates() {
		ui.KeyValue("Position", fmt.Sprintf("%g, %g", s.Latitude, s.Longitude))
	}
	ui.KeyValue("Traffic", strconv.FormatFloat(s.TrafficScore, 'f', -1, 64))
	if s.TransferTime > 0 {
		ui.KeyValue("Transfer time", (time.Duration(s.TransferTime) * time.Second).String())
	}
	if s.TafTapCode != "" {
		ui.KeyValue("TAF/TAP code", s.TafTapCode)
	}
	if s.TelegraphCode != "" {
		ui.KeyValue("Telegraph code", s.TelegraphCode)
	}
	return nil
}
