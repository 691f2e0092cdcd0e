package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/iRail/stations/cmd/stations-cli/ui"
)

var (
	searchCountry string
	searchSorted  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stations by name",
	Long:  "Search stations by name. An empty query lists every station.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchCountry, "country", "", "restrict results to an ISO2 country code")
	searchCmd.Flags().BoolVar(&searchSorted, "sorted", false, "order results by traffic instead of relevance")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	var query string
	if len(args) > 0 {
		query = args[0]
	}

	result, err := a.Engine.Search(ctx, query, searchCountry, searchSorted)
	if err != nil {
		return err
	}

	if len(result) == 0 {
		ui.Warning("No stations match %q", query)
		return nil
	}

	ui.Table([]string{"#", "ID", "NAME", "COUNTRY", "TRAFFIC"}, stationRows(result))
	return nil
}
