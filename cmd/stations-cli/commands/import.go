package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iRail/stations/cmd/stations-cli/ui"
	"github.com/iRail/stations/internal/storage"
)

var (
	importDriver string
	importDSN    string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the configured dataset into a SQL database",
	Long: `Import reads the configured dataset and replaces the stations table of the
target database with it. The database can then serve as a dataset source with
dataset.format: sql.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importDriver, "to", storage.DriverSQLite, "target driver: sqlite or postgres")
	importCmd.Flags().StringVar(&importDSN, "dsn", "", "target data source name (required)")
	importCmd.MarkFlagRequired("dsn")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
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

	db, err := storage.Open(ctx, importDriver, importDSN)
	if err != nil {
		return fmt.Errorf("open target: %w", err)
	}
	defer db.Close()

	if err := storage.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate target: %w", err)
	}

	bar := ui.NewProgressBar(int64(ds.Len()), "Importing")
	err = storage.NewStationRepository(db).ReplaceAll(ctx, ds.Stations(), func(done int) {
		bar.Set(int64(done))
	})
	bar.Finish()
	if err != nil {
		return fmt.Errorf("import stations: %w", err)
	}

	ui.Success("Imported %d stations into %s", ds.Len(), importDriver)
	return nil
}
