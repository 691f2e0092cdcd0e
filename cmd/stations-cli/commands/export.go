package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iRail/stations/cmd/stations-cli/ui"
	"github.com/iRail/stations/internal/dataset"
	"github.com/iRail/stations/internal/station"
)

const collectionID = "http://irail.be/stations/NMBS"

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the station dataset as GeoJSON, JSON-LD or CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "geojson", "output format: geojson, jsonld or csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
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

	w := ui.Out
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := writeExport(w, exportFormat, ds.Stations()); err != nil {
		return err
	}

	if exportOutput != "" {
		ui.Success("Exported %d stations to %s", ds.Len(), exportOutput)
	}
	return nil
}

func writeExport(w io.Writer, format string, stations []*station.Station) error {
	switch format {
	case "geojson":
		data, err := dataset.NewFeatureCollection(stations).MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode geojson: %w", err)
		}
		_, err = w.Write(data)
		return err
	case dataset.FormatJSONLD:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dataset.NewDocument(collectionID, stations))
	case dataset.FormatCSV:
		return dataset.WriteCSV(w, stations)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
