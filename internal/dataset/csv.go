package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iRail/stations/internal/observability"
	"github.com/iRail/stations/internal/station"
)

// CSV header names of the prepared dataset.
const (
	colURI           = "URI"
	colName          = "name"
	colAltPrefix     = "alternative-"
	colTafTapCode    = "taf-tap-code"
	colTelegraphCode = "telegraph-code"
	colCountry       = "country-code"
	colLongitude     = "longitude"
	colLatitude      = "latitude"
	colAvgStopTimes  = "avg_stop_times"
	colTransferTime  = "official_transfer_time"
)

// ParseCSV reads stations from a header-mapped CSV document.
func ParseCSV(r io.Reader, logger *observability.Logger) ([]*station.Station, error) {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1

	head, err := csvr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}

	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}

	uriIdx, nameIdx := idx(colURI), idx(colName)
	if uriIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("csv header must contain %q and %q", colURI, colName)
	}
	altIdx := make(map[string]int, len(station.Locales))
	for _, l := range station.Locales {
		altIdx[l] = idx(colAltPrefix + l)
	}
	tafIdx, telIdx, countryIdx := idx(colTafTapCode), idx(colTelegraphCode), idx(colCountry)
	lonIdx, latIdx := idx(colLongitude), idx(colLatitude)
	trafficIdx, transferIdx := idx(colAvgStopTimes), idx(colTransferTime)

	var stations []*station.Station
	for line := 2; ; line++ {
		row, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		field := func(i int) string {
			if i < 0 || i >= len(row) {
				return ""
			}
			return row[i]
		}

		rec := record{
			ID:            field(uriIdx),
			Name:          field(nameIdx),
			Alternates:    make(map[string]string, len(altIdx)),
			Country:       field(countryIdx),
			Longitude:     field(lonIdx),
			Latitude:      field(latIdx),
			Traffic:       field(trafficIdx),
			Transfer:      field(transferIdx),
			TafTapCode:    field(tafIdx),
			TelegraphCode: field(telIdx),
		}
		for l, i := range altIdx {
			rec.Alternates[l] = field(i)
		}

		if s, ok := rec.toStation(linePos(line), logger); ok {
			stations = append(stations, s)
		}
	}

	return stations, nil
}

// WriteCSV writes stations in the layout ParseCSV reads.
func WriteCSV(w io.Writer, stations []*station.Station) error {
	csvw := csv.NewWriter(w)
	header := []string{colURI, colName}
	for _, l := range []string{"fr", "nl", "de", "en"} {
		header = append(header, colAltPrefix+l)
	}
	header = append(header, colTafTapCode, colTelegraphCode, colCountry, colLongitude, colLatitude, colAvgStopTimes, colTransferTime)
	if err := csvw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, s := range stations {
		row := []string{
			s.ID, s.Name,
			s.AlternateNames["fr"], s.AlternateNames["nl"], s.AlternateNames["de"], s.AlternateNames["en"],
			s.TafTapCode, s.TelegraphCode, s.CountryCode,
			formatFloat(s.Longitude), formatFloat(s.Latitude), formatFloat(s.TrafficScore),
			formatInt(s.TransferTime),
		}
		if err := csvw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", s.ID, err)
		}
	}

	csvw.Flush()
	return csvw.Error()
}
