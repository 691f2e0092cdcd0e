package dataset

import (
	"strconv"
	"strings"

	"github.com/iRail/stations/internal/observability"
	"github.com/iRail/stations/internal/station"
)

// record is a station as read from a source, before field conversion.
type record struct {
	ID            string
	Name          string
	Alternates    map[string]string
	Country       string
	Longitude     any
	Latitude      any
	Traffic       any
	Transfer      any
	TafTapCode    string
	TelegraphCode string
}

// toStation converts r. Records without id or name are rejected; malformed
// optional numbers are defaulted to zero.
func (r record) toStation(pos string, logger *observability.Logger) (*station.Station, bool) {
	id := strings.TrimSpace(r.ID)
	name := strings.TrimSpace(r.Name)
	if id == "" || name == "" {
		logger.Warn().Str("record", pos).Str("id", id).Msg("Skipping station without id or name")
		return nil, false
	}

	s := &station.Station{
		ID:            id,
		Name:          name,
		CountryCode:   station.CountryCode(r.Country),
		TafTapCode:    strings.TrimSpace(r.TafTapCode),
		TelegraphCode: strings.TrimSpace(r.TelegraphCode),
	}

	for locale, alt := range r.Alternates {
		if alt = strings.TrimSpace(alt); alt != "" {
			if s.AlternateNames == nil {
				s.AlternateNames = make(map[string]string, len(station.Locales))
			}
			s.AlternateNames[locale] = alt
		}
	}

	floatField := func(field string, v any) float64 {
		f, err := toFloat(v)
		if err != nil {
			logger.Warn().Str("record", pos).Str("id", id).Str("field", field).Msg("Defaulting malformed field")
			return 0
		}
		return f
	}
	s.Longitude = floatField("longitude", r.Longitude)
	s.Latitude = floatField("latitude", r.Latitude)
	s.TrafficScore = floatField("avg_stop_times", r.Traffic)

	transfer, err := toInt(r.Transfer)
	if err != nil {
		logger.Warn().Str("record", pos).Str("id", id).Str("field", "official_transfer_time").Msg("Defaulting malformed field")
	}
	s.TransferTime = transfer

	return s, true
}

func linePos(n int) string {
	return "line " + strconv.Itoa(n)
}
