package dataset

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/iRail/stations/internal/station"
)

// NewFeatureCollection converts stations to GeoJSON point features. Stations
// without coordinates are left out.
func NewFeatureCollection(stations []*station.Station) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, s := range stations {
		if !s.HasCoordinates() {
			continue
		}

		f := geojson.NewPointFeature([]float64{s.Longitude, s.Latitude})
		f.ID = s.ID
		f.SetProperty("name", s.Name)
		f.SetProperty("avgStopTimes", s.TrafficScore)
		if s.CountryCode != "" {
			f.SetProperty("country", s.CountryCode)
		}
		for _, l := range station.Locales {
			if alt := s.AlternateNames[l]; alt != "" && alt != s.Name {
				f.SetProperty("name_"+l, alt)
			}
		}
		fc.AddFeature(f)
	}
	return fc
}
