package dataset

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iRail/stations/internal/station"
)

func TestNewFeatureCollection(t *testing.T) {
	fc := NewFeatureCollection([]*station.Station{
		{
			ID:             "http://irail.be/stations/NMBS/008892007",
			Name:           "Gent-Sint-Pieters",
			AlternateNames: map[string]string{"fr": "Gand-Saint-Pierre", "nl": "Gent-Sint-Pieters"},
			CountryCode:    "be",
			Longitude:      3.710675,
			Latitude:       51.035896,
			TrafficScore:   800,
		},
		{ID: "http://irail.be/stations/NMBS/1", Name: "Nowhere"},
	})
	require.Len(t, fc.Features, 1)

	data, err := fc.MarshalJSON()
	require.NoError(t, err)

	decoded, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, decoded.Features, 1)

	f := decoded.Features[0]
	assert.Equal(t, "http://irail.be/stations/NMBS/008892007", f.ID)
	require.True(t, f.Geometry.IsPoint())
	assert.Equal(t, []float64{3.710675, 51.035896}, f.Geometry.Point)
	assert.Equal(t, "Gent-Sint-Pieters", f.Properties["name"])
	assert.Equal(t, "Gand-Saint-Pierre", f.Properties["name_fr"])
	assert.NotContains(t, f.Properties, "name_nl")
	assert.Equal(t, "be", f.Properties["country"])
	assert.Equal(t, 800.0, f.Properties["avgStopTimes"])
}
