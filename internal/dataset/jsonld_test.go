package dataset

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iRail/stations/internal/observability"
	"github.com/iRail/stations/internal/station"
)

func TestParseJSONLD_Fixture(t *testing.T) {
	f, err := os.Open("testdata/stations.jsonld")
	require.NoError(t, err)
	defer f.Close()

	stations, err := ParseJSONLD(f, observability.NopLogger())
	require.NoError(t, err)
	require.Len(t, stations, 4)

	kapellen := stations[0]
	assert.Equal(t, "be", kapellen.CountryCode)
	assert.Equal(t, 40.0, kapellen.TrafficScore)
	assert.InDelta(t, 4.432823, kapellen.Longitude, 1e-9)

	gent := stations[1]
	assert.Equal(t, map[string]string{"fr": "Gand-Saint-Pierre", "en": "Ghent-Sint-Pieters"}, gent.AlternateNames)
	assert.Equal(t, "be", gent.CountryCode)
	assert.Equal(t, 300, gent.TransferTime)

	halle := stations[2]
	assert.Equal(t, "Hal", halle.Alternate("fr"))
	assert.Equal(t, "Halle", halle.Alternate("nl"))
	assert.Zero(t, halle.TrafficScore)

	assert.Equal(t, "lu", stations[3].CountryCode)
}

func TestParseJSONLD_Invalid(t *testing.T) {
	_, err := ParseJSONLD(strings.NewReader("{not json"), observability.NopLogger())
	require.Error(t, err)
}

func TestNewNode(t *testing.T) {
	s := &station.Station{
		ID:   "http://irail.be/stations/NMBS/008819406",
		Name: "Brussels Airport - Zaventem",
		AlternateNames: map[string]string{
			"nl": "Brussels Airport - Zaventem",
			"fr": "Bruxelles-National",
		},
		CountryCode:  "be",
		TrafficScore: 700,
	}

	n := NewNode(s)
	assert.Equal(t, "http://sws.geonames.org/2802361/", n.Country)
	assert.Equal(t, []LangString{{Value: "Bruxelles-National", Language: "fr"}}, n.Alternative)

	n = NewNode(&station.Station{ID: "x", Name: "Nowhere", CountryCode: "zz"})
	assert.Equal(t, "zz", n.Country)
	assert.Nil(t, n.Alternative)
}

func TestNewDocument_RoundTrip(t *testing.T) {
	f, err := os.Open(fixtureCSV)
	require.NoError(t, err)
	defer f.Close()

	original, err := ParseCSV(f, observability.NopLogger())
	require.NoError(t, err)

	doc := NewDocument("http://irail.be/stations/NMBS", original)
	assert.Equal(t, "http://irail.be/stations/NMBS", doc.ID)
	require.Len(t, doc.Graph, len(original))

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "@context")
	assert.Contains(t, raw, "@graph")

	reparsed, err := ParseJSONLD(bytes.NewReader(data), observability.NopLogger())
	require.NoError(t, err)
	require.Len(t, reparsed, len(original))

	for i := range original {
		assert.Equal(t, original[i].ID, reparsed[i].ID)
		assert.Equal(t, original[i].Name, reparsed[i].Name)
		assert.Equal(t, original[i].CountryCode, reparsed[i].CountryCode)
		assert.Equal(t, original[i].TrafficScore, reparsed[i].TrafficScore)
		assert.Equal(t, original[i].LocalizedNames(), reparsed[i].LocalizedNames())
	}
}
