package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/iRail/stations/internal/observability"
	"github.com/iRail/stations/internal/station"
)

// Context is the JSON-LD context of station documents.
var Context = map[string]any{
	"name":                 "http://xmlns.com/foaf/0.1/name",
	"alternative":          "http://purl.org/dc/terms/alternative",
	"longitude":            "http://www.w3.org/2003/01/geo/wgs84_pos#long",
	"latitude":             "http://www.w3.org/2003/01/geo/wgs84_pos#lat",
	"avgStopTimes":         "http://semweb.mmlab.be/ns/stoptimes#avgStopTimes",
	"officialTransferTime": "http://semweb.mmlab.be/ns/stoptimes#officialTransferTime",
	"country": map[string]string{
		"@type": "@id",
		"@id":   "http://www.geonames.org/ontology#parentCountry",
	},
}

// LangString is a language-tagged literal.
type LangString struct {
	Value    string `json:"@value"`
	Language string `json:"@language"`
}

// Node is the JSON-LD representation of a station.
type Node struct {
	ID                   string       `json:"@id"`
	Name                 string       `json:"name"`
	Alternative          []LangString `json:"alternative,omitempty"`
	Country              string       `json:"country,omitempty"`
	Longitude            float64      `json:"longitude"`
	Latitude             float64      `json:"latitude"`
	AvgStopTimes         float64      `json:"avgStopTimes"`
	OfficialTransferTime int          `json:"officialTransferTime,omitempty"`
}

// Document is a JSON-LD graph of stations.
type Document struct {
	Context map[string]any `json:"@context"`
	ID      string         `json:"@id,omitempty"`
	Graph   []Node         `json:"@graph"`
}

// NewNode converts s. Alternates equal to the canonical name are omitted.
func NewNode(s *station.Station) Node {
	n := Node{
		ID:                   s.ID,
		Name:                 s.Name,
		Country:              s.CountryCode,
		Longitude:            s.Longitude,
		Latitude:             s.Latitude,
		AvgStopTimes:         s.TrafficScore,
		OfficialTransferTime: s.TransferTime,
	}
	if uri := station.CountryURI(s.CountryCode); uri != "" {
		n.Country = uri
	}
	for _, l := range station.Locales {
		if alt := s.AlternateNames[l]; alt != "" && alt != s.Name {
			n.Alternative = append(n.Alternative, LangString{Value: alt, Language: l})
		}
	}
	return n
}

// NewDocument builds a graph document identified by id.
func NewDocument(id string, stations []*station.Station) Document {
	graph := make([]Node, len(stations))
	for i, s := range stations {
		graph[i] = NewNode(s)
	}
	return Document{Context: Context, ID: id, Graph: graph}
}

// ParseJSONLD reads stations from a JSON-LD graph document.
func ParseJSONLD(r io.Reader, logger *observability.Logger) ([]*station.Station, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc struct {
		Graph []map[string]any `json:"@graph"`
	}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json-ld: %w", err)
	}

	stations := make([]*station.Station, 0, len(doc.Graph))
	for i, node := range doc.Graph {
		rec := record{
			ID:         toString(node["@id"]),
			Name:       toString(node["name"]),
			Alternates: alternatives(node["alternative"]),
			Country:    countryValue(node["country"]),
			Longitude:  node["longitude"],
			Latitude:   node["latitude"],
			Traffic:    node["avgStopTimes"],
			Transfer:   node["officialTransferTime"],
		}
		if s, ok := rec.toStation(fmt.Sprintf("node %d", i), logger); ok {
			stations = append(stations, s)
		}
	}
	return stations, nil
}

// alternatives accepts a single language-tagged object or an array of them.
func alternatives(v any) map[string]string {
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case map[string]any:
		items = []any{t}
	default:
		return nil
	}

	out := make(map[string]string, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		lang := toString(obj["@language"])
		if !slices.Contains(station.Locales, lang) {
			continue
		}
		out[lang] = toString(obj["@value"])
	}
	return out
}

func countryValue(v any) string {
	if obj, ok := v.(map[string]any); ok {
		return toString(obj["@id"])
	}
	return toString(v)
}
