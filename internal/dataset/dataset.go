// Package dataset loads the prepared station dataset into an immutable,
// traffic-ordered collection with an id index.
package dataset

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/iRail/stations/internal/station"
)

var (
	// ErrDuplicateID is returned when two records share a station URI.
	ErrDuplicateID = errors.New("duplicate station id")
	// ErrEmpty is returned when a source yields no usable station.
	ErrEmpty = errors.New("dataset contains no stations")
)

// Dataset is the read-only set of stations served by the engine.
type Dataset struct {
	stations []*station.Station
	index    map[string]*station.Station
}

// New orders stations by descending traffic score (ties keep input order)
// and indexes them by URI.
func New(stations []*station.Station) (*Dataset, error) {
	if len(stations) == 0 {
		return nil, ErrEmpty
	}

	ordered := slices.Clone(stations)
	slices.SortStableFunc(ordered, func(a, b *station.Station) int {
		return cmp.Compare(b.TrafficScore, a.TrafficScore)
	})

	index := make(map[string]*station.Station, len(ordered))
	for _, s := range ordered {
		key := station.IndexKey(s.ID)
		if _, dup := index[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, s.ID)
		}
		index[key] = s
	}

	return &Dataset{stations: ordered, index: index}, nil
}

// Stations returns the stations in traffic order. The slice is a copy.
func (d *Dataset) Stations() []*station.Station {
	return slices.Clone(d.stations)
}

// Len returns the number of stations.
func (d *Dataset) Len() int {
	return len(d.stations)
}

// Lookup returns the station with the given URI, ignoring case.
func (d *Dataset) Lookup(uri string) *station.Station {
	return d.index[station.IndexKey(uri)]
}

// Get resolves a URI, bare code or legacy id. It returns nil when no station
// matches.
func (d *Dataset) Get(id string) *station.Station {
	return d.Lookup(station.ToURI(id))
}
