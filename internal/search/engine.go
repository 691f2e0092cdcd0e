package search

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/iRail/stations/internal/dataset"
	"github.com/iRail/stations/internal/observability"
	"github.com/iRail/stations/internal/station"
)

// DefaultResultCap is the number of results after which a scan stops. A
// result list holds at most DefaultResultCap+1 stations.
const DefaultResultCap = 5

// DatasetLoader provides the loaded dataset.
type DatasetLoader interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
}

// Config holds engine settings.
type Config struct {
	ResultCap int
}

// Engine answers station searches and id lookups against one dataset.
type Engine struct {
	loader  DatasetLoader
	results *ResultCache
	logger  *observability.Logger
	cap     int

	once     sync.Once
	prepared *prepared
	err      error
}

// prepared pairs the dataset with the normalized names of every station.
type prepared struct {
	ds       *dataset.Dataset
	stations []*station.Station
	// names[i] holds the candidate forms of stations[i], one slice per name
	// segment, canonical name first.
	names [][][]string
}

// NewEngine creates an engine. results may be nil to disable memoization.
func NewEngine(loader DatasetLoader, results *ResultCache, logger *observability.Logger, cfg Config) *Engine {
	if cfg.ResultCap <= 0 {
		cfg.ResultCap = DefaultResultCap
	}
	return &Engine{
		loader:  loader,
		results: results,
		logger:  logger.WithComponent("search"),
		cap:     cfg.ResultCap,
	}
}

func (e *Engine) prepare(ctx context.Context) (*prepared, error) {
	e.once.Do(func() {
		ds, err := e.loader.Load(ctx)
		if err != nil {
			e.err = fmt.Errorf("load dataset: %w", err)
			return
		}

		start := time.Now()
		all := ds.Stations()
		p := &prepared{ds: ds, stations: all, names: make([][][]string, len(all))}
		for i, s := range all {
			p.names[i] = stationForms(s)
		}
		e.prepared = p
		e.logger.Debug().Int("stations", len(all)).Dur("elapsed", time.Since(start)).Msg("Prepared station names")
	})
	return e.prepared, e.err
}

// stationForms normalizes every name of s, splitting bilingual names on '/'.
func stationForms(s *station.Station) [][]string {
	var forms [][]string
	for _, name := range s.Names() {
		for _, segment := range strings.Split(name, "/") {
			if strings.TrimSpace(segment) == "" {
				continue
			}
			forms = append(forms, candidateForms(segment))
		}
	}
	return forms
}

// Search returns stations ranked by relevance to query. A query that
// normalizes to nothing returns the full dataset. country, when set, restricts matches to that
// ISO2 code. sorted re-orders the result by traffic score.
func (e *Engine) Search(ctx context.Context, query, country string, sorted bool) ([]*station.Station, error) {
	p, err := e.prepare(ctx)
	if err != nil {
		return nil, err
	}

	normalized := Normalize(query)
	if normalized == "" {
		return e.all(ctx, p, sorted), nil
	}

	key := ResultKey(query, country, sorted)
	if e.results != nil {
		if cached, ok := e.results.Get(ctx, key, p.ds); ok {
			return cached, nil
		}
	}

	result := e.scan(p, compilePattern(normalized), strings.ToLower(strings.TrimSpace(country)))
	if sorted {
		sortByTraffic(result)
	}

	e.logger.WithContext(ctx).Debug().
		Str("query", query).
		Str("normalized", normalized).
		Str("country", country).
		Int("results", len(result)).
		Msg("Station search")

	if e.results != nil {
		e.results.Put(ctx, key, result)
	}
	return result, nil
}

// Stations returns every station in traffic order.
func (e *Engine) Stations(ctx context.Context) ([]*station.Station, error) {
	p, err := e.prepare(ctx)
	if err != nil {
		return nil, err
	}
	return e.all(ctx, p, false), nil
}

func (e *Engine) all(ctx context.Context, p *prepared, sorted bool) []*station.Station {
	key := AllStationsKey(sorted)
	if e.results != nil {
		if cached, ok := e.results.Get(ctx, key, p.ds); ok {
			return cached
		}
	}

	all := slices.Clone(p.stations)
	if sorted {
		sortByTraffic(all)
	}
	if e.results != nil {
		e.results.Put(ctx, key, all)
	}
	return all
}

// scan classifies every station against q and assembles the ranked list.
// The scan stops as soon as more than cap stations matched, so an exact
// match further down the traffic order can be missed.
func (e *Engine) scan(p *prepared, q queryPattern, country string) []*station.Station {
	result := make([]*station.Station, 0, e.cap+1)
	count := 0

	for i, s := range p.stations {
		if country != "" && s.CountryCode != country {
			continue
		}

		exact, partial := false, false
		for _, forms := range p.names[i] {
			if q.isExact(forms) {
				exact = true
				break
			}
			if !partial && q.isPartial(forms) {
				partial = true
			}
		}

		switch {
		case exact:
			result = moveToFront(result, s)
			count++
		case partial && count <= e.cap:
			result = append(result, s)
			count++
		}

		if count > e.cap {
			break
		}
	}
	return result
}

func moveToFront(list []*station.Station, s *station.Station) []*station.Station {
	list = slices.DeleteFunc(list, func(o *station.Station) bool { return o.ID == s.ID })
	return slices.Insert(list, 0, s)
}

func sortByTraffic(list []*station.Station) {
	slices.SortStableFunc(list, func(a, b *station.Station) int {
		return cmp.Compare(b.TrafficScore, a.TrafficScore)
	})
}

// Get resolves a station by URI, bare code or legacy BE.NMBS. id. A missing
// station is not an error.
func (e *Engine) Get(ctx context.Context, id string) (*station.Station, error) {
	p, err := e.prepare(ctx)
	if err != nil {
		return nil, err
	}
	return p.ds.Get(id), nil
}

// ClearCache drops all memoized search results.
func (e *Engine) ClearCache(ctx context.Context) error {
	if e.results == nil {
		return nil
	}
	if err := e.results.Clear(ctx); err != nil {
		return fmt.Errorf("clear result cache: %w", err)
	}
	e.logger.WithContext(ctx).Info().Msg("Result cache cleared")
	return nil
}
