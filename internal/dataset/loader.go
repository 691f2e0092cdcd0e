package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iRail/stations/internal/cache"
	"github.com/iRail/stations/internal/observability"
	"github.com/iRail/stations/internal/station"
)

// Loader loads a Dataset once and hands the same instance to every caller.
// A failed load is not retried.
type Loader struct {
	source Source
	cache  cache.Client
	logger *observability.Logger

	once   sync.Once
	ds     *Dataset
	err    error
	loaded atomic.Bool
}

// NewLoader creates a loader. cacheClient may be nil.
func NewLoader(source Source, cacheClient cache.Client, logger *observability.Logger) *Loader {
	return &Loader{
		source: source,
		cache:  cacheClient,
		logger: logger.WithComponent("dataset"),
	}
}

// Load returns the dataset, reading it on the first call. The read is
// detached from ctx cancellation, since its result is shared by every
// later caller.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	l.once.Do(func() {
		l.ds, l.err = l.load(context.WithoutCancel(ctx))
		l.loaded.Store(l.err == nil)
	})
	return l.ds, l.err
}

// Ready reports whether the dataset has been loaded successfully.
func (l *Loader) Ready() bool {
	return l.loaded.Load()
}

func (l *Loader) cacheKey() string {
	return cache.Key("dataset", l.source.Name())
}

func (l *Loader) load(ctx context.Context) (*Dataset, error) {
	start := time.Now()

	if ds, ok := l.fromCache(ctx); ok {
		l.logger.Info().
			Str("source", l.source.Name()).
			Int("stations", ds.Len()).
			Dur("elapsed", time.Since(start)).
			Msg("Dataset loaded from cache")
		return ds, nil
	}

	stations, err := l.source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.source.Name(), err)
	}

	ds, err := New(stations)
	if err != nil {
		return nil, fmt.Errorf("build dataset from %s: %w", l.source.Name(), err)
	}

	l.toCache(ctx, ds)
	l.logger.Info().
		Str("source", l.source.Name()).
		Int("stations", ds.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Dataset loaded")
	return ds, nil
}

func (l *Loader) fromCache(ctx context.Context) (*Dataset, bool) {
	if l.cache == nil {
		return nil, false
	}

	data, err := l.cache.Get(ctx, l.cacheKey())
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			l.logger.Warn().Err(err).Msg("Dataset cache read failed")
		}
		return nil, false
	}

	var stations []*station.Station
	if err := json.Unmarshal(data, &stations); err != nil {
		l.logger.Warn().Err(err).Msg("Discarding undecodable cached dataset")
		return nil, false
	}

	ds, err := New(stations)
	if err != nil {
		l.logger.Warn().Err(err).Msg("Discarding invalid cached dataset")
		return nil, false
	}
	return ds, true
}

func (l *Loader) toCache(ctx context.Context, ds *Dataset) {
	if l.cache == nil {
		return
	}

	data, err := json.Marshal(ds.stations)
	if err != nil {
		l.logger.Warn().Err(err).Msg("Failed to encode dataset for cache")
		return
	}
	if err := l.cache.Set(ctx, l.cacheKey(), data, 0); err != nil {
		l.logger.Warn().Err(err).Msg("Dataset cache write failed")
	}
}
