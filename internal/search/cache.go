package search

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/iRail/stations/internal/cache"
	"github.com/iRail/stations/internal/dataset"
	"github.com/iRail/stations/internal/observability"
	"github.com/iRail/stations/internal/station"
)

// resultPrefix namespaces search results inside the shared cache backend.
const resultPrefix = "stations|"

// ResultCache memoizes ranked search results. Entries hold station ids and
// are rehydrated through the dataset index on read.
type ResultCache struct {
	client cache.Client
	logger *observability.Logger
	ttl    time.Duration
}

// NewResultCache wraps client. A zero ttl keeps results until Clear.
func NewResultCache(client cache.Client, logger *observability.Logger, ttl time.Duration) *ResultCache {
	return &ResultCache{
		client: client,
		logger: logger.WithComponent("result_cache"),
		ttl:    ttl,
	}
}

// ResultKey builds the cache key for a search request.
func ResultKey(query, country string, sorted bool) string {
	return cache.Key("stations", sanitizeKey(query), sanitizeKey(country), strconv.FormatBool(sorted))
}

// AllStationsKey is the fixed key of the unfiltered full listing.
func AllStationsKey(sorted bool) string {
	return cache.Key("stations", "*", "*", strconv.FormatBool(sorted))
}

// sanitizeKey replaces every byte outside [A-Za-z0-9] with '-'.
func sanitizeKey(s string) string {
	b := []byte(s)
	for i, c := range b {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			b[i] = '-'
		}
	}
	return string(b)
}

// Get returns the cached result for key. Backend failures and ids that no
// longer resolve in ds are reported as a miss.
func (c *ResultCache) Get(ctx context.Context, key string, ds *dataset.Dataset) ([]*station.Station, bool) {
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("Result cache read failed")
		}
		return nil, false
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		c.logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("Failed to decode cached result")
		return nil, false
	}

	stations := make([]*station.Station, 0, len(ids))
	for _, id := range ids {
		s := ds.Lookup(id)
		if s == nil {
			c.logger.WithContext(ctx).Debug().Str("key", key).Str("id", id).Msg("Cached result references unknown station")
			return nil, false
		}
		stations = append(stations, s)
	}
	return stations, true
}

// Put stores result under key. Failures are logged and otherwise ignored.
func (c *ResultCache) Put(ctx context.Context, key string, result []*station.Station) {
	ids := make([]string, len(result))
	for i, s := range result {
		ids[i] = s.ID
	}

	data, err := json.Marshal(ids)
	if err != nil {
		c.logger.WithContext(ctx).Warn().Err(err).Msg("Failed to encode result")
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("Result cache write failed")
	}
}

// Clear drops every memoized search result.
func (c *ResultCache) Clear(ctx context.Context) error {
	return c.client.DeleteByPrefix(ctx, resultPrefix)
}
