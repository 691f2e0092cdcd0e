package dataset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iRail/stations/internal/cache"
	"github.com/iRail/stations/internal/observability"
	"github.com/iRail/stations/internal/station"
)

type countingSource struct {
	stations []*station.Station
	err      error
	reads    atomic.Int32
}

func (s *countingSource) Name() string { return "test:counting" }

func (s *countingSource) Read(context.Context) ([]*station.Station, error) {
	s.reads.Add(1)
	return s.stations, s.err
}

func sampleStations() []*station.Station {
	return []*station.Station{
		{ID: "http://irail.be/stations/NMBS/008821535", Name: "Kapellen", CountryCode: "be", TrafficScore: 40},
		{ID: "http://irail.be/stations/NMBS/008200518", Name: "Capellen", CountryCode: "lu", TrafficScore: 10},
	}
}

func TestLoader_LoadsOnce(t *testing.T) {
	src := &countingSource{stations: sampleStations()}
	l := NewLoader(src, nil, observability.NopLogger())
	assert.False(t, l.Ready())

	var wg sync.WaitGroup
	results := make([]*Dataset, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds, err := l.Load(context.Background())
			assert.NoError(t, err)
			results[i] = ds
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), src.reads.Load())
	for _, ds := range results {
		assert.Same(t, results[0], ds)
	}
	assert.True(t, l.Ready())
}

func TestLoader_ErrorIsSticky(t *testing.T) {
	boom := errors.New("disk on fire")
	src := &countingSource{err: boom}
	l := NewLoader(src, nil, observability.NopLogger())

	_, err := l.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = l.Load(context.Background())
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, int32(1), src.reads.Load())
	assert.False(t, l.Ready())
}

func TestLoader_EmptySource(t *testing.T) {
	l := NewLoader(&countingSource{}, nil, observability.NopLogger())
	_, err := l.Load(context.Background())
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoader_UsesCache(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryClient()

	first := &countingSource{stations: sampleStations()}
	_, err := NewLoader(first, mem, observability.NopLogger()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), first.reads.Load())

	_, err = mem.Get(ctx, cache.Key("dataset", "test:counting"))
	require.NoError(t, err)

	second := &countingSource{stations: sampleStations()}
	ds, err := NewLoader(second, mem, observability.NopLogger()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(0), second.reads.Load())
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, "Kapellen", ds.Stations()[0].Name)
	assert.Equal(t, "lu", ds.Get("008200518").CountryCode)
}

func TestLoader_IgnoresCorruptCache(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryClient()
	require.NoError(t, mem.Set(ctx, cache.Key("dataset", "test:counting"), []byte("not json"), 0))

	src := &countingSource{stations: sampleStations()}
	ds, err := NewLoader(src, mem, observability.NopLogger()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.reads.Load())
	assert.Equal(t, 2, ds.Len())
}

type ctxSource struct {
	countingSource
}

func (s *ctxSource) Read(ctx context.Context) ([]*station.Station, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.countingSource.Read(ctx)
}

func TestLoader_FirstCallerCancelled(t *testing.T) {
	src := &ctxSource{countingSource{stations: sampleStations()}}
	l := NewLoader(src, nil, observability.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ds, err := l.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())

	ds, err = l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, int32(1), src.reads.Load())
}
