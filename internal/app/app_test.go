package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iRail/stations/internal/cache"
	"github.com/iRail/stations/internal/config"
	"github.com/iRail/stations/internal/dataset"
	"github.com/iRail/stations/internal/observability"
	"github.com/iRail/stations/internal/storage"
)

const fixturePath = "../dataset/testdata/stations.csv"

func TestNew_FileDataset(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	cfg.Dataset.Path = fixturePath

	a, err := New(ctx, cfg, observability.NopLogger())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.DB)
	got, err := a.Engine.Search(ctx, "Brussels South", "", false)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "Brussel-Zuid/Bruxelles-Midi", got[0].Name)
	assert.True(t, a.Loader.Ready())
}

func TestNew_SQLDataset(t *testing.T) {
	ctx := context.Background()
	logger := observability.NopLogger()

	src, err := dataset.NewFileSource(fixturePath, dataset.FormatAuto, logger)
	require.NoError(t, err)
	stations, err := src.Read(ctx)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Dataset.Format = dataset.FormatSQL
	cfg.Database.DSN = filepath.Join(t.TempDir(), "stations.db")
	cfg.Cache.Driver = cache.DriverLRU

	seed := &App{Config: cfg, Logger: logger}
	db, err := seed.OpenDatabase(ctx)
	require.NoError(t, err)
	require.NoError(t, storage.NewStationRepository(db).ReplaceAll(ctx, stations, nil))
	require.NoError(t, db.Close())

	a, err := New(ctx, cfg, logger)
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.DB)
	s, err := a.Engine.Get(ctx, "BE.NMBS.008892007")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Gent-Sint-Pieters", s.Name)

	all, err := a.Engine.Stations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(stations))
	assert.Equal(t, "Brussel-Zuid/Bruxelles-Midi", all[0].Name)
}

func TestNew_Errors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Cache.Driver = "memcached"
	_, err := New(context.Background(), cfg, observability.NopLogger())
	require.Error(t, err)

	cfg = config.DefaultConfig()
	cfg.Dataset.Path = ""
	_, err = New(context.Background(), cfg, observability.NopLogger())
	assert.ErrorIs(t, err, dataset.ErrNoSource)
}
