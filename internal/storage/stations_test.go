package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iRail/stations/internal/station"
)

func fixtureStations() []*station.Station {
	return []*station.Station{
		{
			ID:   "http://irail.be/stations/NMBS/008892007",
			Name: "Gent-Sint-Pieters",
			AlternateNames: map[string]string{
				"fr": "Gand-Saint-Pierre",
				"en": "Ghent-Sint-Pieters",
			},
			CountryCode:   "be",
			Longitude:     3.710675,
			Latitude:      51.035896,
			TrafficScore:  800.5,
			TransferTime:  300,
			TafTapCode:    "BE892007",
			TelegraphCode: "FGSP",
		},
		{
			ID:           "http://irail.be/stations/NMBS/008821535",
			Name:         "Kapellen",
			CountryCode:  "be",
			TrafficScore: 40,
		},
	}
}

func openSQLite(t *testing.T) *StationRepository {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db))
	return NewStationRepository(db)
}

func TestStationRepository_ReplaceAllAndList(t *testing.T) {
	ctx := context.Background()
	repo := openSQLite(t)

	var calls []int
	require.NoError(t, repo.ReplaceAll(ctx, fixtureStations(), func(done int) { calls = append(calls, done) }))
	assert.Equal(t, []int{1, 2}, calls)

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "http://irail.be/stations/NMBS/008821535", got[0].ID)
	assert.Nil(t, got[0].AlternateNames)

	gsp := got[1]
	assert.Equal(t, fixtureStations()[0], gsp)
}

func TestStationRepository_ReplaceAllOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := openSQLite(t)

	require.NoError(t, repo.ReplaceAll(ctx, fixtureStations(), nil))
	require.NoError(t, repo.ReplaceAll(ctx, fixtureStations()[:1], nil))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStationRepository_Get(t *testing.T) {
	ctx := context.Background()
	repo := openSQLite(t)
	require.NoError(t, repo.ReplaceAll(ctx, fixtureStations(), nil))

	s, err := repo.Get(ctx, "http://irail.be/stations/NMBS/008892007")
	require.NoError(t, err)
	assert.Equal(t, "Gent-Sint-Pieters", s.Name)

	_, err = repo.Get(ctx, "http://irail.be/stations/NMBS/000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStationRepository_DuplicateRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := openSQLite(t)
	require.NoError(t, repo.ReplaceAll(ctx, fixtureStations(), nil))

	dup := append(fixtureStations(), fixtureStations()[0])
	assert.Error(t, repo.ReplaceAll(ctx, dup, nil))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
