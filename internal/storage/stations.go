package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iRail/stations/internal/station"
)

const stationColumns = `uri, name, alt_nl, alt_fr, alt_de, alt_en, country_code,
	longitude, latitude, avg_stop_times, transfer_time, taf_tap_code, telegraph_code`

// StationRepository reads and writes the stations table.
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository creates a new station repository.
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanStation(row scanner) (*station.Station, error) {
	s := &station.Station{}
	var nl, fr, de, en string
	err := row.Scan(
		&s.ID, &s.Name, &nl, &fr, &de, &en, &s.CountryCode,
		&s.Longitude, &s.Latitude, &s.TrafficScore, &s.TransferTime,
		&s.TafTapCode, &s.TelegraphCode,
	)
	if err != nil {
		return nil, err
	}

	for locale, v := range map[string]string{"nl": nl, "fr": fr, "de": de, "en": en} {
		if v == "" {
			continue
		}
		if s.AlternateNames == nil {
			s.AlternateNames = make(map[string]string, 4)
		}
		s.AlternateNames[locale] = v
	}
	return s, nil
}

// List returns every stored station ordered by uri.
func (r *StationRepository) List(ctx context.Context) ([]*station.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations ORDER BY uri`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	defer rows.Close()

	var stations []*station.Station
	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

// Get retrieves a station by URI.
func (r *StationRepository) Get(ctx context.Context, uri string) (*station.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations WHERE uri = $1`
	s, err := scanStation(r.db.QueryRowContext(ctx, query, uri))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// ReplaceAll swaps the stored dataset for stations in one transaction.
// progress, if set, is called with the number of rows written so far.
func (r *StationRepository) ReplaceAll(ctx context.Context, stations []*station.Station, progress func(done int)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stations`); err != nil {
		return fmt.Errorf("clear stations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stations (`+stationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range stations {
		_, err := stmt.ExecContext(ctx,
			s.ID, s.Name,
			s.AlternateNames["nl"], s.AlternateNames["fr"], s.AlternateNames["de"], s.AlternateNames["en"],
			s.CountryCode, s.Longitude, s.Latitude, s.TrafficScore, s.TransferTime,
			s.TafTapCode, s.TelegraphCode,
		)
		if err != nil {
			return fmt.Errorf("insert station %s: %w", s.ID, err)
		}
		if progress != nil {
			progress(i + 1)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
