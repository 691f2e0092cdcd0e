package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iRail/stations/internal/observability"
	"github.com/iRail/stations/internal/station"
)

// Dataset formats.
const (
	FormatAuto   = "auto"
	FormatCSV    = "csv"
	FormatJSONLD = "jsonld"
	FormatSQL    = "sql"
)

// ErrNoSource is returned when no dataset location is configured.
var ErrNoSource = errors.New("no dataset source configured")

// Source reads raw station records from persistent storage.
type Source interface {
	// Name identifies the source; it is part of the dataset cache key.
	Name() string
	Read(ctx context.Context) ([]*station.Station, error)
}

// FileSource reads a CSV or JSON-LD file.
type FileSource struct {
	Path   string
	Format string
	logger *observability.Logger
}

// NewFileSource creates a file source. FormatAuto picks the format from the
// file extension.
func NewFileSource(path, format string, logger *observability.Logger) (*FileSource, error) {
	if path == "" {
		return nil, ErrNoSource
	}
	if format == "" || format == FormatAuto {
		format = detectFormat(path)
	}
	if format != FormatCSV && format != FormatJSONLD {
		return nil, fmt.Errorf("unsupported dataset format %q for %s", format, path)
	}
	return &FileSource{Path: path, Format: format, logger: logger}, nil
}

func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonld", ".json":
		return FormatJSONLD
	default:
		return FormatCSV
	}
}

// Name implements Source.
func (s *FileSource) Name() string {
	return s.Format + ":" + s.Path
}

// Read implements Source.
func (s *FileSource) Read(_ context.Context) ([]*station.Station, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	if s.Format == FormatJSONLD {
		return ParseJSONLD(f, s.logger)
	}
	return ParseCSV(f, s.logger)
}

// StationLister is the storage capability SQLSource needs.
type StationLister interface {
	List(ctx context.Context) ([]*station.Station, error)
}

// SQLSource reads the dataset from the stations table.
type SQLSource struct {
	driver string
	repo   StationLister
}

// NewSQLSource creates a source backed by repo. driver only labels the source.
func NewSQLSource(driver string, repo StationLister) *SQLSource {
	return &SQLSource{driver: driver, repo: repo}
}

// Name implements Source.
func (s *SQLSource) Name() string {
	return FormatSQL + ":" + s.driver
}

// Read implements Source.
func (s *SQLSource) Read(ctx context.Context) ([]*station.Station, error) {
	stations, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read stations table: %w", err)
	}
	return stations, nil
}
