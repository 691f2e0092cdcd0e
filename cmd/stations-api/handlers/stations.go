// Package handlers provides HTTP handlers for the stations API.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iRail/stations/internal/dataset"
	"github.com/iRail/stations/internal/observability"
	"github.com/iRail/stations/internal/station"
)

// CollectionID identifies the full station list in JSON-LD responses.
const CollectionID = "http://irail.be/stations/NMBS"

// Searcher is the engine capability the handlers need.
type Searcher interface {
	Search(ctx context.Context, query, country string, sorted bool) ([]*station.Station, error)
	Get(ctx context.Context, id string) (*station.Station, error)
	ClearCache(ctx context.Context) error
}

// StationsHandler serves station search and lookup.
type StationsHandler struct {
	logger *observability.Logger
	engine Searcher
}

// NewStationsHandler creates a new stations handler.
func NewStationsHandler(logger *observability.Logger, engine Searcher) *StationsHandler {
	return &StationsHandler{
		logger: logger,
		engine: engine,
	}
}

// NodeResponseDTO is a single station with its JSON-LD context.
type NodeResponseDTO struct {
	Context map[string]any `json:"@context"`
	dataset.Node
}

type searchParams struct {
	query   string
	country string
	sorted  bool
}

func parseSearchParams(r *http.Request) (searchParams, error) {
	q := r.URL.Query()
	p := searchParams{query: q.Get("q"), country: q.Get("country")}
	if v := q.Get("sorted"); v != "" {
		sorted, err := strconv.ParseBool(v)
		if err != nil {
			return p, err
		}
		p.sorted = sorted
	}
	return p, nil
}

func (h *StationsHandler) search(w http.ResponseWriter, r *http.Request) ([]*station.Station, searchParams, bool) {
	p, err := parseSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sorted parameter", err.Error())
		return nil, p, false
	}

	result, err := h.engine.Search(r.Context(), p.query, p.country, p.sorted)
	if err != nil {
		h.logger.WithContext(r.Context()).Error().Err(err).Str("query", p.query).Msg("Station search failed")
		writeError(w, http.StatusServiceUnavailable, "station dataset unavailable", "")
		return nil, p, false
	}
	return result, p, true
}

// Search handles GET /stations.
func (h *StationsHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, p, ok := h.search(w, r)
	if !ok {
		return
	}

	id := CollectionID
	if p.query != "" {
		id += "?q=" + url.QueryEscape(p.query)
	}

	w.Header().Set("Content-Type", "application/ld+json")
	if err := json.NewEncoder(w).Encode(dataset.NewDocument(id, result)); err != nil {
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to encode response")
	}
}

// GeoJSON handles GET /stations.geojson.
func (h *StationsHandler) GeoJSON(w http.ResponseWriter, r *http.Request) {
	result, _, ok := h.search(w, r)
	if !ok {
		return
	}

	data, err := dataset.NewFeatureCollection(result).MarshalJSON()
	if err != nil {
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to encode feature collection")
		writeError(w, http.StatusInternalServerError, "encoding failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(data)
}

// Get handles GET /stations/{id}.
func (h *StationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid station id", chi.URLParam(r, "id"))
		return
	}

	s, err := h.engine.Get(r.Context(), id)
	if err != nil {
		h.logger.WithContext(r.Context()).Error().Err(err).Str("id", id).Msg("Station lookup failed")
		writeError(w, http.StatusServiceUnavailable, "station dataset unavailable", "")
		return
	}
	if s == nil {
		writeError(w, http.StatusNotFound, "station not found", id)
		return
	}

	w.Header().Set("Content-Type", "application/ld+json")
	json.NewEncoder(w).Encode(NodeResponseDTO{Context: dataset.Context, Node: dataset.NewNode(s)})
}

// ClearCache handles POST /cache/clear.
func (h *StationsHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.ClearCache(r.Context()); err != nil {
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("Cache clear failed")
		writeError(w, http.StatusInternalServerError, "cache clear failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	json.NewEncoder(w).Encode(resp)
}
