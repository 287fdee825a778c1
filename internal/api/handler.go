package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/coastwatch/tidecast/internal/forecast"
	"github.com/coastwatch/tidecast/internal/station"
)

const defaultStationLimit = 5

type Handler struct {
	forecasts *forecast.Service
	resolver  *station.Resolver
}

// NewHandler builds the HTTP handler. The resolver may be nil when the
// station catalog failed to load; the stations endpoint then reports a
// service error while tide queries keep working in simulated mode.
func NewHandler(forecasts *forecast.Service, resolver *station.Resolver) *Handler {
	return &Handler{
		forecasts: forecasts,
		resolver:  resolver,
	}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/v1/tides", h.handleTides).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/stations", h.handleStations).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
}

func (h *Handler) handleTides(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, "missing query parameter q", http.StatusBadRequest)
		return
	}

	log.Info().Str("query", query).Msg("Handling tides request")
	snapshot := h.forecasts.Forecast(r.Context(), query)
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleStations(w http.ResponseWriter, r *http.Request) {
	if h.resolver == nil {
		writeError(w, "station catalog unavailable", http.StatusServiceUnavailable)
		return
	}

	lat, lon, err := parseCoordinates(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit := defaultStationLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	writeJSON(w, http.StatusOK, NewStationsResponse(h.resolver.Nearest(lat, lon, limit)))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{ResponseType: "ok"})
}

type invalidCoordinatesError struct{}

func (invalidCoordinatesError) Error() string {
	return "invalid coordinates"
}

func parseCoordinates(r *http.Request) (float64, float64, error) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		return 0, 0, invalidCoordinatesError{}
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		return 0, 0, invalidCoordinatesError{}
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, invalidCoordinatesError{}
	}
	return lat, lon, nil
}
