package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ddk220-light/drive-conditions/internal/api/dto"
	"github.com/ddk220-light/drive-conditions/internal/ports"
	"github.com/ddk220-light/drive-conditions/internal/services"
)

// Departures without a zone are read as Pacific standard time.
var defaultZone = time.FixedZone("UTC-8", -8*60*60)

// parseDeparture accepts RFC 3339 or a zone-less local timestamp.
func parseDeparture(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, defaultZone); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", raw, defaultZone)
}

type TripHandler struct {
	Planner *services.Planner
}

// Trip answers GET /api/route-weather: resolve the route, score conditions
// at every waypoint, and precompute the hourly departure slots.
func (h *TripHandler) Trip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()

	origin := strings.TrimSpace(q.Get("origin"))
	destination := strings.TrimSpace(q.Get("destination"))
	if origin == "" || destination == "" {
		writeError(w, r, http.StatusBadRequest, "origin and destination are required")
		return
	}

	rawDeparture := strings.TrimSpace(q.Get("departure"))
	if rawDeparture == "" {
		writeError(w, r, http.StatusBadRequest, "departure is required")
		return
	}
	departure, err := parseDeparture(rawDeparture)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "departure must be an ISO-8601 timestamp")
		return
	}

	req := services.TripRequest{
		Origin:      origin,
		Destination: destination,
		Departure:   departure,
	}

	if raw := q.Get("speed_factor"); raw != "" {
		factor, err := strconv.ParseFloat(raw, 64)
		if err != nil || factor <= 0 || factor > 2 {
			writeError(w, r, http.StatusBadRequest, "speed_factor must be in (0, 2]")
			return
		}
		req.SpeedFactor = factor
	}
	if raw := q.Get("rest_interval"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 1 {
			writeError(w, r, http.StatusBadRequest, "rest_interval must be a positive integer of minutes")
			return
		}
		req.RestInterval = time.Duration(minutes) * time.Minute
	}
	if raw := q.Get("rest_duration"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 1 {
			writeError(w, r, http.StatusBadRequest, "rest_duration must be a positive integer of minutes")
			return
		}
		req.RestDuration = time.Duration(minutes) * time.Minute
	}

	result, err := h.Planner.PlanTrip(r.Context(), req)
	if err != nil {
		if errors.Is(err, ports.ErrNoRoute) {
			writeError(w, r, http.StatusBadGateway, "no route found between origin and destination")
			return
		}
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "routing provider unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TripFrom(result))
}
