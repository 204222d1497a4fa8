package api

import (
	"net/http"

	"github.com/ddk220-light/drive-conditions/internal/api/handlers"
	"github.com/ddk220-light/drive-conditions/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.Planner) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{Planner: planner}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/route-weather", tripHandler.Trip)

	return loggingMiddleware(mux)
}
