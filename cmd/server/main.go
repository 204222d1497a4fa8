package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ddk220-light/drive-conditions/internal/adapters/places"
	"github.com/ddk220-light/drive-conditions/internal/adapters/roads"
	"github.com/ddk220-light/drive-conditions/internal/adapters/routing"
	"github.com/ddk220-light/drive-conditions/internal/adapters/weather"
	"github.com/ddk220-light/drive-conditions/internal/api"
	"github.com/ddk220-light/drive-conditions/internal/config"
	"github.com/ddk220-light/drive-conditions/internal/services"
)

// main is the application composition root.
// It wires concrete feed adapters behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	timezone := config.Get("FORECAST_TIMEZONE", "America/Los_Angeles")
	userAgent := config.Get("NWS_USER_AGENT", "drive-conditions (contact@example.com)")

	googleKey := os.Getenv("GOOGLE_API_KEY")
	if strings.TrimSpace(googleKey) == "" {
		log.Fatal("GOOGLE_API_KEY is required")
	}
	tomorrowKey := os.Getenv("TOMORROW_API_KEY")
	if strings.TrimSpace(tomorrowKey) == "" {
		log.Fatal("TOMORROW_API_KEY is required")
	}

	routeProvider, err := routing.NewGoogleRoutesProvider(googleKey)
	if err != nil {
		log.Fatal(err)
	}
	numeric, err := weather.NewOpenMeteoClient(timezone)
	if err != nil {
		log.Fatal(err)
	}
	roadRisk, err := weather.NewTomorrowClient(tomorrowKey)
	if err != nil {
		log.Fatal(err)
	}
	placeProvider, err := places.NewGooglePlacesProvider(googleKey)
	if err != nil {
		log.Fatal(err)
	}

	planner := services.NewPlanner(
		routeProvider,
		numeric,
		roadRisk,
		weather.NewNWSClient(userAgent),
		roads.NewCaltransClient(),
		placeProvider,
	)
	router := api.NewRouter(planner)

	// Timeouts are tuned for multi-feed fan-out (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
