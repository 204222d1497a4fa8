// Package routing adapts the Google Routes API to the RouteProvider port.
package routing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/ddk220-light/drive-conditions/internal/adapters/httpx"
	"github.com/ddk220-light/drive-conditions/internal/domain"
	"github.com/ddk220-light/drive-conditions/internal/geo"
	"github.com/ddk220-light/drive-conditions/internal/platform/obs"
	"github.com/ddk220-light/drive-conditions/internal/ports"
)

const fieldMask = "routes.polyline.encodedPolyline," +
	"routes.legs.steps.navigationInstruction," +
	"routes.legs.steps.startLocation," +
	"routes.legs.steps.endLocation," +
	"routes.legs.duration," +
	"routes.legs.distanceMeters," +
	"routes.description"

// GoogleRoutesProvider implements RouteProvider against the Routes API
// computeRoutes endpoint. Safe for concurrent use.
type GoogleRoutesProvider struct {
	client  *httpx.Client
	apiKey  string
	baseURL string
}

func NewGoogleRoutesProvider(apiKey string) (*GoogleRoutesProvider, error) {
	if apiKey == "" {
		return nil, errors.New("routing api key is empty")
	}
	return &GoogleRoutesProvider{
		client:  httpx.New(15 * time.Second),
		apiKey:  apiKey,
		baseURL: "https://routes.googleapis.com",
	}, nil
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type computeRoutesRequest struct {
	Origin            endpoint `json:"origin"`
	Destination       endpoint `json:"destination"`
	TravelMode        string   `json:"travelMode"`
	DepartureTime     string   `json:"departureTime"`
	RoutingPreference string   `json:"routingPreference"`
}

type endpoint struct {
	Address string `json:"address"`
}

type computeRoutesResponse struct {
	Routes []struct {
		Description string `json:"description"`
		Polyline    struct {
			EncodedPolyline string `json:"encodedPolyline"`
		} `json:"polyline"`
		Legs []struct {
			Duration       string `json:"duration"`
			DistanceMeters int    `json:"distanceMeters"`
			Steps          []struct {
				NavigationInstruction struct {
					Instructions string `json:"instructions"`
					Maneuver     string `json:"maneuver"`
				} `json:"navigationInstruction"`
				StartLocation struct {
					LatLng latLng `json:"latLng"`
				} `json:"startLocation"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// FetchRoute computes a traffic-aware driving route and decodes its polyline.
func (g *GoogleRoutesProvider) FetchRoute(ctx context.Context, origin, destination string, departure time.Time) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "routing.FetchRoute")(&err)

	body := computeRoutesRequest{
		Origin:            endpoint{Address: origin},
		Destination:       endpoint{Address: destination},
		TravelMode:        "DRIVE",
		DepartureTime:     departure.Format(time.RFC3339),
		RoutingPreference: "TRAFFIC_AWARE",
	}

	headers := map[string]string{
		"X-Goog-Api-Key":   g.apiKey,
		"X-Goog-FieldMask": fieldMask,
	}

	var decoded computeRoutesResponse
	url := g.baseURL + "/directions/v2:computeRoutes"
	if err := g.client.PostJSON(ctx, url, headers, body, &decoded); err != nil {
		return nil, fmt.Errorf("fetch route: %w", err)
	}

	if decoded.Error != nil {
		return nil, fmt.Errorf("fetch route: routing api error: %s", decoded.Error.Message)
	}
	if len(decoded.Routes) == 0 {
		return nil, fmt.Errorf("fetch route %q -> %q: %w", origin, destination, ports.ErrNoRoute)
	}

	r := decoded.Routes[0]

	route := &domain.Route{
		Summary:         r.Description,
		EncodedPolyline: r.Polyline.EncodedPolyline,
		Points:          geo.DecodePolyline(r.Polyline.EncodedPolyline),
	}

	for _, leg := range r.Legs {
		route.TotalDistanceMeters += leg.DistanceMeters
		route.TotalDurationSeconds += parseDurationSeconds(leg.Duration)
		for _, step := range leg.Steps {
			route.Steps = append(route.Steps, domain.RouteStep{
				Instruction: step.NavigationInstruction.Instructions,
				Maneuver:    step.NavigationInstruction.Maneuver,
				Start:       orb.Point{step.StartLocation.LatLng.Longitude, step.StartLocation.LatLng.Latitude},
			})
		}
	}

	if len(route.Points) == 0 {
		return nil, fmt.Errorf("fetch route %q -> %q: empty polyline: %w", origin, destination, ports.ErrNoRoute)
	}

	return route, nil
}

// parseDurationSeconds reads the Routes API "123s" duration format.
func parseDurationSeconds(s string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(s, "s"))
	if err != nil {
		return 0
	}
	return n
}
