// Package places adapts the Places nearby-search API to the PlaceProvider
// port, used once per rest-stop position.
package places

import (
	"context"
	"errors"
	"time"

	"github.com/paulmach/orb"

	"github.com/ddk220-light/drive-conditions/internal/adapters/httpx"
	"github.com/ddk220-light/drive-conditions/internal/domain"
	"github.com/ddk220-light/drive-conditions/internal/platform/obs"
)

// Search radius for rest stops: 5 miles in meters.
const nearbyRadiusMeters = 8046.72

// GooglePlacesProvider implements PlaceProvider via places:searchNearby.
type GooglePlacesProvider struct {
	client  *httpx.Client
	apiKey  string
	baseURL string
}

func NewGooglePlacesProvider(apiKey string) (*GooglePlacesProvider, error) {
	if apiKey == "" {
		return nil, errors.New("places api key is empty")
	}
	return &GooglePlacesProvider{
		client:  httpx.New(10 * time.Second),
		apiKey:  apiKey,
		baseURL: "https://places.googleapis.com",
	}, nil
}

type searchNearbyRequest struct {
	IncludedTypes       []string `json:"includedTypes"`
	MaxResultCount      int      `json:"maxResultCount"`
	LocationRestriction struct {
		Circle struct {
			Center struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"center"`
			Radius float64 `json:"radius"`
		} `json:"circle"`
	} `json:"locationRestriction"`
}

type searchNearbyResponse struct {
	Places []struct {
		DisplayName struct {
			Text string `json:"text"`
		} `json:"displayName"`
		Location struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"location"`
	} `json:"places"`
}

// FindNearby looks for the closest rest stop or gas station around a point.
// Returns nil when nothing is found.
func (g *GooglePlacesProvider) FindNearby(ctx context.Context, point orb.Point) (_ *domain.Place, err error) {
	defer obs.Time(ctx, "places.FindNearby")(&err)

	var body searchNearbyRequest
	body.IncludedTypes = []string{"rest_stop", "gas_station"}
	body.MaxResultCount = 1
	body.LocationRestriction.Circle.Center.Latitude = point.Lat()
	body.LocationRestriction.Circle.Center.Longitude = point.Lon()
	body.LocationRestriction.Circle.Radius = nearbyRadiusMeters

	headers := map[string]string{
		"X-Goog-Api-Key":   g.apiKey,
		"X-Goog-FieldMask": "places.displayName,places.location",
	}

	var resp searchNearbyResponse
	if err := g.client.PostJSON(ctx, g.baseURL+"/v1/places:searchNearby", headers, body, &resp); err != nil {
		return nil, err
	}

	if len(resp.Places) == 0 {
		return nil, nil
	}

	p := resp.Places[0]
	name := p.DisplayName.Text
	if name == "" {
		name = "Rest Stop"
	}

	return &domain.Place{
		Name:  name,
		Point: orb.Point{p.Location.Longitude, p.Location.Latitude},
	}, nil
}
