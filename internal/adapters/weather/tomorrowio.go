package weather

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/paulmach/orb"

	"github.com/ddk220-light/drive-conditions/internal/adapters/httpx"
	"github.com/ddk220-light/drive-conditions/internal/domain"
	"github.com/ddk220-light/drive-conditions/internal/platform/obs"
	"github.com/ddk220-light/drive-conditions/internal/units"
)

var precipTypeNames = map[int]string{
	0: "none",
	1: "rain",
	2: "snow",
	3: "freezing_rain",
	4: "sleet",
}

var weatherCodeNames = map[int]string{
	1000: "Clear", 1100: "Mostly Clear", 1101: "Partly Cloudy",
	1102: "Mostly Cloudy", 1001: "Cloudy", 2000: "Fog", 2100: "Light Fog",
	4000: "Drizzle", 4001: "Rain", 4200: "Light Rain", 4201: "Heavy Rain",
	5000: "Snow", 5001: "Flurries", 5100: "Light Snow", 5101: "Heavy Snow",
	6000: "Freezing Drizzle", 6001: "Freezing Rain", 6200: "Light Freezing Rain",
	6201: "Heavy Freezing Rain", 7000: "Ice Pellets", 7101: "Heavy Ice Pellets",
	7102: "Light Ice Pellets", 8000: "Thunderstorm",
}

// TomorrowClient implements RoadRiskProvider against the Tomorrow.io
// timelines endpoint, one point per call.
type TomorrowClient struct {
	client  *httpx.Client
	baseURL string
	apiKey  string
}

func NewTomorrowClient(apiKey string) (*TomorrowClient, error) {
	if apiKey == "" {
		return nil, errors.New("tomorrow.io api key is empty")
	}
	return &TomorrowClient{
		client:  httpx.New(10 * time.Second),
		baseURL: "https://api.tomorrow.io/v4/timelines",
		apiKey:  apiKey,
	}, nil
}

type tomorrowResponse struct {
	Data struct {
		Timelines []struct {
			Intervals []tomorrowInterval `json:"intervals"`
		} `json:"timelines"`
	} `json:"data"`
}

type tomorrowInterval struct {
	StartTime string `json:"startTime"`
	Values    struct {
		Temperature              float64  `json:"temperature"`
		PrecipitationProbability float64  `json:"precipitationProbability"`
		PrecipitationType        int      `json:"precipitationType"`
		WindSpeed                float64  `json:"windSpeed"`
		WindGust                 float64  `json:"windGust"`
		Visibility               *float64 `json:"visibility"`
		WeatherCode              int      `json:"weatherCode"`
		RoadRisk                 *float64 `json:"roadRisk"`
		RoadRiskLabel            string   `json:"roadRiskLabel"`
	} `json:"values"`
}

// FetchSeries fetches the hourly road-risk timeline for one point.
func (c *TomorrowClient) FetchSeries(ctx context.Context, point orb.Point) (_ []domain.RoadRiskSample, err error) {
	defer obs.Time(ctx, "tomorrow.FetchSeries")(&err)

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%.4f,%.4f", point.Lat(), point.Lon()))
	q.Set("fields", "temperature,precipitationProbability,precipitationType,"+
		"windSpeed,windGust,visibility,weatherCode")
	q.Set("timesteps", "1h")
	q.Set("units", "metric")
	q.Set("apikey", c.apiKey)

	var resp tomorrowResponse
	if err := c.client.GetJSON(ctx, c.baseURL+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("tomorrow.io fetch: %w", err)
	}

	if len(resp.Data.Timelines) == 0 {
		return nil, nil
	}

	intervals := resp.Data.Timelines[0].Intervals
	samples := make([]domain.RoadRiskSample, 0, len(intervals))
	for _, iv := range intervals {
		t, err := time.Parse(time.RFC3339, iv.StartTime)
		if err != nil {
			continue
		}

		precipType, ok := precipTypeNames[iv.Values.PrecipitationType]
		if !ok {
			precipType = "unknown"
		}
		text, ok := weatherCodeNames[iv.Values.WeatherCode]
		if !ok {
			text = "Unknown"
		}

		// Visibility caps at 16 km when the feed omits it.
		visKm := 16.0
		if iv.Values.Visibility != nil {
			visKm = *iv.Values.Visibility
		}

		samples = append(samples, domain.RoadRiskSample{
			Time:              t,
			TemperatureF:      units.CToF(iv.Values.Temperature),
			PrecipProbability: iv.Values.PrecipitationProbability,
			PrecipType:        precipType,
			WindSpeedMph:      units.KmhToMph(iv.Values.WindSpeed),
			WindGustsMph:      units.KmhToMph(iv.Values.WindGust),
			VisibilityMiles:   units.KmToMiles(visKm),
			WeatherText:       text,
			RoadRiskScore:     iv.Values.RoadRisk,
			RoadRiskLabel:     iv.Values.RoadRiskLabel,
		})
	}
	return samples, nil
}
