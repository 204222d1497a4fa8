// Package weather adapts the three forecast feeds (numeric, road-risk,
// advisory) to their ports, converting loose payloads into typed records at
// the boundary.
package weather

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/ddk220-light/drive-conditions/internal/adapters/httpx"
	"github.com/ddk220-light/drive-conditions/internal/domain"
	"github.com/ddk220-light/drive-conditions/internal/platform/obs"
)

var windSpeedRe = regexp.MustCompile(`(\d+)`)

// NWSClient implements AdvisoryProvider against the National Weather
// Service API: hourly forecast periods plus active alerts per point.
type NWSClient struct {
	client    *httpx.Client
	baseURL   string
	userAgent string
}

func NewNWSClient(userAgent string) *NWSClient {
	return &NWSClient{
		client:    httpx.New(10 * time.Second),
		baseURL:   "https://api.weather.gov",
		userAgent: userAgent,
	}
}

func (c *NWSClient) headers() map[string]string {
	return map[string]string{
		"User-Agent": c.userAgent,
		"Accept":     "application/geo+json",
	}
}

type nwsPointsResponse struct {
	Properties struct {
		ForecastHourly string `json:"forecastHourly"`
	} `json:"properties"`
}

type nwsForecastResponse struct {
	Properties struct {
		Periods []nwsPeriod `json:"periods"`
	} `json:"properties"`
}

type nwsPeriod struct {
	StartTime                  string `json:"startTime"`
	EndTime                    string `json:"endTime"`
	Temperature                float64 `json:"temperature"`
	WindSpeed                  string `json:"windSpeed"`
	WindDirection              string `json:"windDirection"`
	ShortForecast              string `json:"shortForecast"`
	ProbabilityOfPrecipitation struct {
		Value *float64 `json:"value"`
	} `json:"probabilityOfPrecipitation"`
}

// FetchForecast resolves the gridpoint for a location, then fetches its
// hourly forecast periods. Two-step: /points -> forecastHourly.
func (c *NWSClient) FetchForecast(ctx context.Context, point orb.Point) (_ []domain.AdvisoryPeriod, err error) {
	defer obs.Time(ctx, "nws.FetchForecast")(&err)

	pointsURL := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, point.Lat(), point.Lon())

	var pts nwsPointsResponse
	if err := c.client.GetJSON(ctx, pointsURL, c.headers(), &pts); err != nil {
		return nil, fmt.Errorf("nws points lookup: %w", err)
	}
	if pts.Properties.ForecastHourly == "" {
		return nil, fmt.Errorf("nws points lookup: no hourly forecast url for %.4f,%.4f", point.Lat(), point.Lon())
	}

	var fc nwsForecastResponse
	if err := c.client.GetJSON(ctx, pts.Properties.ForecastHourly, c.headers(), &fc); err != nil {
		return nil, fmt.Errorf("nws hourly forecast: %w", err)
	}

	periods := make([]domain.AdvisoryPeriod, 0, len(fc.Properties.Periods))
	for _, p := range fc.Properties.Periods {
		parsed, ok := parsePeriod(p)
		if !ok {
			continue
		}
		periods = append(periods, parsed)
	}
	return periods, nil
}

func parsePeriod(p nwsPeriod) (domain.AdvisoryPeriod, bool) {
	start, err := time.Parse(time.RFC3339, p.StartTime)
	if err != nil {
		return domain.AdvisoryPeriod{}, false
	}
	end, err := time.Parse(time.RFC3339, p.EndTime)
	if err != nil {
		end = start.Add(time.Hour)
	}

	wind := 0.0
	if m := windSpeedRe.FindString(p.WindSpeed); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			wind = v
		}
	}

	prob := 0.0
	if p.ProbabilityOfPrecipitation.Value != nil {
		prob = *p.ProbabilityOfPrecipitation.Value
	}

	return domain.AdvisoryPeriod{
		Start:             start,
		End:               end,
		TemperatureF:      p.Temperature,
		WindSpeedMph:      wind,
		WindDirection:     p.WindDirection,
		ConditionText:     p.ShortForecast,
		PrecipProbability: prob,
	}, true
}

type nwsAlertsResponse struct {
	Features []struct {
		Properties struct {
			Event       string `json:"event"`
			Headline    string `json:"headline"`
			Severity    string `json:"severity"`
			Description string `json:"description"`
			Onset       string `json:"onset"`
			Expires     string `json:"expires"`
		} `json:"properties"`
	} `json:"features"`
}

// FetchAlerts fetches active alerts covering a point.
func (c *NWSClient) FetchAlerts(ctx context.Context, point orb.Point) (_ []domain.Advisory, err error) {
	defer obs.Time(ctx, "nws.FetchAlerts")(&err)

	url := fmt.Sprintf("%s/alerts/active?point=%.4f,%.4f", c.baseURL, point.Lat(), point.Lon())

	var resp nwsAlertsResponse
	if err := c.client.GetJSON(ctx, url, c.headers(), &resp); err != nil {
		return nil, fmt.Errorf("nws alerts: %w", err)
	}

	alerts := make([]domain.Advisory, 0, len(resp.Features))
	for _, f := range resp.Features {
		alerts = append(alerts, domain.Advisory{
			Event:       f.Properties.Event,
			Headline:    f.Properties.Headline,
			Severity:    strings.ToLower(f.Properties.Severity),
			Description: f.Properties.Description,
			Onset:       parseOptionalTime(f.Properties.Onset),
			Expires:     parseOptionalTime(f.Properties.Expires),
		})
	}
	return alerts, nil
}

func parseOptionalTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
