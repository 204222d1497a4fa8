package weather

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/ddk220-light/drive-conditions/internal/adapters/httpx"
	"github.com/ddk220-light/drive-conditions/internal/domain"
	"github.com/ddk220-light/drive-conditions/internal/platform/obs"
	"github.com/ddk220-light/drive-conditions/internal/units"
)

const (
	openMeteoHourlyVars = "temperature_2m,precipitation,snowfall,snow_depth," +
		"visibility,wind_speed_10m,wind_gusts_10m,wind_direction_10m," +
		"freezing_level_height,weather_code"
	openMeteoDailyVars = "sunrise,sunset"
)

// OpenMeteoClient implements NumericForecastProvider. A single batched call
// covers every waypoint; responses are normalized to imperial units at parse
// time.
type OpenMeteoClient struct {
	client       *httpx.Client
	baseURL      string
	timezone     string
	loc          *time.Location
	forecastDays int
}

func NewOpenMeteoClient(timezone string) (*OpenMeteoClient, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("open-meteo client: load timezone %q: %w", timezone, err)
	}
	return &OpenMeteoClient{
		client:       httpx.New(10 * time.Second),
		baseURL:      "https://api.open-meteo.com/v1/forecast",
		timezone:     timezone,
		loc:          loc,
		forecastDays: 7,
	}, nil
}

type openMeteoResponse struct {
	Hourly struct {
		Time                []string  `json:"time"`
		Temperature2m       []float64 `json:"temperature_2m"`
		Precipitation       []float64 `json:"precipitation"`
		Snowfall            []float64 `json:"snowfall"`
		SnowDepth           []float64 `json:"snow_depth"`
		Visibility          []float64 `json:"visibility"`
		WindSpeed10m        []float64 `json:"wind_speed_10m"`
		WindGusts10m        []float64 `json:"wind_gusts_10m"`
		WindDirection10m    []float64 `json:"wind_direction_10m"`
		FreezingLevelHeight []float64 `json:"freezing_level_height"`
		WeatherCode         []int     `json:"weather_code"`
	} `json:"hourly"`
	Daily struct {
		Time    []string `json:"time"`
		Sunrise []string `json:"sunrise"`
		Sunset  []string `json:"sunset"`
	} `json:"daily"`
}

// FetchSeries fetches hourly forecasts for every point in one request.
// The result slice is index-aligned with points.
func (c *OpenMeteoClient) FetchSeries(ctx context.Context, points []orb.Point) (_ []domain.NumericSeries, err error) {
	defer obs.Time(ctx, "openmeteo.FetchSeries")(&err)

	if len(points) == 0 {
		return nil, nil
	}

	lats := make([]string, 0, len(points))
	lons := make([]string, 0, len(points))
	for _, p := range points {
		lats = append(lats, fmt.Sprintf("%.4f", p.Lat()))
		lons = append(lons, fmt.Sprintf("%.4f", p.Lon()))
	}

	q := url.Values{}
	q.Set("latitude", strings.Join(lats, ","))
	q.Set("longitude", strings.Join(lons, ","))
	q.Set("hourly", openMeteoHourlyVars)
	q.Set("daily", openMeteoDailyVars)
	q.Set("forecast_days", fmt.Sprintf("%d", c.forecastDays))
	q.Set("temperature_unit", "celsius")
	q.Set("wind_speed_unit", "kmh")
	q.Set("timezone", c.timezone)

	endpoint := c.baseURL + "?" + q.Encode()

	// Multi-coordinate requests return a JSON array; a single coordinate
	// returns a bare object.
	var out []domain.NumericSeries
	if len(points) == 1 {
		var resp openMeteoResponse
		if err := c.client.GetJSON(ctx, endpoint, nil, &resp); err != nil {
			return nil, fmt.Errorf("open-meteo fetch: %w", err)
		}
		out = append(out, c.parseSeries(resp))
		return out, nil
	}

	var resps []openMeteoResponse
	if err := c.client.GetJSON(ctx, endpoint, nil, &resps); err != nil {
		return nil, fmt.Errorf("open-meteo fetch: %w", err)
	}
	if len(resps) != len(points) {
		return nil, fmt.Errorf("open-meteo fetch: got %d series for %d points", len(resps), len(points))
	}
	for _, resp := range resps {
		out = append(out, c.parseSeries(resp))
	}
	return out, nil
}

func (c *OpenMeteoClient) parseSeries(resp openMeteoResponse) domain.NumericSeries {
	h := resp.Hourly
	n := len(h.Time)

	at := func(vals []float64, i int) float64 {
		if i < len(vals) {
			return vals[i]
		}
		return 0
	}

	series := domain.NumericSeries{Samples: make([]domain.NumericSample, 0, n)}
	for i := 0; i < n; i++ {
		t, err := time.ParseInLocation("2006-01-02T15:04", h.Time[i], c.loc)
		if err != nil {
			continue
		}
		code := 0
		if i < len(h.WeatherCode) {
			code = h.WeatherCode[i]
		}
		series.Samples = append(series.Samples, domain.NumericSample{
			Time:             t,
			TemperatureF:     units.CToF(at(h.Temperature2m, i)),
			PrecipMmHr:       at(h.Precipitation, i),
			SnowfallCmHr:     at(h.Snowfall, i),
			SnowDepthIn:      units.CmToIn(at(h.SnowDepth, i)),
			VisibilityMiles:  units.MToMiles(at(h.Visibility, i)),
			WindSpeedMph:     units.KmhToMph(at(h.WindSpeed10m, i)),
			WindGustsMph:     units.KmhToMph(at(h.WindGusts10m, i)),
			WindDirectionDeg: at(h.WindDirection10m, i),
			FreezingLevelFt:  units.MToFt(at(h.FreezingLevelHeight, i)),
			WeatherCode:      code,
		})
	}

	d := resp.Daily
	for i := 0; i < len(d.Time); i++ {
		if i >= len(d.Sunrise) || i >= len(d.Sunset) {
			break
		}
		sunrise, err1 := time.ParseInLocation("2006-01-02T15:04", d.Sunrise[i], c.loc)
		sunset, err2 := time.ParseInLocation("2006-01-02T15:04", d.Sunset[i], c.loc)
		if err1 != nil || err2 != nil {
			continue
		}
		series.Days = append(series.Days, domain.SunDay{
			Date:    d.Time[i],
			Sunrise: sunrise,
			Sunset:  sunset,
		})
	}

	return series
}
