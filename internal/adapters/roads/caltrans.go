// Package roads adapts the Caltrans CWWP2 feeds (chain controls and RWIS
// pavement sensors) to the RoadConditionProvider port.
package roads

import (
	"context"
	"fmt"
	"time"

	"github.com/paulmach/orb"

	"github.com/ddk220-light/drive-conditions/internal/adapters/httpx"
	"github.com/ddk220-light/drive-conditions/internal/domain"
	"github.com/ddk220-light/drive-conditions/internal/platform/obs"
)

var (
	chainControlDistricts = []int{1, 2, 3, 6, 7, 8, 9, 10, 11}
	rwisDistricts         = []int{2, 3, 6, 8, 9, 10}
)

// CaltransClient implements RoadConditionProvider. District feeds are
// fetched sequentially; a failed district is skipped rather than failing
// the whole statewide picture.
type CaltransClient struct {
	client  *httpx.Client
	ccURL   string
	rwisURL string
}

func NewCaltransClient() *CaltransClient {
	return &CaltransClient{
		client:  httpx.New(10 * time.Second),
		ccURL:   "https://cwwp2.dot.ca.gov/data/d%d/cc/ccStatusD%d.json",
		rwisURL: "https://cwwp2.dot.ca.gov/data/d%d/rwis/rwisStatusD%d.json",
	}
}

type chainControlEntry struct {
	Highway       string   `json:"highway"`
	Direction     string   `json:"direction"`
	ControlStatus string   `json:"controlStatus"`
	BeginPostmile *float64 `json:"beginPostmile"`
	EndPostmile   *float64 `json:"endPostmile"`
	Description   string   `json:"description"`
}

type chainControlFeed struct {
	Data []chainControlEntry `json:"data"`
}

// FetchChainControls collects active chain-control entries across all
// districts.
func (c *CaltransClient) FetchChainControls(ctx context.Context) (_ []domain.ChainControl, err error) {
	defer obs.Time(ctx, "caltrans.FetchChainControls")(&err)

	var controls []domain.ChainControl
	for _, district := range chainControlDistricts {
		url := fmt.Sprintf(c.ccURL, district, district)

		var feed chainControlFeed
		if err := c.client.GetJSON(ctx, url, nil, &feed); err != nil {
			if ctx.Err() != nil {
				return controls, ctx.Err()
			}
			continue
		}

		for _, e := range feed.Data {
			if e.ControlStatus == "" {
				continue
			}
			controls = append(controls, domain.ChainControl{
				Highway:       e.Highway,
				Direction:     e.Direction,
				Level:         e.ControlStatus,
				BeginPostmile: e.BeginPostmile,
				EndPostmile:   e.EndPostmile,
				Description:   e.Description,
			})
		}
	}
	return controls, nil
}

type rwisEntry struct {
	Name     string `json:"name"`
	Location struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"location"`
	SurfaceStatus      string        `json:"surfaceStatus"`
	SurfaceTemperature measuredValue `json:"surfaceTemperature"`
	AirTemperature     measuredValue `json:"airTemperature"`
	Visibility         measuredValue `json:"visibility"`
	WindSpeed          measuredValue `json:"windSpeed"`
	PrecipitationType  string        `json:"precipitationType"`
}

type measuredValue struct {
	Value *float64 `json:"value"`
	Unit  string   `json:"unit"`
}

type rwisFeed struct {
	Data []rwisEntry `json:"data"`
}

// FetchStations collects RWIS pavement-sensor readings. Records without
// coordinates are skipped individually.
func (c *CaltransClient) FetchStations(ctx context.Context) (_ []domain.StationObservation, err error) {
	defer obs.Time(ctx, "caltrans.FetchStations")(&err)

	var stations []domain.StationObservation
	for _, district := range rwisDistricts {
		url := fmt.Sprintf(c.rwisURL, district, district)

		var feed rwisFeed
		if err := c.client.GetJSON(ctx, url, nil, &feed); err != nil {
			if ctx.Err() != nil {
				return stations, ctx.Err()
			}
			continue
		}

		for _, e := range feed.Data {
			if e.Location.Latitude == nil || e.Location.Longitude == nil {
				continue
			}
			stations = append(stations, domain.StationObservation{
				Name:            e.Name,
				Point:           orb.Point{*e.Location.Longitude, *e.Location.Latitude},
				PavementStatus:  e.SurfaceStatus,
				PavementTempF:   e.SurfaceTemperature.Value,
				AirTempF:        e.AirTemperature.Value,
				VisibilityMiles: e.Visibility.Value,
				WindSpeedMph:    e.WindSpeed.Value,
				PrecipType:      e.PrecipitationType,
			})
		}
	}
	return stations, nil
}
