package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddk220-light/drive-conditions/internal/adapters/places"
	"github.com/ddk220-light/drive-conditions/internal/adapters/roads"
	"github.com/ddk220-light/drive-conditions/internal/adapters/routing"
	"github.com/ddk220-light/drive-conditions/internal/adapters/weather"
	"github.com/ddk220-light/drive-conditions/internal/domain"
	"github.com/ddk220-light/drive-conditions/internal/ports"
)

func testPlanner(route *domain.Route) (*Planner, *weather.MockRoadRiskProvider) {
	departure := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

	var samples []domain.NumericSample
	var riskSamples []domain.RoadRiskSample
	for h := -49; h <= 49; h++ {
		at := departure.Add(time.Duration(h) * time.Hour)
		samples = append(samples, domain.NumericSample{
			Time: at, TemperatureF: 40, VisibilityMiles: 10, WindSpeedMph: 5,
		})
		riskSamples = append(riskSamples, domain.RoadRiskSample{
			Time: at, TemperatureF: 41, PrecipType: "none", VisibilityMiles: 9,
		})
	}

	roadRisk := &weather.MockRoadRiskProvider{Samples: riskSamples}

	p := NewPlanner(
		&routing.MockRouteProvider{Route: route},
		&weather.MockNumericProvider{Series: domain.NumericSeries{Samples: samples}},
		roadRisk,
		&weather.MockAdvisoryProvider{},
		&roads.MockRoadProvider{},
		&places.MockPlaceProvider{},
	)
	p.now = func() time.Time { return departure.Add(-72 * time.Hour) }
	return p, roadRisk
}

func TestPlanTrip(t *testing.T) {
	route := testRoute("I-80 E", 69, 90*time.Minute)
	planner, roadRisk := testPlanner(route)

	departure := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	result, err := planner.PlanTrip(context.Background(), TripRequest{
		Origin:      "Sacramento, CA",
		Destination: "Reno, NV",
		Departure:   departure,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Waypoints)
	assert.Len(t, result.Window, 97)
	assert.Len(t, result.Slots, 97)
	assert.Equal(t, departure, result.Requested.Departure)
	assert.Empty(t, result.RestPlans, "90 minutes of driving needs no rest")

	assert.Equal(t, []string{SourceNumeric, SourceRoadRisk}, result.Sources)

	// Road-risk sampling is capped regardless of waypoint count.
	assert.LessOrEqual(t, roadRisk.Calls.Load(), int64(roadRiskSampleLimit))

	first := result.Requested.Entries[0].Segment
	require.NotNil(t, first)
	require.NotNil(t, first.Weather.TemperatureF)
	assert.InDelta(t, 40.5, *first.Weather.TemperatureF, 1e-9)
}

func TestPlanTripRestStops(t *testing.T) {
	route := testRoute("I-80 E", 69, 7*time.Hour)
	planner, _ := testPlanner(route)

	departure := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	result, err := planner.PlanTrip(context.Background(), TripRequest{
		Origin:       "Sacramento, CA",
		Destination:  "Reno, NV",
		Departure:    departure,
		RestInterval: 3 * time.Hour,
		RestDuration: 30 * time.Minute,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.RestPlans)

	for _, plan := range result.RestPlans {
		assert.Contains(t, plan.PlaceName, "Rest stop (mile", "no nearby place resolves to the fallback label")
	}

	// Every slot carries the same fixed rest positions.
	var restCount int
	for _, e := range result.Requested.Entries {
		if e.Rest != nil {
			restCount++
		}
	}
	assert.Equal(t, len(result.RestPlans), restCount)

	for _, slot := range result.Slots[:3] {
		var n int
		for _, e := range slot.Entries {
			if e.Rest != nil {
				n++
			}
		}
		assert.Equal(t, restCount, n)
	}
}

func TestTripRequestDefaults(t *testing.T) {
	req := TripRequest{
		Origin:      "Sacramento, CA",
		Destination: "Reno, NV",
		Departure:   time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC),
	}
	req.applyDefaults()

	assert.Equal(t, 1.0, req.SpeedFactor)
	assert.Equal(t, 150*time.Minute, req.RestInterval)
	assert.Equal(t, 20*time.Minute, req.RestDuration)
}

func TestPlanTripRouteFailureIsFatal(t *testing.T) {
	planner := NewPlanner(
		&routing.MockRouteProvider{Err: ports.ErrNoRoute},
		&weather.MockNumericProvider{},
		&weather.MockRoadRiskProvider{},
		&weather.MockAdvisoryProvider{},
		&roads.MockRoadProvider{},
		&places.MockPlaceProvider{},
	)

	_, err := planner.PlanTrip(context.Background(), TripRequest{
		Origin: "A", Destination: "B", Departure: time.Now(),
	})
	assert.ErrorIs(t, err, ports.ErrNoRoute)
}

func TestPlanTripDegradesOnFeedFailure(t *testing.T) {
	route := testRoute("I-80 E", 69, 90*time.Minute)

	planner := NewPlanner(
		&routing.MockRouteProvider{Route: route},
		&weather.MockNumericProvider{Err: context.DeadlineExceeded},
		&weather.MockRoadRiskProvider{Err: context.DeadlineExceeded},
		&weather.MockAdvisoryProvider{Err: context.DeadlineExceeded},
		&roads.MockRoadProvider{Err: context.DeadlineExceeded},
		&places.MockPlaceProvider{},
	)
	planner.now = func() time.Time { return time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC) }

	result, err := planner.PlanTrip(context.Background(), TripRequest{
		Origin:      "Sacramento, CA",
		Destination: "Reno, NV",
		Departure:   time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err, "dead feeds degrade, they do not fail the request")
	assert.Empty(t, result.Sources)

	first := result.Requested.Entries[0].Segment
	require.NotNil(t, first)
	assert.Nil(t, first.Weather.TemperatureF)
	assert.Empty(t, first.Weather.Sources)
}
