package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

func TestDepartureWindowFullSpan(t *testing.T) {
	departure := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	window := DepartureWindow(now, departure)
	require.Len(t, window, 97, "hourly slots across +/-48h inclusive")
	assert.Equal(t, departure.Add(-48*time.Hour), window[0])
	assert.Equal(t, departure.Add(48*time.Hour), window[len(window)-1])
}

func TestDepartureWindowClampedToNow(t *testing.T) {
	departure := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 20, 10, 20, 0, 0, time.UTC)

	window := DepartureWindow(now, departure)
	require.NotEmpty(t, window)
	assert.Equal(t, time.Date(2026, 1, 20, 11, 0, 0, 0, time.UTC), window[0], "lower bound rounds up past now")
	assert.Equal(t, departure.Add(48*time.Hour), window[len(window)-1])
}

func TestDepartureWindowRounding(t *testing.T) {
	// An off-hour departure floors the upper bound.
	departure := time.Date(2026, 1, 20, 12, 30, 0, 0, time.UTC)
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	window := DepartureWindow(now, departure)
	assert.Equal(t, time.Date(2026, 1, 18, 13, 0, 0, 0, time.UTC), window[0])
	assert.Equal(t, time.Date(2026, 1, 22, 12, 0, 0, 0, time.UTC), window[len(window)-1])
}

func testRoute(summary string, miles float64, duration time.Duration) *domain.Route {
	points := northboundRoute()
	return &domain.Route{
		Summary:              summary,
		Points:               points,
		TotalDistanceMeters:  int(miles * 1609.344),
		TotalDurationSeconds: int(duration.Seconds()),
	}
}

func emptyRaw(n int) *domain.RawSeries {
	return &domain.RawSeries{
		Numeric:         make([]domain.NumericSeries, n),
		RoadRisk:        make([][]domain.RoadRiskSample, n),
		AdvisoryPeriods: make([][]domain.AdvisoryPeriod, n),
		Alerts:          make([][]domain.Advisory, n),
	}
}

func TestResolveSlotNoWeather(t *testing.T) {
	route := testRoute("I-80 E", 69, 90*time.Minute)
	waypoints := PlaceWaypoints(route.Points, nil, DefaultPlacementParams())
	raw := emptyRaw(len(waypoints))
	departure := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

	slot := ResolveSlot(route, waypoints, raw, departure, 1.0, nil, 30*time.Minute)

	assert.Equal(t, departure, slot.Departure)
	assert.WithinDuration(t, departure.Add(90*time.Minute), slot.Arrival, time.Millisecond, "no sources means no slowdown")
	require.Len(t, slot.Entries, len(waypoints))
	assert.Empty(t, slot.Advisories)

	first := slot.Entries[0].Segment
	require.NotNil(t, first)
	assert.Equal(t, departure, first.ETA)
	assert.Equal(t, domain.BandGreen, first.SeverityBand)
	assert.Equal(t, domain.LightDay, first.Light, "missing sun data defaults to day")
}

func TestResolveSlotRestStopsSpliced(t *testing.T) {
	route := testRoute("I-80 E", 69, 8*time.Hour)
	waypoints := PlaceWaypoints(route.Points, nil, DefaultPlacementParams())
	raw := emptyRaw(len(waypoints))
	departure := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

	plans := []domain.RestStopPlan{{WaypointIndex: 2, PlaceName: "Rest Area", MileMarker: waypoints[2].RouteMiles}}
	slot := ResolveSlot(route, waypoints, raw, departure, 1.0, plans, time.Hour)

	require.Len(t, slot.Entries, len(waypoints)+1)
	rest := slot.Entries[3].Rest
	require.NotNil(t, rest, "rest stop follows its waypoint")
	assert.Equal(t, "Rest Area", rest.PlaceName)
	assert.Equal(t, rest.Arrive.Add(time.Hour), rest.Depart)

	// Waypoints after the stop are pushed back by the rest duration.
	unrested := ResolveSlot(route, waypoints, raw, departure, 1.0, nil, time.Hour)
	lastRested := slot.Entries[len(slot.Entries)-1].Segment
	lastUnrested := unrested.Entries[len(unrested.Entries)-1].Segment
	assert.Equal(t, lastUnrested.ETA.Add(time.Hour), lastRested.ETA)
	assert.Equal(t, lastUnrested.ETA.Add(time.Hour), slot.Arrival)
}

func TestResolveSlotsOrdered(t *testing.T) {
	route := testRoute("I-80 E", 69, time.Hour)
	waypoints := PlaceWaypoints(route.Points, nil, DefaultPlacementParams())
	raw := emptyRaw(len(waypoints))

	departures := []time.Time{
		time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}

	slots := ResolveSlots(context.Background(), route, waypoints, raw, departures, 1.0, nil, 0)
	require.Len(t, slots, len(departures))
	for i, s := range slots {
		assert.Equal(t, departures[i], s.Departure)
		assert.WithinDuration(t, departures[i].Add(time.Hour), s.Arrival, time.Millisecond)
	}
}
