package services

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

func tptr(v time.Time) *time.Time { return &v }

func TestNumericAtPicksClosestHour(t *testing.T) {
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	series := domain.NumericSeries{}
	for h := 0; h < 4; h++ {
		series.Samples = append(series.Samples, domain.NumericSample{
			Time:         base.Add(time.Duration(h) * time.Hour),
			TemperatureF: float64(30 + h),
		})
	}

	got := numericAt(series, base.Add(110*time.Minute))
	require.NotNil(t, got)
	assert.Equal(t, 32.0, got.TemperatureF, "1h50m is closest to hour 2")

	assert.Nil(t, numericAt(domain.NumericSeries{}, base))
}

func TestAdvisoryAtPrefersContainingPeriod(t *testing.T) {
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	periods := []domain.AdvisoryPeriod{
		{Start: base, End: base.Add(6 * time.Hour), ConditionText: "Clear"},
		{Start: base.Add(6 * time.Hour), End: base.Add(12 * time.Hour), ConditionText: "Snow"},
	}

	got := advisoryAt(periods, base.Add(7*time.Hour))
	require.NotNil(t, got)
	assert.Equal(t, "Snow", got.ConditionText)

	// Period end is exclusive.
	got = advisoryAt(periods, base.Add(6*time.Hour))
	assert.Equal(t, "Snow", got.ConditionText)

	// Outside every period: closest start wins.
	got = advisoryAt(periods, base.Add(20*time.Hour))
	assert.Equal(t, "Snow", got.ConditionText)

	assert.Nil(t, advisoryAt(nil, base))
}

func TestActiveAlerts(t *testing.T) {
	eta := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	alerts := []domain.Advisory{
		{Event: "Open Ended"},
		{Event: "Still Active", Expires: tptr(eta.Add(time.Hour))},
		{Event: "Expires At ETA", Expires: tptr(eta)},
		{Event: "Expired", Expires: tptr(eta.Add(-time.Hour))},
	}

	active := ActiveAlerts(alerts, eta)
	require.Len(t, active, 2)
	assert.Equal(t, "Open Ended", active[0].Event)
	assert.Equal(t, "Still Active", active[1].Event)
}

func TestResolveRoadStationPinning(t *testing.T) {
	pinned := &domain.StationObservation{
		Name:           "Own Sensor",
		Point:          orb.Point{-120, 39.5},
		PavementStatus: "ice",
		PavementTempF:  fptr(28),
	}
	raw := &domain.RawSeries{
		Stations: []domain.StationObservation{
			{Name: "Nearby", Point: orb.Point{-120, 39.02}, PavementStatus: "wet"},
		},
	}
	eta := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	t.Run("rwis waypoint keeps its own station", func(t *testing.T) {
		wp := domain.Waypoint{Point: pinned.Point, Kind: domain.WaypointRWIS, Station: pinned}
		road := ResolveRoad(wp, "", raw, nil, eta)
		assert.Equal(t, "ice", road.PavementStatus)
		require.NotNil(t, road.StationDistanceMiles)
		assert.Equal(t, 0.0, *road.StationDistanceMiles)
	})

	t.Run("fill waypoint borrows nearest in range", func(t *testing.T) {
		wp := domain.Waypoint{Point: orb.Point{-120, 39}, Kind: domain.WaypointFill}
		road := ResolveRoad(wp, "", raw, nil, eta)
		assert.Equal(t, "wet", road.PavementStatus)
		require.NotNil(t, road.StationDistanceMiles)
		assert.Greater(t, *road.StationDistanceMiles, 0.0)
	})

	t.Run("fill waypoint with nothing in range", func(t *testing.T) {
		wp := domain.Waypoint{Point: orb.Point{-110, 30}, Kind: domain.WaypointFill}
		road := ResolveRoad(wp, "", raw, nil, eta)
		assert.Empty(t, road.PavementStatus)
		assert.Nil(t, road.StationDistanceMiles)
	})
}

func TestBuildSegmentsAndDedup(t *testing.T) {
	route := testRoute("I-80 E", 69, 2*time.Hour)
	route.Steps = []domain.RouteStep{
		{Instruction: "Merge onto I-80 E", Start: route.Points[0]},
		{Instruction: "Continue on I-80 E", Start: route.Points[len(route.Points)/2]},
	}
	waypoints := PlaceWaypoints(route.Points, nil, DefaultPlacementParams())

	raw := emptyRaw(len(waypoints))
	storm := domain.Advisory{Event: "Winter Storm Warning", Headline: "Heavy snow over the pass", Severity: "severe"}
	for i := range raw.Alerts {
		if i >= 1 && i <= 2 {
			raw.Alerts[i] = []domain.Advisory{storm}
		}
	}
	raw.ChainControls = []domain.ChainControl{{Highway: "I-80", Direction: "EB", Level: "R2"}}

	departure := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	etas := BaseETAs(waypoints, 2*time.Hour, departure)
	segments := BuildSegments(route, waypoints, raw, etas)
	require.Len(t, segments, len(waypoints))

	assert.Equal(t, "Merge onto I-80 E", segments[0].TurnInstruction)
	require.NotNil(t, segments[0].Road.ChainControl)
	assert.Equal(t, "R2", segments[0].Road.ChainControl.Level)

	// Chain control lifts the score off zero even with no weather data.
	assert.Equal(t, 2, segments[0].SeverityScore)
	assert.Equal(t, domain.BandGreen, segments[0].SeverityBand)

	// The alert raises only the segments it covers.
	assert.Greater(t, segments[1].SeverityScore, segments[3].SeverityScore)

	advisories := DedupAdvisories(segments)
	require.Len(t, advisories, 1)
	assert.Equal(t, "Winter Storm Warning", advisories[0].Event)
	assert.Equal(t, []int{1, 2}, advisories[0].AffectedSegments)

	links := segments[0].SourceLinks
	assert.Contains(t, links, SourceRoadFeed)
	assert.NotContains(t, links, SourceNumeric, "no numeric data contributed")
}
