package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddk220-light/drive-conditions/internal/adapters/places"
	"github.com/ddk220-light/drive-conditions/internal/domain"
)

func hourlyETAs(start time.Time, hours int) []time.Time {
	etas := make([]time.Time, hours+1)
	for i := range etas {
		etas[i] = start.Add(time.Duration(i) * time.Hour)
	}
	return etas
}

func TestPlanRestStops(t *testing.T) {
	start := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

	// 8 driving hours with a 3h interval: stops after hours 3 and 6.
	positions := PlanRestStops(hourlyETAs(start, 8), 3*time.Hour)
	assert.Equal(t, []int{3, 6}, positions)

	// A trip shorter than the interval needs no stop.
	assert.Nil(t, PlanRestStops(hourlyETAs(start, 2), 3*time.Hour))

	// The destination is never a rest stop even when the interval lands on it.
	positions = PlanRestStops(hourlyETAs(start, 3), 3*time.Hour)
	assert.Empty(t, positions)

	assert.Nil(t, PlanRestStops(nil, 3*time.Hour))
	assert.Nil(t, PlanRestStops(hourlyETAs(start, 8), 0))
}

func TestApplyRestDelaysCompound(t *testing.T) {
	start := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	etas := hourlyETAs(start, 4)

	shifted := ApplyRestDelays(etas, []int{1, 3}, 30*time.Minute)
	require.Len(t, shifted, 5)

	assert.Equal(t, etas[0], shifted[0])
	assert.Equal(t, etas[1], shifted[1], "the rest waypoint itself keeps its arrival")
	assert.Equal(t, etas[2].Add(30*time.Minute), shifted[2])
	assert.Equal(t, etas[3].Add(30*time.Minute), shifted[3])
	assert.Equal(t, etas[4].Add(time.Hour), shifted[4], "delays compound")
}

func TestResolveRestPlaces(t *testing.T) {
	waypoints := []domain.Waypoint{
		wpAt(0),
		{Point: orb.Point{-120.5, 39.3}, Kind: domain.WaypointFill, RouteMiles: 47.5},
		wpAt(95),
	}

	provider := &places.MockPlaceProvider{Places: map[orb.Point]domain.Place{
		{-120.5, 39.3}: {Name: "Donner Summit Rest Area", Point: orb.Point{-120.51, 39.31}},
	}}

	plans := ResolveRestPlaces(context.Background(), provider, waypoints, []int{1})
	require.Len(t, plans, 1)
	assert.Equal(t, 1, plans[0].WaypointIndex)
	assert.Equal(t, "Donner Summit Rest Area", plans[0].PlaceName)
	assert.Equal(t, orb.Point{-120.51, 39.31}, plans[0].Point)
	assert.Equal(t, 47.5, plans[0].MileMarker)
}

func TestResolveRestPlacesFallback(t *testing.T) {
	waypoints := []domain.Waypoint{wpAt(0), wpAt(47.5), wpAt(95)}

	t.Run("no place found", func(t *testing.T) {
		plans := ResolveRestPlaces(context.Background(), &places.MockPlaceProvider{}, waypoints, []int{1})
		require.Len(t, plans, 1)
		assert.Equal(t, "Rest stop (mile 47.5)", plans[0].PlaceName)
		assert.Equal(t, waypoints[1].Point, plans[0].Point)
	})

	t.Run("provider error", func(t *testing.T) {
		provider := &places.MockPlaceProvider{Err: errors.New("quota exceeded")}
		plans := ResolveRestPlaces(context.Background(), provider, waypoints, []int{1})
		require.Len(t, plans, 1)
		assert.Equal(t, "Rest stop (mile 47.5)", plans[0].PlaceName)
	})
}

func TestBuildRestStops(t *testing.T) {
	start := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	etas := hourlyETAs(start, 4)
	plans := []domain.RestStopPlan{{WaypointIndex: 2, PlaceName: "Rest Area", MileMarker: 40}}

	stops := BuildRestStops(plans, etas, 30*time.Minute)
	require.Len(t, stops, 1)
	assert.Equal(t, 2, stops[0].AfterIndex)
	assert.Equal(t, etas[2], stops[0].Arrive)
	assert.Equal(t, etas[2].Add(30*time.Minute), stops[0].Depart)
	assert.Equal(t, 30, stops[0].DurationMinutes)
}

func TestSpliceRestStops(t *testing.T) {
	segments := []domain.Segment{{Index: 0}, {Index: 1}, {Index: 2}, {Index: 3}}
	stops := []domain.RestStop{
		{AfterIndex: 1, PlaceName: "A"},
		{AfterIndex: 2, PlaceName: "B"},
	}

	entries := SpliceRestStops(segments, stops)
	require.Len(t, entries, 6)

	var order []string
	for _, e := range entries {
		switch {
		case e.Segment != nil:
			order = append(order, "seg")
		case e.Rest != nil:
			order = append(order, "rest:"+e.Rest.PlaceName)
		}
	}
	assert.Equal(t, []string{"seg", "seg", "rest:A", "seg", "rest:B", "seg"}, order)
}
