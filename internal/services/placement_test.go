package services

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

// northboundRoute builds a straight polyline from lat 39 to lat 40 along
// longitude -120 (roughly 69 route miles).
func northboundRoute() []orb.Point {
	var points []orb.Point
	for lat := 39.0; lat <= 40.0001; lat += 0.05 {
		points = append(points, orb.Point{-120, lat})
	}
	return points
}

func TestPlaceWaypointsSnapsStations(t *testing.T) {
	points := northboundRoute()
	stations := []domain.StationObservation{
		{Name: "Summit", Point: orb.Point{-120, 39.5}},
		{Name: "Far Away", Point: orb.Point{-118, 39.5}}, // ~100 mi off route
	}

	waypoints := PlaceWaypoints(points, stations, DefaultPlacementParams())
	require.NotEmpty(t, waypoints)

	var names []string
	for _, wp := range waypoints {
		if wp.Kind == domain.WaypointRWIS {
			require.NotNil(t, wp.Station)
			names = append(names, wp.Station.Name)
		}
	}
	assert.Equal(t, []string{"Summit"}, names)
}

func TestPlaceWaypointsMinSpacingFirstWins(t *testing.T) {
	points := northboundRoute()
	stations := []domain.StationObservation{
		{Name: "First", Point: orb.Point{-120, 39.5}},
		{Name: "Crowded", Point: orb.Point{-120, 39.52}}, // ~1.4 mi past First
		{Name: "Clear", Point: orb.Point{-120, 39.8}},
	}

	waypoints := PlaceWaypoints(points, stations, DefaultPlacementParams())

	var names []string
	for _, wp := range waypoints {
		if wp.Kind == domain.WaypointRWIS {
			names = append(names, wp.Station.Name)
		}
	}
	assert.Equal(t, []string{"First", "Clear"}, names)
}

func TestPlaceWaypointsFillsGaps(t *testing.T) {
	points := northboundRoute()

	waypoints := PlaceWaypoints(points, nil, DefaultPlacementParams())
	require.GreaterOrEqual(t, len(waypoints), 4)

	assert.Equal(t, 0.0, waypoints[0].RouteMiles)
	for i := 1; i < len(waypoints); i++ {
		gap := waypoints[i].RouteMiles - waypoints[i-1].RouteMiles
		assert.Greater(t, gap, 0.0, "waypoints must be strictly ordered")
		assert.LessOrEqual(t, gap, DefaultPlacementParams().GapThresholdMiles)
	}

	last := waypoints[len(waypoints)-1]
	assert.Equal(t, domain.WaypointFill, last.Kind)
	assert.Equal(t, points[len(points)-1], last.Point)
}

func TestPlaceWaypointsDegenerate(t *testing.T) {
	assert.Nil(t, PlaceWaypoints(nil, nil, DefaultPlacementParams()))

	single := PlaceWaypoints([]orb.Point{{-120, 39}}, nil, DefaultPlacementParams())
	require.Len(t, single, 1)
	assert.Equal(t, domain.WaypointFill, single[0].Kind)

	// Malformed station records are skipped, not fatal.
	stations := []domain.StationObservation{{Name: "No Coords"}}
	waypoints := PlaceWaypoints(northboundRoute(), stations, DefaultPlacementParams())
	for _, wp := range waypoints {
		assert.NotEqual(t, domain.WaypointRWIS, wp.Kind)
	}
}
