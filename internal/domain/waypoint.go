package domain

import "github.com/paulmach/orb"

// WaypointKind distinguishes sensor-anchored analysis points from
// interval-fill ones.
type WaypointKind string

const (
	WaypointRWIS WaypointKind = "rwis"
	WaypointFill WaypointKind = "fill"
)

// Waypoint is a sampling point along the route where conditions are
// evaluated. Waypoints are created once during placement and never mutated;
// they are scoped to a single request.
type Waypoint struct {
	Point      orb.Point
	Kind       WaypointKind
	RouteMiles float64
	// Station is the ground sensor this waypoint was snapped to.
	// Nil for fill waypoints.
	Station *StationObservation
}
