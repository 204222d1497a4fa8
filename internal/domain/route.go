package domain

import "github.com/paulmach/orb"

// RouteStep is a single navigation instruction anchored to its start point.
type RouteStep struct {
	Instruction string
	Maneuver    string
	Start       orb.Point
}

// Route is the decoded result from the routing provider: an ordered polyline
// plus total trip metrics. Immutable once fetched.
type Route struct {
	Summary              string
	EncodedPolyline      string
	Points               []orb.Point
	Steps                []RouteStep
	TotalDistanceMeters  int
	TotalDurationSeconds int
}

// Place is a named location returned by the nearby-place lookup.
type Place struct {
	Name  string
	Point orb.Point
}
