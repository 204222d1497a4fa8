package domain

import "github.com/paulmach/orb"

// StationObservation is an externally supplied ground-sensor reading
// (RWIS pavement/air conditions). Read-only once parsed.
type StationObservation struct {
	Name            string
	Point           orb.Point
	PavementStatus  string
	PavementTempF   *float64
	AirTempF        *float64
	VisibilityMiles *float64
	WindSpeedMph    *float64
	PrecipType      string
}

// ChainControl is one graded traction restriction on a highway stretch.
type ChainControl struct {
	Highway       string
	Direction     string
	Level         string
	BeginPostmile *float64
	EndPostmile   *float64
	Description   string
}

// RoadConditions carries the road-surface picture for one segment: the
// matched chain control, matched station surface data, and active advisories.
type RoadConditions struct {
	ChainControl         *ChainControl
	PavementStatus       string
	PavementTempF        *float64
	AirTempF             *float64
	StationVisibility    *float64
	StationWindMph       *float64
	StationPrecipType    string
	StationDistanceMiles *float64
	Advisories           []Advisory
}
