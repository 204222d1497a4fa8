package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// Segment is the externally visible unit: one waypoint with its ETA, merged
// observation, road picture, and hazard score. Assembled fresh per slot.
type Segment struct {
	Index           int
	Point           orb.Point
	MileMarker      float64
	Kind            WaypointKind
	StationName     string
	ETA             time.Time
	TurnInstruction string
	Weather         MergedObservation
	Road            RoadConditions
	SeverityScore   int
	SeverityBand    SeverityBand
	Light           LightLevel
	Sunrise         *time.Time
	Sunset          *time.Time
	SourceLinks     map[string]string
}

// RestStopPlan fixes a rest position for the whole route: the waypoint it
// follows and the resolved place. Computed once per request, keyed by
// route-distance, and reused verbatim across slots.
type RestStopPlan struct {
	WaypointIndex int
	PlaceName     string
	Point         orb.Point
	MileMarker    float64
}

// RestStop is a pseudo-segment spliced into a slot's itinerary. Only the
// timestamps vary between slots; the place comes from the RestStopPlan.
type RestStop struct {
	AfterIndex      int
	PlaceName       string
	Point           orb.Point
	MileMarker      float64
	Arrive          time.Time
	Depart          time.Time
	DurationMinutes int
}

// TripEntry is one row of a resolved itinerary: either a waypoint segment or
// a spliced rest stop, never both.
type TripEntry struct {
	Segment *Segment
	Rest    *RestStop
}

// SlotAdvisory is an advisory deduplicated by headline across a slot, with
// the pre-splice indices of the segments it affects.
type SlotAdvisory struct {
	Advisory
	AffectedSegments []int
}

// Slot is one fully resolved itinerary for a single candidate departure
// time. Recomputed per slot and discarded after response assembly.
type Slot struct {
	Departure  time.Time
	Arrival    time.Time
	Entries    []TripEntry
	Advisories []SlotAdvisory
}

// RawSeries holds every per-waypoint, per-source time series fetched once
// per request. It is the request-scoped arena every slot re-indexes into;
// nothing here survives the request.
type RawSeries struct {
	Numeric         []NumericSeries
	RoadRisk        [][]RoadRiskSample
	AdvisoryPeriods [][]AdvisoryPeriod
	Alerts          [][]Advisory
	ChainControls   []ChainControl
	Stations        []StationObservation
	Sources         []string
}
