package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ddk220-light/drive-conditions/internal/domain"
	"github.com/ddk220-light/drive-conditions/internal/ports"
)

// PlanRestStops walks the ETA sequence and marks the waypoint where
// accumulated driving time first reaches the interval, resetting after each
// stop. The final waypoint is never marked; a trip shorter than the interval
// yields no stops.
func PlanRestStops(etas []time.Time, driveInterval time.Duration) []int {
	if len(etas) < 2 || driveInterval <= 0 {
		return nil
	}

	var positions []int
	lastRest := etas[0]

	for i := 1; i < len(etas); i++ {
		if etas[i].Sub(lastRest) >= driveInterval {
			if i == len(etas)-1 {
				break
			}
			positions = append(positions, i)
			lastRest = etas[i]
		}
	}
	return positions
}

// ApplyRestDelays returns a new ETA sequence where every waypoint after a
// rest index is shifted by the rest duration. Multiple stops compound.
func ApplyRestDelays(etas []time.Time, restIndices []int, restDuration time.Duration) []time.Time {
	restSet := make(map[int]struct{}, len(restIndices))
	for _, i := range restIndices {
		restSet[i] = struct{}{}
	}

	out := make([]time.Time, 0, len(etas))
	delay := time.Duration(0)
	for i, eta := range etas {
		out = append(out, eta.Add(delay))
		if _, ok := restSet[i]; ok {
			delay += restDuration
		}
	}
	return out
}

// ResolveRestPlaces looks up a nearby place for each rest position, once per
// trip. Positions are keyed by route-distance so the plans can be reused
// verbatim across slots. An unresolvable place falls back to the waypoint's
// own coordinates with a mile-marker label.
func ResolveRestPlaces(ctx context.Context, provider ports.PlaceProvider, waypoints []domain.Waypoint, positions []int) []domain.RestStopPlan {
	plans := make([]domain.RestStopPlan, 0, len(positions))
	for _, pos := range positions {
		wp := waypoints[pos]

		plan := domain.RestStopPlan{
			WaypointIndex: pos,
			Point:         wp.Point,
			MileMarker:    wp.RouteMiles,
		}

		if provider != nil {
			if place, err := provider.FindNearby(ctx, wp.Point); err == nil && place != nil {
				plan.PlaceName = place.Name
				plan.Point = place.Point
			}
		}
		if plan.PlaceName == "" {
			plan.PlaceName = fmt.Sprintf("Rest stop (mile %.1f)", wp.RouteMiles)
		}

		plans = append(plans, plan)
	}
	return plans
}

// BuildRestStops stamps the fixed plans with this slot's final ETAs.
func BuildRestStops(plans []domain.RestStopPlan, etas []time.Time, restDuration time.Duration) []domain.RestStop {
	stops := make([]domain.RestStop, 0, len(plans))
	for _, plan := range plans {
		if plan.WaypointIndex >= len(etas) {
			continue
		}
		arrive := etas[plan.WaypointIndex]
		stops = append(stops, domain.RestStop{
			AfterIndex:      plan.WaypointIndex,
			PlaceName:       plan.PlaceName,
			Point:           plan.Point,
			MileMarker:      plan.MileMarker,
			Arrive:          arrive,
			Depart:          arrive.Add(restDuration),
			DurationMinutes: int(restDuration.Minutes()),
		})
	}
	return stops
}

// SpliceRestStops inserts each rest stop immediately after its preceding
// waypoint segment. Stops are processed in descending route position so
// earlier insertion indices stay stable.
func SpliceRestStops(segments []domain.Segment, stops []domain.RestStop) []domain.TripEntry {
	entries := make([]domain.TripEntry, 0, len(segments)+len(stops))
	for i := range segments {
		entries = append(entries, domain.TripEntry{Segment: &segments[i]})
	}

	ordered := make([]domain.RestStop, len(stops))
	copy(ordered, stops)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].AfterIndex > ordered[j].AfterIndex
	})

	for i := range ordered {
		stop := ordered[i]
		at := stop.AfterIndex + 1
		if at > len(entries) {
			at = len(entries)
		}
		entries = append(entries[:at], append([]domain.TripEntry{{Rest: &ordered[i]}}, entries[at:]...)...)
	}
	return entries
}
