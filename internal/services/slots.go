package services

import (
	"context"
	"sync"
	"time"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

// WindowRadius bounds the precomputed departure slots around the requested
// departure.
const WindowRadius = 48 * time.Hour

func ceilHour(t time.Time) time.Time {
	truncated := t.Truncate(time.Hour)
	if truncated.Before(t) {
		return truncated.Add(time.Hour)
	}
	return truncated
}

// DepartureWindow enumerates hourly candidate departures from
// max(now, departure-48h) rounded up, through departure+48h rounded down,
// inclusive. Past hours are never offered.
func DepartureWindow(now, departure time.Time) []time.Time {
	lower := departure.Add(-WindowRadius)
	if now.After(lower) {
		lower = now
	}
	lower = ceilHour(lower)
	upper := departure.Add(WindowRadius).Truncate(time.Hour)

	var slots []time.Time
	for t := lower; !t.After(upper); t = t.Add(time.Hour) {
		slots = append(slots, t)
	}
	return slots
}

// ResolveSlot runs the full two-pass pipeline for one candidate departure:
// provisional ETAs at the caution-scaled constant speed, weather-derived
// slowdowns at those ETAs, adjusted ETAs, rest delays, then segment assembly
// at the final ETAs.
func ResolveSlot(route *domain.Route, waypoints []domain.Waypoint, raw *domain.RawSeries, departure time.Time, speedFactor float64, restPlans []domain.RestStopPlan, restDuration time.Duration) domain.Slot {
	total := time.Duration(route.TotalDurationSeconds) * time.Second

	factor := speedFactor
	if factor < minSpeedFactor {
		factor = minSpeedFactor
	}

	provisional := BaseETAs(waypoints, time.Duration(float64(total)/factor), departure)
	slowdowns := SegmentSlowdowns(waypoints, raw, provisional)
	adjusted := AdjustedETAs(waypoints, total, departure, factor, slowdowns)

	restIndices := make([]int, 0, len(restPlans))
	for _, plan := range restPlans {
		restIndices = append(restIndices, plan.WaypointIndex)
	}
	final := ApplyRestDelays(adjusted, restIndices, restDuration)

	segments := BuildSegments(route, waypoints, raw, final)
	stops := BuildRestStops(restPlans, final, restDuration)

	return domain.Slot{
		Departure:  departure,
		Arrival:    final[len(final)-1],
		Entries:    SpliceRestStops(segments, stops),
		Advisories: DedupAdvisories(segments),
	}
}

// slotWorkers bounds concurrent slot resolution.
const slotWorkers = 8

// ResolveSlots resolves every candidate departure against the shared raw
// series, bounded fan-out, results ordered to match departures.
func ResolveSlots(ctx context.Context, route *domain.Route, waypoints []domain.Waypoint, raw *domain.RawSeries, departures []time.Time, speedFactor float64, restPlans []domain.RestStopPlan, restDuration time.Duration) []domain.Slot {
	slots := make([]domain.Slot, len(departures))

	sem := make(chan struct{}, slotWorkers)
	var wg sync.WaitGroup

	for i, dep := range departures {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, dep time.Time) {
			defer wg.Done()
			defer func() { <-sem }()
			slots[i] = ResolveSlot(route, waypoints, raw, dep, speedFactor, restPlans, restDuration)
		}(i, dep)
	}
	wg.Wait()

	return slots
}
