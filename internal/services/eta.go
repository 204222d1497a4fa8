package services

import (
	"time"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

// minSpeedFactor floors the effective per-segment factor so a pathological
// slowdown cannot blow up a segment time.
const minSpeedFactor = 0.1

func segmentMiles(waypoints []domain.Waypoint) ([]float64, float64) {
	dists := make([]float64, len(waypoints)-1)
	total := 0.0
	for i := 1; i < len(waypoints); i++ {
		d := waypoints[i].RouteMiles - waypoints[i-1].RouteMiles
		dists[i-1] = d
		total += d
	}
	return dists, total
}

// BaseETAs splits the trip duration across waypoints proportionally to
// along-route distance (constant-speed assumption).
func BaseETAs(waypoints []domain.Waypoint, totalDuration time.Duration, departure time.Time) []time.Time {
	if len(waypoints) <= 1 {
		return []time.Time{departure}
	}

	dists, total := segmentMiles(waypoints)
	if total == 0 {
		etas := make([]time.Time, len(waypoints))
		for i := range etas {
			etas[i] = departure
		}
		return etas
	}

	etas := make([]time.Time, 0, len(waypoints))
	etas = append(etas, departure)
	cumulative := 0.0
	for _, d := range dists {
		cumulative += d
		fraction := cumulative / total
		etas = append(etas, departure.Add(time.Duration(fraction*float64(totalDuration))))
	}
	return etas
}

// AdjustedETAs is the proportional split with a global caution factor and
// per-segment weather slowdowns. Segment i's base time is divided by
// factor*slowdowns[i] (missing slowdowns default to 1.0), so a factor below
// 1.0 lengthens the segment.
func AdjustedETAs(waypoints []domain.Waypoint, totalDuration time.Duration, departure time.Time, factor float64, slowdowns []float64) []time.Time {
	if len(waypoints) <= 1 {
		return []time.Time{departure}
	}

	dists, total := segmentMiles(waypoints)
	if total == 0 {
		etas := make([]time.Time, len(waypoints))
		for i := range etas {
			etas[i] = departure
		}
		return etas
	}

	etas := make([]time.Time, 0, len(waypoints))
	etas = append(etas, departure)
	cumulative := 0.0
	for i, d := range dists {
		baseSeconds := (d / total) * totalDuration.Seconds()

		slowdown := 1.0
		if i < len(slowdowns) {
			slowdown = slowdowns[i]
		}
		effective := factor * slowdown
		if effective < minSpeedFactor {
			effective = minSpeedFactor
		}

		cumulative += baseSeconds / effective
		etas = append(etas, departure.Add(time.Duration(cumulative*float64(time.Second))))
	}
	return etas
}
