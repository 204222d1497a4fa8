package services

import (
	"time"

	"github.com/ddk220-light/drive-conditions/internal/domain"
	"github.com/ddk220-light/drive-conditions/internal/geo"
)

// Time-indexing into the request-scoped raw series. Each slot re-runs these
// lookups against the same arena with its own ETAs.

func numericAt(series domain.NumericSeries, eta time.Time) *domain.NumericSample {
	var best *domain.NumericSample
	var bestDiff time.Duration
	for i := range series.Samples {
		diff := absDuration(series.Samples[i].Time.Sub(eta))
		if best == nil || diff < bestDiff {
			best = &series.Samples[i]
			bestDiff = diff
		}
	}
	return best
}

func roadRiskAt(samples []domain.RoadRiskSample, eta time.Time) *domain.RoadRiskSample {
	var best *domain.RoadRiskSample
	var bestDiff time.Duration
	for i := range samples {
		diff := absDuration(samples[i].Time.Sub(eta))
		if best == nil || diff < bestDiff {
			best = &samples[i]
			bestDiff = diff
		}
	}
	return best
}

// advisoryAt prefers the period containing the ETA; when none does it falls
// back to the period whose start is closest.
func advisoryAt(periods []domain.AdvisoryPeriod, eta time.Time) *domain.AdvisoryPeriod {
	var closest *domain.AdvisoryPeriod
	var closestDiff time.Duration
	for i := range periods {
		p := &periods[i]
		if !eta.Before(p.Start) && eta.Before(p.End) {
			return p
		}
		diff := absDuration(p.Start.Sub(eta))
		if closest == nil || diff < closestDiff {
			closest = p
			closestDiff = diff
		}
	}
	return closest
}

// ActiveAlerts keeps the alerts still in force at the ETA. An alert with no
// expiry never goes stale; one expiring exactly at the ETA is already over.
func ActiveAlerts(alerts []domain.Advisory, eta time.Time) []domain.Advisory {
	var active []domain.Advisory
	for _, a := range alerts {
		if a.Expires == nil || a.Expires.After(eta) {
			active = append(active, a)
		}
	}
	return active
}

// ResolveWeather merges the three forecast sources for waypoint i at the
// given ETA and returns the sun times governing its light classification.
func ResolveWeather(raw *domain.RawSeries, i int, eta time.Time) (domain.MergedObservation, *time.Time, *time.Time) {
	var numeric *domain.NumericSample
	var days []domain.SunDay
	if i < len(raw.Numeric) {
		numeric = numericAt(raw.Numeric[i], eta)
		days = raw.Numeric[i].Days
	}

	var roadRisk *domain.RoadRiskSample
	if i < len(raw.RoadRisk) {
		roadRisk = roadRiskAt(raw.RoadRisk[i], eta)
	}

	var advisory *domain.AdvisoryPeriod
	if i < len(raw.AdvisoryPeriods) {
		advisory = advisoryAt(raw.AdvisoryPeriods[i], eta)
	}

	merged := Merge(advisory, numeric, roadRisk)
	sunrise, sunset := SunTimesFor(days, eta)
	return merged, sunrise, sunset
}

// ResolveRoad builds the road-surface picture for one waypoint. A station
// waypoint reports its own sensor; a fill waypoint borrows the nearest
// station within range. Chain controls match on the turn instruction.
func ResolveRoad(wp domain.Waypoint, instruction string, raw *domain.RawSeries, alerts []domain.Advisory, eta time.Time) domain.RoadConditions {
	road := domain.RoadConditions{
		ChainControl: MatchChainControl(instruction, raw.ChainControls),
		Advisories:   ActiveAlerts(alerts, eta),
	}

	station := wp.Station
	var distance float64
	if station == nil {
		if nearest := NearestStation(wp.Point, raw.Stations); nearest != nil {
			station = nearest
			distance = geo.Miles(wp.Point, nearest.Point)
		}
	}
	if station != nil {
		road.PavementStatus = station.PavementStatus
		road.PavementTempF = station.PavementTempF
		road.AirTempF = station.AirTempF
		road.StationVisibility = station.VisibilityMiles
		road.StationWindMph = station.WindSpeedMph
		road.StationPrecipType = station.PrecipType
		road.StationDistanceMiles = &distance
	}
	return road
}
