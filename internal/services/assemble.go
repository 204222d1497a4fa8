package services

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"

	"github.com/ddk220-light/drive-conditions/internal/domain"
	"github.com/ddk220-light/drive-conditions/internal/geo"
)

// nearestStepInstruction finds the navigation instruction whose step start
// is closest to the waypoint, so each segment reads like a point on the
// driver's actual directions.
func nearestStepInstruction(steps []domain.RouteStep, p orb.Point) string {
	if len(steps) == 0 {
		return ""
	}
	best := 0
	bestDist := geo.Miles(p, steps[0].Start)
	for i := 1; i < len(steps); i++ {
		if d := geo.Miles(p, steps[i].Start); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return steps[best].Instruction
}

func sourceLinks(w domain.MergedObservation, road domain.RoadConditions, p orb.Point) map[string]string {
	links := make(map[string]string, len(w.Sources)+1)
	for _, src := range w.Sources {
		switch src {
		case SourceAdvisory:
			links[src] = fmt.Sprintf("https://forecast.weather.gov/MapClick.php?lat=%.4f&lon=%.4f", p.Lat(), p.Lon())
		case SourceNumeric:
			links[src] = "https://open-meteo.com/"
		case SourceRoadRisk:
			links[src] = "https://www.tomorrow.io/weather/"
		}
	}
	if road.ChainControl != nil || road.StationDistanceMiles != nil {
		links[SourceRoadFeed] = "https://roads.dot.ca.gov/"
	}
	return links
}

// SegmentSlowdowns resolves weather at each waypoint's provisional ETA and
// returns one slowdown factor per route segment (keyed to the segment's
// starting waypoint).
func SegmentSlowdowns(waypoints []domain.Waypoint, raw *domain.RawSeries, etas []time.Time) []float64 {
	if len(waypoints) < 2 {
		return nil
	}
	slowdowns := make([]float64, len(waypoints)-1)
	for i := 0; i < len(waypoints)-1; i++ {
		w, sunrise, sunset := ResolveWeather(raw, i, etas[i])
		light := ClassifyLightLevel(etas[i], sunrise, sunset)
		slowdowns[i] = WeatherSlowdown(w, light)
	}
	return slowdowns
}

// BuildSegments assembles the fully resolved segment list for one slot's
// final ETAs. Everything is recomputed from the raw series; nothing from an
// earlier pass or slot is patched in place.
func BuildSegments(route *domain.Route, waypoints []domain.Waypoint, raw *domain.RawSeries, etas []time.Time) []domain.Segment {
	segments := make([]domain.Segment, 0, len(waypoints))
	for i, wp := range waypoints {
		eta := etas[i]

		instruction := nearestStepInstruction(route.Steps, wp.Point)
		weather, sunrise, sunset := ResolveWeather(raw, i, eta)

		var alerts []domain.Advisory
		if i < len(raw.Alerts) {
			alerts = raw.Alerts[i]
		}
		road := ResolveRoad(wp, instruction, raw, alerts, eta)

		light := ClassifyLightLevel(eta, sunrise, sunset)
		score, band := Severity(weather, &road, road.Advisories, light)

		stationName := ""
		if wp.Station != nil {
			stationName = wp.Station.Name
		}

		segments = append(segments, domain.Segment{
			Index:           i,
			Point:           wp.Point,
			MileMarker:      wp.RouteMiles,
			Kind:            wp.Kind,
			StationName:     stationName,
			ETA:             eta,
			TurnInstruction: instruction,
			Weather:         weather,
			Road:            road,
			SeverityScore:   score,
			SeverityBand:    band,
			Light:           light,
			Sunrise:         sunrise,
			Sunset:          sunset,
			SourceLinks:     sourceLinks(weather, road, wp.Point),
		})
	}
	return segments
}

// DedupAdvisories collapses the alerts seen across a slot's segments by
// headline, recording which segment indices each one touches.
func DedupAdvisories(segments []domain.Segment) []domain.SlotAdvisory {
	var ordered []domain.SlotAdvisory
	index := make(map[string]int)

	for i := range segments {
		for _, a := range segments[i].Road.Advisories {
			key := a.Headline
			if key == "" {
				key = a.Event
			}
			if at, ok := index[key]; ok {
				ordered[at].AffectedSegments = append(ordered[at].AffectedSegments, i)
				continue
			}
			index[key] = len(ordered)
			ordered = append(ordered, domain.SlotAdvisory{
				Advisory:         a,
				AffectedSegments: []int{i},
			})
		}
	}
	return ordered
}
