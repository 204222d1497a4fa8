package services

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/ddk220-light/drive-conditions/internal/domain"
	"github.com/ddk220-light/drive-conditions/internal/geo"
)

// PlacementParams tune station-aware waypoint placement.
type PlacementParams struct {
	// SnapRadiusMiles is the max route offset for a station to anchor a
	// waypoint; the boundary itself is accepted.
	SnapRadiusMiles float64
	// MinSpacingMiles is the minimum along-route distance between two
	// accepted stations; first wins.
	MinSpacingMiles float64
	// GapThresholdMiles is the largest gap tolerated before fill
	// waypoints are inserted.
	GapThresholdMiles float64
	// FillIntervalMiles is the spacing of inserted fill waypoints.
	FillIntervalMiles float64
}

func DefaultPlacementParams() PlacementParams {
	return PlacementParams{
		SnapRadiusMiles:   15,
		MinSpacingMiles:   5,
		GapThresholdMiles: 30,
		FillIntervalMiles: 15,
	}
}

// PlaceWaypoints turns a decoded polyline into ordered analysis points,
// snapping to ground stations and filling coverage gaps. Zero stations
// degrades to pure fixed-interval sampling; malformed station records are
// skipped individually. Never fails.
func PlaceWaypoints(points []orb.Point, stations []domain.StationObservation, p PlacementParams) []domain.Waypoint {
	if len(points) == 0 {
		return nil
	}
	if len(points) == 1 {
		return []domain.Waypoint{{Point: points[0], Kind: domain.WaypointFill}}
	}

	cum := geo.CumulativeMiles(points)
	total := cum[len(cum)-1]

	type candidate struct {
		station domain.StationObservation
		along   float64
	}

	var candidates []candidate
	for _, st := range stations {
		if st.Point == (orb.Point{}) {
			continue
		}
		offset, along := geo.Project(points, cum, st.Point)
		if offset <= p.SnapRadiusMiles {
			candidates = append(candidates, candidate{station: st, along: along})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].along < candidates[j].along
	})

	waypoints := []domain.Waypoint{
		{Point: points[0], Kind: domain.WaypointFill, RouteMiles: 0},
	}

	lastAlong := -p.MinSpacingMiles
	for _, c := range candidates {
		if len(waypoints) > 1 && c.along-lastAlong < p.MinSpacingMiles {
			continue
		}
		st := c.station
		waypoints = append(waypoints, domain.Waypoint{
			Point:      st.Point,
			Kind:       domain.WaypointRWIS,
			RouteMiles: c.along,
			Station:    &st,
		})
		lastAlong = c.along
	}

	waypoints = append(waypoints, domain.Waypoint{
		Point:      points[len(points)-1],
		Kind:       domain.WaypointFill,
		RouteMiles: total,
	})

	sort.SliceStable(waypoints, func(i, j int) bool {
		return waypoints[i].RouteMiles < waypoints[j].RouteMiles
	})

	// Insert fill waypoints wherever adjacent coverage is too sparse.
	filled := make([]domain.Waypoint, 0, len(waypoints))
	for i, wp := range waypoints {
		filled = append(filled, wp)
		if i == len(waypoints)-1 {
			continue
		}
		next := waypoints[i+1]
		if next.RouteMiles-wp.RouteMiles <= p.GapThresholdMiles {
			continue
		}
		for target := wp.RouteMiles + p.FillIntervalMiles; target < next.RouteMiles; target += p.FillIntervalMiles {
			filled = append(filled, domain.Waypoint{
				Point:      geo.PointAlong(points, cum, target),
				Kind:       domain.WaypointFill,
				RouteMiles: target,
			})
		}
	}

	sort.SliceStable(filled, func(i, j int) bool {
		return filled[i].RouteMiles < filled[j].RouteMiles
	})

	return filled
}
