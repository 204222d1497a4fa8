// Package geo provides the along-route geometry used by waypoint placement:
// polyline decoding, cumulative distance walking, and vertex projection.
// Great-circle math comes from orb.
package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

const metersPerMile = 1609.344

// Miles returns the great-circle distance between two points in miles.
func Miles(a, b orb.Point) float64 {
	return orbgeo.DistanceHaversine(a, b) / metersPerMile
}

// CumulativeMiles walks the polyline and returns the along-route distance to
// each vertex. The first entry is always 0.
func CumulativeMiles(points []orb.Point) []float64 {
	if len(points) == 0 {
		return nil
	}
	cum := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		cum[i] = cum[i-1] + Miles(points[i-1], points[i])
	}
	return cum
}

// Project finds the polyline vertex nearest to p. It returns the
// straight-line offset from the route and the along-route distance to that
// vertex, both in miles.
func Project(points []orb.Point, cum []float64, p orb.Point) (offsetMiles, alongMiles float64) {
	offsetMiles = -1
	for i, pt := range points {
		d := Miles(pt, p)
		if offsetMiles < 0 || d < offsetMiles {
			offsetMiles = d
			alongMiles = cum[i]
		}
	}
	return offsetMiles, alongMiles
}

// PointAlong returns the first polyline vertex at or beyond the target
// along-route distance. Walking the polyline, not interpolating straight
// lines, keeps fill waypoints on the road.
func PointAlong(points []orb.Point, cum []float64, targetMiles float64) orb.Point {
	for i := 1; i < len(points); i++ {
		if cum[i] >= targetMiles {
			return points[i]
		}
	}
	return points[len(points)-1]
}
