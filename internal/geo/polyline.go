package geo

import "github.com/paulmach/orb"

// DecodePolyline decodes a Google encoded polyline (precision 1e-5) into an
// ordered point sequence. Truncated input yields the points decoded so far.
func DecodePolyline(encoded string) []orb.Point {
	var points []orb.Point
	var lat, lng int64

	i := 0
	next := func() (int64, bool) {
		var result int64
		var shift uint
		for {
			if i >= len(encoded) {
				return 0, false
			}
			b := int64(encoded[i]) - 63
			i++
			result |= (b & 0x1F) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}
		if result&1 != 0 {
			return ^(result >> 1), true
		}
		return result >> 1, true
	}

	for i < len(encoded) {
		dlat, ok := next()
		if !ok {
			break
		}
		dlng, ok := next()
		if !ok {
			break
		}
		lat += dlat
		lng += dlng
		points = append(points, orb.Point{float64(lng) / 1e5, float64(lat) / 1e5})
	}

	return points
}
