// Package units holds the shared unit conversions used when normalizing
// feed payloads. All conversions round to one decimal unless noted.
package units

import "math"

const metersPerMile = 1609.344

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func CToF(c float64) float64 {
	return round1(c*9/5 + 32)
}

func KmhToMph(kmh float64) float64 {
	return round1(kmh * 0.621371)
}

func KmToMiles(km float64) float64 {
	return round1(km * 0.621371)
}

func MToMiles(m float64) float64 {
	return round1(m / metersPerMile)
}

func MilesToM(mi float64) float64 {
	return mi * metersPerMile
}

// MToFt rounds to the nearest foot.
func MToFt(m float64) float64 {
	return math.Round(m * 3.28084)
}

func CmToIn(cm float64) float64 {
	return round1(cm / 2.54)
}
