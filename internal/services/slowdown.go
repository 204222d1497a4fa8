package services

import "github.com/ddk220-light/drive-conditions/internal/domain"

// WeatherSlowdown derives the speed factor for one segment from its merged
// observation and light level. Factors compound multiplicatively; 1.0 means
// no slowdown, 0.7 means 70% of normal speed.
func WeatherSlowdown(w domain.MergedObservation, light domain.LightLevel) float64 {
	factor := 1.0

	switch w.RainIntensity {
	case domain.RainLight:
		factor *= 0.90
	case domain.RainModerate:
		factor *= 0.80
	case domain.RainHeavy:
		factor *= 0.70
	}

	if w.PrecipType == "snow" {
		factor *= 0.65
	}

	switch w.FogLevel {
	case domain.FogDense:
		factor *= 0.70
	case domain.FogPatchy:
		factor *= 0.85
	}

	if EffectiveWind(w) > 35 {
		factor *= 0.85
	}

	if light == domain.LightNight && w.RainIntensity != domain.RainNone {
		factor *= 0.90
	}

	return factor
}
