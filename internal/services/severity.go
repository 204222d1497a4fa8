package services

import (
	"math"
	"strings"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

// EffectiveWind is the hazard wind speed: sustained wind or 70% of gusts,
// whichever is higher.
func EffectiveWind(w domain.MergedObservation) float64 {
	eff := w.WindSpeedMph
	if g := w.WindGustsMph * 0.7; g > eff {
		eff = g
	}
	return eff
}

// Severity scores hazard 0-10 from weather, road-surface, advisory, and
// ambient-light factors, and bands the result green/yellow/red. All wind
// breakpoints are strict: 25.0 mph does not cross the 25 bracket.
func Severity(w domain.MergedObservation, road *domain.RoadConditions, alerts []domain.Advisory, light domain.LightLevel) (int, domain.SeverityBand) {
	score := 0.0

	if w.VisibilityMiles != nil {
		switch vis := *w.VisibilityMiles; {
		case vis < 0.25:
			score += 4
		case vis < 1.0:
			score += 3
		case vis < 3.0:
			score += 2
		case vis < 5.0:
			score += 1
		}
	}

	effWind := EffectiveWind(w)
	switch {
	case effWind > 45:
		score += 3
	case effWind > 35:
		score += 2.5
	case effWind > 25:
		score += 1.5
	case effWind > 20:
		score += 1
	}

	switch {
	case w.PrecipMmHr > 8.0:
		score += 3
	case w.PrecipMmHr > 4.0:
		score += 2.5
	case w.PrecipMmHr > 2.0:
		score += 1.5
	case w.PrecipMmHr > 0.5:
		score += 1
	}

	if road != nil {
		if road.ChainControl != nil {
			switch road.ChainControl.Level {
			case "R3":
				score += 3
			case "R2":
				score += 2
			case "R1":
				score += 1
			}
		}
		switch strings.ToLower(road.PavementStatus) {
		case "ice", "snow":
			score += 2
		case "wet":
			score += 0.5
		}
	}

	for _, a := range alerts {
		switch a.Severity {
		case "extreme", "severe":
			score += 2
		case "moderate":
			score += 1
		}
	}

	// Darkness compounds an existing weather hazard; it adds nothing on a
	// clear segment.
	hazard := w.RainIntensity != domain.RainNone ||
		w.FogLevel != domain.FogNone ||
		effWind > 25
	if hazard {
		heavy := w.RainIntensity == domain.RainHeavy || w.FogLevel == domain.FogDense
		switch light {
		case domain.LightNight:
			if heavy {
				score += 2
			} else {
				score += 1
			}
		case domain.LightTwilight:
			score += 1
		}
	}

	rounded := int(math.Round(score))
	if rounded > 10 {
		rounded = 10
	}
	if rounded < 0 {
		rounded = 0
	}

	return rounded, bandFor(rounded)
}

func bandFor(score int) domain.SeverityBand {
	switch {
	case score <= 3:
		return domain.BandGreen
	case score <= 6:
		return domain.BandYellow
	default:
		return domain.BandRed
	}
}
