package services

import (
	"math"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

// Source names as they appear in merged records and response attribution.
const (
	SourceNumeric  = "Open-Meteo"
	SourceRoadRisk = "Tomorrow.io"
	SourceAdvisory = "NWS"
	SourceRoadFeed = "Caltrans CWWP2"
)

// ClassifyRainIntensity buckets a liquid precipitation rate in mm/hr.
func ClassifyRainIntensity(mmHr float64) domain.RainIntensity {
	switch {
	case mmHr < 0.1:
		return domain.RainNone
	case mmHr < 0.5:
		return domain.RainLight
	case mmHr < 4.0:
		return domain.RainModerate
	default:
		return domain.RainHeavy
	}
}

// ClassifyFogLevel buckets visibility in miles. Nil (no contributing
// source) means no fog call can be made.
func ClassifyFogLevel(visibilityMiles *float64) domain.FogLevel {
	switch {
	case visibilityMiles == nil || *visibilityMiles > 5.0:
		return domain.FogNone
	case *visibilityMiles > 1.0:
		return domain.FogPatchy
	default:
		return domain.FogDense
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// Merge combines up to three per-source records into one observation. Each
// field's rule runs only over the sources that supplied it; a field is nil
// only when every contributing source is absent.
func Merge(advisory *domain.AdvisoryPeriod, numeric *domain.NumericSample, roadRisk *domain.RoadRiskSample) domain.MergedObservation {
	var m domain.MergedObservation

	// Temperature: mean of the numeric sources, advisory as fallback.
	var temps []float64
	if numeric != nil {
		temps = append(temps, numeric.TemperatureF)
	}
	if roadRisk != nil {
		temps = append(temps, roadRisk.TemperatureF)
	}
	if len(temps) == 0 && advisory != nil {
		temps = append(temps, advisory.TemperatureF)
	}
	if len(temps) > 0 {
		sum := 0.0
		for _, t := range temps {
			sum += t
		}
		mean := round1(sum / float64(len(temps)))
		m.TemperatureF = &mean
	}

	// Wind: max across sources (conservative).
	for _, w := range windSpeeds(advisory, numeric, roadRisk) {
		if w > m.WindSpeedMph {
			m.WindSpeedMph = w
		}
	}
	gusts := 0.0
	haveGusts := false
	if numeric != nil && numeric.WindGustsMph > 0 {
		gusts = numeric.WindGustsMph
		haveGusts = true
	}
	if roadRisk != nil && roadRisk.WindGustsMph > gusts {
		gusts = roadRisk.WindGustsMph
		haveGusts = true
	}
	if haveGusts {
		m.WindGustsMph = gusts
	} else {
		m.WindGustsMph = m.WindSpeedMph
	}
	if numeric != nil {
		dir := numeric.WindDirectionDeg
		m.WindDirectionDeg = &dir
	}

	// Precipitation probability: max (conservative).
	if advisory != nil {
		m.PrecipProbability = advisory.PrecipProbability
	}
	if roadRisk != nil && roadRisk.PrecipProbability > m.PrecipProbability {
		m.PrecipProbability = roadRisk.PrecipProbability
	}

	// Precipitation type: the road-risk source is purpose-built for it.
	m.PrecipType = "none"
	if roadRisk != nil {
		m.PrecipType = roadRisk.PrecipType
	}

	// Rate and intensity class come from the numeric source.
	if numeric != nil {
		m.PrecipMmHr = numeric.PrecipMmHr
	}
	m.RainIntensity = ClassifyRainIntensity(m.PrecipMmHr)

	// Visibility: min (conservative).
	var vis *float64
	if numeric != nil {
		v := numeric.VisibilityMiles
		vis = &v
	}
	if roadRisk != nil && (vis == nil || roadRisk.VisibilityMiles < *vis) {
		v := roadRisk.VisibilityMiles
		vis = &v
	}
	m.VisibilityMiles = vis
	m.FogLevel = ClassifyFogLevel(vis)

	// Snow depth and freezing level: highest-resolution numeric source.
	if numeric != nil {
		depth := numeric.SnowDepthIn
		level := numeric.FreezingLevelFt
		m.SnowDepthIn = &depth
		m.FreezingLevelFt = &level
	}

	// Condition text: authoritative advisory source first.
	if advisory != nil && advisory.ConditionText != "" {
		m.ConditionText = advisory.ConditionText
	} else if roadRisk != nil {
		m.ConditionText = roadRisk.WeatherText
	}

	// Road risk: exclusively the road-risk source.
	if roadRisk != nil {
		m.RoadRiskScore = roadRisk.RoadRiskScore
		m.RoadRiskLabel = roadRisk.RoadRiskLabel
	}

	if advisory != nil {
		m.Sources = append(m.Sources, SourceAdvisory)
	}
	if numeric != nil {
		m.Sources = append(m.Sources, SourceNumeric)
	}
	if roadRisk != nil {
		m.Sources = append(m.Sources, SourceRoadRisk)
	}

	return m
}

func windSpeeds(advisory *domain.AdvisoryPeriod, numeric *domain.NumericSample, roadRisk *domain.RoadRiskSample) []float64 {
	var speeds []float64
	if advisory != nil {
		speeds = append(speeds, advisory.WindSpeedMph)
	}
	if numeric != nil {
		speeds = append(speeds, numeric.WindSpeedMph)
	}
	if roadRisk != nil {
		speeds = append(speeds, roadRisk.WindSpeedMph)
	}
	return speeds
}
