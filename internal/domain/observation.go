package domain

import "time"

// Per-source forecast samples. Feed payloads are converted into these typed
// records immediately after parsing so the core never touches untyped maps.

// NumericSample is one hourly record from the numeric weather source.
type NumericSample struct {
	Time             time.Time
	TemperatureF     float64
	PrecipMmHr       float64
	SnowfallCmHr     float64
	SnowDepthIn      float64
	VisibilityMiles  float64
	WindSpeedMph     float64
	WindGustsMph     float64
	WindDirectionDeg float64
	FreezingLevelFt  float64
	WeatherCode      int
}

// SunDay holds sunrise/sunset for one calendar day at a waypoint.
type SunDay struct {
	Date    string
	Sunrise time.Time
	Sunset  time.Time
}

// NumericSeries is the full per-waypoint series from the numeric source,
// fetched once per request and re-indexed per slot.
type NumericSeries struct {
	Samples []NumericSample
	Days    []SunDay
}

// RoadRiskSample is one interval from the road-risk-oriented weather source.
type RoadRiskSample struct {
	Time              time.Time
	TemperatureF      float64
	PrecipProbability float64
	PrecipType        string
	WindSpeedMph      float64
	WindGustsMph      float64
	VisibilityMiles   float64
	WeatherText       string
	RoadRiskScore     *float64
	RoadRiskLabel     string
}

// AdvisoryPeriod is one forecast period from the advisory-text source.
type AdvisoryPeriod struct {
	Start             time.Time
	End               time.Time
	TemperatureF      float64
	WindSpeedMph      float64
	WindDirection     string
	ConditionText     string
	PrecipProbability float64
}

// Advisory is an active weather alert. Onset/Expires are optional.
type Advisory struct {
	Event       string
	Headline    string
	Severity    string
	Description string
	Onset       *time.Time
	Expires     *time.Time
}

// RainIntensity classifies liquid precipitation rate.
type RainIntensity string

const (
	RainNone     RainIntensity = "none"
	RainLight    RainIntensity = "light"
	RainModerate RainIntensity = "moderate"
	RainHeavy    RainIntensity = "heavy"
)

// FogLevel classifies visibility-reducing fog.
type FogLevel string

const (
	FogNone   FogLevel = "none"
	FogPatchy FogLevel = "patchy"
	FogDense  FogLevel = "dense"
)

// LightLevel classifies ambient daylight at an arrival time.
type LightLevel string

const (
	LightDay      LightLevel = "day"
	LightTwilight LightLevel = "twilight"
	LightNight    LightLevel = "night"
)

// SeverityBand is the green/yellow/red banding of a hazard score.
type SeverityBand string

const (
	BandGreen  SeverityBand = "green"
	BandYellow SeverityBand = "yellow"
	BandRed    SeverityBand = "red"
)

// MergedObservation is the per-point synthesis of every source that supplied
// data. Pointer fields are nil when no contributing source carried the field.
// Recomputed wholesale on each resolution pass, never patched in place.
type MergedObservation struct {
	TemperatureF      *float64
	WindSpeedMph      float64
	WindGustsMph      float64
	WindDirectionDeg  *float64
	PrecipProbability float64
	PrecipType        string
	PrecipMmHr        float64
	RainIntensity     RainIntensity
	VisibilityMiles   *float64
	FogLevel          FogLevel
	SnowDepthIn       *float64
	FreezingLevelFt   *float64
	ConditionText     string
	RoadRiskScore     *float64
	RoadRiskLabel     string
	// Sources lists the feeds that contributed at least one field.
	Sources []string
}
