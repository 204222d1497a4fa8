package dto

import (
	"time"

	"github.com/ddk220-light/drive-conditions/internal/domain"
	"github.com/ddk220-light/drive-conditions/internal/services"
	"github.com/ddk220-light/drive-conditions/internal/units"
)

type WeatherResponse struct {
	TemperatureF      *float64 `json:"temperature_f,omitempty"`
	WindSpeedMph      float64  `json:"wind_speed_mph"`
	WindGustsMph      float64  `json:"wind_gusts_mph"`
	WindDirectionDeg  *float64 `json:"wind_direction_deg,omitempty"`
	PrecipProbability float64  `json:"precip_probability"`
	PrecipType        string   `json:"precip_type"`
	PrecipMmHr        float64  `json:"precip_mm_hr"`
	RainIntensity     string   `json:"rain_intensity"`
	VisibilityMiles   *float64 `json:"visibility_miles,omitempty"`
	FogLevel          string   `json:"fog_level"`
	SnowDepthIn       *float64 `json:"snow_depth_in,omitempty"`
	FreezingLevelFt   *float64 `json:"freezing_level_ft,omitempty"`
	ConditionText     string   `json:"condition_text,omitempty"`
	RoadRiskScore     *float64 `json:"road_risk_score,omitempty"`
	RoadRiskLabel     string   `json:"road_risk_label,omitempty"`
	Sources           []string `json:"sources"`
}

type ChainControlResponse struct {
	Highway     string `json:"highway"`
	Direction   string `json:"direction,omitempty"`
	Level       string `json:"level"`
	Description string `json:"description,omitempty"`
}

type RoadResponse struct {
	ChainControl           *ChainControlResponse `json:"chain_control,omitempty"`
	PavementStatus         string                `json:"pavement_status,omitempty"`
	PavementTempF          *float64              `json:"pavement_temp_f,omitempty"`
	AirTempF               *float64              `json:"air_temp_f,omitempty"`
	StationVisibilityMiles *float64              `json:"station_visibility_miles,omitempty"`
	StationWindMph         *float64              `json:"station_wind_mph,omitempty"`
	StationPrecipType      string                `json:"station_precip_type,omitempty"`
	StationDistanceMiles   *float64              `json:"station_distance_miles,omitempty"`
}

type SegmentResponse struct {
	Index           int               `json:"index"`
	Lat             float64           `json:"lat"`
	Lon             float64           `json:"lon"`
	MileMarker      float64           `json:"mile_marker"`
	Kind            string            `json:"kind"`
	StationName     string            `json:"station_name,omitempty"`
	ETA             time.Time         `json:"eta"`
	TurnInstruction string            `json:"turn_instruction,omitempty"`
	Weather         WeatherResponse   `json:"weather"`
	Road            RoadResponse      `json:"road"`
	SeverityScore   int               `json:"severity_score"`
	SeverityBand    string            `json:"severity_band"`
	Light           string            `json:"light"`
	Sunrise         *time.Time        `json:"sunrise,omitempty"`
	Sunset          *time.Time        `json:"sunset,omitempty"`
	SourceLinks     map[string]string `json:"source_links,omitempty"`
}

type RestStopResponse struct {
	PlaceName       string    `json:"place_name"`
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
	MileMarker      float64   `json:"mile_marker"`
	Arrive          time.Time `json:"arrive"`
	Depart          time.Time `json:"depart"`
	DurationMinutes int       `json:"duration_minutes"`
}

// TripEntryResponse is one itinerary row: a waypoint segment or a spliced
// rest stop, discriminated by Type.
type TripEntryResponse struct {
	Type     string            `json:"type"`
	Segment  *SegmentResponse  `json:"segment,omitempty"`
	RestStop *RestStopResponse `json:"rest_stop,omitempty"`
}

type AdvisoryResponse struct {
	Event            string     `json:"event"`
	Headline         string     `json:"headline,omitempty"`
	Severity         string     `json:"severity,omitempty"`
	Description      string     `json:"description,omitempty"`
	Onset            *time.Time `json:"onset,omitempty"`
	Expires          *time.Time `json:"expires,omitempty"`
	AffectedSegments []int      `json:"affected_segments"`
}

type SlotResponse struct {
	Departure  time.Time           `json:"departure"`
	Arrival    time.Time           `json:"arrival"`
	Entries    []TripEntryResponse `json:"entries"`
	Advisories []AdvisoryResponse  `json:"advisories"`
}

type RouteSummaryResponse struct {
	Summary              string  `json:"summary"`
	TotalDistanceMiles   float64 `json:"total_distance_miles"`
	TotalDurationSeconds int     `json:"total_duration_seconds"`
	EncodedPolyline      string  `json:"encoded_polyline"`
	WaypointCount        int     `json:"waypoint_count"`
}

type TripResponse struct {
	Route       RouteSummaryResponse    `json:"route"`
	Departure   time.Time               `json:"departure"`
	Arrival     time.Time               `json:"arrival"`
	Entries     []TripEntryResponse     `json:"entries"`
	Advisories  []AdvisoryResponse      `json:"advisories"`
	Sources     []string                `json:"sources"`
	WindowStart *time.Time              `json:"window_start,omitempty"`
	WindowEnd   *time.Time              `json:"window_end,omitempty"`
	Slots       map[string]SlotResponse `json:"slots"`
}

func weatherFrom(w domain.MergedObservation) WeatherResponse {
	return WeatherResponse{
		TemperatureF:      w.TemperatureF,
		WindSpeedMph:      w.WindSpeedMph,
		WindGustsMph:      w.WindGustsMph,
		WindDirectionDeg:  w.WindDirectionDeg,
		PrecipProbability: w.PrecipProbability,
		PrecipType:        w.PrecipType,
		PrecipMmHr:        w.PrecipMmHr,
		RainIntensity:     string(w.RainIntensity),
		VisibilityMiles:   w.VisibilityMiles,
		FogLevel:          string(w.FogLevel),
		SnowDepthIn:       w.SnowDepthIn,
		FreezingLevelFt:   w.FreezingLevelFt,
		ConditionText:     w.ConditionText,
		RoadRiskScore:     w.RoadRiskScore,
		RoadRiskLabel:     w.RoadRiskLabel,
		Sources:           w.Sources,
	}
}

func roadFrom(r domain.RoadConditions) RoadResponse {
	res := RoadResponse{
		PavementStatus:         r.PavementStatus,
		PavementTempF:          r.PavementTempF,
		AirTempF:               r.AirTempF,
		StationVisibilityMiles: r.StationVisibility,
		StationWindMph:         r.StationWindMph,
		StationPrecipType:      r.StationPrecipType,
		StationDistanceMiles:   r.StationDistanceMiles,
	}
	if cc := r.ChainControl; cc != nil {
		res.ChainControl = &ChainControlResponse{
			Highway:     cc.Highway,
			Direction:   cc.Direction,
			Level:       cc.Level,
			Description: cc.Description,
		}
	}
	return res
}

func segmentFrom(s *domain.Segment) *SegmentResponse {
	return &SegmentResponse{
		Index:           s.Index,
		Lat:             s.Point.Lat(),
		Lon:             s.Point.Lon(),
		MileMarker:      s.MileMarker,
		Kind:            string(s.Kind),
		StationName:     s.StationName,
		ETA:             s.ETA,
		TurnInstruction: s.TurnInstruction,
		Weather:         weatherFrom(s.Weather),
		Road:            roadFrom(s.Road),
		SeverityScore:   s.SeverityScore,
		SeverityBand:    string(s.SeverityBand),
		Light:           string(s.Light),
		Sunrise:         s.Sunrise,
		Sunset:          s.Sunset,
		SourceLinks:     s.SourceLinks,
	}
}

func restStopFrom(r *domain.RestStop) *RestStopResponse {
	return &RestStopResponse{
		PlaceName:       r.PlaceName,
		Lat:             r.Point.Lat(),
		Lon:             r.Point.Lon(),
		MileMarker:      r.MileMarker,
		Arrive:          r.Arrive,
		Depart:          r.Depart,
		DurationMinutes: r.DurationMinutes,
	}
}

func entriesFrom(entries []domain.TripEntry) []TripEntryResponse {
	out := make([]TripEntryResponse, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Segment != nil:
			out = append(out, TripEntryResponse{Type: "segment", Segment: segmentFrom(e.Segment)})
		case e.Rest != nil:
			out = append(out, TripEntryResponse{Type: "rest_stop", RestStop: restStopFrom(e.Rest)})
		}
	}
	return out
}

func advisoriesFrom(advisories []domain.SlotAdvisory) []AdvisoryResponse {
	out := make([]AdvisoryResponse, 0, len(advisories))
	for _, a := range advisories {
		out = append(out, AdvisoryResponse{
			Event:            a.Event,
			Headline:         a.Headline,
			Severity:         a.Severity,
			Description:      a.Description,
			Onset:            a.Onset,
			Expires:          a.Expires,
			AffectedSegments: a.AffectedSegments,
		})
	}
	return out
}

func slotFrom(s domain.Slot) SlotResponse {
	return SlotResponse{
		Departure:  s.Departure,
		Arrival:    s.Arrival,
		Entries:    entriesFrom(s.Entries),
		Advisories: advisoriesFrom(s.Advisories),
	}
}

// TripFrom maps a resolved trip onto the wire shape. Slots are keyed by
// their ISO-8601 departure time.
func TripFrom(res *services.TripResult) TripResponse {
	slots := make(map[string]SlotResponse, len(res.Slots))
	for _, s := range res.Slots {
		slots[s.Departure.Format(time.RFC3339)] = slotFrom(s)
	}

	out := TripResponse{
		Route: RouteSummaryResponse{
			Summary:              res.Route.Summary,
			TotalDistanceMiles:   units.MToMiles(float64(res.Route.TotalDistanceMeters)),
			TotalDurationSeconds: res.Route.TotalDurationSeconds,
			EncodedPolyline:      res.Route.EncodedPolyline,
			WaypointCount:        len(res.Waypoints),
		},
		Departure:  res.Requested.Departure,
		Arrival:    res.Requested.Arrival,
		Entries:    entriesFrom(res.Requested.Entries),
		Advisories: advisoriesFrom(res.Requested.Advisories),
		Sources:    res.Sources,
		Slots:      slots,
	}
	if len(res.Window) > 0 {
		out.WindowStart = &res.Window[0]
		out.WindowEnd = &res.Window[len(res.Window)-1]
	}
	return out
}
