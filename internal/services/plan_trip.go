package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"github.com/ddk220-light/drive-conditions/internal/domain"
	"github.com/ddk220-light/drive-conditions/internal/platform/obs"
	"github.com/ddk220-light/drive-conditions/internal/ports"
)

// Defaults for the optional trip parameters.
const (
	DefaultSpeedFactor  = 1.0
	DefaultRestInterval = 150 * time.Minute
	DefaultRestDuration = 20 * time.Minute
)

// feedFetchLimit bounds concurrent upstream feed calls per request.
const feedFetchLimit = 5

// roadRiskSampleLimit caps the per-point road-risk feed calls per route;
// waypoints borrow the nearest sampled series.
const roadRiskSampleLimit = 5

// Planner owns every upstream port and turns one origin/destination/departure
// request into a fully resolved multi-slot trip. It holds no request state;
// everything lives in the request-scoped RawSeries.
type Planner struct {
	routes   ports.RouteProvider
	numeric  ports.NumericForecastProvider
	roadRisk ports.RoadRiskProvider
	advisory ports.AdvisoryProvider
	roads    ports.RoadConditionProvider
	places   ports.PlaceProvider
	now      func() time.Time
}

func NewPlanner(routes ports.RouteProvider, numeric ports.NumericForecastProvider, roadRisk ports.RoadRiskProvider, advisory ports.AdvisoryProvider, roads ports.RoadConditionProvider, places ports.PlaceProvider) *Planner {
	return &Planner{
		routes:   routes,
		numeric:  numeric,
		roadRisk: roadRisk,
		advisory: advisory,
		roads:    roads,
		places:   places,
		now:      time.Now,
	}
}

// TripRequest carries the validated request parameters. Zero values for the
// optional fields select the defaults.
type TripRequest struct {
	Origin       string
	Destination  string
	Departure    time.Time
	SpeedFactor  float64
	RestInterval time.Duration
	RestDuration time.Duration
}

func (r *TripRequest) applyDefaults() {
	if r.SpeedFactor <= 0 {
		r.SpeedFactor = DefaultSpeedFactor
	}
	if r.RestInterval <= 0 {
		r.RestInterval = DefaultRestInterval
	}
	if r.RestDuration <= 0 {
		r.RestDuration = DefaultRestDuration
	}
}

// TripResult is the full multi-slot answer for one request.
type TripResult struct {
	Route     *domain.Route
	Waypoints []domain.Waypoint
	RestPlans []domain.RestStopPlan
	Window    []time.Time
	Slots     []domain.Slot
	Requested domain.Slot
	Sources   []string
}

// PlanTrip resolves the route, gathers every feed once, and precomputes a
// slot for each hourly departure in the window. Only a routing failure is
// fatal; a dead weather or road feed degrades that source to absent.
func (p *Planner) PlanTrip(ctx context.Context, req TripRequest) (_ *TripResult, err error) {
	defer obs.Time(ctx, "plan_trip")(&err)
	req.applyDefaults()

	route, err := p.routes.FetchRoute(ctx, req.Origin, req.Destination, req.Departure)
	if err != nil {
		return nil, fmt.Errorf("fetch route: %w", err)
	}

	raw := &domain.RawSeries{}

	// Road feeds first: station positions drive waypoint placement.
	var roadGroup errgroup.Group
	roadGroup.Go(func() error {
		stations, ferr := p.roads.FetchStations(ctx)
		if ferr != nil {
			log.Printf("level=warn op=fetch_stations err=%q", ferr)
			return nil
		}
		raw.Stations = stations
		return nil
	})
	roadGroup.Go(func() error {
		controls, ferr := p.roads.FetchChainControls(ctx)
		if ferr != nil {
			log.Printf("level=warn op=fetch_chain_controls err=%q", ferr)
			return nil
		}
		raw.ChainControls = controls
		return nil
	})
	_ = roadGroup.Wait()

	waypoints := PlaceWaypoints(route.Points, raw.Stations, DefaultPlacementParams())
	if len(waypoints) == 0 {
		return nil, fmt.Errorf("route %q to %q produced no waypoints", req.Origin, req.Destination)
	}

	p.fetchForecasts(ctx, waypoints, raw)
	raw.Sources = collectSources(raw)

	// Rest positions are fixed from the requested departure's adjusted
	// ETAs and reused across every slot, so a stop never drifts between
	// slots.
	restPlans := p.planRests(ctx, route, waypoints, raw, req)

	window := DepartureWindow(p.now(), req.Departure)
	slots := ResolveSlots(ctx, route, waypoints, raw, window, req.SpeedFactor, restPlans, req.RestDuration)
	requested := ResolveSlot(route, waypoints, raw, req.Departure, req.SpeedFactor, restPlans, req.RestDuration)

	return &TripResult{
		Route:     route,
		Waypoints: waypoints,
		RestPlans: restPlans,
		Window:    window,
		Slots:     slots,
		Requested: requested,
		Sources:   raw.Sources,
	}, nil
}

// fetchForecasts fills the per-waypoint series with bounded fan-out. Each
// feed failure is logged and leaves that source empty.
func (p *Planner) fetchForecasts(ctx context.Context, waypoints []domain.Waypoint, raw *domain.RawSeries) {
	n := len(waypoints)
	raw.Numeric = make([]domain.NumericSeries, n)
	raw.RoadRisk = make([][]domain.RoadRiskSample, n)
	raw.AdvisoryPeriods = make([][]domain.AdvisoryPeriod, n)
	raw.Alerts = make([][]domain.Advisory, n)

	points := make([]orb.Point, n)
	for i, wp := range waypoints {
		points[i] = wp.Point
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(feedFetchLimit)

	g.Go(func() error {
		series, ferr := p.numeric.FetchSeries(gctx, points)
		if ferr != nil {
			log.Printf("level=warn op=fetch_numeric err=%q", ferr)
			return nil
		}
		for i := 0; i < n && i < len(series); i++ {
			raw.Numeric[i] = series[i]
		}
		return nil
	})

	samples := sampleIndices(n, roadRiskSampleLimit)
	sampled := make([][]domain.RoadRiskSample, len(samples))
	for si, wi := range samples {
		si, wi := si, wi
		g.Go(func() error {
			series, ferr := p.roadRisk.FetchSeries(gctx, points[wi])
			if ferr != nil {
				log.Printf("level=warn op=fetch_road_risk waypoint=%d err=%q", wi, ferr)
				return nil
			}
			sampled[si] = series
			return nil
		})
	}

	for i := range waypoints {
		i := i
		g.Go(func() error {
			periods, ferr := p.advisory.FetchForecast(gctx, points[i])
			if ferr != nil {
				log.Printf("level=warn op=fetch_advisory waypoint=%d err=%q", i, ferr)
				return nil
			}
			raw.AdvisoryPeriods[i] = periods
			return nil
		})
		g.Go(func() error {
			alerts, ferr := p.advisory.FetchAlerts(gctx, points[i])
			if ferr != nil {
				log.Printf("level=warn op=fetch_alerts waypoint=%d err=%q", i, ferr)
				return nil
			}
			raw.Alerts[i] = alerts
			return nil
		})
	}

	_ = g.Wait()

	// Map every waypoint onto the nearest sampled road-risk series by
	// along-route distance.
	for i := range waypoints {
		best := -1
		bestDiff := 0.0
		for si, wi := range samples {
			diff := math.Abs(waypoints[i].RouteMiles - waypoints[wi].RouteMiles)
			if best < 0 || diff < bestDiff {
				best = si
				bestDiff = diff
			}
		}
		if best >= 0 {
			raw.RoadRisk[i] = sampled[best]
		}
	}
}

func collectSources(raw *domain.RawSeries) []string {
	set := make(map[string]struct{})
	for _, s := range raw.Numeric {
		if len(s.Samples) > 0 {
			set[SourceNumeric] = struct{}{}
			break
		}
	}
	for _, s := range raw.RoadRisk {
		if len(s) > 0 {
			set[SourceRoadRisk] = struct{}{}
			break
		}
	}
	for i := range raw.AdvisoryPeriods {
		if len(raw.AdvisoryPeriods[i]) > 0 || len(raw.Alerts[i]) > 0 {
			set[SourceAdvisory] = struct{}{}
			break
		}
	}
	if len(raw.Stations) > 0 || len(raw.ChainControls) > 0 {
		set[SourceRoadFeed] = struct{}{}
	}

	sources := make([]string, 0, len(set))
	for s := range set {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return sources
}

// sampleIndices picks up to max evenly spread indices from n, always
// including the first and last.
func sampleIndices(n, max int) []int {
	if n <= max {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, 0, max)
	for i := 0; i < max; i++ {
		idx = append(idx, int(math.Round(float64(i)*float64(n-1)/float64(max-1))))
	}
	return idx
}

// planRests computes the fixed rest positions from the requested departure's
// adjusted ETAs and resolves each position to a named place once.
func (p *Planner) planRests(ctx context.Context, route *domain.Route, waypoints []domain.Waypoint, raw *domain.RawSeries, req TripRequest) []domain.RestStopPlan {
	total := time.Duration(route.TotalDurationSeconds) * time.Second

	factor := req.SpeedFactor
	if factor < minSpeedFactor {
		factor = minSpeedFactor
	}

	provisional := BaseETAs(waypoints, time.Duration(float64(total)/factor), req.Departure)
	slowdowns := SegmentSlowdowns(waypoints, raw, provisional)
	adjusted := AdjustedETAs(waypoints, total, req.Departure, factor, slowdowns)

	positions := PlanRestStops(adjusted, req.RestInterval)
	return ResolveRestPlaces(ctx, p.places, waypoints, positions)
}
