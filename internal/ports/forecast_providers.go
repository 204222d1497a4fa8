package ports

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

// Port: the numeric weather feed. One batched call covers all waypoints.
type NumericForecastProvider interface {
	FetchSeries(ctx context.Context, points []orb.Point) ([]domain.NumericSeries, error)
}

// Port: the road-risk-oriented weather feed, fetched per point.
type RoadRiskProvider interface {
	FetchSeries(ctx context.Context, point orb.Point) ([]domain.RoadRiskSample, error)
}

// Port: the advisory-text feed (forecast periods plus active alerts).
type AdvisoryProvider interface {
	FetchForecast(ctx context.Context, point orb.Point) ([]domain.AdvisoryPeriod, error)
	FetchAlerts(ctx context.Context, point orb.Point) ([]domain.Advisory, error)
}
