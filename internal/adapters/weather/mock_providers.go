package weather

import (
	"context"
	"sync/atomic"

	"github.com/paulmach/orb"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

// Canned-feed providers for tests. Each returns the same series for every
// point unless an error is set.

type MockNumericProvider struct {
	Series domain.NumericSeries
	Err    error
}

func (m *MockNumericProvider) FetchSeries(ctx context.Context, points []orb.Point) ([]domain.NumericSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.NumericSeries, len(points))
	for i := range out {
		out[i] = m.Series
	}
	return out, nil
}

type MockRoadRiskProvider struct {
	Samples []domain.RoadRiskSample
	Err     error
	Calls   atomic.Int64
}

func (m *MockRoadRiskProvider) FetchSeries(ctx context.Context, point orb.Point) ([]domain.RoadRiskSample, error) {
	m.Calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Samples, nil
}

type MockAdvisoryProvider struct {
	Periods []domain.AdvisoryPeriod
	Alerts  []domain.Advisory
	Err     error
}

func (m *MockAdvisoryProvider) FetchForecast(ctx context.Context, point orb.Point) ([]domain.AdvisoryPeriod, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Periods, nil
}

func (m *MockAdvisoryProvider) FetchAlerts(ctx context.Context, point orb.Point) ([]domain.Advisory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Alerts, nil
}
