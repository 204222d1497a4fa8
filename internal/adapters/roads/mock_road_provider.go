package roads

import (
	"context"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

// MockRoadProvider returns canned chain controls and stations for tests.
type MockRoadProvider struct {
	ChainControls []domain.ChainControl
	Stations      []domain.StationObservation
	Err           error
}

func (m *MockRoadProvider) FetchChainControls(ctx context.Context) ([]domain.ChainControl, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ChainControls, nil
}

func (m *MockRoadProvider) FetchStations(ctx context.Context) ([]domain.StationObservation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Stations, nil
}
