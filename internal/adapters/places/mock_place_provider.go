package places

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

// MockPlaceProvider returns canned places for tests, keyed by rounded
// coordinates. Unknown points return no place.
type MockPlaceProvider struct {
	Places map[orb.Point]domain.Place
	Err    error
}

func (m *MockPlaceProvider) FindNearby(ctx context.Context, point orb.Point) (*domain.Place, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if p, ok := m.Places[point]; ok {
		return &p, nil
	}
	return nil, nil
}
