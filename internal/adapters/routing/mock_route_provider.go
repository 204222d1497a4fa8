package routing

import (
	"context"
	"time"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

// MockRouteProvider returns a canned route for tests.
type MockRouteProvider struct {
	Route *domain.Route
	Err   error
}

func (m *MockRouteProvider) FetchRoute(ctx context.Context, origin, destination string, departure time.Time) (*domain.Route, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Route, nil
}
