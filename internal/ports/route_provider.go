package ports

import (
	"context"
	"errors"
	"time"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

// ErrNoRoute reports that the routing provider found no route between the
// requested endpoints. It is the one unrecoverable upstream failure.
var ErrNoRoute = errors.New("no route found")

// Port: a boundary for fetching route geometry and trip totals.
type RouteProvider interface {
	// Return the decoded route for an origin/destination pair at a
	// departure time.
	FetchRoute(ctx context.Context, origin, destination string, departure time.Time) (*domain.Route, error)
}
