package ports

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

// Port: the nearby-place lookup used to resolve rest-stop locations.
// A nil Place with nil error means nothing suitable was found.
type PlaceProvider interface {
	FindNearby(ctx context.Context, point orb.Point) (*domain.Place, error)
}
