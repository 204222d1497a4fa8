package ports

import (
	"context"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

// Port: road-sensor and restriction feeds (chain controls, RWIS stations).
type RoadConditionProvider interface {
	FetchChainControls(ctx context.Context) ([]domain.ChainControl, error)
	FetchStations(ctx context.Context) ([]domain.StationObservation, error)
}
