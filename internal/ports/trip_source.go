package ports

import (
	"context"

	"github.com/evanraalte/nstimes/internal/domain"
)

// TripSource fetches journey advice from upstream.
type TripSource interface {
	Trips(ctx context.Context, from, to domain.Station) ([]domain.Trip, error)
}
