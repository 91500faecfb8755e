package ports

import (
	"context"

	"github.com/evanraalte/nstimes/internal/domain"
)

// PriceSource fetches fares from upstream.
type PriceSource interface {
	Prices(ctx context.Context, from, to domain.Station, class domain.TravelClass, tt domain.TravelType) ([]domain.PriceOption, error)
}
