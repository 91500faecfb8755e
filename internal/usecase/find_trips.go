package usecase

import (
	"context"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/ports"
)

// TripsResult holds the resolved stations and the upstream journey advice.
type TripsResult struct {
	From  domain.Station
	To    domain.Station
	Trips []domain.Trip
}

type FindTrips struct {
	resolver ports.StationResolver
	trips    ports.TripSource
	choose   ChooseFunc
}

type FindTripsOption func(*FindTrips)

// WithTripsChooser asks choose to settle ambiguous stations.
func WithTripsChooser(choose ChooseFunc) FindTripsOption {
	return func(uc *FindTrips) { uc.choose = choose }
}

func NewFindTrips(r ports.StationResolver, ts ports.TripSource, opts ...FindTripsOption) *FindTrips {
	uc := &FindTrips{resolver: r, trips: ts}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *FindTrips) Execute(ctx context.Context, from, to string) (TripsResult, error) {
	pair, err := resolvePair(ctx, uc.resolver, uc.choose, from, to)
	if err != nil {
		return TripsResult{}, err
	}

	trips, err := uc.trips.Trips(ctx, pair.from, pair.to)
	if err != nil {
		return TripsResult{}, err
	}
	return TripsResult{From: pair.from, To: pair.to, Trips: trips}, nil
}
