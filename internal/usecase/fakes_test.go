package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/ports"
	"github.com/evanraalte/nstimes/internal/stations"
)

var testDirectory = stations.MustNewDirectory([]domain.Station{
	{ID: 8400058, Name: "Amsterdam Centraal"},
	{ID: 8400131, Name: "Amsterdam Sloterdijk"},
	{ID: 8400055, Name: "Amersfoort Centraal"},
	{ID: 8400597, Name: "Tilburg"},
	{ID: 8400282, Name: "Den Haag Centraal"},
	{ID: 8400621, Name: "Utrecht Centraal"},
	{ID: 8400747, Name: "Zwolle"},
})

func localResolver() ports.StationResolver {
	return stations.NewLocalResolver(testDirectory)
}

type fakePrices struct {
	mu      sync.Mutex
	calls   int
	lastTT  domain.TravelType
	options []domain.PriceOption
	err     error
}

func (f *fakePrices) Prices(_ context.Context, _, _ domain.Station, _ domain.TravelClass, tt domain.TravelType) ([]domain.PriceOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastTT = tt
	return f.options, f.err
}

type fakeTrips struct {
	from, to domain.Station
	trips    []domain.Trip
	err      error
}

func (f *fakeTrips) Trips(_ context.Context, from, to domain.Station) ([]domain.Trip, error) {
	f.from, f.to = from, to
	return f.trips, f.err
}

type failingCache struct {
	sets int
}

func (c *failingCache) Get(string, string, domain.TravelClass) (int, bool) { return 0, false }

func (c *failingCache) Set(string, string, domain.TravelClass, int) error {
	c.sets++
	return errors.New("disk full")
}

type failingResolver struct{ err error }

func (r failingResolver) Resolve(context.Context, string) (domain.StationLookup, error) {
	return domain.StationLookup{}, r.err
}

var (
	_ ports.PriceSource     = (*fakePrices)(nil)
	_ ports.TripSource      = (*fakeTrips)(nil)
	_ ports.PriceCache      = (*failingCache)(nil)
	_ ports.StationResolver = failingResolver{}
)
