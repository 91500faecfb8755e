package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/evanraalte/nstimes/internal/domain"
)

func TestFindTrips(t *testing.T) {
	dep := time.Date(2025, 3, 14, 8, 12, 0, 0, time.UTC)
	src := &fakeTrips{trips: []domain.Trip{{
		Origin:      "Utrecht Centraal",
		Destination: "Zwolle",
		Track:       "7",
		Departure:   dep,
		Arrival:     dep.Add(47 * time.Minute),
		TrainType:   "IC",
	}}}

	got, err := NewFindTrips(localResolver(), src).Execute(context.Background(), "utrecht c", "zwolle")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.From.ID != 8400621 || got.To.ID != 8400747 {
		t.Fatalf("unexpected stations %+v -> %+v", got.From, got.To)
	}
	if src.from.ID != 8400621 || src.to.ID != 8400747 {
		t.Fatalf("expected resolved stations to reach the source")
	}
	if len(got.Trips) != 1 || got.Trips[0].Track != "7" {
		t.Fatalf("unexpected trips %+v", got.Trips)
	}
}

func TestFindTrips_Ambiguous(t *testing.T) {
	_, err := NewFindTrips(localResolver(), &fakeTrips{}).Execute(context.Background(), "Amsterdam", "Zwolle")
	var re *ResolveError
	if !errors.As(err, &re) || len(re.Lookup.Candidates) != 2 {
		t.Fatalf("expected ambiguous ResolveError, got %v", err)
	}
	if re.Error() != `from station "Amsterdam" is ambiguous: Amsterdam Centraal, Amsterdam Sloterdijk` {
		t.Fatalf("unexpected message %q", re.Error())
	}
}

func TestFindTrips_ChooserDeclines(t *testing.T) {
	choose := func(context.Context, string, domain.StationLookup) (domain.Station, bool, error) {
		return domain.Station{}, false, nil
	}
	uc := NewFindTrips(localResolver(), &fakeTrips{}, WithTripsChooser(choose))

	_, err := uc.Execute(context.Background(), "Amsterdam", "Zwolle")
	var re *ResolveError
	if !errors.As(err, &re) {
		t.Fatalf("expected ResolveError after declined choice, got %v", err)
	}
}

func TestFindTrips_UpstreamError(t *testing.T) {
	boom := &domain.OpError{Op: "nsapi.trips", Kind: domain.KindUpstream, Err: domain.ErrUpstream}
	_, err := NewFindTrips(localResolver(), &fakeTrips{err: boom}).Execute(context.Background(), "Tilburg", "Zwolle")
	if !domain.IsKind(err, domain.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
