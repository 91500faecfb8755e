package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/ports"
)

// ResolveError reports a query that did not resolve to exactly one station.
// Lookup carries the candidates so callers can present them.
type ResolveError struct {
	Field  string
	Query  string
	Lookup domain.StationLookup
}

func (e *ResolveError) Error() string {
	switch e.Lookup.Kind {
	case domain.MatchAmbiguous:
		names := make([]string, 0, len(e.Lookup.Candidates))
		for _, c := range e.Lookup.Candidates {
			names = append(names, c.Name)
		}
		return fmt.Sprintf("%s station %q is ambiguous: %s", e.Field, e.Query, strings.Join(names, ", "))
	default:
		return fmt.Sprintf("%s station %q not found", e.Field, e.Query)
	}
}

func (e *ResolveError) Unwrap() error {
	if e.Lookup.Kind == domain.MatchAmbiguous {
		return domain.ErrInvalidInput
	}
	return domain.ErrNotFound
}

// ChooseFunc lets an interactive caller settle an ambiguous lookup.
// ok=false means the user declined to pick.
type ChooseFunc func(ctx context.Context, field string, lookup domain.StationLookup) (s domain.Station, ok bool, err error)

type stationPair struct {
	from domain.Station
	to   domain.Station
}

func resolveStation(ctx context.Context, r ports.StationResolver, choose ChooseFunc, field, query string) (domain.Station, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Station{}, &domain.OpError{
			Op:   "usecase.resolve",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("%s station is required: %w", field, domain.ErrInvalidInput),
		}
	}

	lookup, err := r.Resolve(ctx, query)
	if err != nil {
		return domain.Station{}, err
	}
	if s, ok := lookup.Station(); ok {
		return s, nil
	}

	if lookup.Kind == domain.MatchAmbiguous && choose != nil {
		s, ok, err := choose(ctx, field, lookup)
		if err != nil {
			return domain.Station{}, err
		}
		if ok {
			return s, nil
		}
	}
	return domain.Station{}, &ResolveError{Field: field, Query: query, Lookup: lookup}
}

func resolvePair(ctx context.Context, r ports.StationResolver, choose ChooseFunc, from, to string) (stationPair, error) {
	f, err := resolveStation(ctx, r, choose, "from", from)
	if err != nil {
		return stationPair{}, err
	}
	t, err := resolveStation(ctx, r, choose, "to", to)
	if err != nil {
		return stationPair{}, err
	}
	return stationPair{from: f, to: t}, nil
}
