package ports

import (
	"context"

	"github.com/evanraalte/nstimes/internal/domain"
)

// StationResolver turns a free-text query into a station lookup outcome.
// NoMatch and Ambiguous are outcomes, not errors; err is reserved for
// failures of the resolver itself (e.g. the remote search being unreachable).
type StationResolver interface {
	Resolve(ctx context.Context, query string) (domain.StationLookup, error)
}
