package stations

import (
	"context"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/ports"
)

// LocalResolver resolves queries against an in-memory Directory.
type LocalResolver struct {
	dir *Directory
}

func NewLocalResolver(dir *Directory) *LocalResolver {
	return &LocalResolver{dir: dir}
}

var _ ports.StationResolver = (*LocalResolver)(nil)

// Resolve never returns an error; the context is accepted to satisfy the port.
func (r *LocalResolver) Resolve(_ context.Context, query string) (domain.StationLookup, error) {
	return r.dir.Lookup(query), nil
}
