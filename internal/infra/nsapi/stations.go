package nsapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/ports"
	"github.com/evanraalte/nstimes/internal/stations"
)

const searchLimit = 10

// SearchStations queries the upstream station search.
func (c *Client) SearchStations(ctx context.Context, query string) ([]domain.Station, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("includeNonPlannableStations", "false")
	q.Set("limit", strconv.Itoa(searchLimit))
	return c.stations(ctx, "nsapi.stations", q)
}

// AllStations lists every plannable station NS knows, in upstream order.
func (c *Client) AllStations(ctx context.Context) ([]domain.Station, error) {
	q := url.Values{}
	q.Set("includeNonPlannableStations", "false")
	return c.stations(ctx, "nsapi.all_stations", q)
}

func (c *Client) stations(ctx context.Context, op string, q url.Values) ([]domain.Station, error) {
	var resp stationsResponse
	if err := c.get(ctx, op, stationsPath, q, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.Station, 0, len(resp.Payload))
	for _, s := range resp.Payload {
		id, err := strconv.Atoi(strings.TrimSpace(s.ID.UICCode))
		if err != nil {
			return nil, &domain.OpError{
				Op:   op,
				Kind: domain.KindUpstream,
				Path: stationsPath,
				Err:  fmt.Errorf("station %q has invalid uicCode %q: %w", s.Names.Long, s.ID.UICCode, domain.ErrUpstream),
			}
		}
		out = append(out, domain.Station{ID: domain.StationID(id), Name: s.Names.Long})
	}
	return out, nil
}

// RemoteResolver resolves station queries with the live upstream search.
// Upstream ranks results itself, so the candidate order is the API's order.
type RemoteResolver struct {
	client *Client
}

func NewRemoteResolver(c *Client) *RemoteResolver {
	return &RemoteResolver{client: c}
}

var _ ports.StationResolver = (*RemoteResolver)(nil)

func (r *RemoteResolver) Resolve(ctx context.Context, query string) (domain.StationLookup, error) {
	if strings.TrimSpace(query) == "" {
		return domain.NoMatch(query), nil
	}

	found, err := r.client.SearchStations(ctx, query)
	if err != nil {
		return domain.StationLookup{}, err
	}

	// Same precedence and matching forms as the local directory: an exact
	// match wins.
	for _, s := range found {
		if stations.ExactMatch(s, query) {
			return domain.SingleMatch(query, s), nil
		}
	}
	return domain.Ambiguous(query, found), nil
}
