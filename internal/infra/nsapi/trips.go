package nsapi

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/evanraalte/nstimes/internal/domain"
)

// NS timestamps carry a numeric offset without a colon, e.g. 2025-03-14T08:12:00+0100.
const nsTimeLayout = "2006-01-02T15:04:05-0700"

// Trips fetches journey advice and keeps the first leg of each trip.
func (c *Client) Trips(ctx context.Context, from, to domain.Station) ([]domain.Trip, error) {
	q := url.Values{}
	q.Set("originUicCode", from.ID.String())
	q.Set("destinationUicCode", to.ID.String())

	var resp tripsResponse
	if err := c.get(ctx, "nsapi.trips", tripsPath, q, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.Trip, 0, len(resp.Trips))
	for i, raw := range resp.Trips {
		if len(raw.Legs) == 0 {
			continue
		}
		trip, err := toTrip(raw.Legs[0])
		if err != nil {
			return nil, &domain.OpError{
				Op:   "nsapi.trips",
				Kind: domain.KindUpstream,
				Path: tripsPath,
				Err:  fmt.Errorf("trip %d: %w", i, err),
			}
		}
		out = append(out, trip)
	}
	return out, nil
}

func toTrip(leg legDTO) (domain.Trip, error) {
	dep, err := time.Parse(nsTimeLayout, leg.Origin.PlannedDateTime)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("departure time: %w", err)
	}
	arr, err := time.Parse(nsTimeLayout, leg.Destination.PlannedDateTime)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("arrival time: %w", err)
	}

	track := leg.Origin.ActualTrack
	if track == "" {
		track = leg.Origin.PlannedTrack
	}
	if track == "" {
		track = "?"
	}

	return domain.Trip{
		Origin:      leg.Origin.Name,
		Destination: leg.Destination.Name,
		Track:       track,
		Cancelled:   leg.Cancelled,
		Departure:   dep,
		Arrival:     arr,
		TrainType:   leg.Product.CategoryCode,
	}, nil
}
