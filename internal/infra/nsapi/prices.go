package nsapi

import (
	"context"
	"net/url"

	"github.com/evanraalte/nstimes/internal/domain"
)

// Prices fetches fares for one adult between two stations.
func (c *Client) Prices(ctx context.Context, from, to domain.Station, class domain.TravelClass, tt domain.TravelType) ([]domain.PriceOption, error) {
	if tt == "" {
		tt = domain.TravelSingle
	}

	q := url.Values{}
	q.Set("fromStation", from.ID.String())
	q.Set("toStation", to.ID.String())
	q.Set("travelClass", class.APIValue())
	q.Set("travelType", string(tt))
	q.Set("isJointJourney", "false")
	q.Set("adults", "1")
	q.Set("children", "0")

	var resp pricesResponse
	if err := c.get(ctx, "nsapi.prices", pricePath, q, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.PriceOption, 0, len(resp.Payload.Prices))
	for _, p := range resp.Payload.Prices {
		out = append(out, toPriceOption(p))
	}
	return out, nil
}

func toPriceOption(p priceDTO) domain.PriceOption {
	opt := domain.PriceOption{
		DisplayName:   p.DisplayName,
		TravelClass:   domain.TravelClassFromAPI(p.TravelClass),
		TotalCents:    p.TotalPriceInCents,
		PerAdultCents: p.PricePerAdultInCents,
		DiscountType:  p.DiscountType,
		OperatorName:  p.OperatorName,
		BestOption:    p.IsBestOption,
	}
	if p.DiscountInCents != nil {
		opt.DiscountCents = *p.DiscountInCents
	}
	if opt.DiscountType == "" {
		opt.DiscountType = "NONE"
	}
	return opt
}
