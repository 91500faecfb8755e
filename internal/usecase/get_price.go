package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/ports"
)

// CachedPriceName is the display name of an option served from the cache.
const CachedPriceName = "Cached Price"

type PriceRequest struct {
	From   string
	To     string
	Class  domain.TravelClass
	Return bool
}

type GetPrice struct {
	resolver ports.StationResolver
	prices   ports.PriceSource
	cache    ports.PriceCache
	choose   ChooseFunc
	logger   *slog.Logger
}

type GetPriceOption func(*GetPrice)

// WithCache enables price caching for single trips. A nil cache disables it.
func WithCache(c ports.PriceCache) GetPriceOption {
	return func(uc *GetPrice) { uc.cache = c }
}

func WithLogger(l *slog.Logger) GetPriceOption {
	return func(uc *GetPrice) {
		if l != nil {
			uc.logger = l
		}
	}
}

func WithPriceChooser(choose ChooseFunc) GetPriceOption {
	return func(uc *GetPrice) { uc.choose = choose }
}

func NewGetPrice(r ports.StationResolver, ps ports.PriceSource, opts ...GetPriceOption) *GetPrice {
	uc := &GetPrice{
		resolver: r,
		prices:   ps,
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *GetPrice) Execute(ctx context.Context, req PriceRequest) (domain.PriceQuote, error) {
	class := req.Class
	if class == 0 {
		class = domain.SecondClass
	}
	if _, err := domain.ParseTravelClass(int(class)); err != nil {
		return domain.PriceQuote{}, &domain.OpError{Op: "usecase.price", Kind: domain.KindInvalidInput, Err: err}
	}

	pair, err := resolvePair(ctx, uc.resolver, uc.choose, req.From, req.To)
	if err != nil {
		return domain.PriceQuote{}, err
	}

	quote := domain.PriceQuote{
		From:       pair.from,
		To:         pair.to,
		Class:      class,
		TravelType: domain.TravelSingle,
	}
	if req.Return {
		quote.TravelType = domain.TravelReturn
	}

	// Only single trips are cached; return fares are always fetched.
	cacheable := uc.cache != nil && !req.Return

	if cacheable {
		if cents, ok := uc.cache.Get(pair.from.Name, pair.to.Name, class); ok {
			uc.logger.Debug("price.cache_hit", "from", pair.from.Name, "to", pair.to.Name, "class", int(class))
			quote.FromCache = true
			quote.Options = []domain.PriceOption{{
				DisplayName:   CachedPriceName,
				TravelClass:   class,
				TotalCents:    cents,
				PerAdultCents: cents,
				DiscountType:  "NONE",
				BestOption:    true,
			}}
			return quote, nil
		}
	}

	opts, err := uc.prices.Prices(ctx, pair.from, pair.to, class, quote.TravelType)
	if err != nil {
		return domain.PriceQuote{}, err
	}
	if len(opts) == 0 {
		return domain.PriceQuote{}, &domain.OpError{
			Op:   "usecase.price",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("no prices between %s and %s: %w", pair.from.Name, pair.to.Name, domain.ErrNotFound),
		}
	}
	quote.Options = opts

	if cacheable {
		if err := uc.cache.Set(pair.from.Name, pair.to.Name, class, opts[0].TotalCents); err != nil {
			uc.logger.Warn("price.cache_write_failed", "from", pair.from.Name, "to", pair.to.Name, "err", err)
		}
	}
	return quote, nil
}
