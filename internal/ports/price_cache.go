package ports

import "github.com/evanraalte/nstimes/internal/domain"

// PriceCache memoizes single-trip prices per unordered station pair and class.
type PriceCache interface {
	Get(from, to string, class domain.TravelClass) (cents int, ok bool)
	// Set reports a non-nil error when the entry was stored in memory but could not be persisted.
	Set(from, to string, class domain.TravelClass, cents int) error
}
