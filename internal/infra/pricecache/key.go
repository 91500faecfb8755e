package pricecache

import (
	"fmt"

	"github.com/evanraalte/nstimes/internal/domain"
)

// Key builds the direction-independent cache key "<first>-<second>-<class>".
// Prices do not depend on direction, so the station parts are sorted.
func Key(from, to string, class domain.TravelClass) string {
	first, second := from, to
	if second < first {
		first, second = second, first
	}
	return fmt.Sprintf("%s-%s-%d", first, second, int(class))
}
