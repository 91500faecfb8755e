package pricecache

import (
	"fmt"
	"time"

	"github.com/evanraalte/nstimes/internal/domain"
)

const dateLayout = "2006-01-02"

// Entry is a cached price. Expiry is a calendar date (UTC midnight).
type Entry struct {
	PriceCents  int
	TravelClass domain.TravelClass
	ExpiresAt   time.Time
}

// newEntry stamps an entry created at now. It expires on the next January 1st.
func newEntry(cents int, class domain.TravelClass, now time.Time) Entry {
	return Entry{
		PriceCents:  cents,
		TravelClass: class,
		ExpiresAt:   NextJanuaryFirst(now),
	}
}

// NextJanuaryFirst returns January 1st of the year after now, in UTC.
func NextJanuaryFirst(now time.Time) time.Time {
	return time.Date(now.UTC().Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Expired reports whether now is on or after the expiry date.
func (e Entry) Expired(now time.Time) bool {
	return !now.UTC().Before(e.ExpiresAt)
}

// fileEntry is the on-disk shape of an Entry.
type fileEntry struct {
	PriceCents  int    `json:"price_cents"`
	TravelClass int    `json:"travel_class"`
	ExpiresAt   string `json:"expires_at"`
}

func toFile(e Entry) fileEntry {
	return fileEntry{
		PriceCents:  e.PriceCents,
		TravelClass: int(e.TravelClass),
		ExpiresAt:   e.ExpiresAt.Format(dateLayout),
	}
}

func fromFile(key string, fe fileEntry) (Entry, error) {
	exp, err := time.ParseInLocation(dateLayout, fe.ExpiresAt, time.UTC)
	if err != nil {
		return Entry{}, fmt.Errorf("entry %q: expires_at %q: %w", key, fe.ExpiresAt, err)
	}
	class, err := domain.ParseTravelClass(fe.TravelClass)
	if err != nil || fe.TravelClass == 0 {
		return Entry{}, fmt.Errorf("entry %q: travel_class %d is not 1 or 2", key, fe.TravelClass)
	}
	if fe.PriceCents < 0 {
		return Entry{}, fmt.Errorf("entry %q: negative price %d", key, fe.PriceCents)
	}
	return Entry{
		PriceCents:  fe.PriceCents,
		TravelClass: class,
		ExpiresAt:   exp,
	}, nil
}
