package domain

import "fmt"

// TravelClass is the NS travel class: 1 (first) or 2 (second).
type TravelClass int

const (
	FirstClass  TravelClass = 1
	SecondClass TravelClass = 2
)

// ParseTravelClass validates a numeric class. Zero means "not given" and maps to second class.
func ParseTravelClass(n int) (TravelClass, error) {
	switch n {
	case 0:
		return SecondClass, nil
	case 1:
		return FirstClass, nil
	case 2:
		return SecondClass, nil
	default:
		return 0, fmt.Errorf("class must be 1 or 2, got %d: %w", n, ErrInvalidInput)
	}
}

// APIValue is the upstream enum value for the class.
func (c TravelClass) APIValue() string {
	if c == FirstClass {
		return "FIRST_CLASS"
	}
	return "SECOND_CLASS"
}

func (c TravelClass) String() string {
	switch c {
	case FirstClass:
		return "1st class"
	case SecondClass:
		return "2nd class"
	default:
		return fmt.Sprintf("class %d", int(c))
	}
}

// TravelClassFromAPI maps an upstream enum value back to a class.
// Unknown values fall back to second class.
func TravelClassFromAPI(v string) TravelClass {
	if v == "FIRST_CLASS" {
		return FirstClass
	}
	return SecondClass
}

// TravelType distinguishes single from return tickets.
type TravelType string

const (
	TravelSingle TravelType = "single"
	TravelReturn TravelType = "return"
)

// PriceOption is one fare offered for a station pair.
type PriceOption struct {
	DisplayName   string
	TravelClass   TravelClass
	TotalCents    int
	PerAdultCents int
	DiscountCents int
	DiscountType  string
	OperatorName  string
	BestOption    bool
}

// PriceQuote is the result of a price lookup for a resolved station pair.
type PriceQuote struct {
	From       Station
	To         Station
	Class      TravelClass
	TravelType TravelType
	Options    []PriceOption
	FromCache  bool
}

// First returns the first offered option, which is what gets cached.
func (q PriceQuote) First() (PriceOption, bool) {
	if len(q.Options) == 0 {
		return PriceOption{}, false
	}
	return q.Options[0], true
}

// FormatEuros renders cents as "€12.34".
func FormatEuros(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s€%d.%02d", sign, cents/100, cents%100)
}
