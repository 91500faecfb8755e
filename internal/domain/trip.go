package domain

import "time"

// Trip is the first leg of an upstream journey advice.
type Trip struct {
	Origin      string
	Destination string
	Track       string
	Cancelled   bool
	Departure   time.Time
	Arrival     time.Time
	TrainType   string
}
