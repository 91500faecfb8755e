package nsapi

// Wire shapes of the NS API, limited to the fields nstimes uses.

type stationsResponse struct {
	Payload []stationDTO `json:"payload"`
}

type stationDTO struct {
	ID struct {
		UICCode string `json:"uicCode"`
	} `json:"id"`
	Names struct {
		Long string `json:"long"`
	} `json:"names"`
}

type pricesResponse struct {
	Payload struct {
		Prices []priceDTO `json:"prices"`
	} `json:"payload"`
}

type priceDTO struct {
	TotalPriceInCents    int    `json:"totalPriceInCents"`
	PricePerAdultInCents int    `json:"pricePerAdultInCents"`
	DiscountInCents      *int   `json:"discountInCents"`
	OperatorName         string `json:"operatorName"`
	DiscountType         string `json:"discountType"`
	TravelClass          string `json:"travelClass"`
	DisplayName          string `json:"displayName"`
	IsBestOption         bool   `json:"isBestOption"`
}

type tripsResponse struct {
	Trips []tripDTO `json:"trips"`
}

type tripDTO struct {
	Legs []legDTO `json:"legs"`
}

type legDTO struct {
	Origin      stopDTO `json:"origin"`
	Destination stopDTO `json:"destination"`
	Cancelled   bool    `json:"cancelled"`
	Product     struct {
		CategoryCode string `json:"categoryCode"`
	} `json:"product"`
}

type stopDTO struct {
	Name            string `json:"name"`
	ActualTrack     string `json:"actualTrack"`
	PlannedTrack    string `json:"plannedTrack"`
	PlannedDateTime string `json:"plannedDateTime"`
	ActualDateTime  string `json:"actualDateTime"`
}
