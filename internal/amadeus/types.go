package amadeus

// RawOffer is one flight offer as returned by the provider's search
// endpoint, reduced to the fields the gateway consumes.
type RawOffer struct {
	Itineraries []Itinerary `json:"itineraries"`
	Price       Price       `json:"price"`
}

// Itinerary is one directional journey composed of one or more segments.
type Itinerary struct {
	Duration string    `json:"duration"` // ISO8601 token, e.g. PT5H30M
	Segments []Segment `json:"segments"`
}

// Segment is a single non-stop flight leg.
type Segment struct {
	Departure   Endpoint `json:"departure"`
	Arrival     Endpoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
	Duration    string   `json:"duration"`
}

// Endpoint is an airport plus a local timestamp.
type Endpoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

// Price is the itinerary-level total.
type Price struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

type flightOffersResponse struct {
	Data []RawOffer `json:"data"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type errorResponse struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}
