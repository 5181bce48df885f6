package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	flightOffersPath = "/v2/shopping/flight-offers"

	// Prices are always requested in a single fixed currency.
	currencyCode = "EUR"

	// Over-fetch beyond a typical results page so the post-fetch filters
	// still leave something to show.
	maxResults = 50
)

// SearchQuery is a validated flight search. Price bounds and stop count are
// deliberately absent: the provider's search endpoint does not support them
// and they are applied after fetch.
type SearchQuery struct {
	Origin            string
	Destination       string
	Date              string
	Adults            int
	PreferredAirlines []string
}

// SearchFlights queries the provider's flight-offers endpoint and returns
// the raw offers in provider order.
func (c *Client) SearchFlights(ctx context.Context, q SearchQuery) ([]RawOffer, error) {
	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.Date)
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("currencyCode", currencyCode)
	params.Set("max", strconv.Itoa(maxResults))
	if len(q.PreferredAirlines) > 0 {
		params.Set("includedAirlineCodes", strings.Join(q.PreferredAirlines, ","))
	}

	body, err := c.get(ctx, "flight-offers", flightOffersPath, params)
	if err != nil {
		return nil, err
	}

	var payload flightOffersResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("parsing search response: %w", err)}
	}

	return payload.Data, nil
}
