package amadeus

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

const (
	hotelsByCityPath = "/v1/reference-data/locations/hotels/by-city"
	hotelRadiusKM    = 5
)

// HotelsByCity looks up hotels around a city with a fixed search radius.
// The provider body is returned verbatim.
func (c *Client) HotelsByCity(ctx context.Context, cityCode string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("cityCode", cityCode)
	params.Set("radius", strconv.Itoa(hotelRadiusKM))
	params.Set("radiusUnit", "KM")

	body, err := c.get(ctx, "hotels-by-city", hotelsByCityPath, params)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(body), nil
}
