// Package offers normalizes raw provider offers into the gateway's
// simplified schema and applies the post-fetch filters. Everything here is
// pure: no I/O, deterministic for a given input.
package offers

import (
	"strings"

	"github.com/you/go-travel-gateway/internal/amadeus"
)

// Offer is the simplified shape returned to the frontend. Top-level fields
// describe the first itinerary only; return itineraries are ignored.
type Offer struct {
	Airline          string    `json:"airline"`
	FlightNumber     string    `json:"flightNumber"`
	DepartureAirport string    `json:"departureAirport"`
	DepartureTime    string    `json:"departureTime"`
	ArrivalAirport   string    `json:"arrivalAirport"`
	ArrivalTime      string    `json:"arrivalTime"`
	Duration         string    `json:"duration"`
	Price            string    `json:"price"`
	Stops            int       `json:"stops"`
	Segments         []Segment `json:"segments"`
}

// Segment is one leg of the offer, carried over verbatim from the provider.
// Unlike the itinerary-level Duration it keeps the provider's format.
type Segment struct {
	Airline          string `json:"airline"`
	FlightNumber     string `json:"flightNumber"`
	DepartureAirport string `json:"departureAirport"`
	DepartureTime    string `json:"departureTime"`
	ArrivalAirport   string `json:"arrivalAirport"`
	ArrivalTime      string `json:"arrivalTime"`
	Duration         string `json:"duration"`
}

// Normalize maps raw offers onto the simplified schema, preserving provider
// order. Offers without a usable first itinerary are skipped.
func Normalize(raw []amadeus.RawOffer) []Offer {
	out := make([]Offer, 0, len(raw))
	for _, r := range raw {
		if len(r.Itineraries) == 0 || len(r.Itineraries[0].Segments) == 0 {
			continue
		}
		it := r.Itineraries[0]
		first := it.Segments[0]
		last := it.Segments[len(it.Segments)-1]

		segs := make([]Segment, 0, len(it.Segments))
		for _, s := range it.Segments {
			segs = append(segs, Segment{
				Airline:          s.CarrierCode,
				FlightNumber:     s.Number,
				DepartureAirport: s.Departure.IataCode,
				DepartureTime:    s.Departure.At,
				ArrivalAirport:   s.Arrival.IataCode,
				ArrivalTime:      s.Arrival.At,
				Duration:         s.Duration,
			})
		}

		out = append(out, Offer{
			Airline:          first.CarrierCode,
			FlightNumber:     first.Number,
			DepartureAirport: first.Departure.IataCode,
			DepartureTime:    first.Departure.At,
			ArrivalAirport:   last.Arrival.IataCode,
			ArrivalTime:      last.Arrival.At,
			Duration:         formatDuration(it.Duration),
			Price:            r.Price.Total + " " + r.Price.Currency,
			Stops:            len(it.Segments) - 1,
			Segments:         segs,
		})
	}
	return out
}

// formatDuration rewrites the provider's ISO-8601 token: PT5H30M -> 5h30m.
func formatDuration(d string) string {
	return strings.ToLower(strings.TrimPrefix(d, "PT"))
}
