package offers

import (
	"strconv"
	"strings"
)

// Criteria are the filters the provider cannot apply server-side.
type Criteria struct {
	MinPrice          *float64
	MaxPrice          *float64
	Stops             *int // exact match, not "at most"
	PreferredAirlines []string
}

// Filter applies the criteria in a fixed order: price floor, price ceiling,
// exact stop count, preferred airlines. Surviving offers keep their
// original order.
func Filter(in []Offer, c Criteria) []Offer {
	out := in
	if c.MinPrice != nil {
		out = keep(out, func(o Offer) bool { return priceTotal(o) >= *c.MinPrice })
	}
	if c.MaxPrice != nil {
		out = keep(out, func(o Offer) bool { return priceTotal(o) <= *c.MaxPrice })
	}
	if c.Stops != nil {
		out = keep(out, func(o Offer) bool { return o.Stops == *c.Stops })
	}
	if len(c.PreferredAirlines) > 0 {
		// Re-check even though the provider-side inclusion filter may have
		// applied already.
		set := make(map[string]struct{}, len(c.PreferredAirlines))
		for _, a := range c.PreferredAirlines {
			set[a] = struct{}{}
		}
		out = keep(out, func(o Offer) bool {
			_, ok := set[o.Airline]
			return ok
		})
	}
	return out
}

func keep(in []Offer, pred func(Offer) bool) []Offer {
	if len(in) == 0 {
		return in
	}
	out := make([]Offer, 0, len(in))
	for _, o := range in {
		if pred(o) {
			out = append(out, o)
		}
	}
	return out
}

// priceTotal parses the numeric portion of the price string. The value is
// used for filtering only and never attached to the offer itself.
func priceTotal(o Offer) float64 {
	amount, _, _ := strings.Cut(o.Price, " ")
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}
	return v
}
