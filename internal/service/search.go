package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/you/go-travel-gateway/internal/amadeus"
	"github.com/you/go-travel-gateway/internal/metrics"
	"github.com/you/go-travel-gateway/internal/offers"
)

// Flights is the slice of the provider client the search path needs.
type Flights interface {
	SearchFlights(ctx context.Context, q amadeus.SearchQuery) ([]amadeus.RawOffer, error)
}

// Query is a validated flight search including the post-fetch filters.
type Query struct {
	Origin            string
	Destination       string
	Date              string
	Adults            int
	PreferredAirlines []string
	Stops             *int
	MinPrice          *float64
	MaxPrice          *float64
}

type cacheEntry struct {
	offers    []amadeus.RawOffer
	expiresAt time.Time
}

// SearchService runs flight searches: provider fetch (with a short-lived
// raw-result cache), then normalize and filter per request.
type SearchService struct {
	flights Flights
	timeout time.Duration
	ttl     time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
	group singleflight.Group
}

func NewSearchService(flights Flights, timeout, ttl time.Duration) *SearchService {
	return &SearchService{
		flights: flights,
		timeout: timeout,
		ttl:     ttl,
		cache:   make(map[string]cacheEntry),
	}
}

// upstreamKey identifies the provider-side query only. Filters are not part
// of the key: two requests differing only in filters share one fetch.
func upstreamKey(q Query) string {
	return q.Origin + "|" + q.Destination + "|" + q.Date + "|" +
		strconv.Itoa(q.Adults) + "|" + strings.Join(q.PreferredAirlines, ",")
}

// Search fetches raw offers, normalizes them and applies the post-fetch
// filters. Filters always run per request, even on a cache hit.
func (s *SearchService) Search(ctx context.Context, q Query) ([]offers.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.rawOffers(ctx, q)
	if err != nil {
		return nil, err
	}

	norm := offers.Normalize(raw)
	return offers.Filter(norm, offers.Criteria{
		MinPrice:          q.MinPrice,
		MaxPrice:          q.MaxPrice,
		Stops:             q.Stops,
		PreferredAirlines: q.PreferredAirlines,
	}), nil
}

func (s *SearchService) rawOffers(ctx context.Context, q Query) ([]amadeus.RawOffer, error) {
	key := upstreamKey(q)

	// fast cache path
	s.mu.RLock()
	if ce, ok := s.cache[key]; ok && time.Now().Before(ce.expiresAt) {
		s.mu.RUnlock()
		metrics.SearchCacheHitsTotal.Inc()
		return ce.offers, nil
	}
	s.mu.RUnlock()

	// collapse concurrent identical fetches into one provider call
	v, err, _ := s.group.Do(key, func() (any, error) {
		raw, err := s.flights.SearchFlights(ctx, amadeus.SearchQuery{
			Origin:            q.Origin,
			Destination:       q.Destination,
			Date:              q.Date,
			Adults:            q.Adults,
			PreferredAirlines: q.PreferredAirlines,
		})
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[key] = cacheEntry{offers: raw, expiresAt: time.Now().Add(s.ttl)}
		s.mu.Unlock()
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]amadeus.RawOffer), nil
}
