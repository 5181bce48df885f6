package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/you/go-travel-gateway/internal/amadeus"
)

// flightsMock implements Flights for tests.
type flightsMock struct {
	offers []amadeus.RawOffer
	err    error
	delay  time.Duration

	calls   atomic.Int32
	lastQry amadeus.SearchQuery
}

func (m *flightsMock) SearchFlights(ctx context.Context, q amadeus.SearchQuery) ([]amadeus.RawOffer, error) {
	m.calls.Add(1)
	m.lastQry = q
	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.delay):
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.offers == nil {
		return nil, errors.New("no stubbed offers")
	}
	return m.offers, nil
}
