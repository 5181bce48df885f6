package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/go-travel-gateway/internal/amadeus"
	"github.com/you/go-travel-gateway/internal/httpx"
	"github.com/you/go-travel-gateway/internal/offers"
	"github.com/you/go-travel-gateway/internal/service"
)

type searcherMock struct {
	offers  []offers.Offer
	err     error
	calls   int
	lastQry service.Query
}

func (m *searcherMock) Search(_ context.Context, q service.Query) ([]offers.Offer, error) {
	m.calls++
	m.lastQry = q
	return m.offers, m.err
}

type hotelsMock struct {
	body  json.RawMessage
	err   error
	calls int
	city  string
}

func (m *hotelsMock) HotelsByCity(_ context.Context, cityCode string) (json.RawMessage, error) {
	m.calls++
	m.city = cityCode
	return m.body, m.err
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestSearchHandler_OK(t *testing.T) {
	t.Parallel()

	mock := &searcherMock{offers: []offers.Offer{
		{Airline: "AF", Price: "150.00 EUR", Stops: 0},
	}}
	h := httpx.SearchHandler(mock)

	rec := postJSON(t, h, "/search", `{
		"origin": "ams",
		"destination": "bcn",
		"date": "2026-10-01",
		"adults": 2,
		"preferredAirlines": ["af", "LH"],
		"stops": 0,
		"minPrice": 50,
		"maxPrice": 300
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []offers.Offer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "150.00 EUR", got[0].Price)

	// inputs are upper-cased before reaching the service
	assert.Equal(t, "AMS", mock.lastQry.Origin)
	assert.Equal(t, "BCN", mock.lastQry.Destination)
	assert.Equal(t, []string{"AF", "LH"}, mock.lastQry.PreferredAirlines)
	require.NotNil(t, mock.lastQry.Stops)
	assert.Equal(t, 0, *mock.lastQry.Stops)
	require.NotNil(t, mock.lastQry.MinPrice)
	assert.InDelta(t, 50, *mock.lastQry.MinPrice, 0.001)
}

func TestSearchHandler_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		errContain string
	}{
		{
			name:       "origin too short",
			body:       `{"origin":"AM","destination":"BCN","date":"2026-10-01","adults":1}`,
			errContain: "origin",
		},
		{
			name:       "bad date format",
			body:       `{"origin":"AMS","destination":"BCN","date":"01-10-2026","adults":1}`,
			errContain: "date",
		},
		{
			name:       "adults out of range",
			body:       `{"origin":"AMS","destination":"BCN","date":"2026-10-01","adults":12}`,
			errContain: "adults",
		},
		{
			name:       "bad airline code",
			body:       `{"origin":"AMS","destination":"BCN","date":"2026-10-01","adults":1,"preferredAirlines":["AIRFRANCE"]}`,
			errContain: "preferredAirlines",
		},
		{
			name:       "min above max",
			body:       `{"origin":"AMS","destination":"BCN","date":"2026-10-01","adults":1,"minPrice":300,"maxPrice":100}`,
			errContain: "minPrice",
		},
		{
			name:       "malformed json",
			body:       `{"origin":`,
			errContain: "malformed",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &searcherMock{}
			rec := postJSON(t, httpx.SearchHandler(mock), "/search", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, errorMessage(t, rec), tt.errContain)
			// rejected before any provider work
			assert.Zero(t, mock.calls)
		})
	}
}

func TestSearchHandler_UpstreamErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		errContain string
	}{
		{
			name:       "structured provider error",
			err:        &amadeus.SearchError{Details: []string{"Date/Time is in the past"}},
			wantStatus: http.StatusBadGateway,
			errContain: "Date/Time is in the past",
		},
		{
			name:       "provider unreachable",
			err:        &amadeus.UnavailableError{Err: errors.New("connection refused")},
			wantStatus: http.StatusInternalServerError,
			errContain: "unavailable",
		},
		{
			name:       "token acquisition failed",
			err:        &amadeus.AuthError{Err: errors.New("invalid_client")},
			wantStatus: http.StatusInternalServerError,
			errContain: "unavailable",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &searcherMock{err: tt.err}
			rec := postJSON(t, httpx.SearchHandler(mock), "/search",
				`{"origin":"AMS","destination":"BCN","date":"2026-10-01","adults":1}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, errorMessage(t, rec), tt.errContain)
		})
	}
}

func TestSearchHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	rec := httptest.NewRecorder()
	httpx.SearchHandler(&searcherMock{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHotelSearchHandler(t *testing.T) {
	t.Parallel()

	const providerBody = `{"data":[{"hotelId":"ALBCN001"}]}`

	mock := &hotelsMock{body: json.RawMessage(providerBody)}
	rec := postJSON(t, httpx.HotelSearchHandler(mock), "/hotel-search", `{"cityCode":"bcn"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, providerBody, rec.Body.String())
	assert.Equal(t, "BCN", mock.city)
}

func TestHotelSearchHandler_Validation(t *testing.T) {
	t.Parallel()

	mock := &hotelsMock{}
	rec := postJSON(t, httpx.HotelSearchHandler(mock), "/hotel-search", `{"cityCode":"BARCELONA"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "cityCode")
	assert.Zero(t, mock.calls)
}

func TestHotelSearchHandler_UpstreamError(t *testing.T) {
	t.Parallel()

	mock := &hotelsMock{err: &amadeus.SearchError{Details: []string{"no hotels for city"}}}
	rec := postJSON(t, httpx.HotelSearchHandler(mock), "/hotel-search", `{"cityCode":"XXX"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "no hotels for city")
}

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	httpx.LivenessHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "travel gateway is running", rec.Body.String())
}

func TestLivenessHandler_UnknownPath(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	httpx.LivenessHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
