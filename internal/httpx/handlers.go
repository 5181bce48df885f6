// Package httpx holds the HTTP boundary: request decoding and validation,
// handler wiring and the mapping of provider errors onto status codes.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/you/go-travel-gateway/internal/amadeus"
	"github.com/you/go-travel-gateway/internal/offers"
	"github.com/you/go-travel-gateway/internal/service"
)

// FlightSearcher abstracts the search service for testing.
type FlightSearcher interface {
	Search(ctx context.Context, q service.Query) ([]offers.Offer, error)
}

// HotelFinder abstracts the provider's hotel lookup for testing.
type HotelFinder interface {
	HotelsByCity(ctx context.Context, cityCode string) (json.RawMessage, error)
}

// SearchRequest is the inbound flight search body.
type SearchRequest struct {
	Origin            string   `json:"origin" validate:"required,len=3,alpha"`
	Destination       string   `json:"destination" validate:"required,len=3,alpha"`
	Date              string   `json:"date" validate:"required,datetime=2006-01-02"`
	Adults            int      `json:"adults" validate:"required,gte=1,lte=9"`
	PreferredAirlines []string `json:"preferredAirlines" validate:"omitempty,dive,len=2,alphanum"`
	Stops             *int     `json:"stops" validate:"omitempty,gte=0"`
	MinPrice          *float64 `json:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice          *float64 `json:"maxPrice" validate:"omitempty,gte=0"`
}

// HotelSearchRequest is the inbound hotel search body.
type HotelSearchRequest struct {
	CityCode string `json:"cityCode" validate:"required,len=3,alpha"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report field names as they appear on the wire
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, ", ")
}

// SearchHandler serves POST /search.
func SearchHandler(svc FlightSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed JSON body")
			return
		}

		req.Origin = strings.ToUpper(req.Origin)
		req.Destination = strings.ToUpper(req.Destination)
		for i, a := range req.PreferredAirlines {
			req.PreferredAirlines[i] = strings.ToUpper(a)
		}

		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
			writeError(w, http.StatusBadRequest, "minPrice must not exceed maxPrice")
			return
		}

		res, err := svc.Search(r.Context(), service.Query{
			Origin:            req.Origin,
			Destination:       req.Destination,
			Date:              req.Date,
			Adults:            req.Adults,
			PreferredAirlines: req.PreferredAirlines,
			Stops:             req.Stops,
			MinPrice:          req.MinPrice,
			MaxPrice:          req.MaxPrice,
		})
		if err != nil {
			writeUpstreamError(w, "flight search", err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// HotelSearchHandler serves POST /hotel-search. The provider body is
// forwarded verbatim on success.
func HotelSearchHandler(hotels HotelFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req HotelSearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed JSON body")
			return
		}
		req.CityCode = strings.ToUpper(req.CityCode)
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		body, err := hotels.HotelsByCity(r.Context(), req.CityCode)
		if err != nil {
			writeUpstreamError(w, "hotel search", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

// LivenessHandler serves GET /.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("travel gateway is running"))
	}
}

// writeUpstreamError maps provider error kinds onto status codes:
// structured provider errors become a 502 carrying the joined details,
// everything else a generic 500.
func writeUpstreamError(w http.ResponseWriter, op string, err error) {
	var se *amadeus.SearchError
	if errors.As(err, &se) {
		log.Warn().Err(err).Msgf("%s rejected upstream", op)
		writeError(w, http.StatusBadGateway, se.Error())
		return
	}
	log.Error().Err(err).Msgf("%s failed", op)
	writeError(w, http.StatusInternalServerError, op+" is currently unavailable")
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
