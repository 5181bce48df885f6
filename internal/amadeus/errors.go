package amadeus

import "strings"

// AuthError reports a failed access-token acquisition: the provider's token
// endpoint rejected the credentials or was unreachable.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return "amadeus auth: " + e.Err.Error() }

func (e *AuthError) Unwrap() error { return e.Err }

// SearchError carries the provider's structured error details for a search.
// It maps to a 502 at the HTTP boundary.
type SearchError struct {
	Details []string
}

func (e *SearchError) Error() string { return strings.Join(e.Details, ", ") }

// UnavailableError covers network failures and unstructured provider
// failures. It maps to a 500 at the HTTP boundary.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string { return "amadeus unavailable: " + e.Err.Error() }

func (e *UnavailableError) Unwrap() error { return e.Err }
