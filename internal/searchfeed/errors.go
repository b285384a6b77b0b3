package searchfeed

import "errors"

var (
	// ErrMissingAPIKey is returned when the search API key is not configured.
	// It is a configuration failure, distinct from a search with no results.
	ErrMissingAPIKey = errors.New("search API key not configured")
	// ErrStatusNotOK is returned when the search API response had status different than 200 OK.
	ErrStatusNotOK = errors.New("search API status is not 200 OK")
)
