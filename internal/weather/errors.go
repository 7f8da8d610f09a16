package weather

import "errors"

var (
	// ErrMissingLocation is returned when neither a city nor coordinates were given.
	ErrMissingLocation = errors.New("missing location")
	// ErrIncompleteCoordinates is returned when only one of lat/lon was given.
	ErrIncompleteCoordinates = errors.New("incomplete coordinates: latitude and longitude must be supplied together")
	ErrInvalidCoordinates    = errors.New("invalid coordinates")

	ErrMissingCredential = errors.New("missing api key")

	// ErrFetchFailed wraps any transport-level or HTTP status failure.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrMalformedResponse is returned when a successful response lacks expected fields.
	ErrMalformedResponse = errors.New("malformed response")
)
