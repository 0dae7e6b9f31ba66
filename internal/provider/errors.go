package provider

import "errors"

// Provider failures are surfaced as structured variants so callers can branch
// with errors.Is instead of matching substrings of a stringified error.
var (
	// ErrMissingCredential is returned when no API key could be resolved.
	ErrMissingCredential = errors.New("API key is missing")

	// ErrRateLimited is returned when the provider rejects the call with a
	// rate-limit response.
	ErrRateLimited = errors.New("provider rate limit exceeded")

	// ErrEmptyResponse is returned when the provider answers without content.
	ErrEmptyResponse = errors.New("no content generated")

	// ErrSchemaMismatch is returned when the response cannot be parsed into an
	// ordered sequence of items with the three required string fields.
	ErrSchemaMismatch = errors.New("response does not match the inspiration schema")

	// ErrUnavailable covers network failures and any other provider-side
	// error that is not one of the variants above.
	ErrUnavailable = errors.New("inspiration provider unavailable")
)
