package sentinel

import "errors"

// Sentinel errors for API transport facts. The client returns these (wrapped)
// so callers can branch on what the backend said without parsing status codes:
//
//   - ErrNotFound: the resource does not exist (HTTP 404). Some lookups, such
//     as a savings goal's recurring transfer, treat this as "feature absent"
//     rather than a failure.
//   - ErrUnauthorized: the access token was rejected (HTTP 401/403).
//   - ErrUnavailable: the backend is temporarily unable to serve the request
//     (HTTP 502/503/504).
//
// Every other non-2xx response surfaces as a *client.APIError.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("unavailable")
)
