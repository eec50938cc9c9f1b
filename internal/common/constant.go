package common

const (
	// AuthorizationHeaderName carries the bearer token on write requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName is echoed back on every API response.
	RequestIDHeaderName = "X-Request-Id"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "
)
