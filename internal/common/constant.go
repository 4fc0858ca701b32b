package common

// AuthorizationHeaderName is the HTTP header that carries the bearer access
// token on write requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the access token in the Authorization header.
const BearerPrefix = "Bearer "
