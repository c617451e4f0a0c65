// Package common contains shared constants and sentinel errors used across
// entrysync client and server components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// AuthorizationHeaderName carries the bearer token on the realtime websocket
// handshake, where gRPC metadata is not available.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix prefixes the token in AuthorizationHeaderName.
const BearerPrefix = "Bearer "

// ChangesPath is the HTTP path of the realtime change feed.
const ChangesPath = "/v1/changes"
