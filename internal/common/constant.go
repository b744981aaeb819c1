// Package common contains shared constants and sentinel errors used across
// eduauth components.
package common

// APIKeyHeaderName is the HTTP header carrying the static service API key
// that identifies a trusted caller (e.g., the frontend).
const APIKeyHeaderName = "X-ApiKey-Auth"

// APIBasePath is prepended to every REST endpoint path.
const APIBasePath = "/api/v1"
