// Package common contains shared constants and sentinel errors used across
// the profilespaces client.
package common

// Header names understood by the profilespaces API.
const (
	AuthorizationHeaderName = "Authorization"
	APIKeyHeaderName        = "X-API-Key"
	RequestIDHeaderName     = "X-Request-ID"

	// AuthorizationScheme prefixes the session token in the Authorization header.
	AuthorizationScheme = "Token"
)

// SessionRecordKey is the fixed metadata key holding the persisted session.
const SessionRecordKey = "session"

// SessionSaltKey stores the per-install salt used to seal the session record.
const SessionSaltKey = "session_salt"
