// File: utils/constants.go
package utils

// BlacklistPrefix is the Redis key prefix for revoked access tokens.
const BlacklistPrefix = "blacklist:"

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)
