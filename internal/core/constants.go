// Package core provides shared constants and configuration for the Love Monster CLI.
package core

// API configuration.
const (
	APIScheme   = "https"
	APIBasePath = "api/v1"
)

// WireTimestampFmt is the timestamp layout used by the Love Monster API.
// The server appends a timezone designator which we deliberately ignore;
// see ParseTimestamp.
const WireTimestampFmt = "2006-01-02T15:04:05"

// UserCacheSize bounds the parser's user dedup cache.
const UserCacheSize = 25

// Version is the current CLI version.
const Version = "0.2.0"
