// Package catalog loads campus events from configured sources (JSON
// catalogs, RSS/Atom feeds, ICS calendars) and merges them with locally
// submitted events.
//
// Parsing is tolerant: a malformed entry is dropped, never fatal for the
// rest of its source.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
)

// Source types supported by the fetcher.
const (
	SourceJSON = "json"
	SourceRSS  = "rss"
	SourceICS  = "ics"
)

// Source represents an event source configuration.
// URL may be an http(s) URL or a local file path.
type Source struct {
	Type string // "json", "rss", "ics"
	Name string // Display name, used as organizer fallback
	URL  string
}

// hashID creates a short deterministic id from a string key.
func hashID(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:8]) // 16 character hex string
}
