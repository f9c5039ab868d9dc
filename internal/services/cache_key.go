package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

// CacheKey returns a stable hash of a normalized recommendation request.
// Origin and destination are compared case- and whitespace-insensitively and the
// departure time only matters up to its hour, in its own location.
func CacheKey(origin, destination string, departAt *time.Time) string {
	hour := ""
	if departAt != nil {
		hour = departAt.Format("2006-01-02T15")
	}

	raw, _ := json.Marshal([]string{
		strings.ToLower(strings.TrimSpace(origin)),
		strings.ToLower(strings.TrimSpace(destination)),
		hour,
	})

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
