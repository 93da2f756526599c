package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// InstanceIDLength is the number of hex characters in a display instance
// identifier, e.g. "692C275AE02BB".
const InstanceIDLength = 13

// GenerateInstanceID returns a fresh 13-character uppercase hexadecimal
// display identifier for a bot instance. The value is shown next to the
// instance in the dashboard and carries no cryptographic meaning.
func GenerateInstanceID() string {
	// 7 random bytes give 14 hex chars; the id uses the first 13.
	buf := make([]byte, (InstanceIDLength+1)/2)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read never fails on supported platforms; fall back to a
		// uuid-derived value just in case.
		return strings.ToUpper(strings.ReplaceAll(NewUUIDGenerator().Generate(), "-", "")[:InstanceIDLength])
	}

	return strings.ToUpper(hex.EncodeToString(buf)[:InstanceIDLength])
}
