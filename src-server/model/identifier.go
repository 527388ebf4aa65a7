package model

import (
	"crypto/rand"
	"encoding/hex"
)

// Generate a stable identifier for a new replaceable event: 64 random
// hex chars truncated to 16, matching what other clients of the
// protocol emit. This is a client-side stable key, not a secret.
func NewIdentifier() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)[:16]
}
