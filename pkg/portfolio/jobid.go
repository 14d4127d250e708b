package portfolio

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var reJobID = regexp.MustCompile(`^job_[0-9a-f]{6}$`)

// NewJobID returns "job_" followed by six random hex digits.
func NewJobID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "job_" + hex.EncodeToString(b), nil
}

// ValidJobID guards every path built from a client-supplied id.
func ValidJobID(id string) bool {
	return reJobID.MatchString(id)
}
