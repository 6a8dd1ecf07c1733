package entity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint derives the stable content identifier for a search result.
// The hashed input is selected in priority order: url if non-empty, else
// title, else content. The result is the lowercase hex SHA-256 digest of the
// UTF-8 bytes of the selected input, so identical source text always yields
// the identical fingerprint.
//
// Returns ErrEmptyCandidate when all three inputs are empty; callers are
// expected to have filtered such candidates already.
func Fingerprint(title, content, url string) (string, error) {
	input := url
	if input == "" {
		input = title
	}
	if input == "" {
		input = content
	}
	if input == "" {
		return "", ErrEmptyCandidate
	}
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:]), nil
}
