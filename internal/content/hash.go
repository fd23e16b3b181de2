package content

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Normalize cleans and concatenates a card's content ahead of hashing.
// It trims whitespace, lowercases, and normalizes line endings for each
// field before joining them.
func Normalize(front, back, deckID string) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	// Joined with newlines so fields can't run into each other, e.g.
	// "front" and "back" becoming "frontback".
	return strings.Join([]string{
		normalizePart(front),
		normalizePart(back),
		normalizePart(deckID),
	}, "\n")
}

// CardID derives a stable identity for a card from its normalized content:
// the SHA-256 of front, back and deck id as a hex string. Reimporting the
// same card always yields the same id.
func CardID(front, back, deckID string) string {
	normalized := Normalize(front, back, deckID)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(normalized)))
}
