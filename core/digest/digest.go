// Package digest fingerprints table text so conversion runs can be compared
// and recorded without keeping the tables themselves.
package digest

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Table computes the BLAKE3 hash of table text, hex-encoded.
func Table(text string) string {
	h := blake3.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex characters of a digest, the form printed
// in CLI output. It returns the input unchanged when it is already shorter.
func Short(d string) string {
	if len(d) <= 12 {
		return d
	}
	return d[:12]
}
