package shortlink

import (
	"crypto/md5"
	"encoding/hex"
)

// HashLength is the number of hex characters in a short hash.
const HashLength = 8

// HashFor derives the short hash for a URL and owner. The derivation is
// deterministic so repeated shortens of the same pair always land on the
// same hash.
func HashFor(originalURL, ownerID string) string {
	sum := md5.Sum([]byte(originalURL + ownerID))
	return hex.EncodeToString(sum[:])[:HashLength]
}
