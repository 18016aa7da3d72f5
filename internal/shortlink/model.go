package shortlink

import "time"

// Mapping is one stored short-link row. OwnerID is the opaque owner the
// hash is scoped to; two owners shortening the same URL get distinct
// hashes.
type Mapping struct {
	ID          int64
	ShortHash   string
	OriginalURL string
	OwnerID     string
	CreatedAt   time.Time
}
