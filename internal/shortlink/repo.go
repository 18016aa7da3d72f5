package shortlink

import "context"

// Repository persists short-link mappings. Lookups return an error with
// kind NotFound when no row matches.
type Repository interface {
	Create(ctx context.Context, m Mapping) (Mapping, error)
	GetByHash(ctx context.Context, hash string) (Mapping, error)
	GetByOrigin(ctx context.Context, originalURL, ownerID string) (Mapping, error)
}
