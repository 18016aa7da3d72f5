package content

import "context"

// Repository is the persistence contract shared by every entity kind.
// Absent rows surface as errx.NotFound from the Get methods; Update,
// Delete and IncrementCounter report a missing id as (false, nil)
// rather than an error.
type Repository interface {
	// List returns every item, newest first by the kind's order column.
	List(ctx context.Context) ([]Item, error)
	// ListActive returns items in the kind's active status, featured
	// items first, ties broken by recency.
	ListActive(ctx context.Context) ([]Item, error)
	// ListFeatured returns featured items that are also active.
	ListFeatured(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id int64) (Item, error)
	GetBySlug(ctx context.Context, slug string) (Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, id int64, item Item) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// IncrementCounter bumps the kind's counter column by one in a single
	// statement; atomicity comes from the storage engine.
	IncrementCounter(ctx context.Context, id int64) (bool, error)
}
