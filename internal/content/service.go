package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/codecafelab/content-service/internal/errx"
	"github.com/codecafelab/content-service/internal/slugify"
)

const (
	MaxTitleLength = 255
	MaxSlugLength  = 255

	// slug retry settings when a derived slug collides
	slugSuffixLength  = 6
	slugConflictTries = 3
)

// Service is the business-logic layer over one kind's Repository.
// It owns validation, status defaults, and slug derivation; persistence
// stays in the repository.
type Service interface {
	List(ctx context.Context) ([]Item, error)
	ListActive(ctx context.Context) ([]Item, error)
	ListFeatured(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id int64) (Item, error)
	GetBySlug(ctx context.Context, slug string) (Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, id int64, item Item) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	IncrementCounter(ctx context.Context, id int64) (bool, error)
	Schema() Schema
}

type service struct {
	repo   Repository
	schema Schema
}

// NewService creates the service for one entity kind.
func NewService(repo Repository, schema Schema) Service {
	return &service{repo: repo, schema: schema}
}

func (s *service) Schema() Schema { return s.schema }

func (s *service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

func (s *service) ListActive(ctx context.Context) ([]Item, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) ListFeatured(ctx context.Context) ([]Item, error) {
	return s.repo.ListFeatured(ctx)
}

func (s *service) GetByID(ctx context.Context, id int64) (Item, error) {
	const op = "content.service.GetByID"

	if id <= 0 {
		return Item{}, errx.E(op, errx.Invalid, errors.New("id must be positive"))
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (Item, error) {
	const op = "content.service.GetBySlug"

	if slug == "" {
		return Item{}, errx.E(op, errx.Invalid, errors.New("slug cannot be empty"))
	}
	return s.repo.GetBySlug(ctx, slug)
}

// Create persists a new item. An empty status takes the kind's default;
// an empty slug is derived from the title, retried with a random suffix
// when the derived slug is already taken.
func (s *service) Create(ctx context.Context, item Item) (Item, error) {
	const op = "content.service.Create"

	if err := s.validate(&item); err != nil {
		return Item{}, errx.E(op, errx.Invalid, err)
	}

	// Caller-chosen slug: a conflict is the caller's to resolve.
	if item.Slug != "" {
		return s.repo.Create(ctx, item)
	}

	base := slugify.FromTitle(item.Title)
	item.Slug = base

	for try := 0; ; try++ {
		created, err := s.repo.Create(ctx, item)
		if err == nil {
			return created, nil
		}
		if errx.KindOf(err) != errx.Conflict || try >= slugConflictTries {
			return Item{}, err
		}

		suffixed, serr := slugify.WithSuffix(base, slugSuffixLength)
		if serr != nil {
			return Item{}, errx.E(op, errx.Unavailable, serr)
		}
		item.Slug = suffixed
	}
}

func (s *service) Update(ctx context.Context, id int64, item Item) (bool, error) {
	const op = "content.service.Update"

	if id <= 0 {
		return false, errx.E(op, errx.Invalid, errors.New("id must be positive"))
	}
	if err := s.validate(&item); err != nil {
		return false, errx.E(op, errx.Invalid, err)
	}
	if item.Slug == "" {
		return false, errx.E(op, errx.Invalid, errors.New("slug is required on update"))
	}
	return s.repo.Update(ctx, id, item)
}

func (s *service) Delete(ctx context.Context, id int64) (bool, error) {
	const op = "content.service.Delete"

	if id <= 0 {
		return false, errx.E(op, errx.Invalid, errors.New("id must be positive"))
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) IncrementCounter(ctx context.Context, id int64) (bool, error) {
	const op = "content.service.IncrementCounter"

	if id <= 0 {
		return false, errx.E(op, errx.Invalid, errors.New("id must be positive"))
	}
	return s.repo.IncrementCounter(ctx, id)
}

// validate checks the writable fields and fills defaults in place.
func (s *service) validate(item *Item) error {
	if item.Title == "" {
		return errors.New("title is required")
	}
	if len(item.Title) > MaxTitleLength {
		return fmt.Errorf("title too long (max %d characters)", MaxTitleLength)
	}
	if len(item.Slug) > MaxSlugLength {
		return fmt.Errorf("slug too long (max %d characters)", MaxSlugLength)
	}

	if item.Status == "" {
		item.Status = s.schema.DefaultStatus
	}
	if !s.schema.ValidStatus(item.Status) {
		return fmt.Errorf("invalid status %q for %s", item.Status, s.schema.Kind)
	}

	if s.schema.HasSchedule && item.ScheduledAt == nil {
		return errors.New("scheduled_at is required")
	}
	return nil
}
