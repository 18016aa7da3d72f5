package shortlink

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/codecafelab/content-service/internal/errx"
)

// Service shortens URLs and resolves hashes back to their origin.
type Service interface {
	// Shorten returns the short URL for originalURL scoped to ownerID.
	// Shortening is idempotent; the same pair always yields the same
	// short URL. When persistence is unavailable the original URL comes
	// back unchanged so callers always have something usable to render.
	Shorten(ctx context.Context, originalURL, ownerID string) (string, error)

	// Resolve returns the original URL behind a short hash.
	Resolve(ctx context.Context, hash string) (string, error)
}

type service struct {
	repo    Repository
	baseURL string
	logger  *slog.Logger
}

// NewService creates the short-link service. baseURL is the public
// prefix short URLs are built on, e.g. https://codecafelab.in.
func NewService(repo Repository, baseURL string, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:    repo,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (s *service) shortURL(hash string) string {
	return s.baseURL + "/s/" + hash
}

func (s *service) Shorten(ctx context.Context, originalURL, ownerID string) (string, error) {
	if originalURL == "" {
		return "", nil
	}

	if existing, err := s.repo.GetByOrigin(ctx, originalURL, ownerID); err == nil {
		return s.shortURL(existing.ShortHash), nil
	}

	m := Mapping{
		ShortHash:   HashFor(originalURL, ownerID),
		OriginalURL: originalURL,
		OwnerID:     ownerID,
	}

	created, err := s.repo.Create(ctx, m)
	if err == nil {
		return s.shortURL(created.ShortHash), nil
	}

	// A concurrent shorten of the same pair won the insert; reuse its row.
	if errx.KindOf(err) == errx.Conflict {
		if existing, rerr := s.repo.GetByOrigin(ctx, originalURL, ownerID); rerr == nil {
			return s.shortURL(existing.ShortHash), nil
		}
	}

	s.logger.WarnContext(ctx, "short-link persistence failed, returning original url",
		"error", err.Error(),
		"owner_id", ownerID,
	)
	return originalURL, nil
}

func (s *service) Resolve(ctx context.Context, hash string) (string, error) {
	const op = "shortlink.service.Resolve"

	if hash == "" {
		return "", errx.E(op, errx.Invalid, errors.New("hash cannot be empty"))
	}

	m, err := s.repo.GetByHash(ctx, hash)
	if err != nil {
		return "", err
	}
	return m.OriginalURL, nil
}
