package shortlink

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/codecafelab/content-service/internal/errx"
)

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxRepo struct {
	db dbtx
}

// NewPgxRepository returns a Repository backed by the short_links table.
func NewPgxRepository(db dbtx) Repository {
	return &pgxRepo{db: db}
}

const selectList = "id, short_hash, original_url, owner_id, created_at"

func scanMapping(row pgx.Row) (Mapping, error) {
	var (
		m         Mapping
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&m.ID, &m.ShortHash, &m.OriginalURL, &m.OwnerID, &createdAt); err != nil {
		return Mapping{}, err
	}
	if createdAt.Valid {
		m.CreatedAt = createdAt.Time
	} else {
		m.CreatedAt = time.Time{}
	}
	return m, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapError(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errx.E(op, errx.NotFound, err)
	case isUniqueViolation(err):
		return errx.E(op, errx.Conflict, err)
	default:
		return errx.E(op, errx.Unavailable, err)
	}
}

func (r *pgxRepo) Create(ctx context.Context, m Mapping) (Mapping, error) {
	const op = "shortlink.repo.Create"

	query := "INSERT INTO short_links (short_hash, original_url, owner_id) VALUES ($1, $2, $3) RETURNING " + selectList
	created, err := scanMapping(r.db.QueryRow(ctx, query, m.ShortHash, m.OriginalURL, m.OwnerID))
	if err != nil {
		return Mapping{}, mapError(op, err)
	}
	return created, nil
}

func (r *pgxRepo) GetByHash(ctx context.Context, hash string) (Mapping, error) {
	const op = "shortlink.repo.GetByHash"

	query := "SELECT " + selectList + " FROM short_links WHERE short_hash = $1"
	m, err := scanMapping(r.db.QueryRow(ctx, query, hash))
	if err != nil {
		return Mapping{}, mapError(op, err)
	}
	return m, nil
}

func (r *pgxRepo) GetByOrigin(ctx context.Context, originalURL, ownerID string) (Mapping, error) {
	const op = "shortlink.repo.GetByOrigin"

	query := "SELECT " + selectList + " FROM short_links WHERE original_url = $1 AND owner_id = $2"
	m, err := scanMapping(r.db.QueryRow(ctx, query, originalURL, ownerID))
	if err != nil {
		return Mapping{}, mapError(op, err)
	}
	return m, nil
}
