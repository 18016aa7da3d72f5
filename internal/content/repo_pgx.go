package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/codecafelab/content-service/internal/errx"
)

// dbtx abstracts *pgxpool.Pool so the repository can run against a pool,
// a single connection, or a transaction.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxRepo struct {
	db     dbtx
	schema Schema
}

// NewPgxRepository returns a Repository for one entity kind backed by
// PostgreSQL. The schema decides table, columns and ordering; the SQL is
// assembled once at construction from registry constants, never from
// request input.
func NewPgxRepository(db dbtx, schema Schema) Repository {
	return &pgxRepo{db: db, schema: schema}
}

// columns returns the select/insert column list in scan order.
func (s Schema) columns() []string {
	cols := []string{"id", "title", "slug", "summary", "body", "status", "tags"}
	if s.HasGallery {
		cols = append(cols, "gallery")
	}
	if s.HasDimensions {
		cols = append(cols, "dimensions")
	}
	cols = append(cols, "featured")
	if s.HasSchedule {
		cols = append(cols, "scheduled_at")
	}
	cols = append(cols, s.CounterColumn, "created_at", "updated_at")
	return cols
}

func (s Schema) selectList() string {
	return strings.Join(s.columns(), ", ")
}

// writeColumns is columns minus the storage-assigned ones.
func (s Schema) writeColumns() []string {
	all := s.columns()
	out := make([]string, 0, len(all))
	for _, c := range all {
		switch c {
		case "id", s.CounterColumn, "created_at", "updated_at":
			continue
		}
		out = append(out, c)
	}
	return out
}

// writeArgs returns item's values matching writeColumns order.
func (s Schema) writeArgs(item Item) []any {
	args := []any{item.Title, item.Slug, item.Summary, item.Body, string(item.Status), encodeStringList(item.Tags)}
	if s.HasGallery {
		args = append(args, encodeStringList(item.Gallery))
	}
	if s.HasDimensions {
		args = append(args, encodeDimensions(item.Dimensions))
	}
	args = append(args, item.Featured)
	if s.HasSchedule {
		args = append(args, item.ScheduledAt)
	}
	return args
}

func placeholders(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("$%d", i+1)
	}
	return out
}

func (s Schema) insertSQL() string {
	cols := s.writeColumns()
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		s.Table,
		strings.Join(cols, ", "),
		strings.Join(placeholders(len(cols)), ", "),
		s.selectList(),
	)
}

func (s Schema) updateSQL() string {
	cols := s.writeColumns()
	sets := make([]string, 0, len(cols)+1)
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+1))
	}
	sets = append(sets, "updated_at = now()")
	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d",
		s.Table, strings.Join(sets, ", "), len(cols)+1,
	)
}

func mustTime(ts pgtype.Timestamptz, field string) (time.Time, error) {
	if !ts.Valid {
		return time.Time{}, fmt.Errorf("%s unexpectedly NULL", field)
	}
	return ts.Time, nil
}

func timePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}

// scanRow maps one row to an Item, decoding the JSON-valued columns
// through the defensive codec.
func (r *pgxRepo) scanRow(row pgx.Row) (Item, error) {
	var (
		it                   Item
		status               string
		tags, gallery, dims  pgtype.Text
		scheduled            pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)

	dest := []any{&it.ID, &it.Title, &it.Slug, &it.Summary, &it.Body, &status, &tags}
	if r.schema.HasGallery {
		dest = append(dest, &gallery)
	}
	if r.schema.HasDimensions {
		dest = append(dest, &dims)
	}
	dest = append(dest, &it.Featured)
	if r.schema.HasSchedule {
		dest = append(dest, &scheduled)
	}
	dest = append(dest, &it.Counter, &createdAt, &updatedAt)

	if err := row.Scan(dest...); err != nil {
		return Item{}, err
	}

	var err error
	if it.CreatedAt, err = mustTime(createdAt, "created_at"); err != nil {
		return Item{}, err
	}
	if it.UpdatedAt, err = mustTime(updatedAt, "updated_at"); err != nil {
		return Item{}, err
	}

	it.Status = Status(status)
	it.Tags = decodeStringList(tags.String, tags.Valid)
	it.Gallery = decodeStringList(gallery.String, gallery.Valid)
	it.Dimensions = decodeDimensions(dims.String, dims.Valid)
	it.ScheduledAt = timePtr(scheduled)

	return it, nil
}

func (r *pgxRepo) collect(rows pgx.Rows, err error) ([]Item, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		it, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *pgxRepo) mapError(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errx.E(op, errx.NotFound, err)
	case isUniqueViolation(err):
		return errx.E(op, errx.Conflict, err)
	default:
		return errx.E(op, errx.Unavailable, err)
	}
}

func (r *pgxRepo) List(ctx context.Context) ([]Item, error) {
	op := "content.repo.List." + r.schema.Kind

	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s DESC NULLS LAST, id DESC",
		r.schema.selectList(), r.schema.Table, r.schema.OrderColumn,
	)
	items, err := r.collect(r.db.Query(ctx, query))
	if err != nil {
		return nil, r.mapError(op, err)
	}
	return items, nil
}

func (r *pgxRepo) ListActive(ctx context.Context) ([]Item, error) {
	op := "content.repo.ListActive." + r.schema.Kind

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE status = $1 ORDER BY featured DESC, %s DESC NULLS LAST, id DESC",
		r.schema.selectList(), r.schema.Table, r.schema.OrderColumn,
	)
	items, err := r.collect(r.db.Query(ctx, query, string(r.schema.ActiveStatus)))
	if err != nil {
		return nil, r.mapError(op, err)
	}
	return items, nil
}

func (r *pgxRepo) ListFeatured(ctx context.Context) ([]Item, error) {
	op := "content.repo.ListFeatured." + r.schema.Kind

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE featured AND status = $1 ORDER BY %s DESC NULLS LAST, id DESC",
		r.schema.selectList(), r.schema.Table, r.schema.OrderColumn,
	)
	items, err := r.collect(r.db.Query(ctx, query, string(r.schema.ActiveStatus)))
	if err != nil {
		return nil, r.mapError(op, err)
	}
	return items, nil
}

func (r *pgxRepo) GetByID(ctx context.Context, id int64) (Item, error) {
	op := "content.repo.GetByID." + r.schema.Kind

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.schema.selectList(), r.schema.Table)
	it, err := r.scanRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return Item{}, r.mapError(op, err)
	}
	return it, nil
}

func (r *pgxRepo) GetBySlug(ctx context.Context, slug string) (Item, error) {
	op := "content.repo.GetBySlug." + r.schema.Kind

	query := fmt.Sprintf("SELECT %s FROM %s WHERE slug = $1", r.schema.selectList(), r.schema.Table)
	it, err := r.scanRow(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		return Item{}, r.mapError(op, err)
	}
	return it, nil
}

func (r *pgxRepo) Create(ctx context.Context, item Item) (Item, error) {
	op := "content.repo.Create." + r.schema.Kind

	created, err := r.scanRow(r.db.QueryRow(ctx, r.schema.insertSQL(), r.schema.writeArgs(item)...))
	if err != nil {
		return Item{}, r.mapError(op, err)
	}
	return created, nil
}

func (r *pgxRepo) Update(ctx context.Context, id int64, item Item) (bool, error) {
	op := "content.repo.Update." + r.schema.Kind

	args := append(r.schema.writeArgs(item), id)
	tag, err := r.db.Exec(ctx, r.schema.updateSQL(), args...)
	if err != nil {
		return false, r.mapError(op, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgxRepo) Delete(ctx context.Context, id int64) (bool, error) {
	op := "content.repo.Delete." + r.schema.Kind

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.schema.Table)
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, r.mapError(op, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgxRepo) IncrementCounter(ctx context.Context, id int64) (bool, error) {
	op := "content.repo.IncrementCounter." + r.schema.Kind

	query := fmt.Sprintf(
		"UPDATE %s SET %s = %s + 1 WHERE id = $1",
		r.schema.Table, r.schema.CounterColumn, r.schema.CounterColumn,
	)
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, r.mapError(op, err)
	}
	return tag.RowsAffected() > 0, nil
}
