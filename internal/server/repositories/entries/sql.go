// Package entries provides SQL-backed repositories for catalog entries.
// PostgreSQL and SQLite share one implementation and differ only in
// placeholder format.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/scpcatalog/internal/common"
	"github.com/dmitrijs2005/scpcatalog/internal/dbx"
	"github.com/dmitrijs2005/scpcatalog/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const tableName = "scp_entries"

var columns = []string{"id", "item", "class", "description", "containment", "image", "image_key", "created_at"}

// SQLRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
	sb sq.StatementBuilderType
}

// NewPostgresRepository binds a repository using $n placeholders.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

// NewSQLiteRepository binds a repository using ? placeholders.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(s rowScanner) (models.Entry, error) {
	var e models.Entry
	var class string
	err := s.Scan(&e.ID, &e.Item, &class, &e.Description, &e.Containment, &e.Image, &e.ImageKey, &e.CreatedAt)
	e.Class = models.Class(class)
	return e, err
}

func (r *SQLRepository) List(ctx context.Context) ([]models.Entry, error) {
	query, args, err := r.sb.Select(columns...).From(tableName).OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (models.Entry, error) {
	query, args, err := r.sb.Select(columns...).From(tableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Entry{}, fmt.Errorf("build query: %w", err)
	}

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, common.ErrorNotFound
	}
	if err != nil {
		return models.Entry{}, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *SQLRepository) Create(ctx context.Context, entry *models.Entry) error {
	query, args, err := r.sb.Insert(tableName).Columns(columns...).Values(
		entry.ID, entry.Item, string(entry.Class), entry.Description, entry.Containment,
		entry.Image, entry.ImageKey, entry.CreatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *SQLRepository) Update(ctx context.Context, entry *models.Entry) (bool, error) {
	query, args, err := r.sb.Update(tableName).
		Set("item", entry.Item).
		Set("class", string(entry.Class)).
		Set("description", entry.Description).
		Set("containment", entry.Containment).
		Set("image", entry.Image).
		Set("image_key", entry.ImageKey).
		Where(sq.Eq{"id": entry.ID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete(tableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// mapError turns a PostgreSQL unique violation into common.ErrorAlreadyExists.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.ConstraintName)
	}
	return fmt.Errorf("db error: %w", err)
}
