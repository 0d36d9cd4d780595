// Package sqlstore implements the record queries shared by the SQLite and
// PostgreSQL backends. Queries are written with ? placeholders and rebound
// for the active dialect.
package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifedash/internal/errors"
)

type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

func (d Dialect) String() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(dialect Dialect) *Store {
	return &Store{dialect: dialect}
}

// Attach sets the open connection used by every query.
func (s *Store) Attach(db *sql.DB) {
	s.db = db
}

// DB returns the attached connection, or nil before Init/Load.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Dialect() Dialect {
	return s.dialect
}

// rebind rewrites ? placeholders as $1, $2... for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if s.db == nil {
		return nil, errors.ErrNotInitialized
	}
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) (*sql.Row, error) {
	if s.db == nil {
		return nil, errors.ErrNotInitialized
	}
	return s.db.QueryRowContext(ctx, s.rebind(query), args...), nil
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if s.db == nil {
		return nil, errors.ErrNotInitialized
	}
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

// execOne runs an UPDATE and reports ErrNotFound when no row matched.
func (s *Store) execOne(ctx context.Context, query string, args ...any) error {
	res, err := s.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

type scanner interface {
	Scan(dest ...any) error
}

// collect scans every row with scan. The result is never nil.
func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// list runs a query and collects its rows.
func list[T any](ctx context.Context, s *Store, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scan)
}

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.ErrNotFound
	}
	return err
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}
