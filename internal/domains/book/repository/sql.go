package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgconn"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/infrastructure/database"
	"book-catalog/internal/shared/utils"
	pkgdb "book-catalog/pkg/database"
)

const tableBooks = "books"

var bookColumns = []interface{}{"id", "title", "author", "isbn", "created_at"}

// queryer được implement bởi cả *sql.DB và *sql.Tx
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// SQLStore là Store trên database/sql, queries được build bằng goqu
// cho PostgreSQL (pgx stdlib) hoặc SQLite (modernc).
type SQLStore struct {
	db      *sql.DB
	dialect database.Dialect
	builder goqu.DialectWrapper
	now     func() time.Time
}

func NewSQLStore(db *sql.DB, dialect database.Dialect) *SQLStore {
	return &SQLStore{
		db:      db,
		dialect: dialect,
		builder: goqu.Dialect(string(dialect)),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

type sqlTx struct {
	s *SQLStore
	q queryer
}

func (s *SQLStore) direct() sqlTx { return sqlTx{s: s, q: s.db} }

func (s *SQLStore) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	return s.direct().GetByID(ctx, id)
}

func (s *SQLStore) Exists(ctx context.Context, m Match) (bool, error) {
	return s.direct().Exists(ctx, m)
}

func (s *SQLStore) Insert(ctx context.Context, b *model.Book) error {
	return s.direct().Insert(ctx, b)
}

func (s *SQLStore) Update(ctx context.Context, b *model.Book) error {
	return s.direct().Update(ctx, b)
}

func (s *SQLStore) List(ctx context.Context) ([]model.Book, error) {
	query, args, err := s.builder.From(tableBooks).
		Select(bookColumns...).
		Order(goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}
	return s.queryBooks(ctx, query, args)
}

func (s *SQLStore) Search(ctx context.Context, f SearchFilter) ([]model.Book, error) {
	pattern := utils.ContainsPattern(f.Query)
	like := func(col string) exp.Expression {
		return goqu.L("LOWER(?) LIKE ? ESCAPE '"+utils.LikeEscapeChar+"'", goqu.C(col), pattern)
	}

	var where exp.Expression
	switch f.Field {
	case model.FieldTitle, model.FieldAuthor, model.FieldISBN:
		where = like(string(f.Field))
	default:
		where = goqu.Or(like("title"), like("author"), like("isbn"))
	}

	query, args, err := s.builder.From(tableBooks).
		Select(bookColumns...).
		Where(where).
		Order(goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}
	return s.queryBooks(ctx, query, args)
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	query, args, err := s.builder.Delete(tableBooks).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	if n == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

// Atomically: PostgreSQL khoá bảng books ở mode chặn writers khác (readers vẫn chạy);
// SQLite đã serialize qua pool một connection.
func (s *SQLStore) Atomically(ctx context.Context, fn func(tx Tx) error) error {
	return pkgdb.WithTransaction(ctx, s.db, nil, func(tx *sql.Tx) error {
		if s.dialect == database.DialectPostgres {
			if _, err := tx.ExecContext(ctx, "LOCK TABLE books IN SHARE ROW EXCLUSIVE MODE"); err != nil {
				return fmt.Errorf("lock books: %w", err)
			}
		}
		return fn(sqlTx{s: s, q: tx})
	})
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) queryBooks(ctx context.Context, query string, args []interface{}) ([]model.Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

func (t sqlTx) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query, args, err := t.s.builder.From(tableBooks).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	b, err := scanBook(t.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	return b, err
}

func (t sqlTx) Exists(ctx context.Context, m Match) (bool, error) {
	conds := []exp.Expression{goqu.C(string(m.Field)).Eq(m.Value)}
	if m.ExcludeID > 0 {
		conds = append(conds, goqu.C("id").Neq(m.ExcludeID))
	}

	query, args, err := t.s.builder.From(tableBooks).
		Select(goqu.L("1")).
		Where(conds...).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = t.q.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check %s exists: %w", m.Field, err)
	}
	return true, nil
}

func (t sqlTx) Insert(ctx context.Context, b *model.Book) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = t.s.now()
	}

	ds := t.s.builder.Insert(tableBooks).
		Rows(goqu.Record{
			"title":      b.Title,
			"author":     b.Author,
			"isbn":       b.ISBN,
			"created_at": b.CreatedAt,
		}).
		Prepared(true)

	// goqu sqlite3 dialect không hỗ trợ RETURNING; pgx không hỗ trợ LastInsertId
	if t.s.dialect == database.DialectPostgres {
		query, args, err := ds.Returning("id").ToSQL()
		if err != nil {
			return fmt.Errorf("build insert query: %w", err)
		}
		if err := t.q.QueryRowContext(ctx, query, args...).Scan(&b.ID); err != nil {
			return translateWriteError("insert book", err)
		}
		return nil
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}
	res, err := t.q.ExecContext(ctx, query, args...)
	if err != nil {
		return translateWriteError("insert book", err)
	}
	if b.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (t sqlTx) Update(ctx context.Context, b *model.Book) error {
	query, args, err := t.s.builder.Update(tableBooks).
		Set(goqu.Record{
			"title":  b.Title,
			"author": b.Author,
			"isbn":   b.ISBN,
		}).
		Where(goqu.C("id").Eq(b.ID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	res, err := t.q.ExecContext(ctx, query, args...)
	if err != nil {
		return translateWriteError(fmt.Sprintf("update book %d", b.ID), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book %d: %w", b.ID, err)
	}
	if n == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(row rowScanner) (*model.Book, error) {
	var (
		b       model.Book
		created interface{}
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan book: %w", err)
	}

	ts, err := parseTimestamp(created)
	if err != nil {
		return nil, fmt.Errorf("scan book %d created_at: %w", b.ID, err)
	}
	b.CreatedAt = ts
	return &b, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// parseTimestamp: pgx trả time.Time, SQLite có thể trả text tuỳ cách value được ghi
func parseTimestamp(v interface{}) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case int64:
		return time.Unix(t, 0).UTC(), nil
	case []byte:
		return parseTimestamp(string(t))
	case string:
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognised timestamp %q", t)
	case nil:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

// translateWriteError map unique violation trên isbn thành model.ErrDuplicateISBN
func translateWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, model.ErrDuplicateISBN)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
