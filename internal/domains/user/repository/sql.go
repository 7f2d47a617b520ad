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
	"github.com/jackc/pgx/v5/pgconn"

	"book-catalog/internal/domains/user"
	"book-catalog/internal/infrastructure/database"
)

const tableUsers = "users"

type sqlRepository struct {
	db      *sql.DB
	dialect database.Dialect
	builder goqu.DialectWrapper
}

func NewSQLRepository(db *sql.DB, dialect database.Dialect) user.Repository {
	return &sqlRepository{db: db, dialect: dialect, builder: goqu.Dialect(string(dialect))}
}

func (r *sqlRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	query, args, err := r.builder.From(tableUsers).
		Select("id", "username", "password").
		Where(goqu.C("username").Eq(username)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	var u user.User
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	return &u, nil
}

func (r *sqlRepository) Create(ctx context.Context, u *user.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	ds := r.builder.Insert(tableUsers).
		Rows(goqu.Record{
			"username":   u.Username,
			"password":   u.Password,
			"created_at": u.CreatedAt,
		}).
		Prepared(true)

	if r.dialect == database.DialectPostgres {
		query, args, err := ds.Returning("id").ToSQL()
		if err != nil {
			return fmt.Errorf("build insert user: %w", err)
		}
		if err := r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID); err != nil {
			return translateError(err)
		}
		return nil
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert user: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}
	if u.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return user.ErrUsernameTaken
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return user.ErrUsernameTaken
	}
	return fmt.Errorf("insert user: %w", err)
}
