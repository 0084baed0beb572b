package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it too.
type db interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores console accounts in the admins table.
type PostgresRepository struct {
	pool db
}

// NewPostgresRepository initializes a repository backed by pgxpool.
func NewPostgresRepository(pool db) *PostgresRepository {
	if pool == nil {
		panic("admin: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create stores a new admin.
func (r *PostgresRepository) Create(ctx context.Context, a Admin) (Admin, error) {
	id := uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO admins (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, id, a.Name, a.Email, a.PasswordHash).Scan(&a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Admin{}, ErrAlreadyExists
		}
		return Admin{}, fmt.Errorf("admin: insert failed: %w", err)
	}

	a.ID = id.String()
	return a, nil
}

// GetByEmail returns an admin by normalized email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (Admin, error) {
	var a Admin
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM admins
		WHERE email = $1
	`, email).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Admin{}, ErrNotFound
	}
	if err != nil {
		return Admin{}, fmt.Errorf("admin: select failed: %w", err)
	}
	return a, nil
}
