package keywords

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

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

// PostgresRepository stores keyword entries in the relational database.
type PostgresRepository struct {
	pool db
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool db) *PostgresRepository {
	if pool == nil {
		panic("keywords: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// GetAll returns every entry ordered by creation time, which is the stable
// first-match-wins order the resolver depends on.
func (r *PostgresRepository) GetAll(ctx context.Context) (Snapshot, error) {
	query := `
		SELECT id, keyword, responses, created_at, updated_at
		FROM keyword_responses
		ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("keywords: select failed: %w", err)
	}
	defer rows.Close()

	var snap Snapshot
	for rows.Next() {
		var (
			e   Entry
			raw []byte
		)
		if err := rows.Scan(&e.ID, &e.Keyword, &raw, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("keywords: scan failed: %w", err)
		}
		if err := json.Unmarshal(raw, &e.Responses); err != nil {
			return nil, fmt.Errorf("keywords: decode responses: %w", err)
		}
		snap = append(snap, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("keywords: iterate rows: %w", err)
	}
	return snap, nil
}

// Upsert appends response to an existing keyword (set semantics) or inserts
// a new entry with a single-element response list.
func (r *PostgresRepository) Upsert(ctx context.Context, keyword, response string) (*Entry, error) {
	keyword = Normalize(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	var (
		e   Entry
		raw []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, keyword, responses, created_at, updated_at FROM keyword_responses WHERE keyword = $1`,
		keyword,
	).Scan(&e.ID, &e.Keyword, &raw, &e.CreatedAt, &e.UpdatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return r.insert(ctx, keyword, response)
	case err != nil:
		return nil, fmt.Errorf("keywords: lookup failed: %w", err)
	}

	if err := json.Unmarshal(raw, &e.Responses); err != nil {
		return nil, fmt.Errorf("keywords: decode responses: %w", err)
	}
	if containsResponse(e.Responses, response) {
		return &e, nil
	}

	e.Responses = append(e.Responses, response)
	encoded, err := json.Marshal(e.Responses)
	if err != nil {
		return nil, fmt.Errorf("keywords: encode responses: %w", err)
	}
	var updatedAt time.Time
	if err := r.pool.QueryRow(ctx,
		`UPDATE keyword_responses SET responses = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`,
		e.ID, encoded,
	).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("keywords: append response failed: %w", err)
	}
	e.UpdatedAt = updatedAt
	return &e, nil
}

func (r *PostgresRepository) insert(ctx context.Context, keyword, response string) (*Entry, error) {
	id := uuid.New()
	encoded, err := json.Marshal([]string{response})
	if err != nil {
		return nil, fmt.Errorf("keywords: encode responses: %w", err)
	}

	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx,
		`INSERT INTO keyword_responses (id, keyword, responses) VALUES ($1, $2, $3) RETURNING created_at, updated_at`,
		id, keyword, encoded,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("keywords: insert failed: %w", err)
	}

	return &Entry{
		ID:        id.String(),
		Keyword:   keyword,
		Responses: []string{response},
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// Replace overwrites keyword and responses for an entry.
func (r *PostgresRepository) Replace(ctx context.Context, id, keyword string, responses []string) (*Entry, error) {
	keyword = Normalize(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	if len(responses) == 0 {
		return nil, ErrEmptyResponses
	}

	encoded, err := json.Marshal(responses)
	if err != nil {
		return nil, fmt.Errorf("keywords: encode responses: %w", err)
	}

	var e Entry
	err = r.pool.QueryRow(ctx,
		`UPDATE keyword_responses SET keyword = $2, responses = $3, updated_at = now()
		 WHERE id = $1 RETURNING id, created_at, updated_at`,
		id, keyword, encoded,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("keywords: replace failed: %w", err)
	}

	e.Keyword = keyword
	e.Responses = append([]string(nil), responses...)
	return &e, nil
}

// Delete removes an entry by id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM keyword_responses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("keywords: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
