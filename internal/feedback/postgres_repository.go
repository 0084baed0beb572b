package feedback

import (
	"context"
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

// PostgresRepository stores feedback in the feedback and text_feedbacks
// tables.
type PostgresRepository struct {
	pool db
}

// NewPostgresRepository initializes a repository backed by pgxpool.
func NewPostgresRepository(pool db) *PostgresRepository {
	if pool == nil {
		panic("feedback: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// SaveMessage stores one per-message rating.
func (r *PostgresRepository) SaveMessage(ctx context.Context, fb MessageFeedback) (MessageFeedback, error) {
	if fb.ChatID == "" {
		return MessageFeedback{}, ErrMissingFields
	}

	id := uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO feedback (id, chat_id, message_index, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, id, fb.ChatID, fb.MessageIndex, fb.Rating, fb.Comment).Scan(&fb.CreatedAt)
	if err != nil {
		return MessageFeedback{}, fmt.Errorf("feedback: insert failed: %w", err)
	}

	fb.ID = id.String()
	return fb, nil
}

// ListMessage returns message feedback, newest first.
func (r *PostgresRepository) ListMessage(ctx context.Context) ([]MessageFeedback, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, chat_id, message_index, rating, comment, created_at
		FROM feedback
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("feedback: list failed: %w", err)
	}
	defer rows.Close()

	var out []MessageFeedback
	for rows.Next() {
		var fb MessageFeedback
		if err := rows.Scan(&fb.ID, &fb.ChatID, &fb.MessageIndex, &fb.Rating, &fb.Comment, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("feedback: scan failed: %w", err)
		}
		out = append(out, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("feedback: iterate rows: %w", err)
	}
	return out, nil
}

// MessageStats returns the count and two-decimal average rating.
func (r *PostgresRepository) MessageStats(ctx context.Context) (int, float64, error) {
	var (
		count   int
		average float64
	)
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM feedback`,
	).Scan(&count, &average)
	if err != nil {
		return 0, 0, fmt.Errorf("feedback: stats failed: %w", err)
	}
	return count, RoundRating(average), nil
}

// SaveText stores one free-text submission.
func (r *PostgresRepository) SaveText(ctx context.Context, fb TextFeedback) (TextFeedback, error) {
	if fb.UserID == "" || fb.Feedback == "" {
		return TextFeedback{}, ErrMissingFields
	}

	id := uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO text_feedbacks (id, user_id, user_name, rating, feedback)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, id, fb.UserID, fb.UserName, fb.Rating, fb.Feedback).Scan(&fb.CreatedAt)
	if err != nil {
		return TextFeedback{}, fmt.Errorf("feedback: insert text failed: %w", err)
	}

	fb.ID = id.String()
	return fb, nil
}

// ListText returns text feedback, newest first.
func (r *PostgresRepository) ListText(ctx context.Context) ([]TextFeedback, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, user_name, rating, feedback, created_at
		FROM text_feedbacks
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("feedback: list text failed: %w", err)
	}
	defer rows.Close()

	var out []TextFeedback
	for rows.Next() {
		var fb TextFeedback
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.UserName, &fb.Rating, &fb.Feedback, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("feedback: scan failed: %w", err)
		}
		out = append(out, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("feedback: iterate rows: %w", err)
	}
	return out, nil
}
