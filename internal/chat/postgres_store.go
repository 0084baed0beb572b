package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// db is the subset of pgxpool.Pool the store needs. pgxmock satisfies it
// too.
type db interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore persists transcripts in the chats table, with the message
// log held as an append-only JSONB array.
type PostgresStore struct {
	pool   db
	tracer trace.Tracer
}

// NewPostgresStore initializes a store backed by pgxpool.
func NewPostgresStore(pool db) *PostgresStore {
	if pool == nil {
		panic("chat: pgx pool required")
	}
	return &PostgresStore{
		pool:   pool,
		tracer: otel.Tracer("wellness.internal.chat"),
	}
}

// Create inserts a new transcript row.
func (s *PostgresStore) Create(ctx context.Context, ownerID, title string, messages []Message) (string, error) {
	ctx, span := s.tracer.Start(ctx, "chat.create_transcript")
	defer span.End()

	if title == "" {
		title = defaultTitle
	}
	encoded, err := json.Marshal(messages)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("chat: encode messages: %w", err)
	}

	id := uuid.New()
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO chats (id, owner_id, title, messages) VALUES ($1, $2, $3, $4)`,
		id, ownerID, title, encoded,
	); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("chat: insert failed: %w", err)
	}
	return id.String(), nil
}

// Append extends the message array and bumps updated_at in one statement,
// so a transcript never observes a half-written exchange.
func (s *PostgresStore) Append(ctx context.Context, chatID string, messages []Message) error {
	ctx, span := s.tracer.Start(ctx, "chat.append_messages")
	defer span.End()

	if len(messages) == 0 {
		return ErrNoMessages
	}
	id, err := uuid.Parse(chatID)
	if err != nil {
		return ErrNotFound
	}
	encoded, err := json.Marshal(messages)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("chat: encode messages: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE chats SET messages = messages || $2::jsonb, updated_at = now() WHERE id = $1`,
		id, encoded,
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("chat: append failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns the messages of a transcript, empty when absent.
func (s *PostgresStore) Get(ctx context.Context, chatID string) ([]Message, error) {
	id, err := uuid.Parse(chatID)
	if err != nil {
		return []Message{}, nil
	}

	var raw []byte
	err = s.pool.QueryRow(ctx, `SELECT messages FROM chats WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return []Message{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("chat: select failed: %w", err)
	}

	var messages []Message
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("chat: decode messages: %w", err)
	}
	return messages, nil
}

// ListByOwner returns summaries sorted by updated_at descending.
func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID string) ([]Summary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, COALESCE(messages->-1->>'text', ''), updated_at, is_active
		FROM chats
		WHERE owner_id = $1
		ORDER BY updated_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("chat: list failed: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ChatID, &sum.Title, &sum.LastMessage, &sum.UpdatedAt, &sum.IsActive); err != nil {
			return nil, fmt.Errorf("chat: scan failed: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chat: iterate rows: %w", err)
	}
	return summaries, nil
}

// Search prefilters candidates with ILIKE and computes per-message matches
// and snippets in Go.
func (s *PostgresStore) Search(ctx context.Context, ownerID, query string) ([]SearchResult, error) {
	if query == "" {
		return s.recent(ctx, ownerID)
	}

	pattern := "%" + escapeLike(query) + "%"
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, messages, updated_at
		FROM chats
		WHERE owner_id = $1 AND is_active
		  AND (title ILIKE $2 OR messages::text ILIKE $2)
		ORDER BY updated_at DESC
	`, ownerID, pattern)
	if err != nil {
		return nil, fmt.Errorf("chat: search failed: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			t   Transcript
			raw []byte
		)
		if err := rows.Scan(&t.ID, &t.Title, &raw, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("chat: scan failed: %w", err)
		}
		if err := json.Unmarshal(raw, &t.Messages); err != nil {
			return nil, fmt.Errorf("chat: decode messages: %w", err)
		}
		// messages::text can match on JSON structure rather than message
		// text, so re-check in Go before including the transcript.
		if res, ok := matchTranscript(&t, query); ok {
			results = append(results, res)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chat: iterate rows: %w", err)
	}
	return results, nil
}

func (s *PostgresStore) recent(ctx context.Context, ownerID string) ([]SearchResult, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, messages, updated_at
		FROM chats
		WHERE owner_id = $1 AND is_active
		ORDER BY updated_at DESC
		LIMIT $2
	`, ownerID, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("chat: recent failed: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			id, title string
			raw       []byte
			updatedAt time.Time
		)
		if err := rows.Scan(&id, &title, &raw, &updatedAt); err != nil {
			return nil, fmt.Errorf("chat: scan failed: %w", err)
		}
		var messages []Message
		if err := json.Unmarshal(raw, &messages); err != nil {
			return nil, fmt.Errorf("chat: decode messages: %w", err)
		}
		results = append(results, SearchResult{
			ChatID:       id,
			Title:        title,
			LastMessage:  lastMessageText(messages),
			Preview:      lastMessageText(messages),
			UpdatedAt:    updatedAt,
			MessageCount: len(messages),
			IsRecent:     true,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chat: iterate rows: %w", err)
	}
	return results, nil
}

// Delete hard-deletes a transcript.
func (s *PostgresStore) Delete(ctx context.Context, chatID string) error {
	id, err := uuid.Parse(chatID)
	if err != nil {
		return ErrNotFound
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM chats WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("chat: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
