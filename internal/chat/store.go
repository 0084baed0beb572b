package chat

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store owns the ordered message log for every conversation.
type Store interface {
	// Create starts a new transcript and returns its id.
	Create(ctx context.Context, ownerID, title string, messages []Message) (string, error)
	// Append atomically extends a transcript and bumps updated_at.
	Append(ctx context.Context, chatID string, messages []Message) error
	// Get returns the messages of a transcript. A missing transcript yields
	// an empty sequence, not an error.
	Get(ctx context.Context, chatID string) ([]Message, error)
	// ListByOwner returns summaries sorted by updated_at descending.
	ListByOwner(ctx context.Context, ownerID string) ([]Summary, error)
	// Search matches query against titles and message text. An empty query
	// returns the most recent active transcripts (capped).
	Search(ctx context.Context, ownerID, query string) ([]SearchResult, error)
	// Delete hard-deletes a transcript.
	Delete(ctx context.Context, chatID string) error
}

// InMemoryStore keeps transcripts in memory. Used in tests and when no
// database is configured.
type InMemoryStore struct {
	mu          sync.RWMutex
	transcripts map[string]*Transcript
}

// NewInMemoryStore creates a new in-memory transcript store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{transcripts: make(map[string]*Transcript)}
}

// Create starts a new transcript.
func (s *InMemoryStore) Create(ctx context.Context, ownerID, title string, messages []Message) (string, error) {
	if title == "" {
		title = defaultTitle
	}
	now := time.Now().UTC()
	t := &Transcript{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		Messages:  append([]Message(nil), messages...),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.transcripts[t.ID] = t
	s.mu.Unlock()

	return t.ID, nil
}

// Append extends a transcript in place.
func (s *InMemoryStore) Append(ctx context.Context, chatID string, messages []Message) error {
	if len(messages) == 0 {
		return ErrNoMessages
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transcripts[chatID]
	if !ok {
		return ErrNotFound
	}
	t.Messages = append(t.Messages, messages...)
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Get returns the messages of a transcript, empty when absent.
func (s *InMemoryStore) Get(ctx context.Context, chatID string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transcripts[chatID]
	if !ok {
		return []Message{}, nil
	}
	return append([]Message(nil), t.Messages...), nil
}

// ListByOwner returns summaries sorted by updated_at descending.
func (s *InMemoryStore) ListByOwner(ctx context.Context, ownerID string) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summaries []Summary
	for _, t := range s.transcripts {
		if t.OwnerID != ownerID {
			continue
		}
		last := ""
		if len(t.Messages) > 0 {
			last = t.Messages[len(t.Messages)-1].Text
		}
		summaries = append(summaries, Summary{
			ChatID:      t.ID,
			Title:       t.Title,
			LastMessage: last,
			UpdatedAt:   t.UpdatedAt,
			IsActive:    t.IsActive,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

// Search matches query against titles and message text.
func (s *InMemoryStore) Search(ctx context.Context, ownerID, query string) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []SearchResult
	if query == "" {
		for _, t := range s.transcripts {
			if t.OwnerID != ownerID || !t.IsActive {
				continue
			}
			results = append(results, SearchResult{
				ChatID:       t.ID,
				Title:        t.Title,
				LastMessage:  lastMessageText(t.Messages),
				Preview:      lastMessageText(t.Messages),
				UpdatedAt:    t.UpdatedAt,
				MessageCount: len(t.Messages),
				IsRecent:     true,
			})
		}
		sort.Slice(results, func(i, j int) bool {
			return results[i].UpdatedAt.After(results[j].UpdatedAt)
		})
		if len(results) > recentLimit {
			results = results[:recentLimit]
		}
		return results, nil
	}

	for _, t := range s.transcripts {
		if t.OwnerID != ownerID || !t.IsActive {
			continue
		}
		if res, ok := matchTranscript(t, query); ok {
			results = append(results, res)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].UpdatedAt.After(results[j].UpdatedAt)
	})
	return results, nil
}

// Delete hard-deletes a transcript.
func (s *InMemoryStore) Delete(ctx context.Context, chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transcripts[chatID]; !ok {
		return ErrNotFound
	}
	delete(s.transcripts, chatID)
	return nil
}
