package keywords

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for keyword storage
type Repository interface {
	// GetAll returns every entry in creation order.
	GetAll(ctx context.Context) (Snapshot, error)
	// Upsert appends response to an existing keyword (set semantics) or
	// creates a new entry with a single response.
	Upsert(ctx context.Context, keyword, response string) (*Entry, error)
	// Replace overwrites an entry by id.
	Replace(ctx context.Context, id, keyword string, responses []string) (*Entry, error)
	// Delete removes an entry by id.
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository keeps keyword entries in memory, preserving insertion
// order. Used in tests and when no database is configured.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// GetAll returns a copy of all entries in insertion order.
func (r *InMemoryRepository) GetAll(ctx context.Context) (Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(Snapshot, 0, len(r.entries))
	for _, e := range r.entries {
		copied := *e
		copied.Responses = append([]string(nil), e.Responses...)
		snap = append(snap, copied)
	}
	return snap, nil
}

// Upsert appends response to an existing keyword or creates a new entry.
func (r *InMemoryRepository) Upsert(ctx context.Context, keyword, response string) (*Entry, error) {
	keyword = Normalize(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, e := range r.entries {
		if e.Keyword == keyword {
			if !containsResponse(e.Responses, response) {
				e.Responses = append(e.Responses, response)
				e.UpdatedAt = now
			}
			copied := *e
			return &copied, nil
		}
	}

	entry := &Entry{
		ID:        uuid.New().String(),
		Keyword:   keyword,
		Responses: []string{response},
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.entries = append(r.entries, entry)
	copied := *entry
	return &copied, nil
}

// Replace overwrites an entry by id.
func (r *InMemoryRepository) Replace(ctx context.Context, id, keyword string, responses []string) (*Entry, error) {
	keyword = Normalize(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	if len(responses) == 0 {
		return nil, ErrEmptyResponses
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.ID == id {
			e.Keyword = keyword
			e.Responses = append([]string(nil), responses...)
			e.UpdatedAt = time.Now().UTC()
			copied := *e
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes an entry by id.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
