package feedback

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrMissingFields is returned when a submission lacks required fields
var ErrMissingFields = errors.New("required feedback fields missing")

// Repository is the storage interface for both feedback kinds.
type Repository interface {
	// SaveMessage stores one per-message rating.
	SaveMessage(ctx context.Context, fb MessageFeedback) (MessageFeedback, error)
	// ListMessage returns message feedback, newest first.
	ListMessage(ctx context.Context) ([]MessageFeedback, error)
	// MessageStats returns the count and the average rating rounded to two
	// decimals, zero when there is no feedback.
	MessageStats(ctx context.Context) (count int, average float64, err error)
	// SaveText stores one free-text submission.
	SaveText(ctx context.Context, fb TextFeedback) (TextFeedback, error)
	// ListText returns text feedback, newest first.
	ListText(ctx context.Context) ([]TextFeedback, error)
}

// InMemoryRepository keeps feedback in memory for tests and local runs.
type InMemoryRepository struct {
	mu       sync.RWMutex
	messages []MessageFeedback
	texts    []TextFeedback
}

// NewInMemoryRepository creates an empty in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// SaveMessage stores one per-message rating.
func (r *InMemoryRepository) SaveMessage(ctx context.Context, fb MessageFeedback) (MessageFeedback, error) {
	if fb.ChatID == "" {
		return MessageFeedback{}, ErrMissingFields
	}
	fb.ID = uuid.New().String()
	fb.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.messages = append(r.messages, fb)
	r.mu.Unlock()
	return fb, nil
}

// ListMessage returns message feedback, newest first.
func (r *InMemoryRepository) ListMessage(ctx context.Context) ([]MessageFeedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]MessageFeedback(nil), r.messages...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// MessageStats returns the count and two-decimal average rating.
func (r *InMemoryRepository) MessageStats(ctx context.Context) (int, float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.messages) == 0 {
		return 0, 0, nil
	}
	var sum int
	for _, fb := range r.messages {
		sum += fb.Rating
	}
	return len(r.messages), RoundRating(float64(sum) / float64(len(r.messages))), nil
}

// SaveText stores one free-text submission.
func (r *InMemoryRepository) SaveText(ctx context.Context, fb TextFeedback) (TextFeedback, error) {
	if fb.UserID == "" || fb.Feedback == "" {
		return TextFeedback{}, ErrMissingFields
	}
	fb.ID = uuid.New().String()
	fb.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.texts = append(r.texts, fb)
	r.mu.Unlock()
	return fb, nil
}

// ListText returns text feedback, newest first.
func (r *InMemoryRepository) ListText(ctx context.Context) ([]TextFeedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]TextFeedback(nil), r.texts...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RoundRating rounds an average rating to two decimals.
func RoundRating(v float64) float64 {
	return math.Round(v*100) / 100
}
