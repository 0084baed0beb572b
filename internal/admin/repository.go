package admin

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository is the storage interface for console accounts.
type Repository interface {
	// Create stores a new admin. Email must be unique.
	Create(ctx context.Context, a Admin) (Admin, error)
	// GetByEmail returns an admin by normalized email.
	GetByEmail(ctx context.Context, email string) (Admin, error)
}

// InMemoryRepository keeps admins in memory for tests and local runs.
type InMemoryRepository struct {
	mu     sync.RWMutex
	admins map[string]*Admin
}

// NewInMemoryRepository creates an empty in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{admins: make(map[string]*Admin)}
}

// Create stores a new admin.
func (r *InMemoryRepository) Create(ctx context.Context, a Admin) (Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.admins {
		if strings.EqualFold(existing.Email, a.Email) {
			return Admin{}, ErrAlreadyExists
		}
	}

	a.ID = uuid.New().String()
	a.CreatedAt = time.Now().UTC()
	stored := a
	r.admins[a.ID] = &stored
	return a, nil
}

// GetByEmail returns an admin by normalized email.
func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.admins {
		if strings.EqualFold(a.Email, email) {
			return *a, nil
		}
	}
	return Admin{}, ErrNotFound
}
