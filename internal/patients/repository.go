package patients

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository is the storage interface for patient accounts.
type Repository interface {
	// Create stores a new patient. Email and phone must be unique.
	Create(ctx context.Context, p Patient) (Patient, error)
	// GetByID returns a patient by id.
	GetByID(ctx context.Context, id string) (Patient, error)
	// GetByEmail returns a patient by normalized email.
	GetByEmail(ctx context.Context, email string) (Patient, error)
	// List returns every patient, newest first.
	List(ctx context.Context) ([]Patient, error)
	// ListPending returns patients awaiting approval, newest first.
	ListPending(ctx context.Context) ([]Patient, error)
	// Approve marks a patient approved and stamps approved_at.
	Approve(ctx context.Context, id string) error
	// Update modifies the admin-editable fields.
	Update(ctx context.Context, id string, update Update) error
	// Delete removes a patient.
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository keeps patients in memory for tests and local runs.
type InMemoryRepository struct {
	mu       sync.RWMutex
	patients map[string]*Patient
}

// NewInMemoryRepository creates an empty in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{patients: make(map[string]*Patient)}
}

// Create stores a new patient.
func (r *InMemoryRepository) Create(ctx context.Context, p Patient) (Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.patients {
		if strings.EqualFold(existing.Email, p.Email) {
			return Patient{}, ErrEmailTaken
		}
		if existing.Phone == p.Phone {
			return Patient{}, ErrPhoneTaken
		}
	}

	now := time.Now().UTC()
	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now

	stored := p
	r.patients[p.ID] = &stored
	return p, nil
}

// GetByID returns a patient by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[id]
	if !ok {
		return Patient{}, ErrNotFound
	}
	return *p, nil
}

// GetByEmail returns a patient by normalized email.
func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.patients {
		if strings.EqualFold(p.Email, email) {
			return *p, nil
		}
	}
	return Patient{}, ErrNotFound
}

// List returns every patient, newest first.
func (r *InMemoryRepository) List(ctx context.Context) ([]Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, *p)
	}
	sortNewestFirst(out)
	return out, nil
}

// ListPending returns patients awaiting approval, newest first.
func (r *InMemoryRepository) ListPending(ctx context.Context) ([]Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Patient
	for _, p := range r.patients {
		if !p.IsApproved {
			out = append(out, *p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// Approve marks a patient approved.
func (r *InMemoryRepository) Approve(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[id]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	p.IsApproved = true
	p.ApprovedAt = &now
	p.UpdatedAt = now
	return nil
}

// Update modifies the admin-editable fields.
func (r *InMemoryRepository) Update(ctx context.Context, id string, update Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[id]
	if !ok {
		return ErrNotFound
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Email != nil {
		p.Email = strings.ToLower(strings.TrimSpace(*update.Email))
	}
	if update.Age != nil {
		p.Age = *update.Age
	}
	if update.Gender != nil {
		p.Gender = *update.Gender
	}
	if update.Phone != nil {
		p.Phone = *update.Phone
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes a patient.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patients[id]; !ok {
		return ErrNotFound
	}
	delete(r.patients, id)
	return nil
}

func sortNewestFirst(patients []Patient) {
	sort.Slice(patients, func(i, j int) bool {
		return patients[i].CreatedAt.After(patients[j].CreatedAt)
	})
}
