package leads

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for lead storage. Create is an
// append-only insert; callers only learn success or failure.
type Repository interface {
	Create(ctx context.Context, sub *LeadSubmission) (*StoredLead, error)
}

// InMemoryRepository is a Repository backed by process memory, used in
// tests and local development.
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads map[string]*StoredLead
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads: make(map[string]*StoredLead),
	}
}

// Create stores the submission with the fixed market/source tags.
func (r *InMemoryRepository) Create(ctx context.Context, sub *LeadSubmission) (*StoredLead, error) {
	lead := &StoredLead{
		ID:             uuid.New().String(),
		Nombre:         sub.Nombre,
		Email:          sub.Email,
		TelefonoPais:   sub.TelefonoPais,
		TelefonoNumero: sub.TelefonoNumero,
		Rol:            sub.Rol,
		Tamano:         sub.Tamano,
		Dolor:          sub.Dolor,
		Intereses:      append([]string(nil), sub.Intereses...),
		Checklist:      sub.Checklist,
		Market:         Market,
		Source:         Source,
		CreatedAt:      time.Now().UTC(),
	}

	r.mu.Lock()
	r.leads[lead.ID] = lead
	r.mu.Unlock()

	return lead, nil
}

// All returns a snapshot of stored leads.
func (r *InMemoryRepository) All() []*StoredLead {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*StoredLead, 0, len(r.leads))
	for _, lead := range r.leads {
		out = append(out, lead)
	}
	return out
}
