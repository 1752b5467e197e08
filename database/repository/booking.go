package repository

import (
	"sync"

	"growthquest/models"
)

// BookingRepository persists booking records for the lifetime of the process.
type BookingRepository interface {
	Create(b models.Booking) error
	GetByID(id string) (models.Booking, bool)
	// FindWaitlisted returns an existing waitlist booking for the
	// (cohort, holder) pair, if any. Used to keep JoinWaitlist idempotent.
	FindWaitlisted(cohortID, holderID string) (models.Booking, bool)
	ListByHolder(holderID string) []models.Booking
	ListByCohort(cohortID string) []models.Booking
}

// InMemoryBookingRepo is a map-backed booking repository.
type InMemoryBookingRepo struct {
	mu      sync.RWMutex
	byID    map[string]models.Booking
	ordered []string
}

// NewInMemoryBookingRepo builds an empty booking repository.
func NewInMemoryBookingRepo() *InMemoryBookingRepo {
	return &InMemoryBookingRepo{byID: make(map[string]models.Booking)}
}

func (r *InMemoryBookingRepo) Create(b models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[b.ID] = b
	r.ordered = append(r.ordered, b.ID)
	return nil
}

func (r *InMemoryBookingRepo) GetByID(id string) (models.Booking, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byID[id]
	return b, ok
}

func (r *InMemoryBookingRepo) FindWaitlisted(cohortID, holderID string) (models.Booking, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.ordered {
		b := r.byID[id]
		if b.CohortID == cohortID && b.HolderID == holderID && b.Status == models.BookingWaitlisted {
			return b, true
		}
	}
	return models.Booking{}, false
}

func (r *InMemoryBookingRepo) ListByHolder(holderID string) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Booking
	for _, id := range r.ordered {
		if b := r.byID[id]; b.HolderID == holderID {
			out = append(out, b)
		}
	}
	return out
}

func (r *InMemoryBookingRepo) ListByCohort(cohortID string) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Booking
	for _, id := range r.ordered {
		if b := r.byID[id]; b.CohortID == cohortID {
			out = append(out, b)
		}
	}
	return out
}
