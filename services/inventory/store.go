package inventory

import (
	"sync"
	"time"

	"growthquest/models"
)

// Store is the single source of truth for per-cohort seat counts. All seat
// mutations go through TryHold and Release; nothing else may touch SeatsLeft.
// Access is serialized by a mutex so two concurrent holds against the last
// seat cannot both succeed.
type Store struct {
	mu      sync.Mutex
	cohorts map[string]*models.Cohort
}

// NewStore builds a store seeded with the given cohorts. Each store owns its
// own copies so isolated stores can be constructed per test.
func NewStore(cohorts []models.Cohort) *Store {
	s := &Store{cohorts: make(map[string]*models.Cohort, len(cohorts))}
	for i := range cohorts {
		c := cohorts[i]
		s.cohorts[c.ID] = &c
	}
	return s
}

// TryHold attempts to grant one seat on the cohort. It decrements SeatsLeft
// and returns a grant snapshotting the cohort's price, or ErrCohortNotFound /
// ErrSoldOut without mutating anything.
func (s *Store) TryHold(cohortID string) (models.HoldGrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cohorts[cohortID]
	if !ok {
		return models.HoldGrant{}, ErrCohortNotFound
	}
	if c.SeatsLeft <= 0 {
		return models.HoldGrant{}, ErrSoldOut
	}

	c.SeatsLeft--
	return models.HoldGrant{
		CohortID:   c.ID,
		OfferingID: c.OfferingID,
		ProviderID: c.ProviderID,
		UnitPrice:  c.Price,
		GrantedAt:  time.Now(),
	}, nil
}

// Release returns one previously held seat to the cohort, clamped at
// capacity. The store does not track which holds are outstanding; calling
// Release at most once per expired hold is the session layer's job.
func (s *Store) Release(cohortID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cohorts[cohortID]
	if !ok {
		return ErrCohortNotFound
	}
	if c.SeatsLeft < c.Capacity {
		c.SeatsLeft++
	}
	return nil
}

// Consume marks a held seat as permanently committed. The seat was already
// decremented at hold time, so there is no inventory change; this exists as
// a separate code path from Release so the two can never be confused.
func (s *Store) Consume(cohortID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cohorts[cohortID]; !ok {
		return ErrCohortNotFound
	}
	return nil
}

// SeatsLeft reports the current seat count for a cohort.
func (s *Store) SeatsLeft(cohortID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cohorts[cohortID]
	if !ok {
		return 0, ErrCohortNotFound
	}
	return c.SeatsLeft, nil
}

// Get returns a copy of the cohort record.
func (s *Store) Get(cohortID string) (models.Cohort, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cohorts[cohortID]
	if !ok {
		return models.Cohort{}, ErrCohortNotFound
	}
	return *c, nil
}

// Snapshot returns copies of all cohorts, for display and metrics collection.
func (s *Store) Snapshot() []models.Cohort {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Cohort, 0, len(s.cohorts))
	for _, c := range s.cohorts {
		out = append(out, *c)
	}
	return out
}
