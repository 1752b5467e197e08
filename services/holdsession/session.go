package holdsession

import (
	"sync"
	"time"

	"growthquest/models"
	"growthquest/services/inventory"
	"growthquest/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the lifecycle state of a hold session.
type State string

const (
	StateNone      State = "none"
	StateHeld      State = "held"
	StateConfirmed State = "confirmed"
	StateExpired   State = "expired"
)

// Session associates a holder with a held seat and an expiry instant.
// Confirmed and expired are terminal; a new Request starts a fresh session.
type Session struct {
	ID        string           `json:"sessionId"`
	CohortID  string           `json:"cohortId"`
	HolderID  string           `json:"holderId"`
	State     State            `json:"state"`
	Grant     models.HoldGrant `json:"grant"`
	CreatedAt time.Time        `json:"createdAt"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

// Manager owns hold sessions and drives their state transitions. The
// inventory store is mutated exactly once per session: not at all when the
// session ends confirmed (the seat stays decremented), or one release when
// it ends expired or cancelled.
type Manager struct {
	mu       sync.Mutex
	inv      *inventory.Store
	clock    Clock
	holdTTL  time.Duration
	sessions map[string]*Session
}

// NewManager builds a session manager around the given inventory store.
func NewManager(inv *inventory.Store, clock Clock, holdTTL time.Duration) *Manager {
	return &Manager{
		inv:      inv,
		clock:    clock,
		holdTTL:  holdTTL,
		sessions: make(map[string]*Session),
	}
}

// Request attempts to hold one seat on the cohort for the holder. On success
// the new session starts in the held state with expiresAt = now + hold TTL.
// Inventory failures (sold out, unknown cohort) are surfaced unchanged and no
// session is created.
func (m *Manager) Request(cohortID, holderID string) (*Session, error) {
	grant, err := m.inv.TryHold(cohortID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	s := &Session{
		ID:        uuid.New().String(),
		CohortID:  cohortID,
		HolderID:  holderID,
		State:     StateHeld,
		Grant:     grant,
		CreatedAt: now,
		ExpiresAt: now.Add(m.holdTTL),
	}
	m.sessions[s.ID] = s
	return s, nil
}

// Get returns a copy of the session.
func (m *Manager) Get(sessionID string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return *s, nil
}

// Confirm transitions a held session to confirmed. The clock is re-checked
// here: a confirm arriving after expiresAt fails with ErrHoldExpired and
// expires the session (releasing the seat) as a side effect, covering the
// race where the sweeper has not observed the expiry yet.
func (m *Manager) Confirm(sessionID string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if s.State == StateExpired {
		// Already expired (and released) by the sweeper or a task; report the
		// expiry, not a state violation, so the caller restarts the flow.
		return *s, ErrHoldExpired
	}
	if s.State != StateHeld {
		utils.GetLogger().Error("confirm attempted on non-held session",
			zap.String("sessionId", s.ID), zap.String("state", string(s.State)))
		return *s, ErrInvalidState
	}
	if !m.clock.Now().Before(s.ExpiresAt) {
		m.expireLocked(s)
		return *s, ErrHoldExpired
	}

	s.State = StateConfirmed
	if err := m.inv.Consume(s.CohortID); err != nil {
		utils.GetLogger().Error("consume marker failed", zap.String("cohortId", s.CohortID), zap.Error(err))
	}
	return *s, nil
}

// Cancel handles a user-initiated abandon of a held session. It is the same
// expire path the timer uses, just a different trigger.
func (m *Manager) Cancel(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if s.State == StateExpired {
		// The seat was already released exactly once; nothing more to do.
		return ErrHoldExpired
	}
	if s.State != StateHeld {
		utils.GetLogger().Error("cancel attempted on non-held session",
			zap.String("sessionId", s.ID), zap.String("state", string(s.State)))
		return ErrInvalidState
	}
	m.expireLocked(s)
	return nil
}

// Expire expires a single held session by id. A session that already expired
// reports ErrHoldExpired and a confirmed one ErrInvalidState; neither causes
// a further release, which makes the timer-task path safe to retry.
func (m *Manager) Expire(sessionID string) error {
	return m.Cancel(sessionID)
}

// Tick expires every held session whose expiry instant has passed as of now,
// releasing each seat exactly once. It returns the ids of the sessions it
// expired. Tick is the authoritative periodic check; it is driven externally
// (the sweeper) so the transition triggers stay enumerable and testable.
func (m *Manager) Tick(now time.Time) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expired []string
	for _, s := range m.sessions {
		if s.State == StateHeld && !now.Before(s.ExpiresAt) {
			m.expireLocked(s)
			expired = append(expired, s.ID)
		}
	}
	return expired
}

// Remaining reports how long the session's hold is still valid. It is a pure
// read for display: a session past its expiry reports zero but is not
// transitioned here; only Tick, Cancel, and a late Confirm expire sessions.
func (m *Manager) Remaining(sessionID string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if s.State != StateHeld {
		return 0, nil
	}
	left := s.ExpiresAt.Sub(m.clock.Now())
	if left < 0 {
		return 0, nil
	}
	return left, nil
}

// expireLocked moves a held session to expired and releases its seat. Caller
// must hold m.mu and have verified the session is in the held state; that
// check is the idempotency guard against double release.
func (m *Manager) expireLocked(s *Session) {
	s.State = StateExpired
	if err := m.inv.Release(s.CohortID); err != nil {
		utils.GetLogger().Error("seat release failed", zap.String("cohortId", s.CohortID), zap.Error(err))
	}
}
