package holdsession

import (
	"errors"
	"sync"
	"testing"
	"time"

	"growthquest/models"
	"growthquest/services/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is an adjustable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

const holdTTL = 15 * time.Minute

func newTestManager(seats int) (*Manager, *inventory.Store, *fakeClock) {
	inv := inventory.NewStore([]models.Cohort{
		{ID: "coh-x", OfferingID: "off-x", ProviderID: "prov-x", Capacity: seats, SeatsLeft: seats, Price: 200},
	})
	clock := newFakeClock()
	return NewManager(inv, clock, holdTTL), inv, clock
}

func TestRequest_StartsHeldSession(t *testing.T) {
	mgr, inv, clock := newTestManager(1)

	s, err := mgr.Request("coh-x", "user-1")
	require.NoError(t, err)
	assert.Equal(t, StateHeld, s.State)
	assert.Equal(t, clock.Now().Add(holdTTL), s.ExpiresAt)

	left, _ := inv.SeatsLeft("coh-x")
	assert.Equal(t, 0, left)
}

func TestRequest_SoldOutLeavesNoSession(t *testing.T) {
	mgr, _, _ := newTestManager(1)

	_, err := mgr.Request("coh-x", "user-1")
	require.NoError(t, err)

	_, err = mgr.Request("coh-x", "user-2")
	assert.True(t, errors.Is(err, inventory.ErrSoldOut))

	_, err = mgr.Request("coh-missing", "user-2")
	assert.True(t, errors.Is(err, inventory.ErrCohortNotFound))
}

func TestConfirm_WhileLive(t *testing.T) {
	mgr, inv, clock := newTestManager(1)

	s, err := mgr.Request("coh-x", "user-1")
	require.NoError(t, err)

	clock.Advance(14 * time.Minute)
	confirmed, err := mgr.Confirm(s.ID)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, confirmed.State)

	// Seat stays decremented permanently.
	left, _ := inv.SeatsLeft("coh-x")
	assert.Equal(t, 0, left)
}

func TestConfirm_AfterExpiryFailsAndReleases(t *testing.T) {
	mgr, inv, clock := newTestManager(1)

	s, err := mgr.Request("coh-x", "user-1")
	require.NoError(t, err)

	// The sweeper has not run; confirm must re-check the clock itself.
	clock.Advance(16 * time.Minute)
	_, err = mgr.Confirm(s.ID)
	assert.True(t, errors.Is(err, ErrHoldExpired))

	got, err := mgr.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, StateExpired, got.State)

	left, _ := inv.SeatsLeft("coh-x")
	assert.Equal(t, 1, left)
}

func TestTick_ExpiresOverdueHolds(t *testing.T) {
	mgr, inv, clock := newTestManager(2)

	s1, err := mgr.Request("coh-x", "user-1")
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)
	s2, err := mgr.Request("coh-x", "user-2")
	require.NoError(t, err)

	clock.Advance(6 * time.Minute) // s1 is 16m old, s2 only 6m
	expired := mgr.Tick(clock.Now())
	assert.Equal(t, []string{s1.ID}, expired)

	got1, _ := mgr.Get(s1.ID)
	got2, _ := mgr.Get(s2.ID)
	assert.Equal(t, StateExpired, got1.State)
	assert.Equal(t, StateHeld, got2.State)

	left, _ := inv.SeatsLeft("coh-x")
	assert.Equal(t, 1, left)
}

func TestTick_IdempotentNoDoubleRelease(t *testing.T) {
	mgr, inv, clock := newTestManager(1)

	_, err := mgr.Request("coh-x", "user-1")
	require.NoError(t, err)

	clock.Advance(16 * time.Minute)
	require.Len(t, mgr.Tick(clock.Now()), 1)

	left, _ := inv.SeatsLeft("coh-x")
	require.Equal(t, 1, left)

	// Second tick observes no held sessions; seat count unchanged.
	assert.Empty(t, mgr.Tick(clock.Now()))
	left, _ = inv.SeatsLeft("coh-x")
	assert.Equal(t, 1, left)
}

func TestCancel_ReleasesOnceAndThenInvalid(t *testing.T) {
	mgr, inv, _ := newTestManager(1)

	s, err := mgr.Request("coh-x", "user-1")
	require.NoError(t, err)

	require.NoError(t, mgr.Cancel(s.ID))
	left, _ := inv.SeatsLeft("coh-x")
	require.Equal(t, 1, left)

	// Cancelling a dead session is an error and must not release again.
	err = mgr.Cancel(s.ID)
	assert.True(t, errors.Is(err, ErrHoldExpired))
	left, _ = inv.SeatsLeft("coh-x")
	assert.Equal(t, 1, left)
}

func TestConfirm_FromTerminalStates(t *testing.T) {
	mgr, _, clock := newTestManager(2)

	s1, err := mgr.Request("coh-x", "user-1")
	require.NoError(t, err)
	_, err = mgr.Confirm(s1.ID)
	require.NoError(t, err)
	_, err = mgr.Confirm(s1.ID)
	assert.True(t, errors.Is(err, ErrInvalidState))

	// A session expired by the sweep reports the expiry, not a state bug.
	s2, err := mgr.Request("coh-x", "user-2")
	require.NoError(t, err)
	clock.Advance(16 * time.Minute)
	mgr.Tick(clock.Now())
	_, err = mgr.Confirm(s2.ID)
	assert.True(t, errors.Is(err, ErrHoldExpired))

	_, err = mgr.Confirm("sess-missing")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestRemaining_IsSideEffectFree(t *testing.T) {
	mgr, inv, clock := newTestManager(1)

	s, err := mgr.Request("coh-x", "user-1")
	require.NoError(t, err)

	clock.Advance(5 * time.Minute)
	left, err := mgr.Remaining(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, left)

	// Past expiry the query reports zero but must not expire the session;
	// only the tick transition releases the seat.
	clock.Advance(11 * time.Minute)
	left, err = mgr.Remaining(s.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), left)

	got, _ := mgr.Get(s.ID)
	assert.Equal(t, StateHeld, got.State)
	seats, _ := inv.SeatsLeft("coh-x")
	assert.Equal(t, 0, seats)
}

func TestSession_ExactlyOneInventoryMutation(t *testing.T) {
	mgr, inv, clock := newTestManager(2)

	// Confirmed path: no compensating release.
	s1, err := mgr.Request("coh-x", "user-1")
	require.NoError(t, err)
	_, err = mgr.Confirm(s1.ID)
	require.NoError(t, err)

	// Expired path: exactly one release.
	s2, err := mgr.Request("coh-x", "user-2")
	require.NoError(t, err)
	clock.Advance(16 * time.Minute)
	mgr.Tick(clock.Now())
	mgr.Tick(clock.Now())
	assert.True(t, errors.Is(mgr.Expire(s2.ID), ErrHoldExpired))

	left, _ := inv.SeatsLeft("coh-x")
	assert.Equal(t, 1, left)
}
