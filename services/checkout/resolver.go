package checkout

import (
	"time"

	"growthquest/models"
	"growthquest/services/holdsession"
	"growthquest/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hold requests a seat hold on the cohort. A SoldOut failure is surfaced
// unchanged so the caller can route the holder to the waitlist flow.
func (r *DefaultResolver) Hold(cohortID, holderID string) (*holdsession.Session, error) {
	session, err := r.Sessions.Request(cohortID, holderID)
	if err != nil {
		return nil, err
	}

	if r.Scheduler != nil {
		if err := r.Scheduler.ScheduleExpiry(session.ID, session.ExpiresAt); err != nil {
			// The sweep still expires the hold; only the tight deadline is lost.
			utils.GetLogger().Warn("failed to schedule expiry task",
				zap.String("sessionId", session.ID), zap.Error(err))
		}
	}
	return session, nil
}

// Confirm finalizes a held session into a confirmed booking. Total price is
// the held cohort's base price plus the selected add-ons. Inventory is not
// touched here: the seat was decremented at hold time and stays decremented.
func (r *DefaultResolver) Confirm(sessionID string, addOnIDs []string) (*models.Booking, error) {
	current, err := r.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	// Resolve add-ons before transitioning the session, so a bad selection
	// leaves the hold intact and retryable.
	addOns, err := r.resolveAddOns(current.Grant.OfferingID, addOnIDs)
	if err != nil {
		return nil, err
	}

	session, err := r.Sessions.Confirm(sessionID)
	if err != nil {
		return nil, err
	}

	booking := models.Booking{
		ID:         uuid.New().String(),
		CohortID:   session.CohortID,
		HolderID:   session.HolderID,
		Status:     models.BookingConfirmed,
		AddOnIDs:   addOnIDs,
		TotalPrice: TotalPrice(session.Grant.UnitPrice, addOns),
		CreatedAt:  r.Clock.Now(),
	}
	if err := r.Bookings.Create(booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel handles an explicit user abandon of a held session.
func (r *DefaultResolver) Cancel(sessionID string) error {
	return r.Sessions.Cancel(sessionID)
}

// Expire is the timer-driven funnel. Cancel and Expire share one release
// path in the session manager, so a seat is never released twice.
func (r *DefaultResolver) Expire(sessionID string) error {
	return r.Sessions.Expire(sessionID)
}

// JoinWaitlist records a waitlist booking for the cohort regardless of seat
// availability, without touching inventory. It is idempotent: an existing
// waitlist booking for the same (cohort, holder) is returned as-is.
func (r *DefaultResolver) JoinWaitlist(cohortID, holderID string) (*models.Booking, error) {
	if _, err := r.Inventory.Get(cohortID); err != nil {
		return nil, err
	}

	if existing, ok := r.Bookings.FindWaitlisted(cohortID, holderID); ok {
		return &existing, nil
	}

	booking := models.Booking{
		ID:        uuid.New().String(),
		CohortID:  cohortID,
		HolderID:  holderID,
		Status:    models.BookingWaitlisted,
		CreatedAt: r.Clock.Now(),
	}
	if err := r.Bookings.Create(booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// SuggestBundle looks up the advisory bundle pairing for an offering.
// Returns nil when no pairing exists; there is no contract beyond that.
func (r *DefaultResolver) SuggestBundle(primaryOfferingID string) *models.BundleSuggestion {
	b, ok := r.Catalog.GetBundle(primaryOfferingID)
	if !ok {
		return nil
	}
	return &b
}

// Remaining reports the time left on a hold, for display only.
func (r *DefaultResolver) Remaining(sessionID string) (time.Duration, error) {
	return r.Sessions.Remaining(sessionID)
}

// ListBookings returns the holder's bookings with completion derived from
// each cohort's end instant.
func (r *DefaultResolver) ListBookings(holderID string) []models.Booking {
	now := r.Clock.Now()
	bookings := r.Bookings.ListByHolder(holderID)
	for i, b := range bookings {
		if cohort, ok := r.Catalog.GetCohort(b.CohortID); ok {
			bookings[i].Status = b.DerivedStatus(cohort.End, now)
		}
	}
	return bookings
}

func (r *DefaultResolver) resolveAddOns(offeringID string, addOnIDs []string) ([]models.AddOn, error) {
	addOns := make([]models.AddOn, 0, len(addOnIDs))
	for _, id := range addOnIDs {
		a, ok := r.Catalog.GetAddOn(id)
		if !ok || a.OfferingID != offeringID {
			return nil, ErrUnknownAddOn
		}
		addOns = append(addOns, a)
	}
	return addOns, nil
}
