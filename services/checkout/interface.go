package checkout

import (
	"time"

	"growthquest/database/repository"
	"growthquest/models"
	"growthquest/services/holdsession"
	"growthquest/services/inventory"
)

// Resolver orchestrates the transition from a held seat to a booking: hold,
// confirm with add-ons, cancel/expire, waitlist, and the advisory bundle
// suggestion.
type Resolver interface {
	Hold(cohortID, holderID string) (*holdsession.Session, error)
	Confirm(sessionID string, addOnIDs []string) (*models.Booking, error)
	Cancel(sessionID string) error
	Expire(sessionID string) error
	JoinWaitlist(cohortID, holderID string) (*models.Booking, error)
	SuggestBundle(primaryOfferingID string) *models.BundleSuggestion
	Remaining(sessionID string) (time.Duration, error)
	ListBookings(holderID string) []models.Booking
}

// ExpiryScheduler schedules a one-shot expiry check for a hold session at its
// expiry instant. The periodic sweep remains authoritative; the scheduled
// task just tightens expiry latency.
type ExpiryScheduler interface {
	ScheduleExpiry(sessionID string, at time.Time) error
}

// DefaultResolver implements Resolver.
type DefaultResolver struct {
	Inventory *inventory.Store
	Sessions  *holdsession.Manager
	Bookings  repository.BookingRepository
	Catalog   repository.CatalogRepository
	Clock     holdsession.Clock
	Scheduler ExpiryScheduler // optional
}
