package models

import "time"

// BookingStatus enumerates the durable outcomes of the checkout flow.
type BookingStatus string

const (
	BookingConfirmed  BookingStatus = "confirmed"
	BookingWaitlisted BookingStatus = "waitlisted"
	BookingCancelled  BookingStatus = "cancelled"
	BookingCompleted  BookingStatus = "completed"
)

// Booking represents a durable booking record, created when a hold is
// confirmed or when a holder joins a cohort's waitlist.
type Booking struct {
	ID         string        `json:"id"`
	CohortID   string        `json:"cohortId"`
	HolderID   string        `json:"holderId"`
	Status     BookingStatus `json:"status"`
	AddOnIDs   []string      `json:"addOnIds,omitempty"`
	TotalPrice float64       `json:"totalPrice"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// DerivedStatus reports the booking status as of now. A confirmed booking
// whose cohort has ended reads as completed; the stored record is not
// rewritten, completion is computed on read.
func (b Booking) DerivedStatus(cohortEnd time.Time, now time.Time) BookingStatus {
	if b.Status == BookingConfirmed && !cohortEnd.IsZero() && now.After(cohortEnd) {
		return BookingCompleted
	}
	return b.Status
}
