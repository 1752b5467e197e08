package models

// ConciergeRequest is the payload coming from the frontend into /api/concierge/message.
type ConciergeRequest struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

// ConciergeAction is a single button/card action returned with a reply.
type ConciergeAction struct {
	Label     string `json:"label"`
	Type      string `json:"type"` // e.g. "hold", "waitlist", "view_offering"
	CohortID  string `json:"cohortId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// ConciergeResponse is what the concierge handler returns to the frontend.
type ConciergeResponse struct {
	Intent       string            `json:"intent"` // "hold_seat", "join_waitlist", or "none"
	ResponseText string            `json:"response"`
	Actions      []ConciergeAction `json:"actions,omitempty"`
	Booking      *Booking          `json:"booking,omitempty"`
}

// ConciergeContext is the per-user conversation state kept between messages.
type ConciergeContext struct {
	LastOfferingID string `json:"lastOfferingId,omitempty"`
	LastCohortID   string `json:"lastCohortId,omitempty"`
	HoldSessionID  string `json:"holdSessionId,omitempty"`
}
