package handlers

import (
	"errors"
	"net/http"

	"growthquest/monitoring"
	"growthquest/services/checkout"
	"growthquest/services/holdsession"
	"growthquest/services/inventory"
	"growthquest/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler exposes the seat-hold lifecycle over HTTP.
type CheckoutHandler struct {
	Resolver checkout.Resolver
	Logger   *zap.Logger
}

func NewCheckoutHandler(resolver checkout.Resolver, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{Resolver: resolver, Logger: logger}
}

// Hold attempts to hold a seat. A sold-out cohort answers 409 with a
// waitlist pointer so the client can route the user there.
func (h *CheckoutHandler) Hold(c *gin.Context) {
	var input struct {
		CohortID string `json:"cohortId" binding:"required"`
		HolderID string `json:"holderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Resolver.Hold(input.CohortID, input.HolderID)
	switch {
	case errors.Is(err, inventory.ErrCohortNotFound):
		monitoring.TrackHold("not_found")
		utils.JSONError(c, http.StatusNotFound, "cohort not found", input.CohortID)
		return
	case errors.Is(err, inventory.ErrSoldOut):
		monitoring.TrackHold("sold_out")
		c.JSON(http.StatusConflict, gin.H{
			"error":    "cohort is sold out",
			"waitlist": "/api/checkout/waitlist",
		})
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "failed to hold seat", err.Error())
		return
	}

	monitoring.TrackHold("held")
	remaining, _ := h.Resolver.Remaining(session.ID)

	resp := gin.H{
		"session":          session,
		"remainingSeconds": int(remaining.Seconds()),
	}
	if bundle := h.Resolver.SuggestBundle(session.Grant.OfferingID); bundle != nil {
		resp["bundleSuggestion"] = bundle
	}
	c.JSON(http.StatusOK, resp)
}

// Confirm finalizes a held session into a booking. A hold past its expiry
// answers 410 so the client restarts the flow from discovery.
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	var input struct {
		SessionID string   `json:"sessionId" binding:"required"`
		AddOnIDs  []string `json:"addOnIds"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Resolver.Confirm(input.SessionID, input.AddOnIDs)
	switch {
	case errors.Is(err, holdsession.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "hold session not found", input.SessionID)
		return
	case errors.Is(err, holdsession.ErrHoldExpired):
		utils.JSONError(c, http.StatusGone, "hold has expired", "restart checkout from the offering page")
		return
	case errors.Is(err, holdsession.ErrInvalidState):
		utils.JSONError(c, http.StatusConflict, "session is not holding a seat", input.SessionID)
		return
	case errors.Is(err, checkout.ErrUnknownAddOn):
		utils.JSONError(c, http.StatusUnprocessableEntity, "unknown add-on selected", "")
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "failed to confirm booking", err.Error())
		return
	}

	monitoring.TrackBooking(string(booking.Status))
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// Cancel abandons a held session, releasing the seat.
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	sessionID := c.Param("sessionID")

	err := h.Resolver.Cancel(sessionID)
	switch {
	case errors.Is(err, holdsession.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "hold session not found", sessionID)
		return
	case errors.Is(err, holdsession.ErrHoldExpired):
		utils.JSONError(c, http.StatusGone, "hold has already expired", sessionID)
		return
	case errors.Is(err, holdsession.ErrInvalidState):
		utils.JSONError(c, http.StatusConflict, "session is not holding a seat", sessionID)
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel session", err.Error())
		return
	}

	monitoring.TrackExpiry()
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// Remaining reports the countdown left on a hold, for display. Pure read;
// it never expires the session itself.
func (h *CheckoutHandler) Remaining(c *gin.Context) {
	sessionID := c.Param("sessionID")

	remaining, err := h.Resolver.Remaining(sessionID)
	if errors.Is(err, holdsession.ErrSessionNotFound) {
		utils.JSONError(c, http.StatusNotFound, "hold session not found", sessionID)
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to read remaining time", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"remainingSeconds": int(remaining.Seconds())})
}

// JoinWaitlist adds the holder to a cohort's waitlist. Idempotent: repeating
// the call returns the existing waitlist booking.
func (h *CheckoutHandler) JoinWaitlist(c *gin.Context) {
	var input struct {
		CohortID string `json:"cohortId" binding:"required"`
		HolderID string `json:"holderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Resolver.JoinWaitlist(input.CohortID, input.HolderID)
	if errors.Is(err, inventory.ErrCohortNotFound) {
		utils.JSONError(c, http.StatusNotFound, "cohort not found", input.CohortID)
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to join waitlist", err.Error())
		return
	}

	monitoring.TrackBooking(string(booking.Status))
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// SuggestBundle returns the bundle pairing for an offering, 404 when none.
func (h *CheckoutHandler) SuggestBundle(c *gin.Context) {
	offeringID := c.Param("offeringID")

	bundle := h.Resolver.SuggestBundle(offeringID)
	if bundle == nil {
		utils.JSONError(c, http.StatusNotFound, "no bundle suggestion for offering", offeringID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bundleSuggestion": bundle})
}

// ListBookings returns the holder's booking history with completion derived
// from cohort end times.
func (h *CheckoutHandler) ListBookings(c *gin.Context) {
	holderID := c.Query("holderId")
	if holderID == "" {
		utils.JSONError(c, http.StatusBadRequest, "holderId is required", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": h.Resolver.ListBookings(holderID)})
}
