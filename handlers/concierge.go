package handlers

import (
	"net/http"

	"growthquest/models"
	"growthquest/monitoring"
	"growthquest/services/concierge"
	"growthquest/utils"

	"github.com/gin-gonic/gin"
)

// ConciergeHandler exposes the scripted concierge.
type ConciergeHandler struct {
	Svc concierge.Service
}

func NewConciergeHandler(svc concierge.Service) *ConciergeHandler {
	return &ConciergeHandler{Svc: svc}
}

// HandleMessage processes one concierge message round-trip.
func (h *ConciergeHandler) HandleMessage(c *gin.Context) {
	var req models.ConciergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if req.UserID == "" || req.Text == "" {
		utils.JSONError(c, http.StatusBadRequest, "userId and text are required", "")
		return
	}

	resp, err := h.Svc.ProcessMessage(c.Request.Context(), req)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "concierge unavailable", err.Error())
		return
	}

	monitoring.TrackConciergeMessage(resp.Intent)
	c.JSON(http.StatusOK, resp)
}
