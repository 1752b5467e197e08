package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Catalog endpoints
	ListOfferings gin.HandlerFunc
	GetOffering   gin.HandlerFunc
	ListCohorts   gin.HandlerFunc

	// Checkout endpoints
	Hold          gin.HandlerFunc
	Confirm       gin.HandlerFunc
	Cancel        gin.HandlerFunc
	Remaining     gin.HandlerFunc
	JoinWaitlist  gin.HandlerFunc
	SuggestBundle gin.HandlerFunc
	ListBookings  gin.HandlerFunc

	// Concierge endpoints
	ConciergeMessage gin.HandlerFunc
}
