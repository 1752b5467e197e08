package routes

import (
	"net/http"
	"time"

	"growthquest/handlers"
	"growthquest/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterCatalogRoutes registers the discovery endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.GET("/offerings", hb.ListOfferings)
		api.GET("/offerings/:offeringID", hb.GetOffering)
		api.GET("/offerings/:offeringID/cohorts", hb.ListCohorts)
	}
}

// RegisterCheckoutRoutes registers the seat-hold lifecycle endpoints.
func RegisterCheckoutRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/checkout")
	{
		api.POST("/hold", hb.Hold)
		api.POST("/confirm", hb.Confirm)
		api.DELETE("/session/:sessionID", hb.Cancel)
		api.GET("/session/:sessionID/remaining", hb.Remaining)
		api.POST("/waitlist", hb.JoinWaitlist)
		api.GET("/bundles/:offeringID", hb.SuggestBundle)
		api.GET("/bookings", hb.ListBookings)
	}
}

// RegisterConciergeRoutes registers the concierge endpoint.
func RegisterConciergeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/concierge")
	{
		api.POST("/message", hb.ConciergeMessage)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterMetricsRoute exposes Prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCatalogRoutes(r, hb)
	RegisterCheckoutRoutes(r, hb)
	RegisterConciergeRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
}
