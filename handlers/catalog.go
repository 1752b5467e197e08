package handlers

import (
	"net/http"

	"growthquest/database/repository"
	"growthquest/models"
	"growthquest/services/inventory"
	"growthquest/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the read-only discovery surface. Seat counts are
// overlaid from the inventory store so listings reflect live availability
// rather than the fixture seed.
type CatalogHandler struct {
	Catalog   repository.CatalogRepository
	Inventory *inventory.Store
}

func NewCatalogHandler(catalog repository.CatalogRepository, inv *inventory.Store) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog, Inventory: inv}
}

// ListOfferings returns all offerings.
func (h *CatalogHandler) ListOfferings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"offerings": h.Catalog.ListOfferings()})
}

// GetOffering returns one offering with its cohorts, add-ons, and provider.
func (h *CatalogHandler) GetOffering(c *gin.Context) {
	id := c.Param("offeringID")

	offering, ok := h.Catalog.GetOffering(id)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "offering not found", id)
		return
	}

	resp := gin.H{
		"offering": offering,
		"cohorts":  h.liveCohorts(id),
		"addOns":   h.Catalog.ListAddOns(id),
	}
	if provider, ok := h.Catalog.GetProvider(offering.ProviderID); ok {
		resp["provider"] = provider
	}
	c.JSON(http.StatusOK, resp)
}

// ListCohorts returns an offering's cohorts with live seat counts.
func (h *CatalogHandler) ListCohorts(c *gin.Context) {
	id := c.Param("offeringID")
	if _, ok := h.Catalog.GetOffering(id); !ok {
		utils.JSONError(c, http.StatusNotFound, "offering not found", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cohorts": h.liveCohorts(id)})
}

func (h *CatalogHandler) liveCohorts(offeringID string) []models.Cohort {
	cohorts := h.Catalog.ListCohorts(offeringID)
	out := make([]models.Cohort, 0, len(cohorts))
	for _, co := range cohorts {
		if live, err := h.Inventory.Get(co.ID); err == nil {
			co.SeatsLeft = live.SeatsLeft
		}
		out = append(out, co)
	}
	return out
}
