package repository

import (
	"sync"

	"growthquest/models"
)

// CatalogRepository exposes the offerings, cohorts, add-ons, and bundle
// pairings available for booking. Checkout does not validate catalog content
// beyond existence checks.
type CatalogRepository interface {
	GetOffering(id string) (models.Offering, bool)
	ListOfferings() []models.Offering
	GetCohort(id string) (models.Cohort, bool)
	ListCohorts(offeringID string) []models.Cohort
	GetAddOn(id string) (models.AddOn, bool)
	ListAddOns(offeringID string) []models.AddOn
	GetBundle(primaryOfferingID string) (models.BundleSuggestion, bool)
	GetProvider(id string) (models.Provider, bool)
}

// InMemoryCatalog is a map-backed catalog seeded from fixture data. Bookable
// inventory lives in the inventory store; the catalog is read-only.
type InMemoryCatalog struct {
	mu        sync.RWMutex
	offerings map[string]models.Offering
	cohorts   map[string]models.Cohort
	addOns    map[string]models.AddOn
	bundles   map[string]models.BundleSuggestion
	providers map[string]models.Provider
}

// NewInMemoryCatalog builds a catalog from the given records.
func NewInMemoryCatalog(
	offerings []models.Offering,
	cohorts []models.Cohort,
	addOns []models.AddOn,
	bundles []models.BundleSuggestion,
	providers []models.Provider,
) *InMemoryCatalog {
	c := &InMemoryCatalog{
		offerings: make(map[string]models.Offering, len(offerings)),
		cohorts:   make(map[string]models.Cohort, len(cohorts)),
		addOns:    make(map[string]models.AddOn, len(addOns)),
		bundles:   make(map[string]models.BundleSuggestion, len(bundles)),
		providers: make(map[string]models.Provider, len(providers)),
	}
	for _, o := range offerings {
		c.offerings[o.ID] = o
	}
	for _, co := range cohorts {
		c.cohorts[co.ID] = co
	}
	for _, a := range addOns {
		c.addOns[a.ID] = a
	}
	for _, b := range bundles {
		c.bundles[b.PrimaryOfferingID] = b
	}
	for _, p := range providers {
		c.providers[p.ID] = p
	}
	return c
}

func (c *InMemoryCatalog) GetOffering(id string) (models.Offering, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.offerings[id]
	return o, ok
}

func (c *InMemoryCatalog) ListOfferings() []models.Offering {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Offering, 0, len(c.offerings))
	for _, o := range c.offerings {
		out = append(out, o)
	}
	return out
}

func (c *InMemoryCatalog) GetCohort(id string) (models.Cohort, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	co, ok := c.cohorts[id]
	return co, ok
}

func (c *InMemoryCatalog) ListCohorts(offeringID string) []models.Cohort {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Cohort
	for _, co := range c.cohorts {
		if co.OfferingID == offeringID {
			out = append(out, co)
		}
	}
	return out
}

func (c *InMemoryCatalog) GetAddOn(id string) (models.AddOn, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.addOns[id]
	return a, ok
}

func (c *InMemoryCatalog) ListAddOns(offeringID string) []models.AddOn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.AddOn
	for _, a := range c.addOns {
		if a.OfferingID == offeringID {
			out = append(out, a)
		}
	}
	return out
}

func (c *InMemoryCatalog) GetBundle(primaryOfferingID string) (models.BundleSuggestion, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.bundles[primaryOfferingID]
	return b, ok
}

func (c *InMemoryCatalog) GetProvider(id string) (models.Provider, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.providers[id]
	return p, ok
}
