package repository

import (
	"time"

	"growthquest/models"
)

// Fixture data seeding the catalog. The marketplace prototype ships with a
// small set of cohort-based experiences; a provider-publishing workflow would
// replace this in a full deployment.

func fixtureDate(offsetDays, hour int) time.Time {
	base := time.Now().Truncate(24 * time.Hour)
	return base.AddDate(0, 0, offsetDays).Add(time.Duration(hour) * time.Hour)
}

// FixtureOfferings returns the seed offerings.
func FixtureOfferings() []models.Offering {
	return []models.Offering{
		{
			ID:          "off-trail-photography",
			ProviderID:  "prov-amara",
			Title:       "Trail Photography Immersion",
			Description: "A guided week of golden-hour shoots on backcountry trails.",
			Category:    "creative",
			Tags:        []string{"photography", "outdoors"},
		},
		{
			ID:          "off-sourdough-lab",
			ProviderID:  "prov-bengt",
			Title:       "Sourdough Lab",
			Description: "Four sessions from starter to bake with a working baker.",
			Category:    "culinary",
			Tags:        []string{"baking", "hands-on"},
		},
		{
			ID:          "off-founder-sprint",
			ProviderID:  "prov-carmen",
			Title:       "Founder Storytelling Sprint",
			Description: "Pitch-narrative workshop for early-stage founders.",
			Category:    "career",
			Tags:        []string{"pitching", "writing"},
		},
	}
}

// FixtureCohorts returns the seed cohorts. Seat counts here are the initial
// inventory; the inventory store owns them after startup.
func FixtureCohorts() []models.Cohort {
	return []models.Cohort{
		{
			ID:         "coh-trail-oct",
			OfferingID: "off-trail-photography",
			ProviderID: "prov-amara",
			Capacity:   8,
			SeatsLeft:  8,
			Price:      240,
			Start:      fixtureDate(14, 9),
			End:        fixtureDate(21, 17),
		},
		{
			ID:         "coh-trail-nov",
			OfferingID: "off-trail-photography",
			ProviderID: "prov-amara",
			Capacity:   8,
			SeatsLeft:  2,
			Price:      240,
			Start:      fixtureDate(45, 9),
			End:        fixtureDate(52, 17),
		},
		{
			ID:         "coh-sourdough-weekly",
			OfferingID: "off-sourdough-lab",
			ProviderID: "prov-bengt",
			Capacity:   6,
			SeatsLeft:  6,
			Price:      180,
			Start:      fixtureDate(7, 18),
			End:        fixtureDate(28, 20),
		},
		{
			ID:         "coh-founder-sept",
			OfferingID: "off-founder-sprint",
			ProviderID: "prov-carmen",
			Capacity:   12,
			SeatsLeft:  0,
			Price:      320,
			Start:      fixtureDate(10, 10),
			End:        fixtureDate(12, 16),
		},
	}
}

// FixtureAddOns returns the seed add-ons.
func FixtureAddOns() []models.AddOn {
	return []models.AddOn{
		{ID: "addon-print-pack", OfferingID: "off-trail-photography", Name: "Fine-art print pack", Price: 45},
		{ID: "addon-lens-rental", OfferingID: "off-trail-photography", Name: "Prime lens rental", Price: 30},
		{ID: "addon-starter-kit", OfferingID: "off-sourdough-lab", Name: "Starter culture kit", Price: 20},
		{ID: "addon-deck-review", OfferingID: "off-founder-sprint", Name: "1:1 deck review", Price: 90},
	}
}

// FixtureBundles returns the seed bundle pairings.
func FixtureBundles() []models.BundleSuggestion {
	return []models.BundleSuggestion{
		{
			PrimaryOfferingID:    "off-trail-photography",
			CompanionOfferingIDs: []string{"off-sourdough-lab"},
			CombinedPrice:        390,
			Blurb:                "Shoot the trails by day, bake with your cohort by night.",
		},
		{
			PrimaryOfferingID:    "off-founder-sprint",
			CompanionOfferingIDs: []string{"off-trail-photography"},
			CombinedPrice:        520,
			Blurb:                "Sharpen your story, then recharge outdoors.",
		},
	}
}

// FixtureProviders returns the seed providers.
func FixtureProviders() []models.Provider {
	return []models.Provider{
		{ID: "prov-amara", Name: "Amara Okafor", Bio: "Landscape photographer and trail guide.", Rating: 4.9},
		{ID: "prov-bengt", Name: "Bengt Lindqvist", Bio: "Third-generation baker.", Rating: 4.7},
		{ID: "prov-carmen", Name: "Carmen Reyes", Bio: "Narrative coach for founders.", Rating: 4.8},
	}
}

// NewFixtureCatalog assembles the fixture-backed catalog.
func NewFixtureCatalog() *InMemoryCatalog {
	return NewInMemoryCatalog(
		FixtureOfferings(),
		FixtureCohorts(),
		FixtureAddOns(),
		FixtureBundles(),
		FixtureProviders(),
	)
}
