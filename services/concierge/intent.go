package concierge

import (
	"regexp"
	"strings"

	"growthquest/database/repository"
	"growthquest/models"
)

// Intent is the tagged result of classifying a user message. The concierge
// is scripted: classification is keyword and pattern matching over catalog
// content, with no inference of any kind.
type Intent interface {
	isIntent()
	Name() string
}

// HoldSeatIntent asks to hold a seat on a specific cohort.
type HoldSeatIntent struct {
	CohortID string
}

// JoinWaitlistIntent asks to join a cohort's waitlist.
type JoinWaitlistIntent struct {
	CohortID string
}

// NoneIntent carries the fallback reply when no actionable request matched.
type NoneIntent struct {
	Message string
}

func (HoldSeatIntent) isIntent()     {}
func (JoinWaitlistIntent) isIntent() {}
func (NoneIntent) isIntent()         {}

func (HoldSeatIntent) Name() string     { return "hold_seat" }
func (JoinWaitlistIntent) Name() string { return "join_waitlist" }
func (NoneIntent) Name() string         { return "none" }

var cohortIDPattern = regexp.MustCompile(`\bcoh-[a-z0-9-]+\b`)

var (
	waitlistKeywords = []string{"waitlist", "wait list", "notify me"}
	holdKeywords     = []string{"book", "hold", "reserve", "sign me up", "join"}
)

// Classifier turns free-form text into an Intent by matching keywords and
// offering titles against the catalog.
type Classifier struct {
	Catalog repository.CatalogRepository
}

// Classify resolves the message to an intent. Resolution order: an explicit
// cohort id wins; otherwise an offering title or tag mentioned in the text
// selects that offering's next open cohort. Without a verb keyword the
// result is NoneIntent.
func (c *Classifier) Classify(text string) Intent {
	lower := strings.ToLower(text)

	wantsWaitlist := containsAny(lower, waitlistKeywords)
	wantsHold := containsAny(lower, holdKeywords)

	cohortID := cohortIDPattern.FindString(lower)
	if cohortID == "" {
		if offering, ok := c.matchOffering(lower); ok {
			cohortID = c.pickCohort(offering.ID)
		}
	}

	switch {
	case cohortID == "" && (wantsHold || wantsWaitlist):
		return NoneIntent{Message: "Which experience did you have in mind? Tell me its name and I can set you up."}
	case cohortID == "":
		return NoneIntent{Message: "I can hold a seat or add you to a waitlist. What would you like to do?"}
	case wantsWaitlist:
		return JoinWaitlistIntent{CohortID: cohortID}
	case wantsHold:
		return HoldSeatIntent{CohortID: cohortID}
	default:
		return NoneIntent{Message: "I found that experience. Say \"book it\" to hold a seat or \"waitlist\" to get in line."}
	}
}

// matchOffering finds an offering whose title or tag appears in the text.
func (c *Classifier) matchOffering(lower string) (models.Offering, bool) {
	for _, o := range c.Catalog.ListOfferings() {
		if strings.Contains(lower, strings.ToLower(o.Title)) {
			return o, true
		}
		for _, tag := range o.Tags {
			if strings.Contains(lower, strings.ToLower(tag)) {
				return o, true
			}
		}
	}
	return models.Offering{}, false
}

// pickCohort selects the offering's earliest cohort with open seats,
// falling back to the earliest cohort so a sold-out ask can still be
// routed to the waitlist.
func (c *Classifier) pickCohort(offeringID string) string {
	cohorts := c.Catalog.ListCohorts(offeringID)
	if len(cohorts) == 0 {
		return ""
	}

	var best, bestOpen *models.Cohort
	for i := range cohorts {
		co := &cohorts[i]
		if best == nil || co.Start.Before(best.Start) {
			best = co
		}
		if co.SeatsLeft > 0 && (bestOpen == nil || co.Start.Before(bestOpen.Start)) {
			bestOpen = co
		}
	}
	if bestOpen != nil {
		return bestOpen.ID
	}
	return best.ID
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
