package models

import "time"

// HoldGrant is returned by the inventory store when a seat is successfully
// decremented. It snapshots the cohort's pricing at hold time so a later
// confirm is priced at what the holder was shown.
type HoldGrant struct {
	CohortID   string    `json:"cohortId"`
	OfferingID string    `json:"offeringId"`
	ProviderID string    `json:"providerId"`
	UnitPrice  float64   `json:"unitPrice"`
	GrantedAt  time.Time `json:"grantedAt"`
}
