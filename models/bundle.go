package models

// BundleSuggestion pairs a primary offering with companions that are often
// booked together. Purely advisory: checkout never depends on it.
type BundleSuggestion struct {
	PrimaryOfferingID    string   `json:"primaryOfferingId"`
	CompanionOfferingIDs []string `json:"companionOfferingIds"`
	CombinedPrice        float64  `json:"combinedPrice"`
	Blurb                string   `json:"blurb,omitempty"`
}
