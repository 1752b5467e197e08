package models

import "time"

// Offering is a bookable experience published by a provider.
type Offering struct {
	ID          string   `json:"id"`
	ProviderID  string   `json:"providerId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
}

// Cohort is the bookable unit of an offering: a scheduled run with a fixed
// number of seats. Seat counts are mutated only by the inventory store.
type Cohort struct {
	ID         string    `json:"id"`
	OfferingID string    `json:"offeringId"`
	ProviderID string    `json:"providerId"`
	Capacity   int       `json:"capacity"`
	SeatsLeft  int       `json:"seatsLeft"`
	Price      float64   `json:"price"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// AddOn is an optional extra priced additively on top of a cohort's base price.
type AddOn struct {
	ID         string  `json:"id"`
	OfferingID string  `json:"offeringId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
}

// Provider is a guide or partner running offerings.
type Provider struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Bio    string  `json:"bio,omitempty"`
	Rating float64 `json:"rating,omitempty"`
}
