package checkout

import "growthquest/models"

// TotalPrice computes the checkout total: the cohort's base price plus each
// selected add-on priced additively.
func TotalPrice(basePrice float64, addOns []models.AddOn) float64 {
	total := basePrice
	for _, a := range addOns {
		total += a.Price
	}
	return total
}
