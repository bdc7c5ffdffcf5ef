// File: models/rating.go
package models

import "time"

// Rating is one user's review of a dining location. Every sub-rating is expected between 1 and 5.
type Rating struct {
	ID           string    `bson:"id" json:"id"`
	RestaurantID string    `bson:"restaurantId" json:"restaurantId" binding:"required"`
	UserEmail    string    `bson:"userEmail" json:"userEmail" binding:"required"`
	Overall      float64   `bson:"overall" json:"overall"`
	Taste        float64   `bson:"taste" json:"taste"`
	Value        float64   `bson:"value" json:"value"`
	PortionSize  float64   `bson:"portionSize" json:"portionSize"`
	Service      float64   `bson:"service" json:"service"`
	Cleanliness  float64   `bson:"cleanliness" json:"cleanliness"`
	Speed        float64   `bson:"speed" json:"speed"`
	Variety      float64   `bson:"variety" json:"variety"`
	Healthiness  float64   `bson:"healthiness" json:"healthiness"`
	Comment      string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SubRatings returns the nine numeric ratings keyed by their bson field name.
func (r Rating) SubRatings() map[string]float64 {
	return map[string]float64{
		"overall":     r.Overall,
		"taste":       r.Taste,
		"value":       r.Value,
		"portionSize": r.PortionSize,
		"service":     r.Service,
		"cleanliness": r.Cleanliness,
		"speed":       r.Speed,
		"variety":     r.Variety,
		"healthiness": r.Healthiness,
	}
}

// RatingFields lists the sub-rating field names in display order.
var RatingFields = []string{
	"overall", "taste", "value", "portionSize", "service",
	"cleanliness", "speed", "variety", "healthiness",
}

// RatingSummary holds per-field averages for a restaurant.
type RatingSummary struct {
	RestaurantID string  `bson:"_id" json:"restaurantId"`
	Count        int     `bson:"count" json:"count"`
	Overall      float64 `bson:"overall" json:"overall"`
	Taste        float64 `bson:"taste" json:"taste"`
	Value        float64 `bson:"value" json:"value"`
	PortionSize  float64 `bson:"portionSize" json:"portionSize"`
	Service      float64 `bson:"service" json:"service"`
	Cleanliness  float64 `bson:"cleanliness" json:"cleanliness"`
	Speed        float64 `bson:"speed" json:"speed"`
	Variety      float64 `bson:"variety" json:"variety"`
	Healthiness  float64 `bson:"healthiness" json:"healthiness"`
}
