package ratingsRepo

import (
	"context"
	"fmt"
	"time"

	"cmueats/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// averagePipeline groups a restaurant's ratings into one document of per-field averages.
func averagePipeline(restaurantID string) mongo.Pipeline {
	group := bson.D{
		{Key: "_id", Value: "$restaurantId"},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}
	for _, field := range models.RatingFields {
		group = append(group, bson.E{Key: field, Value: bson.D{{Key: "$avg", Value: "$" + field}}})
	}
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "restaurantId", Value: restaurantID}}}},
		{{Key: "$group", Value: group}},
	}
}

func (r *mongoRatingRepo) AverageByRestaurantID(ctx context.Context, restaurantID string) (*models.RatingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, averagePipeline(restaurantID))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.RatingSummary
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode rating averages: %w", err)
	}
	if len(results) == 0 {
		return &models.RatingSummary{RestaurantID: restaurantID}, nil
	}
	return &results[0], nil
}
