// File: database/repository/ratings/interface.go
package ratingsRepo

import (
	"context"
	"errors"

	"cmueats/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateRating is returned when a user already rated the restaurant.
var ErrDuplicateRating = errors.New("rating already exists for this user and restaurant")

// ErrRatingNotFound is returned when no rating has the requested ID.
var ErrRatingNotFound = errors.New("rating not found")

type RatingRepository interface {
	Create(ctx context.Context, rating models.Rating) (string, error)
	GetByID(ctx context.Context, id string) (*models.Rating, error)
	GetByRestaurantID(ctx context.Context, restaurantID string) ([]models.Rating, error)
	GetByUserEmail(ctx context.Context, email string) ([]models.Rating, error)
	AverageByRestaurantID(ctx context.Context, restaurantID string) (*models.RatingSummary, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoRatingRepo struct {
	coll *mongo.Collection
}

// NewMongoRatingRepo returns a RatingRepository backed by the ratings collection.
func NewMongoRatingRepo(db *mongo.Database) RatingRepository {
	return &mongoRatingRepo{
		coll: db.Collection("ratings"),
	}
}
