package ratingsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cmueats/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new rating and returns its ID.
func (r *mongoRatingRepo) Create(ctx context.Context, rating models.Rating) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	rating.CreatedAt = now
	rating.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, rating); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateRating
		}
		return "", fmt.Errorf("failed to insert rating: %w", err)
	}
	return rating.ID, nil
}

func (r *mongoRatingRepo) GetByID(ctx context.Context, id string) (*models.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rating models.Rating
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rating)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRatingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *mongoRatingRepo) GetByRestaurantID(ctx context.Context, restaurantID string) ([]models.Rating, error) {
	return r.find(ctx, bson.M{"restaurantId": restaurantID})
}

func (r *mongoRatingRepo) GetByUserEmail(ctx context.Context, email string) ([]models.Rating, error) {
	return r.find(ctx, bson.M{"userEmail": email})
}

func (r *mongoRatingRepo) find(ctx context.Context, filter bson.M) ([]models.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ratings := []models.Rating{}
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}
