package ratingsRepo

import (
	"context"
	"errors"
	"testing"

	"cmueats/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoRatingRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("average with no ratings returns zero count", func(mt *mtest.T) {
		repo := &mongoRatingRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "cmueats.ratings", mtest.FirstBatch))

		summary, err := repo.AverageByRestaurantID(context.Background(), "108")
		if err != nil {
			mt.Fatalf("expected no error, got %v", err)
		}
		if summary.RestaurantID != "108" || summary.Count != 0 || summary.Overall != 0 {
			mt.Fatalf("expected empty summary for 108, got %+v", summary)
		}
	})

	mt.Run("average decodes the grouped document", func(mt *mtest.T) {
		repo := &mongoRatingRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "cmueats.ratings", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "108"},
			{Key: "count", Value: int32(2)},
			{Key: "overall", Value: 4.5},
			{Key: "taste", Value: 3.0},
		}))

		summary, err := repo.AverageByRestaurantID(context.Background(), "108")
		if err != nil {
			mt.Fatalf("expected no error, got %v", err)
		}
		if summary.RestaurantID != "108" || summary.Count != 2 || summary.Overall != 4.5 || summary.Taste != 3 {
			mt.Fatalf("unexpected summary %+v", summary)
		}
	})

	mt.Run("duplicate key maps to ErrDuplicateRating", func(mt *mtest.T) {
		repo := &mongoRatingRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repo.Create(context.Background(), models.Rating{RestaurantID: "108", UserEmail: "scotty@cmu.edu", Overall: 5})
		if !errors.Is(err, ErrDuplicateRating) {
			mt.Fatalf("expected ErrDuplicateRating, got %v", err)
		}
	})

	mt.Run("other write errors are wrapped", func(mt *mtest.T) {
		repo := &mongoRatingRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "document failed validation",
		}))

		_, err := repo.Create(context.Background(), models.Rating{RestaurantID: "108", UserEmail: "scotty@cmu.edu"})
		if err == nil || errors.Is(err, ErrDuplicateRating) {
			mt.Fatalf("expected generic insert error, got %v", err)
		}
	})

	mt.Run("create assigns an id", func(mt *mtest.T) {
		repo := &mongoRatingRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Create(context.Background(), models.Rating{RestaurantID: "108", UserEmail: "scotty@cmu.edu"})
		if err != nil {
			mt.Fatalf("expected no error, got %v", err)
		}
		if id == "" {
			mt.Fatalf("expected generated id")
		}
	})

	mt.Run("missing id returns ErrRatingNotFound", func(mt *mtest.T) {
		repo := &mongoRatingRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "cmueats.ratings", mtest.FirstBatch))

		if _, err := repo.GetByID(context.Background(), "nope"); !errors.Is(err, ErrRatingNotFound) {
			mt.Fatalf("expected ErrRatingNotFound, got %v", err)
		}
	})

	mt.Run("restaurant ratings decode in cursor order", func(mt *mtest.T) {
		repo := &mongoRatingRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "cmueats.ratings", mtest.FirstBatch,
			bson.D{{Key: "id", Value: "b"}, {Key: "restaurantId", Value: "108"}},
			bson.D{{Key: "id", Value: "a"}, {Key: "restaurantId", Value: "108"}},
		))

		ratings, err := repo.GetByRestaurantID(context.Background(), "108")
		if err != nil {
			mt.Fatalf("expected no error, got %v", err)
		}
		if len(ratings) != 2 || ratings[0].ID != "b" || ratings[1].ID != "a" {
			mt.Fatalf("unexpected ratings %+v", ratings)
		}
	})
}
