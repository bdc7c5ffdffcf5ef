// File: services/ratings/service.go
package ratings

import (
	"context"
	"fmt"
	"strings"

	ratingsRepo "cmueats/database/repository/ratings"
	"cmueats/models"
	"cmueats/utils"

	"go.uber.org/zap"
)

const (
	MinScore = 1
	MaxScore = 5

	maxCommentLength = 2000
)

type RatingService interface {
	CreateRating(ctx context.Context, rating models.Rating) (*models.Rating, error)
	GetRating(ctx context.Context, id string) (*models.Rating, error)
	GetRestaurantRatings(ctx context.Context, restaurantID string) ([]models.Rating, error)
	GetUserRatings(ctx context.Context, email string) ([]models.Rating, error)
	GetRestaurantAverage(ctx context.Context, restaurantID string) (*models.RatingSummary, error)
}

// DefaultRatingService is the production implementation.
type DefaultRatingService struct {
	Repo   ratingsRepo.RatingRepository
	Logger *zap.Logger
}

func NewDefaultRatingService(repo ratingsRepo.RatingRepository, logger *zap.Logger) *DefaultRatingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultRatingService{Repo: repo, Logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRating checks identifiers and that every sub-rating lies within MinScore..MaxScore.
func ValidateRating(r models.Rating) error {
	if strings.TrimSpace(r.RestaurantID) == "" {
		return utils.NewValidationError("restaurantId", "is required")
	}
	if !utils.IsValidEmail(r.UserEmail) {
		return utils.NewValidationError("userEmail", "must be a valid email address")
	}
	subRatings := r.SubRatings()
	for _, field := range models.RatingFields {
		score := subRatings[field]
		if score < MinScore || score > MaxScore {
			return utils.NewValidationError(field, fmt.Sprintf("must be between %d and %d", MinScore, MaxScore))
		}
	}
	if len(r.Comment) > maxCommentLength {
		return utils.NewValidationError("comment", fmt.Sprintf("must be at most %d characters", maxCommentLength))
	}
	return nil
}

func (s *DefaultRatingService) CreateRating(ctx context.Context, rating models.Rating) (*models.Rating, error) {
	rating.ID = ""
	rating.RestaurantID = strings.TrimSpace(rating.RestaurantID)
	rating.UserEmail = normalizeEmail(rating.UserEmail)
	rating.Comment = strings.TrimSpace(rating.Comment)

	if err := ValidateRating(rating); err != nil {
		return nil, err
	}

	id, err := s.Repo.Create(ctx, rating)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Rating created",
		zap.String("id", id),
		zap.String("restaurantId", rating.RestaurantID))

	created, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload rating %s: %w", id, err)
	}
	return created, nil
}

func (s *DefaultRatingService) GetRating(ctx context.Context, id string) (*models.Rating, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultRatingService) GetRestaurantRatings(ctx context.Context, restaurantID string) ([]models.Rating, error) {
	return s.Repo.GetByRestaurantID(ctx, strings.TrimSpace(restaurantID))
}

func (s *DefaultRatingService) GetUserRatings(ctx context.Context, email string) ([]models.Rating, error) {
	return s.Repo.GetByUserEmail(ctx, normalizeEmail(email))
}

func (s *DefaultRatingService) GetRestaurantAverage(ctx context.Context, restaurantID string) (*models.RatingSummary, error) {
	return s.Repo.AverageByRestaurantID(ctx, strings.TrimSpace(restaurantID))
}
