package handlers

import (
	"errors"
	"net/http"

	ratingsRepo "cmueats/database/repository/ratings"
	"cmueats/models"
	"cmueats/services/ratings"
	"cmueats/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RatingHandler exposes rating submission and lookups.
type RatingHandler struct {
	Service ratings.RatingService
}

func NewRatingHandler(svc ratings.RatingService) *RatingHandler {
	return &RatingHandler{Service: svc}
}

// CreateRatingHandler stores a new rating.
func (h *RatingHandler) CreateRatingHandler(c *gin.Context) {
	logger := getLogger(c)

	var rating models.Rating
	if err := c.ShouldBindJSON(&rating); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.Service.CreateRating(c.Request.Context(), rating)
	if err != nil {
		var verr *utils.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.JSONError(c, http.StatusBadRequest, "Invalid rating", verr.Error())
		case errors.Is(err, ratingsRepo.ErrDuplicateRating):
			utils.JSONError(c, http.StatusConflict, "Rating already submitted", "each user may rate a restaurant once")
		default:
			logger.Error("Failed to create rating", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create rating", "")
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetRestaurantRatingsHandler lists the ratings for one restaurant.
func (h *RatingHandler) GetRestaurantRatingsHandler(c *gin.Context) {
	restaurantID := c.Param("restaurantId")
	list, err := h.Service.GetRestaurantRatings(c.Request.Context(), restaurantID)
	if err != nil {
		getLogger(c).Error("Failed to fetch restaurant ratings", zap.String("restaurantId", restaurantID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch ratings", "")
		return
	}
	if list == nil {
		list = []models.Rating{}
	}
	c.JSON(http.StatusOK, gin.H{"ratings": list})
}

// GetRestaurantAverageHandler returns the per-field averages for one restaurant.
func (h *RatingHandler) GetRestaurantAverageHandler(c *gin.Context) {
	restaurantID := c.Param("restaurantId")
	summary, err := h.Service.GetRestaurantAverage(c.Request.Context(), restaurantID)
	if err != nil {
		getLogger(c).Error("Failed to aggregate ratings", zap.String("restaurantId", restaurantID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to aggregate ratings", "")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetUserRatingsHandler lists the ratings a user submitted.
func (h *RatingHandler) GetUserRatingsHandler(c *gin.Context) {
	email := c.Param("email")
	list, err := h.Service.GetUserRatings(c.Request.Context(), email)
	if err != nil {
		getLogger(c).Error("Failed to fetch user ratings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch ratings", "")
		return
	}
	if list == nil {
		list = []models.Rating{}
	}
	c.JSON(http.StatusOK, gin.H{"ratings": list})
}
