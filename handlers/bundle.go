// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Health
	HealthHandler gin.HandlerFunc

	// Location endpoints
	GetLocationsHandler   gin.HandlerFunc
	GetLocationHandler    gin.HandlerFunc
	GetBlockPeriodHandler gin.HandlerFunc

	// Rating endpoints
	CreateRatingHandler         gin.HandlerFunc
	GetRestaurantRatingsHandler gin.HandlerFunc
	GetRestaurantAverageHandler gin.HandlerFunc
	GetUserRatingsHandler       gin.HandlerFunc

	// Email endpoints
	SubscribeHandler  gin.HandlerFunc
	ListEmailsHandler gin.HandlerFunc

	// MapKit
	MapKitTokenHandler gin.HandlerFunc
}
