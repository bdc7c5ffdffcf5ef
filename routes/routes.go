package routes

import (
	"time"

	"cmueats/config"
	"cmueats/handlers"
	"cmueats/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterLocationRoutes registers dining location endpoints.
func RegisterLocationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/locations", hb.GetLocationsHandler)
		api.GET("/locations/:conceptId", hb.GetLocationHandler)
		api.GET("/block-period", hb.GetBlockPeriodHandler)
	}
}

// RegisterRatingRoutes registers rating endpoints.
func RegisterRatingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ratings")
	{
		api.POST("", hb.CreateRatingHandler)
		api.GET("/restaurant/:restaurantId", hb.GetRestaurantRatingsHandler)
		api.GET("/restaurant/:restaurantId/average", hb.GetRestaurantAverageHandler)
		api.GET("/user/:email", hb.GetUserRatingsHandler)
	}
}

// RegisterEmailRoutes registers the public sign up endpoint.
func RegisterEmailRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/emails", hb.SubscribeHandler)
}

// RegisterMapKitRoutes registers the map token endpoint.
func RegisterMapKitRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/mapkit/token", hb.MapKitTokenHandler)
}

// RegisterAdminRoutes sets up endpoints guarded by the admin token.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, adminToken string) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminTokenMiddleware(adminToken))
		adminGroup.GET("/emails", hb.ListEmailsHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, cfg config.Config) {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if origins := cfg.CORSOriginList(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	RegisterHealthRoute(r, hb)
	RegisterLocationRoutes(r, hb)
	RegisterRatingRoutes(r, hb)
	RegisterEmailRoutes(r, hb)
	RegisterMapKitRoutes(r, hb)
	RegisterAdminRoutes(r, hb, cfg.AdminToken)
}
