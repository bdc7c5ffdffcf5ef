// File: cmueats/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cmueats/config"
	"cmueats/cron"
	"cmueats/database"
	emailsRepo "cmueats/database/repository/emails"
	ratingsRepo "cmueats/database/repository/ratings"
	"cmueats/handlers"
	"cmueats/middleware"
	"cmueats/routes"
	"cmueats/services/dining"
	"cmueats/services/emails"
	"cmueats/services/publisher"
	"cmueats/services/ratings"
	"cmueats/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	database.InitPostgres()
	utils.InitCache()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	ratingRepo := ratingsRepo.NewMongoRatingRepo(database.MongoDatabase())
	indexCtx, cancelIndex := context.WithTimeout(ctx, 10*time.Second)
	if err := ratingRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure rating indexes: %v", err)
	}
	cancelIndex()
	emailRepo := emailsRepo.NewPostgresEmailRepo(database.PostgresPool)

	// services.
	zone, err := dining.LoadTimeZone(config.AppConfig.DiningTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid dining time zone: %v", err)
	}
	locationCache := dining.NewRedisLocationCache(utils.GetCacheClient(), config.AppConfig.LocationsCacheTTL)
	locationService := dining.NewDefaultLocationService(
		dining.NewClient(config.AppConfig.DiningAPIURL),
		locationCache,
		zone,
		logger.Named("dining"),
	)
	ratingService := ratings.NewDefaultRatingService(ratingRepo, logger.Named("ratings"))
	emailService := emails.NewDefaultEmailService(emailRepo, logger.Named("emails"))

	var statusPublisher publisher.StatusPublisher
	if config.AppConfig.MQTTEnabled {
		mqttPublisher, err := publisher.NewMQTTPublisher(publisher.Config{
			Broker:      config.AppConfig.MQTTBroker,
			Username:    config.AppConfig.MQTTUsername,
			Password:    config.AppConfig.MQTTPassword,
			TopicPrefix: config.AppConfig.MQTTTopicPrefix,
		}, logger.Named("mqtt"))
		if err != nil {
			logger.Warn("MQTT publishing disabled", zap.Error(err))
		} else {
			statusPublisher = mqttPublisher
			defer mqttPublisher.Close()
		}
	}

	poller := cron.NewLocationPoller(locationService, statusPublisher, logger.Named("poller"))
	if err := poller.Start(ctx, config.AppConfig.DiningPollSchedule); err != nil {
		logger.Sugar().Fatalf("main: failed to start location poller: %v", err)
	}

	var signer handlers.TokenSigner
	mapkitSigner, err := utils.NewMapKitSigner(
		config.AppConfig.MapKitTeamID,
		config.AppConfig.MapKitKeyID,
		config.AppConfig.MapKitPrivateKey,
		config.AppConfig.MapKitOrigin,
		config.AppConfig.MapKitTokenTTL,
	)
	if err != nil {
		logger.Warn("MapKit tokens unavailable", zap.Error(err))
	} else {
		signer = mapkitSigner
	}

	healthMonitor := utils.NewHealthMonitor(map[string]utils.Pinger{
		"mongo": utils.PingerFunc(func(ctx context.Context) error {
			return database.MongoClient.Ping(ctx, readpref.Primary())
		}),
		"postgres": utils.PingerFunc(func(ctx context.Context) error {
			return database.PostgresPool.Ping(ctx)
		}),
		"redis": utils.PingerFunc(func(ctx context.Context) error {
			return utils.GetCacheClient().Ping(ctx).Err()
		}),
	})
	healthMonitor.Start(ctx, 30*time.Second)

	locationHandler := handlers.NewLocationHandler(locationService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	emailHandler := handlers.NewEmailHandler(emailService)
	mapkitHandler := handlers.NewMapKitHandler(signer)
	healthHandler := handlers.NewHealthHandler(healthMonitor)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		HealthHandler: healthHandler.GetHealthHandler,

		GetLocationsHandler:   locationHandler.GetLocationsHandler,
		GetLocationHandler:    locationHandler.GetLocationHandler,
		GetBlockPeriodHandler: locationHandler.GetBlockPeriodHandler,

		CreateRatingHandler:         ratingHandler.CreateRatingHandler,
		GetRestaurantRatingsHandler: ratingHandler.GetRestaurantRatingsHandler,
		GetRestaurantAverageHandler: ratingHandler.GetRestaurantAverageHandler,
		GetUserRatingsHandler:       ratingHandler.GetUserRatingsHandler,

		SubscribeHandler:  emailHandler.SubscribeHandler,
		ListEmailsHandler: emailHandler.ListEmailsHandler,

		MapKitTokenHandler: mapkitHandler.GetTokenHandler,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger.Named("http")))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	stop()
	poller.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	database.Close(shutdownCtx)

	logger.Sugar().Info("main: server stopped gracefully")
}
