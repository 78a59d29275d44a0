package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/chirpnet/backend/internal/handlers"
	"github.com/chirpnet/backend/internal/middleware"
	"github.com/chirpnet/backend/internal/models"
	"github.com/chirpnet/backend/internal/repositories"
	"github.com/chirpnet/backend/internal/service"
	"github.com/chirpnet/backend/internal/storage"
	"github.com/chirpnet/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, stores *config.Stores, blobStore storage.BlobStore, firebaseAuthClient *auth.Client, logger *zap.Logger) {
	// AutoMigrate PostgreSQL models
	err := stores.Postgres.AutoMigrate(
		&models.User{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories ---
	userRepo := repositories.NewPostgresUserRepository(stores.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(stores.Postgres)
	mongoDB := stores.Mongo.Database("chirpnet")
	tweetRepo := repositories.NewMongoTweetRepository(mongoDB)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	likeRepo := repositories.NewRedisLikeRepository(stores.Redis)

	// --- Services ---
	followService := service.NewFollowService(logger, followRepo, userRepo)
	uploadService := service.NewUploadService(logger, blobStore)

	// --- Unprotected routes ---
	authHandler := handlers.NewAuthHandler(userRepo, followService, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(e)
	log.Println("Auth routes configured.")

	userHandler := handlers.NewUserHandler(userRepo, tweetRepo, followService)
	userHandler.RegisterPublicRoutes(e)

	tweetHandler := handlers.NewTweetHandler(tweetRepo, userRepo)
	tweetHandler.RegisterPublicRoutes(e)

	postHandler := handlers.NewPostHandler(postRepo, userRepo, likeRepo, uploadService)
	postHandler.RegisterPublicRoutes(e)

	// --- Protected routes (require a session token) ---
	api := e.Group("")
	api.Use(middleware.SessionAuthMiddleware())
	log.Println("Session authentication middleware applied.")

	followHandler := handlers.NewFollowHandler(followService)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	userHandler.RegisterProtectedRoutes(api)
	tweetHandler.RegisterProtectedRoutes(api)
	postHandler.RegisterProtectedRoutes(api)

	uploadHandler := handlers.NewUploadHandler(uploadService)
	uploadHandler.RegisterUploadRoutes(api)
	log.Println("Upload routes configured.")

	log.Println("All routes configured.")
}
