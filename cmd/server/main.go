package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/chirpnet/backend/internal/router"
	"github.com/chirpnet/backend/internal/storage"
	"github.com/chirpnet/backend/pkg/config"
	"github.com/chirpnet/backend/pkg/firebase"
	"github.com/chirpnet/backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Structured logger for the service layer
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize backing store connections
	stores, err := config.InitStores(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize stores: %v", err)
	}
	defer stores.Close()

	// Blob store for image uploads
	ctx := context.Background()
	blobStore := storage.NewMinioStore(stores.Minio, cfg.MinioBucket, cfg.MinioPublicURL)
	if err := blobStore.EnsureBucket(ctx); err != nil {
		log.Fatalf("Failed to prepare upload bucket: %v", err)
	}

	// Firebase is optional: social login is only wired when credentials exist
	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuthClient = firebaseApp.AuthClient
	} else {
		log.Println("No Firebase credentials configured, social login disabled.")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, stores, blobStore, firebaseAuthClient, logger)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
