package main

import (
	"context"
	"os"
	"time"

	"github.com/phnormalguy/tungwong-video-uploader/configs"
	"github.com/phnormalguy/tungwong-video-uploader/internal/auth"
	"github.com/phnormalguy/tungwong-video-uploader/internal/queue"
	"github.com/phnormalguy/tungwong-video-uploader/internal/server"
	"github.com/phnormalguy/tungwong-video-uploader/internal/storage"
	"github.com/phnormalguy/tungwong-video-uploader/pkg/logger"
)

func main() {
	// Load configuration
	config := configs.LoadConfig()

	// Initialize logger
	log := logger.NewLogger(config.LogLevel)

	log.Info("🎬 Tungwong Video Uploader Starting...")
	log.WithFields(map[string]interface{}{
		"port":         config.Server.Port,
		"s3_endpoint":  config.S3.Endpoint,
		"s3_bucket":    config.S3.Bucket,
		"nats_url":     config.NATS.URL,
		"nats_subject": config.NATS.Subject,
	}).Info("Configuration loaded")

	if config.Security.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	if config.Security.GatewayToken == "" {
		log.Fatal("GATEWAY_TOKEN must be set")
	}

	// Initialize object store and make sure the bucket is there before
	// accepting traffic
	store, err := storage.NewStore(&config.S3, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create object store")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.EnsureBucket(ctx); err != nil {
		log.WithError(err).Fatal("Failed to ensure bucket")
	}

	// Initialize queue publisher (ensures the upload stream exists)
	publisher, err := queue.NewPublisher(&config.NATS, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create queue publisher")
	}
	defer publisher.Close()

	// Assemble the upload pipeline and start serving
	verifier := auth.NewVerifier(config.Security.JWTSecret)
	handler := server.NewUploadHandler(verifier, store, publisher, log)
	srv := server.NewServer(config, handler, log)

	log.Infof("📋 POST /videos ready on port %d (multipart fields: file, title, description)", config.Server.Port)

	if err := srv.Run(); err != nil {
		log.WithError(err).Error("Server stopped with error")
		os.Exit(1)
	}

	log.Info("Uploader shutdown complete")
}
