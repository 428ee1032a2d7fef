package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"storefront-backend/internal/config"
	"storefront-backend/pkg/container"
	"storefront-backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting application", map[string]interface{}{
		"name":    cfg.App.Name,
		"env":     cfg.App.Environment,
		"version": cfg.App.Version,
	})

	ctx := context.Background()
	c, err := container.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}
	defer c.Close()

	router := setupRouter(c)

	if err := runServer(router, cfg); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
