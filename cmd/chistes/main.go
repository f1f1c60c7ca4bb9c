package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/squadmakers/chistes/db"
	"github.com/squadmakers/chistes/internal/config"
	"github.com/squadmakers/chistes/internal/jokes"
	"github.com/squadmakers/chistes/internal/router"
	"github.com/squadmakers/chistes/internal/store"
	"github.com/squadmakers/chistes/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.App.LogLevel, os.Stdout)

	conn, err := db.Connect(cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", logger.Err(err))
		os.Exit(1)
	}

	if err := db.Migrate(conn); err != nil {
		logger.Error("failed to migrate database", logger.Err(err))
		os.Exit(1)
	}

	s := store.New(conn)

	if err := db.Seed(context.Background(), s); err != nil {
		logger.Error("failed to seed database", logger.Err(err))
		os.Exit(1)
	}

	client := jokes.NewClient(cfg.Sources)
	r := router.New(s, client)

	logger.Info("server starting", logger.String("port", cfg.App.Port))
	if err := r.Run(":" + cfg.App.Port); err != nil {
		logger.Error("server stopped", logger.Err(err))
		os.Exit(1)
	}
}
