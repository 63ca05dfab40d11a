package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/synergy-dev/synergy/db"
	"github.com/synergy-dev/synergy/internal/auth"
	"github.com/synergy-dev/synergy/internal/config"
	"github.com/synergy-dev/synergy/internal/router"
	"github.com/synergy-dev/synergy/pkg/logger"
)

func main() {
	// A missing .env is fine in production; configuration comes from the
	// real environment there.
	_ = godotenv.Load()

	cfg, err := config.Load(context.Background())

	if err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := auth.InitJWTSecret(cfg.JWTSecret); err != nil {
		log.Fatal().Err(err).Msg("failed to initialise JWT secret")
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	r := router.NewRouter()

	log.Info().Str("port", cfg.Port).Msg("starting server")

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
