package main

import (
	"flag"
	"os"

	"github.com/focusflowhq/backend/internal/config"
	"github.com/focusflowhq/backend/internal/repository/postgres"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	source := flag.String("source", "file://migrations", "migration source URL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Database).
		Msg("Running migrations")

	if err := postgres.RunMigrations(cfg.Database.DSN(), *source); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
