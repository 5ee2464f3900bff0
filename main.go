package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/vereinsapp/club-backend/internal/config"
	"github.com/vereinsapp/club-backend/internal/db"
	"github.com/vereinsapp/club-backend/internal/events"
	"github.com/vereinsapp/club-backend/internal/events/kafka"
	"github.com/vereinsapp/club-backend/internal/logger"
	"github.com/vereinsapp/club-backend/internal/router"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger()
	log.Info().Msg("Starting club backend")

	database := db.InitDB(cfg.DBUrl)
	defer database.Close()

	db.RunMigrations(database)

	if cfg.SeedData {
		if err := db.Seed(database); err != nil {
			log.Fatal().Err(err).Msg("Seeding failed")
		}
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers, events.TopicLedgerEntries)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info().Strs("brokers", cfg.KafkaBrokers).Msg("Kafka publisher enabled")
	}

	r := router.SetupRouter(database, log, publisher)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Msgf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
