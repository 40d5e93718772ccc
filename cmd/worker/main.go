package main

import (
	"context"
	"errors"
	"farmstay/config"
	"farmstay/di"
	"farmstay/infras/kafka"
	"farmstay/shared/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Starting event worker.")

	if err := worker.Run(ctx); err != nil {
		if errors.Is(err, kafka.ErrDisabled) {
			log.Warn().Msg("No Kafka brokers configured, nothing to consume")

			return
		}

		log.Fatal().Err(err).Msg("Event worker stopped")
	}

	log.Info().Msg("Event worker stopped.")
}
