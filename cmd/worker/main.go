package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"taghazout/config"
	"taghazout/infras/kafka"
	"taghazout/infras/otel"
	"taghazout/internal/domains/booking/event"
	"taghazout/shared/i18n"
	"taghazout/shared/logger"
)

// worker consumes booking.created events and sends guest confirmations.
func main() {
	cfg := config.Get()

	logger.Init(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ot := otel.New(cfg)
	defer otel.Shutdown(context.Background(), ot)

	client := kafka.New(cfg)
	notifier := event.NewNotifier(i18n.MustTranslator(), ot)

	topic := cfg.Kafka.Topics.BookingCreated

	log.Info().Str("topic", topic).Str("group", cfg.Kafka.ConsumerGroup).Msg("Booking worker started")

	err := client.Consume(ctx, cfg.Kafka.ConsumerGroup, topic, notifier.Handle)
	if errors.Is(err, kafka.ErrDisabled) {
		log.Fatal().Msg("Kafka is disabled, nothing to consume")
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Booking worker stopped")
	}

	log.Info().Msg("Booking worker stopped")
}
