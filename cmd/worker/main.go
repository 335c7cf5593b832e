package main

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"ethraa/internal/cache"
	"ethraa/internal/config"
	"ethraa/internal/database"
	"ethraa/internal/log"
	"ethraa/internal/mail"
	"ethraa/internal/queue"
	"ethraa/internal/repository"
	"ethraa/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.Component(log.New(cfg.Environment), "worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}
	defer dbPool.Close()

	client, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func(client *redis.Client) {
		_ = client.Close()
	}(client)

	processor := tasks.NewProcessor(repository.NewMaintenanceRepository(dbPool), logger)
	consumer := queue.NewConsumer(client, cfg.Redis, cfg.Queues.ClaimInterval, logger, processor)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("maintenance consumer stopped unexpectedly")
			stop()
		}
	}()

	if cfg.Mail.Driver == "amqp" {
		mailConsumer, err := mail.NewConsumer(cfg.Mail.AMQPURL, cfg.Mail.Queue, mail.NewSMTPMailer(cfg.Mail), log.Component(logger, "mail"))
		if err != nil {
			logger.Fatal().Err(err).Msg("mail consumer init failed")
		}
		defer mailConsumer.Close()

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := mailConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("mail consumer stopped unexpectedly")
				stop()
			}
		}()
	}

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")
	wg.Wait()
}
