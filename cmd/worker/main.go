package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nedasoft/marketplace-api/cmd/config"
	"github.com/nedasoft/marketplace-api/thirdparty/rabbitmq"
	"github.com/nedasoft/marketplace-api/utils/logger"
	"go.uber.org/zap"
)

// Notification worker: drains the queue the API publishes to and forwards
// each message to the external delivery gateway.
func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting notification worker", zap.String("env", cfg.Environment))

	consumer, err := rabbitmq.NewConsumer(
		cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password,
		cfg.Notify.BaseURL, cfg.Notify.APIKey,
	)
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("err start consumer", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Notification worker shutting down")
}
