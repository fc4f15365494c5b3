package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/notion-blog/adapters/event"
	"github.com/khoahotran/notion-blog/adapters/persistence"
	searchlogUC "github.com/khoahotran/notion-blog/internal/application/usecase/searchlog"
	"github.com/khoahotran/notion-blog/internal/config"
	"github.com/khoahotran/notion-blog/pkg/apperror"
	"github.com/khoahotran/notion-blog/pkg/logger"
)

func main() {
	fmt.Println("Starting Notion Blog Search Log Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatalf("FATAL: KAFKA_BROKERS is required")
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Repositories
	logRepo := persistence.NewPostgresSearchLogRepo(dbPool, appLogger)

	// Worker Use Case
	recordUC := searchlogUC.NewRecordSearchEventUseCase(logRepo, appLogger)

	// Kafka Consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicSearchEvents,
		GroupID:  "search-log-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicSearchEvents))

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		appLogger.Debug("Received message", zap.String("topic", msg.Topic), zap.String("key", string(msg.Key)))

		if err := recordUC.Execute(ctx, msg.Value); err != nil {
			if !errors.Is(err, apperror.ErrInvalidInput) {
				appLogger.Error("Failed to record search event", err, zap.String("key", string(msg.Key)))
				continue
			}
			appLogger.Warn("Skipping malformed search event", zap.String("key", string(msg.Key)), zap.Error(err))
		}

		commitMessage(consumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
