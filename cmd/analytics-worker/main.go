package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MagnunAVF/shortlinks/internal/config"
	"github.com/MagnunAVF/shortlinks/internal/events"
	"github.com/MagnunAVF/shortlinks/internal/link"
	applog "github.com/MagnunAVF/shortlinks/internal/logger"
)

const (
	batchSize  = 100
	flushEvery = 2 * time.Second
)

func main() {
	applog.InitFromEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(cfg.DBURL), &gorm.Config{
		Logger: applog.NewGormLogger(cfg.GormLogLevel),
	})
	if err != nil {
		slog.Error("Unable to connect to database", "err", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		slog.Error("Unable to connect to Redis", "err", err)
		os.Exit(1)
	}

	rabbitConn, err := amqp091.Dial(cfg.RabbitURL)
	if err != nil {
		slog.Error("Unable to connect to RabbitMQ", "err", err)
		os.Exit(1)
	}
	defer rabbitConn.Close()

	rabbitCH, err := rabbitConn.Channel()
	if err != nil {
		slog.Error("Unable to open RabbitMQ channel", "err", err)
		os.Exit(1)
	}
	defer rabbitCH.Close()

	q, err := rabbitCH.QueueDeclare(
		cfg.EventQueue,
		true, false, false, false, nil,
	)
	if err != nil {
		slog.Error("Failed to declare queue", "err", err)
		os.Exit(1)
	}

	// Grab up to a batch worth of messages at a time.
	if err := rabbitCH.Qos(batchSize, 0, false); err != nil {
		slog.Error("Failed to set QoS", "err", err)
		os.Exit(1)
	}

	msgs, err := rabbitCH.Consume(
		q.Name, "", false, false, false, false, nil,
	)
	if err != nil {
		slog.Error("Failed to register consumer", "err", err)
		os.Exit(1)
	}

	bk := link.NewBookkeeper(link.NewRedisCache(rdb), link.NewGormStore(db))

	slog.Info("Analytics worker started, waiting for link events")

	var batch []amqp091.Delivery
	ticker := time.NewTicker(flushEvery)
	defer ticker.Stop()

	for {
		select {
		case d, ok := <-msgs:
			if !ok {
				slog.Warn("RabbitMQ channel closed")
				return
			}
			batch = append(batch, d)
			if len(batch) >= batchSize {
				processBatch(bk, batch)
				batch = nil
				ticker.Reset(flushEvery)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				slog.Info("Timer flush: processing queued events", "count", len(batch))
				processBatch(bk, batch)
				batch = nil
			}
		}
	}
}

// processBatch applies the deliveries one by one: per the error contract,
// bookkeeping failures are logged and the message dropped, never retried
// and never surfaced anywhere a user could see.
func processBatch(bk *link.Bookkeeper, batch []amqp091.Delivery) {
	slog.Info("Processing batch of events", "count", len(batch))

	for _, d := range batch {
		var ev events.Event
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			slog.Error("Error decoding message, rejecting", "err", err)
			d.Reject(false)
			continue
		}
		if err := bk.Apply(context.Background(), ev); err != nil {
			slog.Error("Error applying event", "type", ev.Type, "short_code", ev.ShortCode, "err", err)
			d.Reject(false)
			continue
		}
		d.Ack(false)
	}
}
