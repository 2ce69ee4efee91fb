package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MagnunAVF/shortlinks/internal"
	"github.com/MagnunAVF/shortlinks/internal/account"
	"github.com/MagnunAVF/shortlinks/internal/config"
	"github.com/MagnunAVF/shortlinks/internal/events"
	"github.com/MagnunAVF/shortlinks/internal/httpapi"
	"github.com/MagnunAVF/shortlinks/internal/link"
	applog "github.com/MagnunAVF/shortlinks/internal/logger"
	"github.com/MagnunAVF/shortlinks/internal/session"
)

func main() {
	applog.InitFromEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := gorm.Open(postgres.Open(cfg.DBURL), &gorm.Config{
		Logger:         applog.NewGormLogger(cfg.GormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		slog.Error("Unable to connect to database", "err", err)
		os.Exit(1)
	}

	slog.Info("Running GORM auto-migration")
	err = db.AutoMigrate(
		&internal.User{},
		&internal.Session{},
		&internal.Link{},
		&internal.AnalyticsEvent{},
	)
	if err != nil {
		slog.Error("Failed to auto-migrate database", "err", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
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

	queue, err := events.NewRabbitQueue(rabbitCH, cfg.EventQueue)
	if err != nil {
		slog.Error("Failed to declare event queue", "queue", cfg.EventQueue, "err", err)
		os.Exit(1)
	}

	cache := link.NewRedisCache(rdb)
	store := link.NewGormStore(db)

	app := httpapi.New(
		account.NewGormStore(db),
		session.NewManager(session.NewGormStore(db), cfg.SessionSecret),
		link.NewRegistry(cache, store, queue),
		link.NewRedirector(cache, store, queue),
	)

	slog.Info("Starting API Service", "port", cfg.Port)
	if err := app.Listen(cfg.Port); err != nil {
		slog.Error("API Service failed", "err", err)
		os.Exit(1)
	}
}
