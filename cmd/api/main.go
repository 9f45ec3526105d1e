package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/venicelab/orders/internal/application/command"
	"github.com/venicelab/orders/internal/application/query"
	"github.com/venicelab/orders/internal/cache"
	"github.com/venicelab/orders/internal/config"
	"github.com/venicelab/orders/internal/database"
	"github.com/venicelab/orders/internal/domain"
	"github.com/venicelab/orders/internal/httpapi"
	"github.com/venicelab/orders/internal/messaging"
	"github.com/venicelab/orders/internal/observability"
	"github.com/venicelab/orders/internal/pkg/breaker"
	"github.com/venicelab/orders/internal/pkg/retry"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := database.Connect(bootCtx, cfg.DSN())
	if err != nil {
		logger.Fatal("postgres connect failed", zap.Error(err))
	}
	defer pool.Close()
	orders := database.NewOrderRepo(pool)

	mongoClient, err := database.ConnectMongo(bootCtx, cfg.Mongo.URI)
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	items := database.NewOrderItemRepo(mongoClient.Database(cfg.Mongo.DB), cfg.Mongo.Collection)

	var viewCache domain.Cache
	switch cfg.CacheBackend {
	case config.CacheMemory:
		viewCache = cache.NewMemory(cfg.CacheSize, query.CacheTTL)
	default:
		r := cache.NewRedis(cfg.Redis)
		if err := r.Ping(bootCtx); err != nil {
			logger.Fatal("redis ping failed", zap.Error(err))
		}
		defer func() { _ = r.Close() }()
		viewCache = r
	}

	retryPolicy := retry.Policy{
		Attempts:     cfg.Retry.Attempts,
		Base:         cfg.Retry.Base,
		Max:          cfg.Retry.Max,
		JitterFactor: cfg.Retry.JitterFactor,
	}

	var publisher domain.EventPublisher
	switch cfg.Broker {
	case config.BrokerKafka:
		kp := messaging.NewKafkaPublisher(cfg.Kafka, logger)
		defer func() { _ = kp.Close() }()
		publisher = kp
	default:
		rp, err := messaging.NewRabbitPublisher(bootCtx, cfg.Rabbit, retryPolicy, logger)
		if err != nil {
			logger.Fatal("rabbitmq connect failed", zap.Error(err))
		}
		defer func() { _ = rp.Close() }()
		publisher = rp
	}
	publisher = messaging.WithBreaker(publisher, breaker.New(breaker.Config{
		Threshold:   cfg.Breaker.Threshold,
		OpenTimeout: cfg.Breaker.OpenTimeout,
		MaxHalfOpen: cfg.Breaker.MaxHalfOpen,
	}))

	metrics := observability.NewInmem(256)

	server := httpapi.New(
		command.NewCreateOrderHandler(orders, items, publisher, logger, metrics),
		query.NewGetOrderHandler(orders, items, viewCache, logger, metrics),
		httpapi.NewTokenService(cfg.Auth),
		logger,
		metrics,
	)

	logger.Info("server starting",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("cache_backend", cfg.CacheBackend),
		zap.String("broker", cfg.Broker),
	)
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server stopped")
}
