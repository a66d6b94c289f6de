package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/artisan-market/internal/api"
	"github.com/example/artisan-market/internal/auth"
	"github.com/example/artisan-market/internal/config"
	"github.com/example/artisan-market/internal/domain/cart"
	"github.com/example/artisan-market/internal/domain/catalog"
	"github.com/example/artisan-market/internal/domain/order"
	"github.com/example/artisan-market/internal/domain/user"
	"github.com/example/artisan-market/internal/generation"
	"github.com/example/artisan-market/internal/infrastructure/kafka"
	"github.com/example/artisan-market/internal/infrastructure/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Env)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("starting artisan market API",
		zap.String("env", cfg.Env),
		zap.String("addr", cfg.HTTPAddr),
		zap.Strings("kafka_brokers", cfg.KafkaBrokers),
		zap.String("kafka_topic", cfg.KafkaTopic))

	// PostgreSQL: catalog, users, orders
	db, err := store.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()
	if err := store.EnsureSchema(db); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}
	logger.Info("connected to postgres")

	// DynamoDB: cart documents
	dynamoClient, err := store.NewDynamoClient(ctx, cfg.AWSRegion, cfg.AWSEndpoint)
	if err != nil {
		logger.Fatal("failed to build dynamodb client", zap.Error(err))
	}

	// Kafka: order events
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	productStore := store.NewPostgresProductStore(db, logger)
	orderStore := store.NewPostgresOrderStore(db, logger)
	userStore := store.NewPostgresUserStore(db)
	cartStore := store.NewDynamoCartStore(dynamoClient, cfg.DynamoCartTable)

	catalogSvc := catalog.NewService(productStore, logger)
	cartSvc := cart.NewService(cartStore, catalogSvc, logger)
	orderSvc := order.NewService(orderStore, catalogSvc, producer, logger)
	userSvc := user.NewService(userStore, logger)
	genSvc := generation.NewService(logger)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	handlers := api.NewHandlers(catalogSvc, cartSvc, orderSvc, userSvc,
		genSvc, generation.MockTranscriber{}, jwtService, logger)
	router := api.NewRouter(handlers, jwtService, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      http.TimeoutHandler(router, cfg.RequestTimeout, `{"error":"request timed out"}`),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
