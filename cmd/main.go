package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	idempotencyapp "github.com/muhammadheryan/stock-coordinator/application/idempotency"
	reaperapp "github.com/muhammadheryan/stock-coordinator/application/reaper"
	stockapp "github.com/muhammadheryan/stock-coordinator/application/stock"
	"github.com/muhammadheryan/stock-coordinator/cmd/config"
	redisclient "github.com/muhammadheryan/stock-coordinator/cmd/redis"
	_ "github.com/muhammadheryan/stock-coordinator/docs"
	idemRepo "github.com/muhammadheryan/stock-coordinator/repository/idempotency"
	redisRepo "github.com/muhammadheryan/stock-coordinator/repository/redis"
	reservationRepo "github.com/muhammadheryan/stock-coordinator/repository/reservation"
	stockRepo "github.com/muhammadheryan/stock-coordinator/repository/stock"
	txRepo "github.com/muhammadheryan/stock-coordinator/repository/tx"
	"github.com/muhammadheryan/stock-coordinator/thirdparty/rabbitmq"
	"github.com/muhammadheryan/stock-coordinator/transport"
	"github.com/muhammadheryan/stock-coordinator/utils/logger"
	"go.uber.org/zap"
)

// @title STOCK COORDINATOR API
// @version 1.0
// @description Inventory reservation and idempotent checkout coordination API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize RabbitMQ publisher
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("err connect rabbitmq, stock events disabled", zap.Error(err))
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db, cfg.Database.DisableTransactions)
	StockRepo := stockRepo.NewStockRepository(db)
	ReservationRepo := reservationRepo.NewReservationRepository(db)
	IdemRepo := idemRepo.NewIdempotencyRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	StockApp := stockapp.NewStockApp(cfg, db, TxRepo, StockRepo, ReservationRepo, RedisRepo, publisher)
	IdempotencyApp := idempotencyapp.NewIdempotencyApp(cfg, db, IdemRepo)
	ReaperApp := reaperapp.NewReaperApp(cfg, db, ReservationRepo, IdemRepo, StockApp)

	// Start the reaper
	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	go ReaperApp.Start(reaperCtx)

	// Start the expiration notice consumer; each notice triggers an early reaper
	// tick through the internal endpoint
	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password,
		"http://localhost:"+cfg.Server.Port, cfg.Auth.InternalAPIKey)
	if err != nil {
		logger.Warn("err connect rabbitmq consumer, expiration notices disabled", zap.Error(err))
	} else {
		defer consumer.Close()
		if err := consumer.Start(reaperCtx); err != nil {
			logger.Warn("err start expiration consumer", zap.Error(err))
		}
	}

	httpTransport := transport.NewTransport(StockApp, IdempotencyApp, ReaperApp, cfg.Auth.JWTSecret, cfg.Auth.InternalAPIKey)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
