package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	httpc "storefront-service/internal/controllers/http"
	"storefront-service/internal/domain"
	mmysql "storefront-service/internal/infra/mysql"
	"storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/middleware"
	mysqlrepo "storefront-service/internal/repository/mysql"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		logger.Fatal("db: connect", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("db: pool handle", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	store := mysqlrepo.NewStore(db)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "order.exchange", logger)
	if err != nil {
		logger.Fatal("rabbitmq: connect", zap.Error(err))
	}
	defer publisher.Close()

	fulfillment := services.NewFulfillmentService(store, publisher, logger)
	discounts := services.NewDiscountService(store, logger)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	fulfillment.SetRedisClient(redisClient)

	go func() {
		time.Sleep(5 * time.Second)
		ctx := context.Background()
		warm := []domain.OrderStatus{domain.StatusPending, domain.StatusShipping, domain.StatusDelivered}
		if err := fulfillment.WarmupStatusCache(ctx, warm); err != nil {
			logger.Warn("cache warmup failed", zap.Error(err))
		}
	}()

	adminKeys := strings.Split(os.Getenv("ADMIN_API_KEYS"), ",")

	handler := httpc.NewHandler(fulfillment, discounts, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	handler.RegisterRoutes(r, adminKeys)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("starting storefront service", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server run", zap.Error(err))
	}
}
