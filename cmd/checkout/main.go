// CheckoutService 主程序
// 功能：提供收银结账服务，包括购物车结账提交与最近订单小票查询
// 架构：DDD 分层 + MySQL 事务落库 + Outbox/Kafka 事件投递
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/linghann/retailpos/internal/checkout/application"
	"github.com/linghann/retailpos/internal/checkout/domain"
	"github.com/linghann/retailpos/internal/checkout/infrastructure/messaging"
	"github.com/linghann/retailpos/internal/checkout/infrastructure/persistence/mysql"
	httphandler "github.com/linghann/retailpos/internal/checkout/interfaces/http"
	"github.com/linghann/retailpos/pkg/cache"
	"github.com/linghann/retailpos/pkg/config"
	"github.com/linghann/retailpos/pkg/db"
	"github.com/linghann/retailpos/pkg/logger"
	"github.com/linghann/retailpos/pkg/metrics"
	"github.com/linghann/retailpos/pkg/middleware"
	"github.com/linghann/retailpos/pkg/mq"
	"github.com/linghann/retailpos/pkg/ratelimit"
)

func main() {
	// 1. 加载配置
	configPath := "configs/checkout/config.toml"
	if v := os.Getenv("APP_CONFIG"); v != "" {
		configPath = v
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	loggerCfg := logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}
	if err := logger.Init(loggerCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger.Info(ctx, "Starting CheckoutService",
		"service", cfg.ServiceName,
		"version", cfg.Version,
		"environment", cfg.Environment,
	)

	// 3. 初始化数据库
	dbCfg := db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	}
	database, err := db.Init(dbCfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize database", "error", err)
	}
	defer database.Close()

	err = database.AutoMigrate(
		&domain.Order{},
		&domain.OrderItem{},
		&domain.Payment{},
		&domain.Product{},
		&messaging.OutboxMessage{},
	)
	if err != nil {
		logger.Fatal(ctx, "Failed to migrate schema", "error", err)
	}

	// 4. 初始化 Redis
	redisCfg := cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}
	redisCache, err := cache.New(redisCfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize Redis", "error", err)
	}
	defer redisCache.Close()

	// 5. 初始化限流器
	rateLimiter := ratelimit.NewRedisRateLimiter(redisCache.GetClient())

	// 6. 初始化 Kafka 生产者与 outbox 中继
	producer, err := mq.NewProducer(mq.KafkaConfig{
		Brokers:      cfg.Kafka.Brokers,
		MaxRetries:   cfg.Kafka.MaxRetries,
		RetryBackoff: cfg.Kafka.RetryBackoff,
	})
	if err != nil {
		logger.Fatal(ctx, "Failed to create Kafka producer", "error", err)
	}
	defer producer.Close()

	// 7. 初始化指标
	metricsInstance := metrics.New(cfg.ServiceName)
	if cfg.Metrics.Enabled {
		if err := metricsInstance.Register(); err != nil {
			logger.Fatal(ctx, "Failed to register metrics", "error", err)
		}
		if err := metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Fatal(ctx, "Failed to start metrics HTTP server", "error", err)
		}
	}

	// 8. 初始化仓储与应用服务
	saleRepo := mysql.NewSaleRepository(database.DB)
	checkoutService := application.NewCheckoutService(
		saleRepo,
		redisCache,
		metricsInstance,
		time.Duration(cfg.Checkout.PersistTimeout)*time.Millisecond,
	)
	queryService := application.NewOrderQueryService(
		saleRepo,
		redisCache,
		time.Duration(cfg.Checkout.LatestOrderCacheTTL)*time.Second,
	)

	// 9. 启动 outbox 中继
	relayCtx, relayCancel := context.WithCancel(ctx)
	defer relayCancel()
	relay := messaging.NewOutboxRelay(
		database.DB,
		producer,
		cfg.Kafka.SaleTopic,
		time.Duration(cfg.Kafka.RelayInterval)*time.Millisecond,
		cfg.Kafka.RelayBatchSize,
		metricsInstance,
	)
	go relay.Run(relayCtx)

	// 10. 创建并启动 HTTP 服务器
	httpServer := createHTTPServer(cfg, checkoutService, queryService, rateLimiter)
	go func() {
		logger.Info(ctx, "Starting HTTP server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server error", "error", err)
		}
	}()

	// 11. 优雅关停
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info(ctx, "Shutting down CheckoutService")

	relayCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "HTTP server shutdown error", "error", err)
	}

	logger.Info(ctx, "CheckoutService stopped")
}

// createHTTPServer 创建 HTTP 服务器
func createHTTPServer(cfg *config.Config, checkoutService *application.CheckoutService, queryService *application.OrderQueryService, rateLimiter ratelimit.RateLimiter) *http.Server {
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.GinLoggingMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(rateLimiter, cfg.RateLimit))

	handler := httphandler.NewCheckoutHandler(checkoutService, queryService)
	handler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   cfg.ServiceName,
			"timestamp": time.Now().Unix(),
		})
	})

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}
}
