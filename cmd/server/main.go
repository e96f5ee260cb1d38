package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcatalog "github.com/kavara/backend/internal/application/catalog"
	appinv "github.com/kavara/backend/internal/application/inventory"
	apporder "github.com/kavara/backend/internal/application/order"
	apppayment "github.com/kavara/backend/internal/application/payment"
	"github.com/kavara/backend/internal/domain/shared"
	"github.com/kavara/backend/internal/infrastructure/auth"
	"github.com/kavara/backend/internal/infrastructure/cache"
	"github.com/kavara/backend/internal/infrastructure/config"
	"github.com/kavara/backend/internal/infrastructure/logger"
	"github.com/kavara/backend/internal/infrastructure/notification"
	infrapayment "github.com/kavara/backend/internal/infrastructure/payment"
	"github.com/kavara/backend/internal/infrastructure/persistence"
	"github.com/kavara/backend/internal/infrastructure/scheduler"
	"github.com/kavara/backend/internal/interfaces/http/handler"
	"github.com/kavara/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting KAVARA backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	boxRepo := persistence.NewGormBoxRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	historyRepo := persistence.NewGormHistoryRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Webhook deduplication store
	var dedup shared.IdempotencyStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		dedup = redisStore
		log.Info("Redis idempotency store enabled")
	} else {
		dedup = cache.NewInMemoryIdempotencyStore()
	}
	defer func() {
		_ = dedup.Close()
	}()

	// Payment gateway
	gateway, err := infrapayment.NewYooKassaAdapter(&infrapayment.YooKassaConfig{
		ShopID:    cfg.Payment.ShopID,
		SecretKey: cfg.Payment.SecretKey,
		ReturnURL: cfg.Payment.ReturnURL,
		Currency:  cfg.Payment.Currency,
	})
	if err != nil {
		log.Fatal("Failed to initialize payment gateway", zap.Error(err))
	}

	// Application services
	productService := appcatalog.NewProductService(productRepo, log)
	boxService := appcatalog.NewBoxService(boxRepo, log)
	settlementService := appinv.NewSettlementService(txScope, log)
	historyService := appinv.NewHistoryService(historyRepo)
	orderService := apporder.NewService(orderRepo, txScope, settlementService, log)
	checkoutService := apppayment.NewCheckoutService(orderRepo, gateway, cfg.Payment.ReturnURL, cfg.Payment.Currency, log)
	callbackService := apppayment.NewCallbackService(orderRepo, orderService, dedup, log)

	if cfg.Telegram.Enabled {
		notifier, err := notification.NewTelegramNotifier(cfg.Telegram, log)
		if err != nil {
			log.Fatal("Failed to initialize telegram notifier", zap.Error(err))
		}
		orderService.WithNotifier(notifier)
		log.Info("Telegram notifications enabled")
	}

	jwtService := auth.NewJWTService(cfg.JWT, cfg.Admin)

	// Background sweep for pending orders whose payment never arrived
	expiryService := apporder.NewReservationExpiryService(
		orderRepo, orderService, cfg.Reservation.TTL, cfg.Reservation.BatchSize, log)
	sweep := scheduler.NewReservationSweepScheduler(expiryService, cfg.Reservation, log)
	if err := sweep.Start(context.Background()); err != nil {
		log.Fatal("Failed to start reservation sweep", zap.Error(err))
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		if err := sweep.Stop(stopCtx); err != nil {
			log.Error("Reservation sweep did not stop cleanly", zap.Error(err))
		}
	}()

	handlers := router.Handlers{
		Auth:            handler.NewAuthHandler(jwtService, log),
		Product:         handler.NewProductHandler(productService, log),
		Box:             handler.NewBoxHandler(boxService, log),
		Order:           handler.NewOrderHandler(orderService, checkoutService, log),
		Inventory:       handler.NewInventoryHandler(historyService, log),
		PaymentCallback: handler.NewPaymentCallbackHandler(callbackService, log),
	}

	engine := router.New(cfg, handlers, jwtService, healthHandler(db), log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness including database connectivity
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
