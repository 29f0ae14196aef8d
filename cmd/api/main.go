package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/almacensaas/almacen-api/internal/application/analytics"
	"github.com/almacensaas/almacen-api/internal/application/auth"
	"github.com/almacensaas/almacen-api/internal/application/billing"
	"github.com/almacensaas/almacen-api/internal/application/inventory"
	appnotif "github.com/almacensaas/almacen-api/internal/application/notifications"
	"github.com/almacensaas/almacen-api/internal/application/orders"
	"github.com/almacensaas/almacen-api/internal/application/products"
	"github.com/almacensaas/almacen-api/internal/application/users"
	"github.com/almacensaas/almacen-api/internal/infrastructure/jobs"
	"github.com/almacensaas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/almacensaas/almacen-api/internal/interfaces/http"
	"github.com/almacensaas/almacen-api/pkg/config"
	"github.com/almacensaas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	itemRepo := postgres.NewOrderItemRepository(pool)
	movRepo := postgres.NewInventoryMovementRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Redis: cola de entrega de notificaciones y caché del dashboard.
	// Si Redis no está disponible, la API sigue funcionando sin ellos.
	var emitter appnotif.Emitter = appnotif.NopEmitter{}
	var asynqClient *asynq.Client
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer asynqClient.Close()
		emitter = jobs.NewAsynqEmitter(asynqClient, log)

		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no responde, dashboard sin caché")
			redisClient = nil
		}
	}

	authUC := auth.NewUseCase(userRepo, cfg.JWT, log)
	userUC := users.NewUseCase(userRepo, log)
	productUC := products.NewUseCase(txRunner, productRepo, itemRepo, log)
	orderUC := orders.NewUseCase(txRunner, userRepo, orderRepo, itemRepo, emitter, log)
	inventoryUC := inventory.NewUseCase(txRunner, productRepo, movRepo, userRepo, emitter, cfg.Inventory.LowStockThreshold, log)
	notifUC := appnotif.NewUseCase(notifRepo, log)
	billingUC := billing.NewUseCase(txRunner, orderRepo, userRepo, invoiceRepo, emitter, log)
	analyticsUC := analytics.NewUseCase(analyticsRepo, redisClient, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		OrderUC:     orderUC,
		InventoryUC: inventoryUC,
		NotifUC:     notifUC,
		BillingUC:   billingUC,
		AnalyticsUC: analyticsUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
