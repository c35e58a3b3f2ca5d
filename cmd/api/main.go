package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Anvarmag/skladoptima/internal/application/auth"
	appsync "github.com/Anvarmag/skladoptima/internal/application/sync"
	"github.com/Anvarmag/skladoptima/internal/application/usecase"
	"github.com/Anvarmag/skladoptima/internal/infrastructure/ozon"
	"github.com/Anvarmag/skladoptima/internal/infrastructure/postgres"
	"github.com/Anvarmag/skladoptima/internal/infrastructure/wildberries"
	httpRouter "github.com/Anvarmag/skladoptima/internal/interfaces/http"
	"github.com/Anvarmag/skladoptima/pkg/config"
	"github.com/Anvarmag/skladoptima/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)

	wbGateway := wildberries.New(cfg.Marketplace.WBBaseURL, cfg.Marketplace.CallTimeout)
	ozonGateway := ozon.New(cfg.Marketplace.OzonBaseURL, cfg.Marketplace.CallTimeout)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	storeUC := usecase.NewStoreUseCase(storeRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)

	reconciler := appsync.NewReconciler(storeRepo, productRepo, wbGateway, ozonGateway, log)
	stockUpdater := appsync.NewStockUpdater(storeRepo, productRepo, wbGateway, ozonGateway, log)

	if cfg.Sync.Enabled {
		scheduler := appsync.NewScheduler(reconciler, cfg.Sync.Interval, log)
		go scheduler.Run(ctx)
	} else {
		log.Warn().Msg("background sync disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Authorization, store-id",
	}))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Skladoptima API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		StoreUC:      storeUC,
		ProductUC:    productUC,
		SettingsUC:   settingsUC,
		StockUpdater: stockUpdater,
		Reconciler:   reconciler,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping...")
	cancel() // stops the sync scheduler

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
