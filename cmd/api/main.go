package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nexahost/portal-api/internal/application/auth"
	appbilling "github.com/nexahost/portal-api/internal/application/billing"
	"github.com/nexahost/portal-api/internal/application/catalog"
	"github.com/nexahost/portal-api/internal/application/requests"
	infracache "github.com/nexahost/portal-api/internal/infrastructure/cache"
	infrapdf "github.com/nexahost/portal-api/internal/infrastructure/pdf"
	"github.com/nexahost/portal-api/internal/infrastructure/postgres"
	"github.com/nexahost/portal-api/internal/infrastructure/storage"
	httpRouter "github.com/nexahost/portal-api/internal/interfaces/http"
	"github.com/nexahost/portal-api/pkg/config"
	"github.com/nexahost/portal-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	requestRepo := postgres.NewServiceRequestRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Catalog cache: Redis when configured, in-process otherwise.
	var catalogCache catalog.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := infracache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Redis connection")
		}
		defer redisCache.Close()
		catalogCache = redisCache
	} else {
		catalogCache = infracache.NewMemoryCache()
	}

	// Invoice document store: local disk or S3-compatible bucket.
	var docStore appbilling.DocumentStore
	if cfg.Storage.Driver == "minio" {
		minioStore, err := storage.NewMinioStore(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("object store connection")
		}
		docStore = minioStore
	} else {
		docStore = storage.NewLocalStore(cfg.Storage.InvoiceDir)
	}

	pdfGenerator := infrapdf.NewMarotoInvoiceGenerator()
	invoiceSvc := appbilling.NewInvoiceService(pdfGenerator, docStore)

	intakeUC := requests.NewIntakeUseCase(requestRepo)
	reviewUC := requests.NewReviewUseCase(txRunner, requestRepo, purchaseRepo, invoiceSvc, log)
	downloadUC := appbilling.NewDownloadUseCase(purchaseRepo, docStore)
	catalogUC := catalog.NewUseCase(categoryRepo, serviceRepo, catalogCache,
		time.Duration(cfg.Redis.CatalogTTL)*time.Second)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "NexaHost Partner Portal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		IntakeUC:   intakeUC,
		ReviewUC:   reviewUC,
		DownloadUC: downloadUC,
		CatalogUC:  catalogUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
