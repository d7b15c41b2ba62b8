package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/sellerdesk/margin-api/internal/application/analytics"
	"github.com/sellerdesk/margin-api/internal/application/auth"
	"github.com/sellerdesk/margin-api/internal/application/importer"
	"github.com/sellerdesk/margin-api/internal/application/usecase"
	"github.com/sellerdesk/margin-api/internal/domain/profit"
	"github.com/sellerdesk/margin-api/internal/infrastructure/kaspi"
	infrapdf "github.com/sellerdesk/margin-api/internal/infrastructure/pdf"
	"github.com/sellerdesk/margin-api/internal/infrastructure/postgres"
	httpapi "github.com/sellerdesk/margin-api/internal/interfaces/http"
	"github.com/sellerdesk/margin-api/pkg/config"
	"github.com/sellerdesk/margin-api/pkg/logger"
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

	merchantRepo := postgres.NewMerchantRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	defaultTax := decimal.NewFromFloat(cfg.Analytics.DefaultTaxPercent)
	calc := profit.NewCalculator(cfg.Import.ExcludedStatuses)

	fetcher := kaspi.NewCSVFetcher(cfg.Import.FetchTimeout)
	syncUC := importer.NewSyncUseCase(fetcher, txRunner, log)

	dashboardUC := analytics.NewDashboardUseCase(
		orderRepo, settingsRepo, calc, defaultTax, cfg.Analytics.DefaultWindowDays,
	)
	reportUC := analytics.NewReportUseCase(dashboardUC, infrapdf.NewMarotoReportGenerator())

	productUC := usecase.NewProductUseCase(productRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, defaultTax)
	authUC := auth.NewAuthUseCase(merchantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // sync of a large export takes a while
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	router := httpapi.NewRouter(
		httpapi.NewAuthHandler(authUC),
		httpapi.NewProductHandler(productUC),
		httpapi.NewSettingsHandler(settingsUC),
		httpapi.NewAnalyticsHandler(syncUC, dashboardUC, reportUC, settingsUC),
		cfg.JWT.Secret,
	)
	router.Setup(app)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
