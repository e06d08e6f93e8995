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

	"github.com/exim-suite/tradeflow-api/internal/application/invoicing"
	"github.com/exim-suite/tradeflow-api/internal/application/usecase"
	inframail "github.com/exim-suite/tradeflow-api/internal/infrastructure/mail"
	infrapdf "github.com/exim-suite/tradeflow-api/internal/infrastructure/pdf"
	"github.com/exim-suite/tradeflow-api/internal/infrastructure/postgres"
	httpRouter "github.com/exim-suite/tradeflow-api/internal/interfaces/http"
	"github.com/exim-suite/tradeflow-api/pkg/config"
	"github.com/exim-suite/tradeflow-api/pkg/logger"
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
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(cfg.DB.ConnectionString(), cfg.DB.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	invoiceRepo := postgres.NewProformaInvoiceRepository(pool)
	partyRepo := postgres.NewPartyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	company := invoicing.CompanyInfo{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		Email:   cfg.Company.Email,
		Phone:   cfg.Company.Phone,
	}

	invoiceUC := invoicing.NewInvoiceUseCase(txRunner, invoiceRepo, partyRepo, productRepo)
	confirmUC := invoicing.NewConfirmOrderUseCase(invoiceRepo, log)
	partyUC := invoicing.NewPartyUseCase(partyRepo)
	productUC := usecase.NewProductUseCase(productRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := invoicing.NewPDFUseCase(invoiceRepo, partyRepo, pdfGenerator, company)
	mailSender := inframail.NewSMTPSender(cfg.SMTP)
	emailUC := invoicing.NewEmailUseCase(pdfUC, mailSender, log)

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
		Title:    "TradeFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InvoiceUC: invoiceUC,
		ConfirmUC: confirmUC,
		PDFUC:     pdfUC,
		EmailUC:   emailUC,
		PartyUC:   partyUC,
		ProductUC: productUC,
		JWTSecret: cfg.JWT.Secret,
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
