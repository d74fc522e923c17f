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

	"github.com/ecotrace/itad-api/internal/application/auth"
	"github.com/ecotrace/itad-api/internal/application/billing"
	"github.com/ecotrace/itad-api/internal/application/booking"
	"github.com/ecotrace/itad-api/internal/application/job"
	"github.com/ecotrace/itad-api/internal/application/processing"
	"github.com/ecotrace/itad-api/internal/infrastructure/certificate"
	infrapdf "github.com/ecotrace/itad-api/internal/infrastructure/pdf"
	"github.com/ecotrace/itad-api/internal/infrastructure/postgres"
	httpRouter "github.com/ecotrace/itad-api/internal/interfaces/http"
	"github.com/ecotrace/itad-api/pkg/config"
	"github.com/ecotrace/itad-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	sanitisationRepo := postgres.NewSanitisationRecordRepository(pool)
	gradingRepo := postgres.NewGradingRecordRepository(pool)
	commissionRepo := postgres.NewCommissionRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Billing reacts to booking completion: commission (if reseller) + invoice.
	reactive := billing.NewReactiveCreator(commissionRepo, invoiceRepo, log)

	bookingUC := booking.NewUseCase(txRunner, bookingRepo, jobRepo, userRepo, reactive, log)
	jobUC := job.NewUseCase(txRunner, jobRepo, bookingRepo, log)
	processingUC := processing.NewUseCase(bookingRepo, sanitisationRepo, gradingRepo, bookingUC, log)
	commissionUC := billing.NewCommissionUseCase(txRunner, commissionRepo, log)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, log)
	pdfUC := billing.NewPDFUseCase(invoiceRepo, infrapdf.NewMarotoInvoiceGenerator())
	certificateUC := billing.NewCertificateUseCase(bookingRepo, sanitisationRepo, certificate.NewXMLBuilder())
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
		Title:    "EcoTrace ITAD API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		BookingUC:     bookingUC,
		JobUC:         jobUC,
		ProcessingUC:  processingUC,
		CommissionUC:  commissionUC,
		InvoiceUC:     invoiceUC,
		PDFUC:         pdfUC,
		CertificateUC: certificateUC,
		JWTSecret:     cfg.JWT.Secret,
	})

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
