package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecotrace/itad-api/internal/application/auth"
	"github.com/ecotrace/itad-api/internal/application/billing"
	"github.com/ecotrace/itad-api/internal/application/booking"
	"github.com/ecotrace/itad-api/internal/application/job"
	"github.com/ecotrace/itad-api/internal/application/processing"
	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// RouterDeps carries the router dependencies.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	BookingUC     *booking.UseCase
	JobUC         *job.UseCase
	ProcessingUC  *processing.UseCase
	CommissionUC  *billing.CommissionUseCase
	InvoiceUC     *billing.InvoiceUseCase
	PDFUC         *billing.PDFUseCase
	CertificateUC *billing.CertificateUseCase
	JWTSecret     string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	staff := RequireRole(entity.RoleAdmin, entity.RoleOperator)
	admin := RequireRole(entity.RoleAdmin)

	// Bookings
	bookings := protected.Group("/bookings")
	bookingHandler := NewBookingHandler(deps.BookingUC, deps.CertificateUC)
	bookings.Post("/", staff, bookingHandler.Create)
	bookings.Get("/", bookingHandler.List)
	bookings.Get("/:id", bookingHandler.GetByID)
	bookings.Post("/:id/assign-driver", staff, bookingHandler.AssignDriver)
	bookings.Patch("/:id/status", staff, bookingHandler.UpdateStatus)
	bookings.Post("/:id/complete", staff, bookingHandler.Complete)
	bookings.Post("/:id/resync", staff, bookingHandler.Resync)
	bookings.Get("/:id/certificate", bookingHandler.Certificate)

	// Warehouse processing evidence, nested under bookings
	processingHandler := NewProcessingHandler(deps.ProcessingUC)
	bookings.Post("/:id/sanitisation", staff, processingHandler.RecordSanitisation)
	bookings.Get("/:id/sanitisation", processingHandler.ListSanitisation)
	bookings.Post("/:id/grading", staff, processingHandler.RecordGrading)
	bookings.Get("/:id/grading", processingHandler.ListGrading)
	protected.Post("/sanitisation-records/:id/verify", staff, processingHandler.VerifySanitisation)
	protected.Post("/grading-records/:id/verify", staff, processingHandler.VerifyGrading)

	// Jobs (driver progression)
	jobs := protected.Group("/jobs")
	jobHandler := NewJobHandler(deps.JobUC)
	jobs.Get("/", staff, jobHandler.List)
	jobs.Get("/mine", RequireRole(entity.RoleDriver), jobHandler.ListMine)
	jobs.Get("/:id", jobHandler.GetByID)
	jobs.Patch("/:id/status", RequireRole(entity.RoleDriver, entity.RoleAdmin), jobHandler.UpdateStatus)
	jobs.Post("/:id/collect", RequireRole(entity.RoleDriver, entity.RoleAdmin), jobHandler.MarkCollected)
	jobs.Post("/:id/evidence", RequireRole(entity.RoleDriver, entity.RoleAdmin), jobHandler.AttachEvidence)

	// Commissions (reseller payouts)
	commissions := protected.Group("/commissions", admin)
	commissionHandler := NewCommissionHandler(deps.CommissionUC)
	commissions.Get("/", commissionHandler.List)
	commissions.Get("/:id", commissionHandler.GetByID)
	commissions.Patch("/:id/status", commissionHandler.UpdateStatus)

	// Invoices
	invoices := protected.Group("/invoices", admin)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
}
