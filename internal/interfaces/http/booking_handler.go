package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecotrace/itad-api/internal/application/billing"
	"github.com/ecotrace/itad-api/internal/application/booking"
	"github.com/ecotrace/itad-api/internal/application/dto"
	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// BookingHandler handles the booking lifecycle endpoints.
type BookingHandler struct {
	uc          *booking.UseCase
	certificate *billing.CertificateUseCase
}

// NewBookingHandler builds the handler.
func NewBookingHandler(uc *booking.UseCase, certificate *billing.CertificateUseCase) *BookingHandler {
	return &BookingHandler{uc: uc, certificate: certificate}
}

// Create godoc
// @Summary      Create a booking
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookingRequest  true  "Booking data"
// @Success      201   {object}  dto.BookingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get a booking
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Booking ID"
// @Success      200  {object}  dto.BookingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List bookings
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filter by status"
// @Param        limit   query  int     false  "Limit"   default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.BookingResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), c.Query("status"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AssignDriver godoc
// @Summary      Assign a driver (created → scheduled, creates the job)
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Booking ID"
// @Param        body  body  dto.AssignDriverRequest  true  "Driver"
// @Success      200   {object}  dto.BookingResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/assign-driver [post]
func (h *BookingHandler) AssignDriver(c *fiber.Ctx) error {
	var in dto.AssignDriverRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AssignDriver(c.Context(), c.Params("id"), in.DriverID, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transition the booking status
// @Tags         bookings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Booking ID"
// @Param        body  body  dto.UpdateBookingStatusRequest  true  "Target status"
// @Success      200   {object}  dto.BookingResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateBookingStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), entity.BookingStatus(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Complete the booking (graded → completed, triggers billing)
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Booking ID"
// @Success      200  {object}  dto.BookingResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Resync godoc
// @Summary      Re-evaluate completeness-driven transitions for the booking
// @Tags         bookings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Booking ID"
// @Success      200  {object}  dto.BookingResponse
// @Router       /api/bookings/{id}/resync [post]
func (h *BookingHandler) Resync(c *fiber.Ctx) error {
	out, err := h.uc.Resync(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Certificate godoc
// @Summary      Download the data-destruction certificate (XML)
// @Tags         bookings
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "Booking ID"
// @Success      200  {string}  string  "XML document"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/certificate [get]
func (h *BookingHandler) Certificate(c *fiber.Ctx) error {
	out, err := h.certificate.GenerateCertificate(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)
	return c.Send(out)
}
