package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecotrace/itad-api/internal/application/dto"
	"github.com/ecotrace/itad-api/internal/application/processing"
)

// ProcessingHandler handles warehouse sanitisation and grading evidence.
type ProcessingHandler struct {
	uc *processing.UseCase
}

// NewProcessingHandler builds the handler.
func NewProcessingHandler(uc *processing.UseCase) *ProcessingHandler {
	return &ProcessingHandler{uc: uc}
}

// RecordSanitisation godoc
// @Summary      Record sanitisation evidence for one asset category
// @Tags         processing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Booking ID"
// @Param        body  body  dto.RecordSanitisationRequest  true  "Record data"
// @Success      201   {object}  dto.SanitisationRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/sanitisation [post]
func (h *ProcessingHandler) RecordSanitisation(c *fiber.Ctx) error {
	var in dto.RecordSanitisationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RecordSanitisation(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecordGrading godoc
// @Summary      Record grading evidence for one asset category
// @Tags         processing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Booking ID"
// @Param        body  body  dto.RecordGradingRequest  true  "Record data"
// @Success      201   {object}  dto.GradingRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/grading [post]
func (h *ProcessingHandler) RecordGrading(c *fiber.Ctx) error {
	var in dto.RecordGradingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RecordGrading(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSanitisation godoc
// @Summary      List a booking's sanitisation records
// @Tags         processing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Booking ID"
// @Success      200  {array}  dto.SanitisationRecordResponse
// @Router       /api/bookings/{id}/sanitisation [get]
func (h *ProcessingHandler) ListSanitisation(c *fiber.Ctx) error {
	out, err := h.uc.ListSanitisation(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListGrading godoc
// @Summary      List a booking's grading records
// @Tags         processing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Booking ID"
// @Success      200  {array}  dto.GradingRecordResponse
// @Router       /api/bookings/{id}/grading [get]
func (h *ProcessingHandler) ListGrading(c *fiber.Ctx) error {
	out, err := h.uc.ListGrading(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// VerifySanitisation godoc
// @Summary      Mark a sanitisation record verified
// @Tags         processing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Record ID"
// @Success      200  {object}  dto.SanitisationRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sanitisation-records/{id}/verify [post]
func (h *ProcessingHandler) VerifySanitisation(c *fiber.Ctx) error {
	out, err := h.uc.VerifySanitisation(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// VerifyGrading godoc
// @Summary      Mark a grading record verified
// @Tags         processing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Record ID"
// @Success      200  {object}  dto.GradingRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/grading-records/{id}/verify [post]
func (h *ProcessingHandler) VerifyGrading(c *fiber.Ctx) error {
	out, err := h.uc.VerifyGrading(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
