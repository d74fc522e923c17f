package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecotrace/itad-api/internal/application/billing"
	"github.com/ecotrace/itad-api/internal/application/dto"
	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// CommissionHandler handles the reseller payout endpoints.
type CommissionHandler struct {
	uc *billing.CommissionUseCase
}

// NewCommissionHandler builds the handler.
func NewCommissionHandler(uc *billing.CommissionUseCase) *CommissionHandler {
	return &CommissionHandler{uc: uc}
}

// GetByID godoc
// @Summary      Get a commission
// @Tags         commissions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Commission ID"
// @Success      200  {object}  dto.CommissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/commissions/{id} [get]
func (h *CommissionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List commissions
// @Tags         commissions
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filter by status"
// @Param        period  query  string  false  "Filter by payout period (YYYY-MM)"
// @Param        limit   query  int     false  "Limit"   default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.CommissionResponse
// @Router       /api/commissions [get]
func (h *CommissionHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), c.Query("status"), c.Query("period"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transition the commission status (pending → approved → paid)
// @Tags         commissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Commission ID"
// @Param        body  body  dto.UpdateCommissionStatusRequest  true  "Target status"
// @Success      200   {object}  dto.CommissionResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/commissions/{id}/status [patch]
func (h *CommissionHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateCommissionStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), entity.CommissionStatus(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
