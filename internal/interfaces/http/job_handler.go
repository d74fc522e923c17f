package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecotrace/itad-api/internal/application/dto"
	"github.com/ecotrace/itad-api/internal/application/job"
	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// JobHandler handles the driver-facing job endpoints.
type JobHandler struct {
	uc *job.UseCase
}

// NewJobHandler builds the handler.
func NewJobHandler(uc *job.UseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// GetByID godoc
// @Summary      Get a job
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Job ID"
// @Success      200  {object}  dto.JobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List jobs
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filter by status"
// @Param        limit   query  int     false  "Limit"   default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.JobResponse
// @Router       /api/jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), c.Query("status"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      List the authenticated driver's jobs
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.JobResponse
// @Router       /api/jobs/mine [get]
func (h *JobHandler) ListMine(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListByDriver(c.Context(), GetUserID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transition the job status (driver progression)
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Job ID"
// @Param        body  body  dto.UpdateJobStatusRequest  true  "Target status"
// @Success      200   {object}  dto.JobResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/status [patch]
func (h *JobHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateJobStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), entity.JobStatus(in.Status), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkCollected godoc
// @Summary      Mark the job collected (syncs the booking to collected)
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Job ID"
// @Success      200  {object}  dto.JobResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/collect [post]
func (h *JobHandler) MarkCollected(c *fiber.Ctx) error {
	out, err := h.uc.MarkCollected(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AttachEvidence godoc
// @Summary      Attach collection evidence (photos, signature, seals)
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Job ID"
// @Param        body  body  dto.AttachEvidenceRequest  true  "Evidence keys"
// @Success      200   {object}  dto.JobResponse
// @Router       /api/jobs/{id}/evidence [post]
func (h *JobHandler) AttachEvidence(c *fiber.Ctx) error {
	var in dto.AttachEvidenceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AttachEvidence(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
