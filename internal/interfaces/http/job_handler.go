package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/revops-api/internal/application/dto"
	"github.com/jhoicas/revops-api/internal/application/jobs"
)

// JobHandler job CRUD scoped to the session's workshop.
type JobHandler struct {
	uc *jobs.JobUseCase
}

// NewJobHandler builds the handler.
func NewJobHandler(uc *jobs.JobUseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// Create godoc
// @Summary      Create a job
// @Description  Managers only. An advance creates an advance payment and moves the job to advance_paid.
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJobRequest  true  "job data"
// @Success      201   {object}  dto.JobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), CurrentUser(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List jobs
// @Description  Owners see the whole workshop, managers only their own jobs. Newest first.
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "status filter"
// @Param        manager_id  query  string  false  "owner only: jobs of one manager"
// @Success      200  {array}   dto.JobResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	var q dto.JobListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c, "invalid query parameters")
	}
	out, err := h.uc.List(c.UserContext(), CurrentUser(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Job detail with payments and timeline
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "job id"
// @Success      200  {object}  dto.JobResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), CurrentUser(c), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update a job
// @Description  Partial update. A status change is checked against the transition policy and logged in the timeline.
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "job id"
// @Param        body  body  dto.UpdateJobRequest  true  "fields to change"
// @Success      200   {object}  dto.JobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), CurrentUser(c), param(c, "id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
