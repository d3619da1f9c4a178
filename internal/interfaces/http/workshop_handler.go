package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/revops-api/internal/application/dto"
	"github.com/jhoicas/revops-api/internal/application/usecase"
)

// WorkshopHandler workshop setup, invite codes and the manager roster.
type WorkshopHandler struct {
	workshops *usecase.WorkshopUseCase
	managers  *usecase.ManagerUseCase
}

// NewWorkshopHandler builds the handler.
func NewWorkshopHandler(workshops *usecase.WorkshopUseCase, managers *usecase.ManagerUseCase) *WorkshopHandler {
	return &WorkshopHandler{workshops: workshops, managers: managers}
}

// Create godoc
// @Summary      Create the owner's workshop
// @Description  One workshop per owner. Unknown currency codes are rejected.
// @Tags         workshops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkshopRequest  true  "workshop data"
// @Success      201   {object}  dto.WorkshopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/workshops [post]
func (h *WorkshopHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkshopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.workshops.Create(c.UserContext(), CurrentUser(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetMine godoc
// @Summary      Current workshop
// @Tags         workshops
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WorkshopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workshops/me [get]
func (h *WorkshopHandler) GetMine(c *fiber.Ctx) error {
	out, err := h.workshops.GetMine(c.UserContext(), CurrentUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update workshop details
// @Tags         workshops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "workshop id"
// @Param        body  body  dto.UpdateWorkshopRequest  true  "fields to change"
// @Success      200   {object}  dto.WorkshopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/workshops/{id} [put]
func (h *WorkshopHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWorkshopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.workshops.Update(c.UserContext(), CurrentUser(c), param(c, "id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateInviteCode godoc
// @Summary      Issue a manager invite code
// @Tags         workshops
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "workshop id"
// @Success      201  {object}  dto.InviteCodeResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/workshops/{id}/invite-codes [post]
func (h *WorkshopHandler) CreateInviteCode(c *fiber.Ctx) error {
	out, err := h.managers.CreateInviteCode(c.UserContext(), CurrentUser(c), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListInviteCodes godoc
// @Summary      List invite codes of a workshop
// @Tags         workshops
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "workshop id"
// @Success      200  {array}   dto.InviteCodeResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/workshops/{id}/invite-codes [get]
func (h *WorkshopHandler) ListInviteCodes(c *fiber.Ctx) error {
	out, err := h.managers.ListInviteCodes(c.UserContext(), CurrentUser(c), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListManagers godoc
// @Summary      Active managers of the owner's workshop
// @Tags         managers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ManagerResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/managers [get]
func (h *WorkshopHandler) ListManagers(c *fiber.Ctx) error {
	out, err := h.managers.ListManagers(c.UserContext(), CurrentUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveManager godoc
// @Summary      Deactivate a manager membership
// @Tags         managers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "manager membership id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/managers/{id} [delete]
func (h *WorkshopHandler) RemoveManager(c *fiber.Ctx) error {
	if err := h.managers.RemoveManager(c.UserContext(), CurrentUser(c), param(c, "id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "manager removed"})
}
