package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/revops-api/internal/application/documents"
)

// DocumentHandler printable job documents.
type DocumentHandler struct {
	uc *documents.DocumentUseCase
}

// NewDocumentHandler builds the handler.
func NewDocumentHandler(uc *documents.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// JobCard godoc
// @Summary      Job card PDF
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        jobId  path  string  true  "job id"
// @Success      200  {file}    file
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/job-card/{jobId} [get]
func (h *DocumentHandler) JobCard(c *fiber.Ctx) error {
	f, err := h.uc.JobCard(c.UserContext(), CurrentUser(c), param(c, "jobId"))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, "application/pdf", f.Name, f.Content)
}

// Invoice godoc
// @Summary      Invoice PDF
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        jobId  path  string  true  "job id"
// @Success      200  {file}    file
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/invoice/{jobId} [get]
func (h *DocumentHandler) Invoice(c *fiber.Ctx) error {
	f, err := h.uc.Invoice(c.UserContext(), CurrentUser(c), param(c, "jobId"))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, "application/pdf", f.Name, f.Content)
}
