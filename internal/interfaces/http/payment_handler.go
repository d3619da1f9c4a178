package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/revops-api/internal/application/dto"
	"github.com/jhoicas/revops-api/internal/application/payments"
)

// PaymentHandler payments and settlements.
type PaymentHandler struct {
	uc *payments.PaymentUseCase
}

// NewPaymentHandler builds the handler.
func NewPaymentHandler(uc *payments.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Record godoc
// @Summary      Record a customer payment
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentRequest  true  "job_id, amount, payment_type"
// @Success      201   {object}  dto.RecordPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Record(c.UserContext(), CurrentUser(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List payments
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        job_id     query  string  false  "payments of one job"
// @Param        confirmed  query  bool    false  "confirmation state"
// @Success      200  {array}   dto.PaymentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	var q dto.PaymentListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c, "invalid query parameters")
	}
	out, err := h.uc.List(c.UserContext(), CurrentUser(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Owner confirms a payment
// @Description  Idempotent: confirming twice keeps the first confirmation date.
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "payment id"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/confirm [put]
func (h *PaymentHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.UserContext(), CurrentUser(c), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Manager submits a settlement
// @Tags         settlements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSettlementRequest  true  "amount, job_ids, notes"
// @Success      201   {object}  dto.SettlementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/settlements [post]
func (h *PaymentHandler) Submit(c *fiber.Ctx) error {
	var in dto.CreateSettlementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Submit(c.UserContext(), CurrentUser(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSettlements godoc
// @Summary      List settlements
// @Tags         settlements
// @Security     Bearer
// @Produce      json
// @Param        confirmed  query  bool  false  "confirmation state"
// @Success      200  {array}   dto.SettlementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settlements [get]
func (h *PaymentHandler) ListSettlements(c *fiber.Ctx) error {
	var q dto.SettlementListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c, "invalid query parameters")
	}
	out, err := h.uc.ListSettlements(c.UserContext(), CurrentUser(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ConfirmSettlement godoc
// @Summary      Owner confirms a settlement
// @Tags         settlements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "settlement id"
// @Success      200  {object}  dto.SettlementResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settlements/{id}/confirm [put]
func (h *PaymentHandler) ConfirmSettlement(c *fiber.Ctx) error {
	out, err := h.uc.ConfirmSettlement(c.UserContext(), CurrentUser(c), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
