package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/talento-api/internal/application/dto"
	"github.com/jhoicas/talento-api/internal/application/usecase"
	"github.com/jhoicas/talento-api/pkg/logger"
)

// LoanHandler maneja las peticiones HTTP para el recurso Loan.
type LoanHandler struct {
	uc  *usecase.LoanUseCase
	log *logger.Logger
}

// NewLoanHandler construye el handler inyectando el caso de uso.
func NewLoanHandler(uc *usecase.LoanUseCase, log *logger.Logger) *LoanHandler {
	return &LoanHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Otorgar préstamo
// @Description  El empleado debe existir y tener menos de 3 préstamos vigentes.
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateLoanEnvelope  true  "Datos del préstamo"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /loan [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var body dto.CreateLoanEnvelope
	if err := c.BodyParser(&body); err != nil || body.Data == nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), *body.Data)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"result": resultSuccess, "loan_data": out})
}

// GetByID godoc
// @Summary      Obtener préstamo
// @Tags         loans
// @Produce      json
// @Param        id   path      string  true  "ID del préstamo (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /loan/{id} [get]
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"result": resultSuccess, "loan": out})
}

// Pay godoc
// @Summary      Abonar cuotas
// @Description  Sin amount se abona el valor nominal de las cuotas. El saldo es valor menos total pagado.
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "ID del préstamo (UUID)"
// @Param        body  body      dto.PayLoanEnvelope  true  "Cuotas a abonar"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /loan/{id} [post]
func (h *LoanHandler) Pay(c *fiber.Ctx) error {
	var body dto.PayLoanEnvelope
	if err := c.BodyParser(&body); err != nil || body.Data == nil {
		return invalidBody(c)
	}
	out, err := h.uc.Pay(c.UserContext(), c.Params("id"), *body.Data)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"result": resultSuccess, "loan_data": out})
}

// List godoc
// @Summary      Listar préstamos
// @Tags         loans
// @Produce      json
// @Param        limit   query     int  false  "Límite (0 = todos)"  default(0)
// @Param        offset  query     int  false  "Offset"              default(0)
// @Success      200     {object}  map[string]interface{}
// @Router       /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), page(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"result": resultSuccess, "loans": out})
}

// Delete godoc
// @Summary      Eliminar préstamo
// @Tags         loans
// @Produce      json
// @Param        id   path      string  true  "ID del préstamo (UUID)"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /loan/{id}/delete [post]
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Result: resultSuccess})
}

// Schedule godoc
// @Summary      Cronograma de cuotas
// @Tags         loans
// @Produce      json
// @Param        id   path      string  true  "ID del préstamo (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /loan/{id}/schedule [get]
func (h *LoanHandler) Schedule(c *fiber.Ctx) error {
	out, err := h.uc.Schedule(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"result":             resultSuccess,
		"loan_id":            out.LoanID,
		"installment_amount": out.InstallmentAmount,
		"schedule":           out.Schedule,
	})
}

// Statement godoc
// @Summary      Extracto del préstamo en PDF
// @Tags         loans
// @Produce      application/pdf
// @Param        id   path      string  true  "ID del préstamo (UUID)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /loan/{id}/statement [get]
func (h *LoanHandler) Statement(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Statement(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}
