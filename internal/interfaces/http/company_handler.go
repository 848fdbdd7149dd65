package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/talento-api/internal/application/dto"
	"github.com/jhoicas/talento-api/internal/application/usecase"
	"github.com/jhoicas/talento-api/pkg/logger"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc  *usecase.CompanyUseCase
	log *logger.Logger
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear empresa
// @Description  Calcula el dígito de verificación a partir de los 9 primeros dígitos del NIT.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /company [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"result": resultSuccess, "company_data": out})
}

// GetByNIT godoc
// @Summary      Obtener empresa por NIT
// @Tags         companies
// @Produce      json
// @Param        nit  path      string  true  "NIT de la empresa"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /company/{nit} [get]
func (h *CompanyHandler) GetByNIT(c *fiber.Ctx) error {
	out, err := h.uc.GetByNIT(c.UserContext(), c.Params("nit"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"result": resultSuccess, "company": out})
}

// Update godoc
// @Summary      Actualizar empresa
// @Description  Solo se modifican los campos enviados y no vacíos. Si cambia el NIT se recalcula el dígito.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        nit   path      string                    true  "NIT de la empresa"
// @Param        body  body      dto.UpdateCompanyRequest  true  "Campos a modificar"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /company/{nit} [post]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("nit"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"result": resultSuccess, "company_data": out})
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Produce      json
// @Param        limit   query     int  false  "Límite (0 = todas)"  default(0)
// @Param        offset  query     int  false  "Offset"              default(0)
// @Success      200     {object}  map[string]interface{}
// @Router       /companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), page(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"result": resultSuccess, "companies": out})
}

// Delete godoc
// @Summary      Eliminar empresa
// @Description  Los empleados de la empresa quedan sin empresa asociada.
// @Tags         companies
// @Produce      json
// @Param        nit  path      string  true  "NIT de la empresa"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /company/{nit}/delete [post]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("nit")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Result: resultSuccess})
}
