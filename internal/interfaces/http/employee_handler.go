package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/talento-api/internal/application/dto"
	"github.com/jhoicas/talento-api/internal/application/usecase"
	"github.com/jhoicas/talento-api/pkg/logger"
)

// EmployeeHandler maneja las peticiones HTTP para el recurso Employee.
type EmployeeHandler struct {
	uc  *usecase.EmployeeUseCase
	log *logger.Logger
}

// NewEmployeeHandler construye el handler inyectando el caso de uso.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase, log *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear empleado
// @Description  Fechas en formato AAAA/MM/DD. El salario se calcula por antigüedad; la edad debe estar entre 18 y 70 años.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateEmployeeEnvelope  true  "Datos del empleado"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /employee [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var body dto.CreateEmployeeEnvelope
	if err := c.BodyParser(&body); err != nil || body.Data == nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), *body.Data)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"result": resultSuccess, "employee_data": out})
}

// GetByIdentification godoc
// @Summary      Obtener empleado
// @Tags         employees
// @Produce      json
// @Param        id   path      int  true  "Identificación del empleado"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /employee/{id} [get]
func (h *EmployeeHandler) GetByIdentification(c *fiber.Ctx) error {
	id, err := usecase.ParseIdentification(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.GetByIdentification(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"result": resultSuccess, "employee": out})
}

// Update godoc
// @Summary      Actualizar empleado
// @Description  Solo se modifican los campos enviados y no vacíos. Una nueva fecha de contratación recalcula el salario.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id    path      int                         true  "Identificación del empleado"
// @Param        body  body      dto.UpdateEmployeeEnvelope  true  "Campos a modificar"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /employee/{id} [post]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := usecase.ParseIdentification(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	var body dto.UpdateEmployeeEnvelope
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return invalidBody(c)
		}
	}
	var in dto.UpdateEmployeeRequest
	if body.Data != nil {
		in = *body.Data
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"result": resultSuccess, "employee_data": out})
}

// List godoc
// @Summary      Listar empleados
// @Tags         employees
// @Produce      json
// @Param        limit   query     int  false  "Límite (0 = todos)"  default(0)
// @Param        offset  query     int  false  "Offset"              default(0)
// @Success      200     {object}  map[string]interface{}
// @Router       /employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), page(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"result": resultSuccess, "employees": out})
}

// Delete godoc
// @Summary      Eliminar empleado
// @Description  Falla con 409 si el empleado tiene préstamos vigentes.
// @Tags         employees
// @Produce      json
// @Param        id   path      int  true  "Identificación del empleado"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /employee/{id}/delete [post]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := usecase.ParseIdentification(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Result: resultSuccess})
}

// Company godoc
// @Summary      Empresa del empleado
// @Tags         employees
// @Produce      json
// @Param        id   path      int  true  "Identificación del empleado"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /employee/{id}/company [get]
func (h *EmployeeHandler) Company(c *fiber.Ctx) error {
	id, err := usecase.ParseIdentification(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Company(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"result": resultSuccess, "company": out})
}

// Age godoc
// @Summary      Edad del empleado
// @Description  Años completos de 360 días.
// @Tags         employees
// @Produce      json
// @Param        id   path      int  true  "Identificación del empleado"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /employee/{id}/age [get]
func (h *EmployeeHandler) Age(c *fiber.Ctx) error {
	id, err := usecase.ParseIdentification(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	age, err := h.uc.Age(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"result": resultSuccess, "age": age})
}

// Loans godoc
// @Summary      Préstamos del empleado
// @Tags         employees
// @Produce      json
// @Param        id   path      int  true  "Identificación del empleado"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /employee/{id}/loans [get]
func (h *EmployeeHandler) Loans(c *fiber.Ctx) error {
	id, err := usecase.ParseIdentification(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Loans(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"result": resultSuccess, "loans": out})
}
