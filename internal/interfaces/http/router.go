package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/talento-api/internal/application/usecase"
	"github.com/jhoicas/talento-api/pkg/jwt"
	"github.com/jhoicas/talento-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC  *usecase.CompanyUseCase
	EmployeeUC *usecase.EmployeeUseCase
	LoanUC     *usecase.LoanUseCase
	Logger     *logger.Logger
	// JWTSecret vacío deja abiertas las rutas de escritura.
	JWTSecret string
}

// Router registra las rutas de la API. Las lecturas son públicas; las escrituras exigen
// un token con alcance records:write cuando hay JWTSecret.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	write := func(c *fiber.Ctx) error { return c.Next() }
	if deps.JWTSecret != "" {
		write = AuthMiddleware(deps.JWTSecret, jwt.ScopeWrite)
	}

	// Companies
	companyHandler := NewCompanyHandler(deps.CompanyUC, log.Named("http.companies"))
	app.Get("/companies", companyHandler.List)
	app.Post("/company", write, companyHandler.Create)
	app.Get("/company/:nit", companyHandler.GetByNIT)
	app.Post("/company/:nit", write, companyHandler.Update)
	app.Post("/company/:nit/delete", write, companyHandler.Delete)

	// Employees
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, log.Named("http.employees"))
	app.Get("/employees", employeeHandler.List)
	app.Post("/employee", write, employeeHandler.Create)
	app.Get("/employee/:id", employeeHandler.GetByIdentification)
	app.Post("/employee/:id", write, employeeHandler.Update)
	app.Post("/employee/:id/delete", write, employeeHandler.Delete)
	app.Get("/employee/:id/company", employeeHandler.Company)
	app.Get("/employee/:id/age", employeeHandler.Age)
	app.Get("/employee/:id/loans", employeeHandler.Loans)

	// Loans
	loanHandler := NewLoanHandler(deps.LoanUC, log.Named("http.loans"))
	app.Get("/loans", loanHandler.List)
	app.Post("/loan", write, loanHandler.Create)
	app.Get("/loan/:id", loanHandler.GetByID)
	app.Post("/loan/:id", write, loanHandler.Pay)
	app.Post("/loan/:id/delete", write, loanHandler.Delete)
	app.Get("/loan/:id/schedule", loanHandler.Schedule)
	app.Get("/loan/:id/statement", loanHandler.Statement)
}
