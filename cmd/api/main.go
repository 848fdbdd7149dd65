// @title        Talento API
// @version      1.0
// @description  API de empresas, empleados y préstamos de nómina.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/talento-api/docs"
	"github.com/jhoicas/talento-api/internal/application/usecase"
	"github.com/jhoicas/talento-api/internal/domain/repository"
	"github.com/jhoicas/talento-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/talento-api/internal/infrastructure/pdf"
	"github.com/jhoicas/talento-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/talento-api/internal/interfaces/http"
	"github.com/jhoicas/talento-api/pkg/config"
	"github.com/jhoicas/talento-api/pkg/logger"
)

// stores repositorios y runner de transacciones según STORE_DRIVER.
type stores struct {
	companies repository.CompanyRepository
	employees repository.EmployeeRepository
	loans     repository.LoanRepository
	tx        usecase.TxRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Str("minimum_wage", cfg.Payroll.MinimumWage.String()).
		Msg("iniciando aplicación")

	st, err := openStores(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	clock := usecase.Clock(usecase.RealClock)
	companyUC := usecase.NewCompanyUseCase(st.companies, clock, log)
	employeeUC := usecase.NewEmployeeUseCase(st.employees, st.companies, st.loans, cfg.Payroll.MinimumWage, clock, log)
	loanUC := usecase.NewLoanUseCase(st.tx, st.loans, infrapdf.NewLoanStatementGenerator(), clock, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Talento API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: rutas de escritura sin autenticación")
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:  companyUC,
		EmployeeUC: employeeUC,
		LoanUC:     loanUC,
		Logger:     log,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if strings.EqualFold(cfg.DB.Driver, config.StoreDriverMemory) {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &stores{
			companies: s.Companies(),
			employees: s.Employees(),
			loans:     s.Loans(),
			tx:        s,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := postgres.MigrateUp(pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &stores{
		companies: postgres.NewCompanyRepository(pool),
		employees: postgres.NewEmployeeRepository(pool),
		loans:     postgres.NewLoanRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}
