package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/talento-api/internal/application/dto"
	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/repository"
	"github.com/jhoicas/talento-api/pkg/logger"
	"github.com/jhoicas/talento-api/pkg/nit"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo  repository.CompanyRepository
	clock Clock
	log   *logger.Logger
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, clock Clock, log *logger.Logger) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, clock: clock, log: log.Named("companies")}
}

// Create crea una nueva empresa calculando el dígito de verificación.
// Devuelve domain.ErrCompanyExists si el NIT ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	in.NIT = strings.TrimSpace(in.NIT)
	digit, err := verificationDigit(in.NIT)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByNIT(ctx, in.NIT)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrCompanyExists
	}
	now := uc.clock()
	company := &entity.Company{
		NIT:               in.NIT,
		VerificationDigit: digit,
		Name:              in.Name,
		Address:           in.Address,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	uc.log.Info().Str("nit", company.NIT).Msg("empresa creada")
	return toCompanyResponse(company), nil
}

// GetByNIT obtiene una empresa por NIT.
func (uc *CompanyUseCase) GetByNIT(ctx context.Context, nitValue string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByNIT(ctx, nitValue)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return toCompanyResponse(company), nil
}

// Update sobrescribe solo los campos enviados. Si cambia el NIT se recalcula el dígito.
func (uc *CompanyUseCase) Update(ctx context.Context, nitValue string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByNIT(ctx, nitValue)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	if newNIT := strings.TrimSpace(deref(in.NIT)); newNIT != "" && newNIT != company.NIT {
		digit, err := verificationDigit(newNIT)
		if err != nil {
			return nil, err
		}
		other, err := uc.repo.GetByNIT(ctx, newNIT)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrCompanyExists
		}
		company.NIT = newNIT
		company.VerificationDigit = digit
	}
	if v := deref(in.Name); v != "" {
		company.Name = v
	}
	if v := deref(in.Address); v != "" {
		company.Address = v
	}
	company.UpdatedAt = uc.clock()
	if err := uc.repo.Update(ctx, nitValue, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// List lista empresas; limit 0 devuelve todas.
func (uc *CompanyUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CompanyResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return items, nil
}

// Delete elimina una empresa. Sus empleados quedan sin empresa asociada.
func (uc *CompanyUseCase) Delete(ctx context.Context, nitValue string) error {
	company, err := uc.repo.GetByNIT(ctx, nitValue)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrCompanyNotFound
	}
	if err := uc.repo.Delete(ctx, nitValue); err != nil {
		return err
	}
	uc.log.Info().Str("nit", nitValue).Msg("empresa eliminada")
	return nil
}

func verificationDigit(nitValue string) (int, error) {
	digit, err := nit.CheckDigit(nitValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return digit, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		NIT:               c.NIT,
		VerificationDigit: c.VerificationDigit,
		Name:              c.Name,
		Address:           c.Address,
	}
}

// RealClock reloj del sistema.
func RealClock() time.Time { return time.Now() }
