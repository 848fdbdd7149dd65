package repository

import (
	"context"

	"github.com/jhoicas/talento-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. Get* devuelve (nil, nil) si no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByNIT(ctx context.Context, nit string) (*entity.Company, error)
	// Update guarda company; currentNIT es la clave antes del cambio (el NIT puede cambiar).
	Update(ctx context.Context, currentNIT string, company *entity.Company) error
	// List con limit <= 0 devuelve todos los registros.
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	// Delete desvincula a los empleados de la empresa antes de eliminarla.
	Delete(ctx context.Context, nit string) error
}
