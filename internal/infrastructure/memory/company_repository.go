package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementa repository.CompanyRepository.
type CompanyRepo struct {
	store *Store
}

func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	defer r.store.lock(false)()
	if _, ok := r.store.data.companies[c.NIT]; ok {
		return domain.ErrCompanyExists
	}
	r.store.data.companies[c.NIT] = *c
	return nil
}

func (r *CompanyRepo) GetByNIT(ctx context.Context, nit string) (*entity.Company, error) {
	defer r.store.lock(false)()
	c, ok := r.store.data.companies[nit]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// Update reemplaza la empresa; si cambia el NIT los empleados siguen apuntando a ella.
func (r *CompanyRepo) Update(ctx context.Context, currentNIT string, c *entity.Company) error {
	defer r.store.lock(false)()
	data := r.store.data
	if _, ok := data.companies[currentNIT]; !ok {
		return domain.ErrCompanyNotFound
	}
	if c.NIT != currentNIT {
		if _, taken := data.companies[c.NIT]; taken {
			return domain.ErrCompanyExists
		}
		delete(data.companies, currentNIT)
		for id, e := range data.employees {
			if e.CompanyNIT != nil && *e.CompanyNIT == currentNIT {
				e.CompanyNIT = stringPtr(c.NIT)
				data.employees[id] = e
			}
		}
	}
	data.companies[c.NIT] = *c
	return nil
}

func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	defer r.store.lock(false)()
	out := make([]*entity.Company, 0, len(r.store.data.companies))
	for _, c := range r.store.data.companies {
		c := c
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *entity.Company) int { return strings.Compare(a.NIT, b.NIT) })
	return page(out, limit, offset), nil
}

func (r *CompanyRepo) Delete(ctx context.Context, nit string) error {
	defer r.store.lock(false)()
	data := r.store.data
	if _, ok := data.companies[nit]; !ok {
		return domain.ErrCompanyNotFound
	}
	for id, e := range data.employees {
		if e.CompanyNIT != nil && *e.CompanyNIT == nit {
			e.CompanyNIT = nil
			data.employees[id] = e
		}
	}
	delete(data.companies, nit)
	return nil
}

func stringPtr(s string) *string { return &s }

// page aplica limit/offset a un listado ya ordenado. limit <= 0 devuelve todo desde offset.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
