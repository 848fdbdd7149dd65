package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementa repository.EmployeeRepository.
type EmployeeRepo struct {
	store *Store
	inTx  bool
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	defer r.store.lock(r.inTx)()
	data := r.store.data
	if _, ok := data.employees[e.Identification]; ok {
		return domain.ErrEmployeeExists
	}
	if err := checkCompany(data, e.CompanyNIT); err != nil {
		return err
	}
	data.employees[e.Identification] = stored(e)
	return nil
}

func (r *EmployeeRepo) GetByIdentification(ctx context.Context, id int64) (*entity.Employee, error) {
	defer r.store.lock(r.inTx)()
	e, ok := r.store.data.employees[id]
	if !ok {
		return nil, nil
	}
	return withCompany(r.store.data, e), nil
}

// GetForUpdate en memoria equivale a una lectura: el mutex de Run ya serializa la transacción.
func (r *EmployeeRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Employee, error) {
	return r.GetByIdentification(ctx, id)
}

// Update reemplaza el empleado conservando CurrentLoans; si cambia la identificación sus préstamos lo siguen.
func (r *EmployeeRepo) Update(ctx context.Context, currentID int64, e *entity.Employee) error {
	defer r.store.lock(r.inTx)()
	data := r.store.data
	current, ok := data.employees[currentID]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	if err := checkCompany(data, e.CompanyNIT); err != nil {
		return err
	}
	if e.Identification != currentID {
		if _, taken := data.employees[e.Identification]; taken {
			return domain.ErrEmployeeExists
		}
		delete(data.employees, currentID)
		for id, l := range data.loans {
			if l.EmployeeID == currentID {
				l.EmployeeID = e.Identification
				data.loans[id] = l
			}
		}
	}
	v := stored(e)
	v.CurrentLoans = current.CurrentLoans
	data.employees[e.Identification] = v
	return nil
}

func (r *EmployeeRepo) SetCurrentLoans(ctx context.Context, id int64, currentLoans int, updatedAt time.Time) error {
	defer r.store.lock(r.inTx)()
	e, ok := r.store.data.employees[id]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	e.CurrentLoans = currentLoans
	e.UpdatedAt = updatedAt
	r.store.data.employees[id] = e
	return nil
}

func (r *EmployeeRepo) List(ctx context.Context, limit, offset int) ([]*entity.Employee, error) {
	defer r.store.lock(r.inTx)()
	out := make([]*entity.Employee, 0, len(r.store.data.employees))
	for _, e := range r.store.data.employees {
		out = append(out, withCompany(r.store.data, e))
	}
	slices.SortFunc(out, func(a, b *entity.Employee) int { return cmp.Compare(a.Identification, b.Identification) })
	return page(out, limit, offset), nil
}

// Delete falla con ErrEmployeeHasLoans si quedan préstamos del empleado.
func (r *EmployeeRepo) Delete(ctx context.Context, id int64) error {
	defer r.store.lock(r.inTx)()
	data := r.store.data
	if _, ok := data.employees[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	for _, l := range data.loans {
		if l.EmployeeID == id {
			return domain.ErrEmployeeHasLoans
		}
	}
	delete(data.employees, id)
	return nil
}

func checkCompany(data *state, nit *string) error {
	if nit == nil {
		return nil
	}
	if _, ok := data.companies[*nit]; !ok {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// stored copia el empleado sin la empresa cargada; la relación vive en CompanyNIT.
func stored(e *entity.Employee) entity.Employee {
	v := *e
	v.Company = nil
	if e.CompanyNIT != nil {
		v.CompanyNIT = stringPtr(*e.CompanyNIT)
	}
	return v
}

func withCompany(data *state, e entity.Employee) *entity.Employee {
	if e.CompanyNIT != nil {
		if c, ok := data.companies[*e.CompanyNIT]; ok {
			e.Company = &c
		}
		e.CompanyNIT = stringPtr(*e.CompanyNIT)
	}
	return &e
}
