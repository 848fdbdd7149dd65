package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/repository"
)

var _ repository.LoanRepository = (*LoanRepo)(nil)

// LoanRepo implementa repository.LoanRepository.
type LoanRepo struct {
	store *Store
	inTx  bool
}

func (r *LoanRepo) Create(ctx context.Context, l *entity.Loan) error {
	defer r.store.lock(r.inTx)()
	data := r.store.data
	if _, ok := data.employees[l.EmployeeID]; !ok {
		return domain.ErrLoanBorrowerMissing
	}
	v := *l
	v.Employee = nil
	data.loans[l.ID] = v
	return nil
}

func (r *LoanRepo) GetByID(ctx context.Context, id string) (*entity.Loan, error) {
	defer r.store.lock(r.inTx)()
	l, ok := r.store.data.loans[id]
	if !ok {
		return nil, nil
	}
	return withEmployee(r.store.data, l), nil
}

func (r *LoanRepo) GetForUpdate(ctx context.Context, id string) (*entity.Loan, error) {
	defer r.store.lock(r.inTx)()
	l, ok := r.store.data.loans[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *LoanRepo) Update(ctx context.Context, l *entity.Loan) error {
	defer r.store.lock(r.inTx)()
	if _, ok := r.store.data.loans[l.ID]; !ok {
		return domain.ErrLoanNotFound
	}
	v := *l
	v.Employee = nil
	r.store.data.loans[l.ID] = v
	return nil
}

func (r *LoanRepo) List(ctx context.Context, limit, offset int) ([]*entity.Loan, error) {
	defer r.store.lock(r.inTx)()
	out := make([]*entity.Loan, 0, len(r.store.data.loans))
	for _, l := range r.store.data.loans {
		out = append(out, withEmployee(r.store.data, l))
	}
	sortLoans(out)
	return page(out, limit, offset), nil
}

func (r *LoanRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]*entity.Loan, error) {
	defer r.store.lock(r.inTx)()
	out := make([]*entity.Loan, 0)
	for _, l := range r.store.data.loans {
		if l.EmployeeID == employeeID {
			l := l
			out = append(out, &l)
		}
	}
	sortLoans(out)
	return out, nil
}

func (r *LoanRepo) Delete(ctx context.Context, id string) error {
	defer r.store.lock(r.inTx)()
	if _, ok := r.store.data.loans[id]; !ok {
		return domain.ErrLoanNotFound
	}
	delete(r.store.data.loans, id)
	return nil
}

// sortLoans ordena por fecha de creación y luego por id.
func sortLoans(loans []*entity.Loan) {
	slices.SortFunc(loans, func(a, b *entity.Loan) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func withEmployee(data *state, l entity.Loan) *entity.Loan {
	if e, ok := data.employees[l.EmployeeID]; ok {
		l.Employee = withCompany(data, e)
	}
	return &l
}
