// Package memory implementa los repositorios sobre mapas en memoria. Sirve para
// desarrollo local (STORE_DRIVER=memory) y para las pruebas de casos de uso y HTTP.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/talento-api/internal/application/usecase"
	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/repository"
)

var _ usecase.TxRunner = (*Store)(nil)

type state struct {
	companies map[string]entity.Company
	employees map[int64]entity.Employee
	loans     map[string]entity.Loan
}

func newState() *state {
	return &state{
		companies: make(map[string]entity.Company),
		employees: make(map[int64]entity.Employee),
		loans:     make(map[string]entity.Loan),
	}
}

// clone copia los mapas; los valores ya son copias independientes.
func (s *state) clone() *state {
	out := newState()
	for k, v := range s.companies {
		out.companies[k] = v
	}
	for k, v := range s.employees {
		out.employees[k] = v
	}
	for k, v := range s.loans {
		out.loans[k] = v
	}
	return out
}

// Store guarda empresas, empleados y préstamos. Un solo mutex serializa todas las
// operaciones; Run lo mantiene tomado durante toda la transacción.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Companies repositorio de empresas.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{store: s} }

// Employees repositorio de empleados.
func (s *Store) Employees() *EmployeeRepo { return &EmployeeRepo{store: s} }

// Loans repositorio de préstamos.
func (s *Store) Loans() *LoanRepo { return &LoanRepo{store: s} }

// Run ejecuta fn con repositorios atados a la transacción. Si fn falla se restaura
// el estado anterior.
func (s *Store) Run(ctx context.Context, fn func(
	employeeRepo repository.EmployeeRepository,
	loanRepo repository.LoanRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	err := fn(&EmployeeRepo{store: s, inTx: true}, &LoanRepo{store: s, inTx: true})
	if err != nil {
		s.data = snapshot
	}
	return err
}

// lock toma el mutex salvo dentro de una transacción, donde ya está tomado.
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
