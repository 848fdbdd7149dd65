package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/talento-api/internal/application/dto"
	"github.com/jhoicas/talento-api/internal/domain"
	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/lending"
	"github.com/jhoicas/talento-api/internal/domain/repository"
	"github.com/jhoicas/talento-api/pkg/logger"
)

// ErrInvalidLoanID el identificador del préstamo no es un UUID.
var ErrInvalidLoanID = domain.NewError(domain.ErrInvalidInput, "el identificador del préstamo no es válido")

// LoanUseCase casos de uso de préstamos. Las operaciones que tocan el contador de
// préstamos del empleado corren en una sola transacción con la fila bloqueada.
type LoanUseCase struct {
	tx        TxRunner
	repo      repository.LoanRepository
	statement LoanStatementGenerator
	clock     Clock
	log       *logger.Logger
}

// NewLoanUseCase construye el caso de uso.
func NewLoanUseCase(
	tx TxRunner,
	repo repository.LoanRepository,
	statement LoanStatementGenerator,
	clock Clock,
	log *logger.Logger,
) *LoanUseCase {
	return &LoanUseCase{tx: tx, repo: repo, statement: statement, clock: clock, log: log.Named("loans")}
}

// Create otorga un préstamo: el empleado debe existir y tener menos de 3 préstamos vigentes.
// Inserta el préstamo e incrementa Employee.CurrentLoans en la misma transacción.
func (uc *LoanUseCase) Create(ctx context.Context, in dto.CreateLoanRequest) (*dto.LoanResponse, error) {
	employeeID, err := parseIdentification(in.Employee)
	if err != nil {
		return nil, err
	}
	now := uc.clock()
	loan, err := lending.Issue(employeeID, in.Value, in.Installments, now)
	if err != nil {
		return nil, err
	}
	loan.ID = uuid.New().String()

	err = uc.tx.Run(ctx, func(employeeRepo repository.EmployeeRepository, loanRepo repository.LoanRepository) error {
		employee, err := employeeRepo.GetForUpdate(ctx, employeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return domain.ErrLoanBorrowerMissing
		}
		if err := lending.CanIssue(employee.CurrentLoans); err != nil {
			return err
		}
		if err := loanRepo.Create(ctx, loan); err != nil {
			return err
		}
		employee.CurrentLoans++
		employee.UpdatedAt = now
		if err := employeeRepo.SetCurrentLoans(ctx, employee.Identification, employee.CurrentLoans, now); err != nil {
			return err
		}
		loan.Employee = employee
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("loan_id", loan.ID).Int64("employee", employeeID).
		Str("value", loan.Value.String()).Int("installments", loan.Installments).
		Msg("préstamo otorgado")
	return uc.reload(ctx, loan)
}

// GetByID obtiene un préstamo con su empleado.
func (uc *LoanUseCase) GetByID(ctx context.Context, id string) (*dto.LoanResponse, error) {
	loan, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLoanResponse(loan), nil
}

// Pay registra el abono de cuotas. Sin amount se abona el valor nominal de las cuotas.
func (uc *LoanUseCase) Pay(ctx context.Context, id string, in dto.PayLoanRequest) (*dto.LoanResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidLoanID
	}
	var paid *entity.Loan
	err := uc.tx.Run(ctx, func(_ repository.EmployeeRepository, loanRepo repository.LoanRepository) error {
		loan, err := loanRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if loan == nil {
			return domain.ErrLoanNotFound
		}
		if err := lending.ApplyPayment(loan, in.Installments, in.Amount, uc.clock()); err != nil {
			return err
		}
		paid = loan
		return loanRepo.Update(ctx, loan)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("loan_id", id).Int("installments", in.Installments).
		Str("total_paid", paid.TotalPaid.String()).Msg("abono registrado")
	return uc.reload(ctx, paid)
}

// List lista préstamos; limit 0 devuelve todos.
func (uc *LoanUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.LoanResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LoanResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLoanResponse(l))
	}
	return items, nil
}

// Delete elimina el préstamo y descuenta un préstamo vigente al empleado, en una transacción.
func (uc *LoanUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidLoanID
	}
	err := uc.tx.Run(ctx, func(employeeRepo repository.EmployeeRepository, loanRepo repository.LoanRepository) error {
		loan, err := loanRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if loan == nil {
			return domain.ErrLoanNotFound
		}
		employee, err := employeeRepo.GetForUpdate(ctx, loan.EmployeeID)
		if err != nil {
			return err
		}
		if employee != nil && employee.CurrentLoans > 0 {
			if err := employeeRepo.SetCurrentLoans(ctx, employee.Identification, employee.CurrentLoans-1, uc.clock()); err != nil {
				return err
			}
		}
		return loanRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("loan_id", id).Msg("préstamo eliminado")
	return nil
}

// Schedule devuelve el cronograma de cuotas del préstamo.
func (uc *LoanUseCase) Schedule(ctx context.Context, id string) (*dto.LoanScheduleResponse, error) {
	loan, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	rows := lending.Schedule(loan, uc.clock())
	out := &dto.LoanScheduleResponse{
		LoanID:            loan.ID,
		InstallmentAmount: lending.InstallmentAmount(loan).Round(2),
		Schedule:          make([]dto.InstallmentResponse, 0, len(rows)),
	}
	for _, r := range rows {
		out.Schedule = append(out.Schedule, dto.InstallmentResponse{
			Number:  r.Number,
			DueDate: r.DueDate,
			Amount:  r.Amount,
			Status:  r.Status,
		})
	}
	return out, nil
}

// Statement genera el extracto PDF del préstamo. Devuelve los bytes y el nombre de archivo.
func (uc *LoanUseCase) Statement(ctx context.Context, id string) ([]byte, string, error) {
	loan, err := uc.get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.statement.GenerateLoanStatement(ctx, loan, uc.clock())
	if err != nil {
		return nil, "", fmt.Errorf("extracto del préstamo: %w", err)
	}
	return pdf, fmt.Sprintf("prestamo-%s.pdf", loan.ID), nil
}

func (uc *LoanUseCase) get(ctx context.Context, id string) (*entity.Loan, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidLoanID
	}
	loan, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, domain.ErrLoanNotFound
	}
	return loan, nil
}

// reload relee el préstamo con su empleado y empresa; si falla responde con lo que hay en memoria.
func (uc *LoanUseCase) reload(ctx context.Context, loan *entity.Loan) (*dto.LoanResponse, error) {
	fresh, err := uc.repo.GetByID(ctx, loan.ID)
	if err != nil || fresh == nil {
		uc.log.Warn().Err(err).Str("loan_id", loan.ID).Msg("no se pudo releer el préstamo")
		return toLoanResponse(loan), nil
	}
	return toLoanResponse(fresh), nil
}

func toSimpleLoanResponse(l *entity.Loan) *dto.LoanResponse {
	if l == nil {
		return nil
	}
	return &dto.LoanResponse{
		ID:               l.ID,
		Value:            l.Value,
		Installments:     l.Installments,
		InstallmentsPaid: l.InstallmentsPaid,
		TotalPaid:        l.TotalPaid,
		PayableAmount:    l.TotalLeft,
		StartDate:        l.StartDate,
		EndDate:          l.EndDate,
	}
}

func toLoanResponse(l *entity.Loan) *dto.LoanResponse {
	out := toSimpleLoanResponse(l)
	if out != nil {
		out.Employee = toEmployeeResponse(l.Employee)
	}
	return out
}
