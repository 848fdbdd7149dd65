// Package pdf genera el extracto de un préstamo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT-DV     │  Extracto + fecha de corte   │
//	│  EMPLEADO: Nombre + identificación                          │
//	│  RESUMEN: Valor / Cuotas / Pagado / Saldo / Vigencia         │
//	│  TABLA: N° | Vence | Valor cuota | Estado                    │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/talento-api/internal/application/usecase"
	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/lending"
)

var _ usecase.LoanStatementGenerator = (*LoanStatementGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateLayout = "02/01/2006"

var statusLabels = map[string]string{
	lending.InstallmentStatusPaid:    "Pagada",
	lending.InstallmentStatusPending: "Pendiente",
	lending.InstallmentStatusOverdue: "Vencida",
}

// LoanStatementGenerator implementa usecase.LoanStatementGenerator usando Maroto v2.
type LoanStatementGenerator struct {
	printer *message.Printer
}

// NewLoanStatementGenerator construye el generador. Los montos se formatean en español.
func NewLoanStatementGenerator() *LoanStatementGenerator {
	return &LoanStatementGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateLoanStatement genera el PDF del préstamo con su cronograma a la fecha now.
func (g *LoanStatementGenerator) GenerateLoanStatement(_ context.Context, loan *entity.Loan, now time.Time) ([]byte, error) {
	if loan == nil {
		return nil, fmt.Errorf("pdf: préstamo nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extracto de préstamo "+loan.ID, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(loan, now))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if loan.Employee != nil {
		m.AddRows(employeeRow(loan.Employee))
	}
	m.AddRows(g.summaryRow(loan))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.scheduleRows(lending.Schedule(loan, now))...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Las cuotas se causan cada 30 días desde la fecha de inicio del préstamo.", props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *LoanStatementGenerator) headerRow(loan *entity.Loan, now time.Time) core.Row {
	company, nit := "Sin empresa", ""
	if loan.Employee != nil && loan.Employee.Company != nil {
		c := loan.Employee.Company
		company = nonEmpty(c.Name, c.NIT)
		nit = fmt.Sprintf("NIT: %s-%d", c.NIT, c.VerificationDigit)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(nit, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("EXTRACTO DE PRÉSTAMO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(loan.ID, props.Text{Size: 7, Align: align.Right, Top: 7}),
			text.New("Corte: "+now.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func employeeRow(e *entity.Employee) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EMPLEADO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s   |   Identificación: %d", e.Name, e.Identification), props.Text{
				Size: 9, Top: 6,
			}),
		),
	)
}

func (g *LoanStatementGenerator) summaryRow(loan *entity.Loan) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 8, Align: align.Left, Left: 1})
	}
	return row.New(24).Add(
		col.New(3).Add(label("Valor:"), label("Cuotas pagadas:"), label("Vigencia:")),
		col.New(3).Add(
			value(g.money(loan.Value)),
			value(fmt.Sprintf("%d de %d", loan.InstallmentsPaid, loan.Installments)),
			value(loan.StartDate.Format(dateLayout)+" - "+loan.EndDate.Format(dateLayout)),
		),
		col.New(3).Add(label("Total pagado:"), label("Saldo:")),
		col.New(3).Add(value(g.money(loan.TotalPaid)), value(g.money(loan.TotalLeft))),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N°", 2, align.Center),
		h("Vence", 3, align.Center),
		h("Valor cuota", 4, align.Right),
		h("Estado", 3, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *LoanStatementGenerator) scheduleRows(schedule []lending.Installment) []core.Row {
	rows := make([]core.Row, 0, len(schedule))
	for _, in := range schedule {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(strconv.Itoa(in.Number), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(in.DueDate.Format(dateLayout), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(g.money(in.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(statusLabels[in.Status], props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return rows
}

// money formatea un monto con separador de miles y dos decimales.
func (g *LoanStatementGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%.2f", d.InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
