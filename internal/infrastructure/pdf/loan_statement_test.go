package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/talento-api/internal/domain/entity"
	"github.com/jhoicas/talento-api/internal/domain/lending"
	"github.com/jhoicas/talento-api/internal/infrastructure/pdf"
)

func TestGenerateLoanStatement(t *testing.T) {
	start := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	loan, err := lending.Issue(1010101010, decimal.NewFromInt(1200000), 12, start)
	require.NoError(t, err)
	loan.ID = "0b8f3c52-5a9e-4d8e-9d55-7c1f3e0a1b2c"
	require.NoError(t, lending.ApplyPayment(loan, 2, nil, start))
	loan.Employee = &entity.Employee{
		Identification: 1010101010,
		Name:           "Ana Gómez",
		Company:        &entity.Company{NIT: "123456789", VerificationDigit: 5, Name: "Acme"},
	}

	out, err := pdf.NewLoanStatementGenerator().GenerateLoanStatement(context.Background(), loan, start.AddDate(0, 2, 0))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "no es un PDF")
}

func TestGenerateLoanStatement_SinEmpleado(t *testing.T) {
	loan, err := lending.Issue(1, decimal.NewFromInt(500), 1, time.Now())
	require.NoError(t, err)
	loan.ID = "7d3c1a7e-2b2f-4c3a-9a59-0f4b5c6d7e8f"

	out, err := pdf.NewLoanStatementGenerator().GenerateLoanStatement(context.Background(), loan, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = pdf.NewLoanStatementGenerator().GenerateLoanStatement(context.Background(), nil, time.Now())
	assert.Error(t, err)
}
