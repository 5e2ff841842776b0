package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

func TestPayment(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	paymentDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	breakdown := []AllocationLine{
		{InstallmentNumber: 1, Mora: decimal.NewFromInt(500), Interest: decimal.NewFromInt(2_000), Capital: decimal.NewFromInt(500)},
	}

	payment := NewPayment("loan-1", decimal.NewFromInt(3_100), paymentDate,
		valueobject.PolicyOverdueFirst, breakdown, decimal.NewFromInt(100), now)

	assert.NotEmpty(t, payment.ID())
	assert.Equal(t, "loan-1", payment.LoanID())
	assert.True(t, payment.Allocated().Equal(decimal.NewFromInt(3_000)))
	assert.True(t, payment.Policy().Equal(valueobject.PolicyOverdueFirst))
	assert.Equal(t, paymentDate, payment.PaymentDate())

	lines := payment.Breakdown()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Total().Equal(decimal.NewFromInt(3_000)))

	// Breakdown is a defensive copy.
	lines[0].Capital = decimal.NewFromInt(999)
	assert.True(t, payment.Breakdown()[0].Capital.Equal(decimal.NewFromInt(500)))
}

func TestReconstructPayment(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	payment := ReconstructPayment("pay-9", "loan-1", decimal.NewFromInt(250),
		createdAt, valueobject.PolicySequential, nil, decimal.Zero, createdAt)

	assert.Equal(t, "pay-9", payment.ID())
	assert.True(t, payment.Allocated().Equal(decimal.NewFromInt(250)))
	assert.Nil(t, payment.Breakdown())
}
