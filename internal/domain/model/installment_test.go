package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

func consistentInstallment() Installment {
	return Installment{
		Number:            3,
		DueDate:           time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		ScheduledCapital:  decimal.NewFromInt(1_000),
		ScheduledInterest: decimal.NewFromInt(120),
		ScheduledTotal:    decimal.NewFromInt(1_120),
		OpeningBalance:    decimal.NewFromInt(10_000),
		ClosingBalance:    decimal.NewFromInt(9_000),
		PaidCapital:       decimal.NewFromInt(400),
		PaidInterest:      decimal.NewFromInt(120),
		PaidMora:          decimal.NewFromInt(30),
		TotalPaid:         decimal.NewFromInt(550),
		PendingCapital:    decimal.NewFromInt(600),
		PendingInterest:   decimal.Zero,
		DaysOverdue:       15,
		MoraAmount:        decimal.NewFromInt(90),
		MoraRateApplied:   decimal.NewFromFloat(0.1),
		Status:            valueobject.InstallmentStatusPartial,
	}
}

func TestInstallment_PendingMora(t *testing.T) {
	inst := consistentInstallment()
	assert.True(t, inst.PendingMora().Equal(decimal.NewFromInt(60)))

	// Overpaid mora never goes negative.
	inst.PaidMora = decimal.NewFromInt(90)
	assert.True(t, inst.PendingMora().IsZero())
}

func TestInstallment_PendingTotal(t *testing.T) {
	inst := consistentInstallment()
	// 600 capital + 0 interest + 60 mora.
	assert.True(t, inst.PendingTotal().Equal(decimal.NewFromInt(660)))
}

func TestInstallment_SettledAndOverdue(t *testing.T) {
	inst := consistentInstallment()
	assert.False(t, inst.IsSettled())
	assert.True(t, inst.IsOverdue())

	inst.PaidCapital = inst.ScheduledCapital
	inst.PendingCapital = decimal.Zero
	inst.PaidMora = inst.MoraAmount
	assert.True(t, inst.IsSettled())
	assert.False(t, inst.IsOverdue(), "a settled installment is never overdue")
}

func TestInstallment_CheckConsistency(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, consistentInstallment().CheckConsistency())
	})

	t.Run("negative pending capital", func(t *testing.T) {
		inst := consistentInstallment()
		inst.PendingCapital = decimal.NewFromInt(-1)
		assert.ErrorIs(t, inst.CheckConsistency(), ErrInconsistentState)
	})

	t.Run("paid mora exceeds accrued", func(t *testing.T) {
		inst := consistentInstallment()
		inst.PaidMora = decimal.NewFromInt(91)
		assert.ErrorIs(t, inst.CheckConsistency(), ErrInconsistentState)
	})

	t.Run("pending capital out of sync", func(t *testing.T) {
		inst := consistentInstallment()
		inst.PendingCapital = decimal.NewFromInt(601)
		assert.ErrorIs(t, inst.CheckConsistency(), ErrInconsistentState)
	})

	t.Run("pending interest out of sync", func(t *testing.T) {
		inst := consistentInstallment()
		inst.PendingInterest = decimal.NewFromInt(1)
		assert.ErrorIs(t, inst.CheckConsistency(), ErrInconsistentState)
	})
}

func TestCheckScheduleInvariant(t *testing.T) {
	installments := []Installment{
		{ScheduledCapital: decimal.NewFromFloat(333.33)},
		{ScheduledCapital: decimal.NewFromFloat(333.33)},
		{ScheduledCapital: decimal.NewFromFloat(333.34)},
	}
	require.NoError(t, CheckScheduleInvariant(installments, decimal.NewFromInt(1_000)))

	assert.ErrorIs(t,
		CheckScheduleInvariant(installments, decimal.NewFromInt(1_001)),
		ErrInconsistentState)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "10.13", Round2(decimal.NewFromFloat(10.125)).String(), "half rounds up")
	assert.Equal(t, "10.12", Round2(decimal.NewFromFloat(10.124)).String())
	assert.Equal(t, "10.00", Round2(decimal.NewFromInt(10)).StringFixed(2))
}
