package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mashi007/pagos-sub005/internal/domain/model"
	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

func newRecalculator() *Recalculator {
	return NewRecalculator(NewMoraCalculator())
}

func TestRecalculator_MarksOverdueAndAccrues(t *testing.T) {
	recalc := newRecalculator()
	rate := decimal.NewFromFloat(0.1)

	// Due dates: #1 Feb 1, #2 Mar 1, #3 Apr 1. As of Mar 11 the first two
	// are past due.
	installments := []model.Installment{
		tableInstallment(1, 100_000, 2_000, 0, 0),
		tableInstallment(2, 100_000, 2_000, 0, 0),
		tableInstallment(3, 100_000, 2_000, 0, 0),
	}
	asOf := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	result, err := recalc.Recalculate(installments, asOf, rate)
	require.NoError(t, err)
	require.Len(t, result.Installments, 3)

	first := result.Installments[0]
	assert.Equal(t, 38, first.DaysOverdue)
	assert.True(t, first.Status.Equal(valueobject.InstallmentStatusAtrasado))
	// 100,000 * 0.1%/day * 38 days = 3,800.00
	assert.True(t, first.MoraAmount.Equal(decimal.NewFromInt(3_800)),
		"expected 3,800.00 mora, got %s", first.MoraAmount)

	second := result.Installments[1]
	assert.Equal(t, 10, second.DaysOverdue)
	assert.True(t, second.MoraAmount.Equal(decimal.NewFromInt(1_000)),
		"100,000 at 0.1%% per day for 10 days should be 1,000.00, got %s", second.MoraAmount)

	third := result.Installments[2]
	assert.Equal(t, 0, third.DaysOverdue)
	assert.True(t, third.Status.Equal(valueobject.InstallmentStatusPending))
	assert.True(t, third.MoraAmount.IsZero())

	assert.Equal(t, []int{1, 2}, result.NewlyOverdue)
	assert.Equal(t, 2, result.Changed)
	assert.True(t, result.MoraDelta.Equal(decimal.NewFromInt(4_800)))

	// Input slice untouched.
	assert.True(t, installments[0].MoraAmount.IsZero())
	assert.True(t, installments[0].Status.Equal(valueobject.InstallmentStatusPending))
}

func TestRecalculator_Idempotent(t *testing.T) {
	recalc := newRecalculator()
	rate := decimal.NewFromFloat(0.1)
	asOf := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	installments := []model.Installment{
		tableInstallment(1, 100_000, 2_000, 0, 0),
		tableInstallment(2, 100_000, 2_000, 0, 0),
	}

	once, err := recalc.Recalculate(installments, asOf, rate)
	require.NoError(t, err)

	twice, err := recalc.Recalculate(once.Installments, asOf, rate)
	require.NoError(t, err)

	for i := range once.Installments {
		assert.True(t, once.Installments[i].MoraAmount.Equal(twice.Installments[i].MoraAmount),
			"second pass at the same date must not change installment %d", i+1)
		assert.Equal(t, once.Installments[i].DaysOverdue, twice.Installments[i].DaysOverdue)
	}
	assert.Equal(t, 0, twice.Changed)
	assert.Empty(t, twice.NewlyOverdue, "already ATRASADO installments are not newly overdue")
	assert.True(t, twice.MoraDelta.IsZero())
}

func TestRecalculator_MoraGrowsMonotonically(t *testing.T) {
	recalc := newRecalculator()
	rate := decimal.NewFromFloat(0.1)
	installments := []model.Installment{tableInstallment(1, 100_000, 2_000, 0, 0)}

	day10, err := recalc.Recalculate(installments, time.Date(2025, 2, 11, 0, 0, 0, 0, time.UTC), rate)
	require.NoError(t, err)
	day20, err := recalc.Recalculate(installments, time.Date(2025, 2, 21, 0, 0, 0, 0, time.UTC), rate)
	require.NoError(t, err)

	assert.True(t, day20.Installments[0].MoraAmount.GreaterThan(day10.Installments[0].MoraAmount),
		"mora at a later date must not be lower while capital stays pending")
}

func TestRecalculator_SkipsSettledCapital(t *testing.T) {
	recalc := newRecalculator()

	settled := tableInstallment(1, 1_000, 0, 0, 0)
	settled.PaidCapital = settled.ScheduledCapital
	settled.PendingCapital = decimal.Zero
	settled.TotalPaid = settled.ScheduledCapital
	settled.Status = valueobject.InstallmentStatusPaid
	settled.MoraAmount = decimal.NewFromInt(120)
	settled.PaidMora = decimal.NewFromInt(120)

	result, err := recalc.Recalculate(
		[]model.Installment{settled},
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		decimal.NewFromFloat(0.1),
	)
	require.NoError(t, err)

	got := result.Installments[0]
	assert.True(t, got.MoraAmount.Equal(decimal.NewFromInt(120)),
		"settled installments keep their accrued mora untouched")
	assert.Equal(t, 0, result.Changed)
}

func TestRecalculator_PayThenSweepThenPay(t *testing.T) {
	recalc := newRecalculator()
	engine := NewAllocationEngine()
	rate := decimal.NewFromFloat(0.1)

	// Day 10 overdue: 1,000 mora accrued on 100,000 of capital.
	installments := []model.Installment{tableInstallment(1, 100_000, 2_000, 0, 0)}
	day10 := time.Date(2025, 2, 11, 0, 0, 0, 0, time.UTC)

	result, err := recalc.Recalculate(installments, day10, rate)
	require.NoError(t, err)
	require.True(t, result.Installments[0].MoraAmount.Equal(decimal.NewFromInt(1_000)))

	// 63,000 clears mora and interest and pays 60,000 of capital.
	updated, breakdown, remainder, err := engine.Apply(
		result.Installments, dec(63_000), day10, valueobject.PolicySequential)
	require.NoError(t, err)
	require.Len(t, breakdown, 1)
	assert.True(t, breakdown[0].Mora.Equal(dec(1_000)))
	assert.True(t, breakdown[0].Capital.Equal(dec(60_000)))
	assert.True(t, remainder.IsZero())

	// Next day's sweep recomputes over the 40,000 still pending. The raw
	// figure (440) is below the 1,000 already collected; the sweep must
	// neither reject the record nor owe the borrower fresh mora.
	day11 := day10.AddDate(0, 0, 1)
	swept, err := recalc.Recalculate(updated, day11, rate)
	require.NoError(t, err)

	inst := swept.Installments[0]
	assert.True(t, inst.MoraAmount.Equal(decimal.NewFromInt(1_000)),
		"accrued mora must hold at the paid figure, got %s", inst.MoraAmount)
	assert.True(t, inst.PendingMora().IsZero())
	assert.False(t, swept.MoraDelta.IsNegative(),
		"a sweep must never report negative accrual, got %s", swept.MoraDelta)

	// A follow-up payment on the swept table goes through and lands
	// entirely on capital.
	_, breakdown, _, err = engine.Apply(
		swept.Installments, dec(10_000), day11, valueobject.PolicySequential)
	require.NoError(t, err)
	require.Len(t, breakdown, 1)
	assert.True(t, breakdown[0].Mora.IsZero())
	assert.True(t, breakdown[0].Capital.Equal(dec(10_000)))
}

func TestRecalculator_RejectsNegativeRate(t *testing.T) {
	recalc := newRecalculator()
	_, err := recalc.Recalculate(nil, time.Now(), decimal.NewFromFloat(-0.1))
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
