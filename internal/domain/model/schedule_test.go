package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

func TestGenerateSchedule_FrenchMonthly(t *testing.T) {
	// 1,000,000 at 24% annual for 12 monthly installments.
	principal := decimal.NewFromInt(1_000_000)
	rate := decimal.NewFromInt(24)
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	installments, summary, err := GenerateSchedule(principal, rate, 12, start,
		valueobject.FrequencyMonthly, valueobject.MethodFrench)
	require.NoError(t, err)
	require.Len(t, installments, 12)

	// Periodic rate 2% per month; level payment is approximately 94,559.60.
	first := installments[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), first.DueDate)
	assert.True(t, first.ScheduledInterest.Equal(decimal.NewFromInt(20_000)),
		"first interest should be exactly 20,000.00, got %s", first.ScheduledInterest)

	expectedPayment := decimal.NewFromFloat(94_559.60)
	for _, inst := range installments[:11] {
		assert.True(t,
			inst.ScheduledTotal.Sub(expectedPayment).Abs().LessThan(decimal.NewFromFloat(0.02)),
			"installment %d total should be approximately 94,559.60, got %s", inst.Number, inst.ScheduledTotal)
	}

	// Capital column reconciles to the principal exactly.
	require.NoError(t, CheckScheduleInvariant(installments, principal))
	assert.True(t, summary.TotalCapital.Equal(principal))

	// Final balance closes at zero.
	last := installments[11]
	assert.True(t, last.ClosingBalance.IsZero(),
		"final closing balance should be zero, got %s", last.ClosingBalance)

	// Capital grows while interest shrinks across the table.
	assert.True(t, installments[11].ScheduledCapital.GreaterThan(installments[0].ScheduledCapital))
	assert.True(t, installments[11].ScheduledInterest.LessThan(installments[0].ScheduledInterest))
}

func TestGenerateSchedule_German(t *testing.T) {
	principal := decimal.NewFromInt(120_000)
	installments, _, err := GenerateSchedule(principal, decimal.NewFromInt(12), 12,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		valueobject.FrequencyMonthly, valueobject.MethodGerman)
	require.NoError(t, err)
	require.Len(t, installments, 12)

	// Level capital of 10,000 every period.
	for _, inst := range installments {
		assert.True(t, inst.ScheduledCapital.Equal(decimal.NewFromInt(10_000)),
			"installment %d capital should be 10,000, got %s", inst.Number, inst.ScheduledCapital)
	}

	// First interest 120,000 * 1% = 1,200; totals strictly decrease.
	assert.True(t, installments[0].ScheduledInterest.Equal(decimal.NewFromInt(1_200)))
	for i := 1; i < len(installments); i++ {
		assert.True(t, installments[i].ScheduledTotal.LessThan(installments[i-1].ScheduledTotal),
			"installment %d total should be lower than %d", installments[i].Number, installments[i-1].Number)
	}

	require.NoError(t, CheckScheduleInvariant(installments, principal))
}

func TestGenerateSchedule_American(t *testing.T) {
	principal := decimal.NewFromInt(500_000)
	installments, summary, err := GenerateSchedule(principal, decimal.NewFromInt(18), 6,
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		valueobject.FrequencyMonthly, valueobject.MethodAmerican)
	require.NoError(t, err)
	require.Len(t, installments, 6)

	// Interest-only periods: 500,000 * 1.5% = 7,500 each.
	for _, inst := range installments {
		assert.True(t, inst.ScheduledInterest.Equal(decimal.NewFromInt(7_500)))
	}
	for _, inst := range installments[:5] {
		assert.True(t, inst.ScheduledCapital.IsZero(),
			"installment %d should carry no capital, got %s", inst.Number, inst.ScheduledCapital)
	}

	// Balloon on the final installment.
	last := installments[5]
	assert.True(t, last.ScheduledCapital.Equal(principal))
	assert.True(t, summary.TotalInterest.Equal(decimal.NewFromInt(45_000)))
	require.NoError(t, CheckScheduleInvariant(installments, principal))
}

func TestGenerateSchedule_ZeroRate(t *testing.T) {
	principal := decimal.NewFromInt(1_000)
	installments, summary, err := GenerateSchedule(principal, decimal.Zero, 3,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		valueobject.FrequencyMonthly, valueobject.MethodFrench)
	require.NoError(t, err)
	require.Len(t, installments, 3)

	assert.True(t, summary.TotalInterest.IsZero())
	for _, inst := range installments {
		assert.True(t, inst.ScheduledInterest.IsZero())
	}
	require.NoError(t, CheckScheduleInvariant(installments, principal))
}

func TestGenerateSchedule_DueDateClipping(t *testing.T) {
	// A schedule anchored on Jan 31 clips to the end of short months.
	installments, _, err := GenerateSchedule(decimal.NewFromInt(10_000), decimal.NewFromInt(12), 4,
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		valueobject.FrequencyMonthly, valueobject.MethodFrench)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), installments[0].DueDate)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), installments[1].DueDate)
	assert.Equal(t, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), installments[2].DueDate)
	assert.Equal(t, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), installments[3].DueDate)
}

func TestGenerateSchedule_WeeklyDates(t *testing.T) {
	installments, _, err := GenerateSchedule(decimal.NewFromInt(5_000), decimal.NewFromInt(26), 4,
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		valueobject.FrequencyWeekly, valueobject.MethodGerman)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), installments[0].DueDate)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), installments[3].DueDate)
}

func TestGenerateSchedule_InvalidInputs(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		term      int
		frequency valueobject.PaymentFrequency
		method    valueobject.AmortizationMethod
	}{
		{"zero principal", decimal.Zero, decimal.NewFromInt(10), 12, valueobject.FrequencyMonthly, valueobject.MethodFrench},
		{"negative principal", decimal.NewFromInt(-100), decimal.NewFromInt(10), 12, valueobject.FrequencyMonthly, valueobject.MethodFrench},
		{"zero term", decimal.NewFromInt(1_000), decimal.NewFromInt(10), 0, valueobject.FrequencyMonthly, valueobject.MethodFrench},
		{"negative rate", decimal.NewFromInt(1_000), decimal.NewFromInt(-5), 12, valueobject.FrequencyMonthly, valueobject.MethodFrench},
		{"zero frequency", decimal.NewFromInt(1_000), decimal.NewFromInt(10), 12, valueobject.PaymentFrequency{}, valueobject.MethodFrench},
		{"zero method", decimal.NewFromInt(1_000), decimal.NewFromInt(10), 12, valueobject.FrequencyMonthly, valueobject.AmortizationMethod{}},
		{"term over limit", decimal.NewFromInt(1_000), decimal.NewFromInt(10), 601, valueobject.FrequencyMonthly, valueobject.MethodFrench},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := GenerateSchedule(tt.principal, tt.rate, tt.term, start, tt.frequency, tt.method)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGenerateSchedule_FreshDrafts(t *testing.T) {
	installments, _, err := GenerateSchedule(decimal.NewFromInt(50_000), decimal.NewFromInt(15), 6,
		time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		valueobject.FrequencyBiweekly, valueobject.MethodFrench)
	require.NoError(t, err)

	for _, inst := range installments {
		assert.True(t, inst.Status.Equal(valueobject.InstallmentStatusPending))
		assert.True(t, inst.TotalPaid.IsZero())
		assert.True(t, inst.MoraAmount.IsZero())
		assert.True(t, inst.PendingCapital.Equal(inst.ScheduledCapital))
		assert.True(t, inst.PendingInterest.Equal(inst.ScheduledInterest))
		require.NoError(t, inst.CheckConsistency())
	}
}
