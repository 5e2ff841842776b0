package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mashi007/pagos-sub005/internal/domain/event"
	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

func newTestLoan(t *testing.T) Loan {
	t.Helper()
	loan, err := NewLoan(
		"borrower-42",
		decimal.NewFromInt(1_000_000), decimal.NewFromInt(24), 12,
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		valueobject.FrequencyMonthly, valueobject.MethodFrench,
		decimal.NullDecimal{},
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return loan
}

func TestNewLoan(t *testing.T) {
	loan := newTestLoan(t)

	assert.NotEmpty(t, loan.ID())
	assert.Equal(t, "borrower-42", loan.BorrowerID())
	assert.True(t, loan.Status().Equal(valueobject.LoanStatusActive))
	assert.Equal(t, 1, loan.Version())
	require.Len(t, loan.Installments(), 12)

	events := loan.DomainEvents()
	require.Len(t, events, 1)
	generated, ok := events[0].(event.ScheduleGenerated)
	require.True(t, ok)
	assert.Equal(t, loan.ID(), generated.AggregateID())
	assert.Equal(t, "pagos.loan.schedule_generated", generated.EventType())
	assert.Equal(t, 12, generated.Term)
}

func TestNewLoan_Validation(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	_, err := NewLoan("", decimal.NewFromInt(1_000), decimal.NewFromInt(10), 12,
		start, valueobject.FrequencyMonthly, valueobject.MethodFrench, decimal.NullDecimal{}, now)
	assert.ErrorIs(t, err, ErrInvalidInput)

	negative := decimal.NullDecimal{Valid: true, Decimal: decimal.NewFromFloat(-0.1)}
	_, err = NewLoan("b", decimal.NewFromInt(1_000), decimal.NewFromInt(10), 12,
		start, valueobject.FrequencyMonthly, valueobject.MethodFrench, negative, now)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewLoan("b", decimal.Zero, decimal.NewFromInt(10), 12,
		start, valueobject.FrequencyMonthly, valueobject.MethodFrench, decimal.NullDecimal{}, now)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoan_DailyMoraRate(t *testing.T) {
	systemDefault := decimal.NewFromFloat(0.1)

	loan := newTestLoan(t)
	assert.True(t, loan.DailyMoraRate(systemDefault).Equal(systemDefault))

	override := decimal.NullDecimal{Valid: true, Decimal: decimal.NewFromFloat(0.25)}
	withOverride, err := loan.WithMoraRateOverride(override, time.Now())
	require.NoError(t, err)
	assert.True(t, withOverride.DailyMoraRate(systemDefault).Equal(decimal.NewFromFloat(0.25)))

	cleared, err := withOverride.WithMoraRateOverride(decimal.NullDecimal{}, time.Now())
	require.NoError(t, err)
	assert.True(t, cleared.DailyMoraRate(systemDefault).Equal(systemDefault))
}

func TestLoan_WithAllocation(t *testing.T) {
	loan := newTestLoan(t).ClearEvents()
	now := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)

	// Settle the first installment by hand.
	updated := loan.Installments()
	first := &updated[0]
	first.PaidCapital = first.ScheduledCapital
	first.PaidInterest = first.ScheduledInterest
	first.PendingCapital = decimal.Zero
	first.PendingInterest = decimal.Zero
	first.TotalPaid = first.ScheduledTotal
	first.Status = valueobject.InstallmentStatusPaid

	payment := NewPayment(loan.ID(), first.ScheduledTotal, now, valueobject.PolicySequential,
		[]AllocationLine{{InstallmentNumber: 1, Interest: first.PaidInterest, Capital: first.PaidCapital}},
		decimal.Zero, now)

	next, err := loan.WithAllocation(updated, payment, now)
	require.NoError(t, err)

	assert.True(t, next.Status().Equal(valueobject.LoanStatusActive))
	assert.True(t, next.TotalPaid().Equal(first.ScheduledTotal))
	assert.Equal(t, now, next.UpdatedAt())

	// The original aggregate is untouched.
	assert.True(t, loan.TotalPaid().IsZero())

	events := next.DomainEvents()
	require.Len(t, events, 1)
	applied, ok := events[0].(event.PaymentApplied)
	require.True(t, ok)
	assert.Equal(t, payment.ID(), applied.PaymentID)
	assert.Equal(t, 1, applied.InstallmentsTouched)
}

func TestLoan_WithAllocation_SettlesLoan(t *testing.T) {
	loan := newTestLoan(t).ClearEvents()
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	updated := loan.Installments()
	total := decimal.Zero
	for i := range updated {
		inst := &updated[i]
		inst.PaidCapital = inst.ScheduledCapital
		inst.PaidInterest = inst.ScheduledInterest
		inst.PendingCapital = decimal.Zero
		inst.PendingInterest = decimal.Zero
		inst.TotalPaid = inst.ScheduledTotal
		inst.Status = valueobject.InstallmentStatusPaid
		total = total.Add(inst.ScheduledTotal)
	}

	payment := NewPayment(loan.ID(), total, now, valueobject.PolicySequential, nil, decimal.Zero, now)
	next, err := loan.WithAllocation(updated, payment, now)
	require.NoError(t, err)

	assert.True(t, next.Status().Equal(valueobject.LoanStatusPaidOff))
	assert.True(t, next.TotalPending().IsZero())

	events := next.DomainEvents()
	require.Len(t, events, 2)
	_, ok := events[1].(event.LoanSettled)
	require.True(t, ok, "a fully covered loan emits LoanSettled")
}

func TestLoan_WithAllocation_RejectsCountMismatch(t *testing.T) {
	loan := newTestLoan(t)
	now := time.Now()
	payment := NewPayment(loan.ID(), decimal.NewFromInt(100), now,
		valueobject.PolicySequential, nil, decimal.Zero, now)

	_, err := loan.WithAllocation(loan.Installments()[:5], payment, now)
	assert.ErrorIs(t, err, ErrInconsistentState)
}

func TestLoan_WithRecalculation(t *testing.T) {
	loan := newTestLoan(t).ClearEvents()
	asOf := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	updated := loan.Installments()
	updated[0].DaysOverdue = 14
	updated[0].MoraAmount = decimal.NewFromInt(500)
	updated[0].MoraRateApplied = decimal.NewFromFloat(0.1)
	updated[0].Status = valueobject.InstallmentStatusAtrasado

	next, err := loan.WithRecalculation(updated, asOf, 1, decimal.NewFromInt(500), []int{1}, asOf)
	require.NoError(t, err)

	assert.True(t, next.Status().Equal(valueobject.LoanStatusDelinquent),
		"an overdue installment makes the loan DELINQUENT")

	events := next.DomainEvents()
	require.Len(t, events, 2)

	overdue, ok := events[0].(event.InstallmentOverdue)
	require.True(t, ok)
	assert.Equal(t, 1, overdue.InstallmentNumber)
	assert.Equal(t, 14, overdue.DaysOverdue)

	recalculated, ok := events[1].(event.MoraRecalculated)
	require.True(t, ok)
	assert.Equal(t, 1, recalculated.InstallmentsUpdated)
	assert.True(t, recalculated.MoraDelta.Equal(decimal.NewFromInt(500)))
}

func TestLoan_ClearEvents(t *testing.T) {
	loan := newTestLoan(t)
	require.NotEmpty(t, loan.DomainEvents())

	cleared := loan.ClearEvents()
	assert.Empty(t, cleared.DomainEvents())
	assert.NotEmpty(t, loan.DomainEvents(), "clearing returns a copy, the original keeps its events")
}

func TestLoan_InstallmentsDefensiveCopy(t *testing.T) {
	loan := newTestLoan(t)

	installments := loan.Installments()
	installments[0].PaidCapital = decimal.NewFromInt(999)

	assert.True(t, loan.Installments()[0].PaidCapital.IsZero(),
		"mutating the returned slice must not touch the aggregate")
}

func TestReconstructLoan(t *testing.T) {
	original := newTestLoan(t)

	rebuilt := ReconstructLoan(
		original.ID(), original.BorrowerID(),
		original.Principal(), original.AnnualRatePct(), original.Term(),
		original.StartDate(), original.Frequency(), original.Method(),
		original.MoraRateOverride(), original.Status(),
		original.Installments(), 7,
		original.CreatedAt(), original.UpdatedAt(),
	)

	assert.Equal(t, original.ID(), rebuilt.ID())
	assert.Equal(t, 7, rebuilt.Version())
	assert.Empty(t, rebuilt.DomainEvents(), "reconstruction never replays events")
	require.Len(t, rebuilt.Installments(), original.Term())
}
