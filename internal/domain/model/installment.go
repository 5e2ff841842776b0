package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

// Installment is one row of a loan's payment table. It is a plain value
// record: the engine services compute new copies rather than mutating
// shared state, and no installment is ever deleted.
type Installment struct {
	Number            int
	DueDate           time.Time
	ScheduledCapital  decimal.Decimal
	ScheduledInterest decimal.Decimal
	ScheduledTotal    decimal.Decimal
	OpeningBalance    decimal.Decimal
	ClosingBalance    decimal.Decimal
	PaidCapital       decimal.Decimal
	PaidInterest      decimal.Decimal
	PaidMora          decimal.Decimal
	TotalPaid         decimal.Decimal
	PendingCapital    decimal.Decimal
	PendingInterest   decimal.Decimal
	DaysOverdue       int
	MoraAmount        decimal.Decimal
	MoraRateApplied   decimal.Decimal
	Status            valueobject.InstallmentStatus
	Notes             string
}

// PendingMora returns the accrued mora not yet covered by payments.
// Mora is always recomputed from scratch, so the pending figure is the
// accrued total minus whatever has been paid against it.
func (i Installment) PendingMora() decimal.Decimal {
	pending := i.MoraAmount.Sub(i.PaidMora)
	if pending.IsNegative() {
		return decimal.Zero
	}
	return pending
}

// PendingTotal returns everything still owed on this installment.
func (i Installment) PendingTotal() decimal.Decimal {
	return i.PendingCapital.Add(i.PendingInterest).Add(i.PendingMora())
}

// IsSettled reports whether capital, interest and mora are all covered.
func (i Installment) IsSettled() bool {
	return i.PendingCapital.IsZero() && i.PendingInterest.IsZero() && i.PendingMora().IsZero()
}

// IsOverdue reports whether the installment is past due and unsettled.
func (i Installment) IsOverdue() bool {
	return i.DaysOverdue > 0 && !i.IsSettled()
}

// CheckConsistency verifies the stored pending fields against the
// scheduled and paid figures. A violation means the record was corrupted
// upstream; it is reported, never silently repaired.
func (i Installment) CheckConsistency() error {
	if i.PendingCapital.IsNegative() {
		return fmt.Errorf("%w: installment %d has negative pending capital %s",
			ErrInconsistentState, i.Number, i.PendingCapital)
	}
	if i.PendingInterest.IsNegative() {
		return fmt.Errorf("%w: installment %d has negative pending interest %s",
			ErrInconsistentState, i.Number, i.PendingInterest)
	}
	if i.MoraAmount.Sub(i.PaidMora).IsNegative() {
		return fmt.Errorf("%w: installment %d has paid mora %s exceeding accrued %s",
			ErrInconsistentState, i.Number, i.PaidMora, i.MoraAmount)
	}
	if !i.PendingCapital.Equal(i.ScheduledCapital.Sub(i.PaidCapital)) {
		return fmt.Errorf("%w: installment %d pending capital %s != scheduled %s - paid %s",
			ErrInconsistentState, i.Number, i.PendingCapital, i.ScheduledCapital, i.PaidCapital)
	}
	if !i.PendingInterest.Equal(i.ScheduledInterest.Sub(i.PaidInterest)) {
		return fmt.Errorf("%w: installment %d pending interest %s != scheduled %s - paid %s",
			ErrInconsistentState, i.Number, i.PendingInterest, i.ScheduledInterest, i.PaidInterest)
	}
	return nil
}

// CheckScheduleInvariant verifies that the capital scheduled across all
// installments reconciles exactly to the loan principal.
func CheckScheduleInvariant(installments []Installment, principal decimal.Decimal) error {
	total := decimal.Zero
	for _, inst := range installments {
		total = total.Add(inst.ScheduledCapital)
	}
	if !total.Equal(principal) {
		return fmt.Errorf("%w: scheduled capital %s does not reconcile to principal %s",
			ErrInconsistentState, total, principal)
	}
	return nil
}

// CopyInstallments returns a deep copy of the installment slice. Elements
// are value types, so a slice copy is sufficient.
func CopyInstallments(installments []Installment) []Installment {
	if installments == nil {
		return nil
	}
	out := make([]Installment, len(installments))
	copy(out, installments)
	return out
}
