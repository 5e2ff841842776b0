package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mashi007/pagos-sub005/internal/domain/model"
	"github.com/Mashi007/pagos-sub005/internal/domain/period"
	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Recalculator – domain service refreshing mora and overdue state
// ---------------------------------------------------------------------------

// RecalculationResult carries the outcome of one recalculation pass.
type RecalculationResult struct {
	Installments []model.Installment
	Changed      int
	MoraDelta    decimal.Decimal
	NewlyOverdue []int
}

// Recalculator brings the mora, days-overdue and state fields of a
// loan's installments current as of an evaluation date. It is
// idempotent: mora is recomputed from pending capital, rate and days
// overdue on every pass, never incremented, so running it twice with the
// same date yields identical output.
type Recalculator struct {
	mora *MoraCalculator
}

// NewRecalculator wires the mora calculator dependency.
func NewRecalculator(mora *MoraCalculator) *Recalculator {
	return &Recalculator{mora: mora}
}

// Recalculate refreshes every installment that still has pending capital.
// PENDING installments past their due date transition to ATRASADO; no
// other state transition happens here. The input slice is not modified.
func (r *Recalculator) Recalculate(
	installments []model.Installment,
	asOf time.Time,
	dailyRatePct decimal.Decimal,
) (RecalculationResult, error) {
	if dailyRatePct.IsNegative() {
		return RecalculationResult{}, fmt.Errorf(
			"%w: daily mora rate must not be negative, got %s", model.ErrInvalidInput, dailyRatePct)
	}
	for _, inst := range installments {
		if err := inst.CheckConsistency(); err != nil {
			return RecalculationResult{}, err
		}
	}

	updated := model.CopyInstallments(installments)
	result := RecalculationResult{MoraDelta: decimal.Zero}

	for i := range updated {
		inst := updated[i]
		if inst.PendingCapital.LessThanOrEqual(decimal.Zero) {
			continue
		}

		next := r.mora.Accrue(inst, asOf, dailyRatePct)
		if next.Status.Equal(valueobject.InstallmentStatusPending) && period.DaysOverdue(next.DueDate, asOf) > 0 {
			next.Status = valueobject.InstallmentStatusAtrasado
			result.NewlyOverdue = append(result.NewlyOverdue, next.Number)
		}

		if installmentChanged(inst, next) {
			result.Changed++
		}
		result.MoraDelta = result.MoraDelta.Add(next.MoraAmount.Sub(inst.MoraAmount))
		updated[i] = next
	}

	result.Installments = updated
	return result, nil
}

func installmentChanged(before, after model.Installment) bool {
	return before.DaysOverdue != after.DaysOverdue ||
		!before.MoraAmount.Equal(after.MoraAmount) ||
		!before.MoraRateApplied.Equal(after.MoraRateApplied) ||
		!before.Status.Equal(after.Status)
}
