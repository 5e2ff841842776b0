package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mashi007/pagos-sub005/internal/domain/model"
	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// AllocationEngine – domain service distributing a payment across
// installments
// ---------------------------------------------------------------------------

// AllocationEngine applies a payment across a loan's installments under
// an allocation policy. Within each selected installment the waterfall
// order is fixed: mora, then pending interest, then pending capital. The
// engine never moves to the next installment while the current one still
// has an unpaid bucket and money remains.
type AllocationEngine struct{}

// NewAllocationEngine returns a new engine instance.
func NewAllocationEngine() *AllocationEngine {
	return &AllocationEngine{}
}

// Apply distributes paymentAmount across the installments and returns the
// updated table, the per-installment breakdown, and any unallocated
// remainder. The input slice is not modified. Whether a remainder is held
// as credit or rejected is the caller's decision.
func (e *AllocationEngine) Apply(
	installments []model.Installment,
	paymentAmount decimal.Decimal,
	paymentDate time.Time,
	policy valueobject.AllocationPolicy,
) ([]model.Installment, []model.AllocationLine, decimal.Decimal, error) {
	if paymentAmount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, decimal.Zero, fmt.Errorf(
			"%w: payment amount must be positive, got %s", model.ErrInvalidPayment, paymentAmount)
	}
	if policy.IsZero() {
		return nil, nil, decimal.Zero, fmt.Errorf(
			"%w: allocation policy is required", model.ErrInvalidPayment)
	}
	for _, inst := range installments {
		if err := inst.CheckConsistency(); err != nil {
			return nil, nil, decimal.Zero, err
		}
	}
	_ = paymentDate // recorded on the Payment by the caller; allocation itself is date-free

	updated := model.CopyInstallments(installments)
	order := selectionOrder(updated, policy)

	var breakdown []model.AllocationLine
	remaining := paymentAmount

	for _, idx := range order {
		if remaining.IsZero() {
			break
		}
		inst := &updated[idx]
		if inst.IsSettled() {
			continue
		}

		line := model.AllocationLine{InstallmentNumber: inst.Number}

		// 1. Mora.
		if applied := minDecimal(inst.PendingMora(), remaining); applied.IsPositive() {
			inst.PaidMora = inst.PaidMora.Add(applied)
			line.Mora = applied
			remaining = remaining.Sub(applied)
		}
		// 2. Pending interest.
		if applied := minDecimal(inst.PendingInterest, remaining); applied.IsPositive() {
			inst.PaidInterest = inst.PaidInterest.Add(applied)
			inst.PendingInterest = inst.PendingInterest.Sub(applied)
			line.Interest = applied
			remaining = remaining.Sub(applied)
		}
		// 3. Pending capital.
		if applied := minDecimal(inst.PendingCapital, remaining); applied.IsPositive() {
			inst.PaidCapital = inst.PaidCapital.Add(applied)
			inst.PendingCapital = inst.PendingCapital.Sub(applied)
			line.Capital = applied
			remaining = remaining.Sub(applied)
		}

		if line.Total().IsZero() {
			continue
		}
		inst.TotalPaid = inst.TotalPaid.Add(line.Total())
		if inst.IsSettled() {
			inst.Status = valueobject.InstallmentStatusPaid
		} else {
			inst.Status = valueobject.InstallmentStatusPartial
		}
		breakdown = append(breakdown, line)
	}

	return updated, breakdown, remaining, nil
}

// selectionOrder returns installment indices in the order the policy
// dictates:
//
//	SEQUENTIAL:    by sequence number ascending, overdue or not.
//	OVERDUE_FIRST: overdue installments by days-overdue descending
//	               (oldest debt first), then the rest by sequence number.
func selectionOrder(installments []model.Installment, policy valueobject.AllocationPolicy) []int {
	order := make([]int, len(installments))
	for i := range installments {
		order[i] = i
	}

	if policy.Equal(valueobject.PolicyOverdueFirst) {
		sort.SliceStable(order, func(a, b int) bool {
			ia, ib := installments[order[a]], installments[order[b]]
			switch {
			case ia.IsOverdue() && !ib.IsOverdue():
				return true
			case !ia.IsOverdue() && ib.IsOverdue():
				return false
			case ia.IsOverdue() && ib.IsOverdue() && ia.DaysOverdue != ib.DaysOverdue:
				return ia.DaysOverdue > ib.DaysOverdue
			default:
				return ia.Number < ib.Number
			}
		})
		return order
	}

	sort.SliceStable(order, func(a, b int) bool {
		return installments[order[a]].Number < installments[order[b]].Number
	})
	return order
}

func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
