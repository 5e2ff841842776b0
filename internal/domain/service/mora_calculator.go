package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mashi007/pagos-sub005/internal/domain/model"
	"github.com/Mashi007/pagos-sub005/internal/domain/period"
)

// ---------------------------------------------------------------------------
// MoraCalculator – domain service for late-payment penalty accrual
// ---------------------------------------------------------------------------

var oneHundred = decimal.NewFromInt(100)

// MoraCalculator computes time-based late-payment penalties. Mora accrues
// on the unpaid capital portion only, never on interest or on capital
// already paid, and is always recomputed from scratch so repeated
// evaluation at the same date cannot double-accrue.
type MoraCalculator struct{}

// NewMoraCalculator returns a new calculator instance.
func NewMoraCalculator() *MoraCalculator {
	return &MoraCalculator{}
}

// Accrue returns a copy of the installment with its mora fields brought
// current as of asOf, at the given daily rate (a percentage, e.g. 0.1
// for 0.1% per day).
//
//	moraAmount = round2(pendingCapital * dailyRatePct/100 * daysOverdue)
//
// Not yet due means zero mora. Once the capital is settled the accrued
// figure freezes; it does not grow and it is not reset, so mora already
// accrued (and possibly paid) stays on the record.
//
// The accrued figure never drops below PaidMora: a payment that clears
// mora and reduces capital shrinks the base of the next recomputation,
// and mora already collected is not handed back. Fresh mora only becomes
// pending again once the recomputed accrual passes the paid figure.
func (c *MoraCalculator) Accrue(inst model.Installment, asOf time.Time, dailyRatePct decimal.Decimal) model.Installment {
	if inst.PendingCapital.LessThanOrEqual(decimal.Zero) {
		return inst
	}

	next := inst
	next.DaysOverdue = period.DaysOverdue(inst.DueDate, asOf)
	if next.DaysOverdue == 0 {
		next.MoraAmount = inst.PaidMora
		next.MoraRateApplied = decimal.Zero
		return next
	}

	next.MoraAmount = model.Round2(
		inst.PendingCapital.
			Mul(dailyRatePct.Div(oneHundred)).
			Mul(decimal.NewFromInt(int64(next.DaysOverdue))),
	)
	if next.MoraAmount.LessThan(inst.PaidMora) {
		next.MoraAmount = inst.PaidMora
	}
	next.MoraRateApplied = dailyRatePct
	return next
}
