package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

// AllocationLine records how much of a payment landed on one installment,
// split by the waterfall buckets.
type AllocationLine struct {
	InstallmentNumber int
	Mora              decimal.Decimal
	Interest          decimal.Decimal
	Capital           decimal.Decimal
}

// Total returns the amount this line absorbed.
func (l AllocationLine) Total() decimal.Decimal {
	return l.Mora.Add(l.Interest).Add(l.Capital)
}

// Payment is an immutable record of money received against a loan plus
// the allocation breakdown produced by the engine. Corrections are new
// payments or explicit reversals, never edits.
type Payment struct {
	id          string
	loanID      string
	amount      decimal.Decimal
	paymentDate time.Time
	policy      valueobject.AllocationPolicy
	breakdown   []AllocationLine
	remainder   decimal.Decimal
	createdAt   time.Time
}

// NewPayment creates a payment record from an allocation result.
func NewPayment(
	loanID string,
	amount decimal.Decimal,
	paymentDate time.Time,
	policy valueobject.AllocationPolicy,
	breakdown []AllocationLine,
	remainder decimal.Decimal,
	now time.Time,
) Payment {
	return Payment{
		id:          uuid.New().String(),
		loanID:      loanID,
		amount:      amount,
		paymentDate: paymentDate,
		policy:      policy,
		breakdown:   breakdown,
		remainder:   remainder,
		createdAt:   now,
	}
}

// ReconstructPayment rebuilds a Payment from persistence.
func ReconstructPayment(
	id, loanID string,
	amount decimal.Decimal,
	paymentDate time.Time,
	policy valueobject.AllocationPolicy,
	breakdown []AllocationLine,
	remainder decimal.Decimal,
	createdAt time.Time,
) Payment {
	return Payment{
		id:          id,
		loanID:      loanID,
		amount:      amount,
		paymentDate: paymentDate,
		policy:      policy,
		breakdown:   breakdown,
		remainder:   remainder,
		createdAt:   createdAt,
	}
}

func (p Payment) ID() string                           { return p.id }
func (p Payment) LoanID() string                       { return p.loanID }
func (p Payment) Amount() decimal.Decimal              { return p.amount }
func (p Payment) PaymentDate() time.Time               { return p.paymentDate }
func (p Payment) Policy() valueobject.AllocationPolicy { return p.policy }
func (p Payment) Remainder() decimal.Decimal           { return p.remainder }
func (p Payment) CreatedAt() time.Time                 { return p.createdAt }

// Breakdown returns a defensive copy of the allocation lines.
func (p Payment) Breakdown() []AllocationLine {
	if p.breakdown == nil {
		return nil
	}
	out := make([]AllocationLine, len(p.breakdown))
	copy(out, p.breakdown)
	return out
}

// Allocated returns the portion of the payment that landed on
// installments (amount minus remainder).
func (p Payment) Allocated() decimal.Decimal {
	return p.amount.Sub(p.remainder)
}
