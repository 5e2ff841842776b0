package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainEvent is implemented by every event the servicing engine emits.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent provides the common DomainEvent fields.
type BaseEvent struct {
	ID            string    `json:"event_id"`
	Type          string    `json:"event_type"`
	Aggregate     string    `json:"aggregate_id"`
	AggregateKind string    `json:"aggregate_type"`
	At            time.Time `json:"occurred_at"`
}

func newBaseEvent(eventType, aggregateID, aggregateType string) BaseEvent {
	return BaseEvent{
		ID:            uuid.New().String(),
		Type:          eventType,
		Aggregate:     aggregateID,
		AggregateKind: aggregateType,
		At:            time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) AggregateType() string { return e.AggregateKind }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

// ---------------------------------------------------------------------------
// Schedule events
// ---------------------------------------------------------------------------

// ScheduleGenerated is raised once when a loan's installment table is built.
type ScheduleGenerated struct {
	BaseEvent
	Principal     decimal.Decimal `json:"principal"`
	AnnualRatePct decimal.Decimal `json:"annual_rate_pct"`
	Term          int             `json:"term"`
	Frequency     string          `json:"frequency"`
	Method        string          `json:"method"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	FirstDueDate  time.Time       `json:"first_due_date"`
}

func NewScheduleGenerated(
	loanID string,
	principal, annualRatePct decimal.Decimal,
	term int,
	frequency, method string,
	totalInterest decimal.Decimal,
	firstDueDate time.Time,
) ScheduleGenerated {
	return ScheduleGenerated{
		BaseEvent:     newBaseEvent("pagos.loan.schedule_generated", loanID, "Loan"),
		Principal:     principal,
		AnnualRatePct: annualRatePct,
		Term:          term,
		Frequency:     frequency,
		Method:        method,
		TotalInterest: totalInterest,
		FirstDueDate:  firstDueDate,
	}
}

// ---------------------------------------------------------------------------
// Payment events
// ---------------------------------------------------------------------------

// PaymentApplied is raised when a payment has been allocated across
// installments.
type PaymentApplied struct {
	BaseEvent
	PaymentID           string          `json:"payment_id"`
	Amount              decimal.Decimal `json:"amount"`
	Remainder           decimal.Decimal `json:"remainder"`
	Policy              string          `json:"policy"`
	InstallmentsTouched int             `json:"installments_touched"`
	TotalPendingAfter   decimal.Decimal `json:"total_pending_after"`
}

func NewPaymentApplied(
	loanID, paymentID string,
	amount, remainder decimal.Decimal,
	policy string,
	installmentsTouched int,
	totalPendingAfter decimal.Decimal,
) PaymentApplied {
	return PaymentApplied{
		BaseEvent:           newBaseEvent("pagos.loan.payment_applied", loanID, "Loan"),
		PaymentID:           paymentID,
		Amount:              amount,
		Remainder:           remainder,
		Policy:              policy,
		InstallmentsTouched: installmentsTouched,
		TotalPendingAfter:   totalPendingAfter,
	}
}

// ---------------------------------------------------------------------------
// Recalculation events
// ---------------------------------------------------------------------------

// InstallmentOverdue is raised the first time an installment crosses its
// due date with capital still pending.
type InstallmentOverdue struct {
	BaseEvent
	InstallmentNumber int             `json:"installment_number"`
	DaysOverdue       int             `json:"days_overdue"`
	MoraAccrued       decimal.Decimal `json:"mora_accrued"`
}

func NewInstallmentOverdue(loanID string, number, daysOverdue int, moraAccrued decimal.Decimal) InstallmentOverdue {
	return InstallmentOverdue{
		BaseEvent:         newBaseEvent("pagos.installment.overdue", loanID, "Loan"),
		InstallmentNumber: number,
		DaysOverdue:       daysOverdue,
		MoraAccrued:       moraAccrued,
	}
}

// MoraRecalculated is raised after a recalculation pass over a loan.
type MoraRecalculated struct {
	BaseEvent
	AsOf                time.Time       `json:"as_of"`
	InstallmentsUpdated int             `json:"installments_updated"`
	MoraDelta           decimal.Decimal `json:"mora_delta"`
}

func NewMoraRecalculated(loanID string, asOf time.Time, updated int, moraDelta decimal.Decimal) MoraRecalculated {
	return MoraRecalculated{
		BaseEvent:           newBaseEvent("pagos.loan.mora_recalculated", loanID, "Loan"),
		AsOf:                asOf,
		InstallmentsUpdated: updated,
		MoraDelta:           moraDelta,
	}
}

// LoanSettled is raised when every installment of a loan reaches PAID.
type LoanSettled struct {
	BaseEvent
	TotalPaid decimal.Decimal `json:"total_paid"`
}

func NewLoanSettled(loanID string, totalPaid decimal.Decimal) LoanSettled {
	return LoanSettled{
		BaseEvent: newBaseEvent("pagos.loan.settled", loanID, "Loan"),
		TotalPaid: totalPaid,
	}
}
