package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mashi007/pagos-sub005/internal/domain/event"
	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate: the loan terms plus its installment
// table. Mutations return a new copy and collect domain events. Terms are
// frozen once the schedule exists, except for the mora-rate override.
type Loan struct {
	id               string
	borrowerID       string
	principal        decimal.Decimal
	annualRatePct    decimal.Decimal
	term             int
	frequency        valueobject.PaymentFrequency
	method           valueobject.AmortizationMethod
	startDate        time.Time
	moraRateOverride decimal.NullDecimal
	status           valueobject.LoanStatus
	installments     []Installment
	version          int
	createdAt        time.Time
	updatedAt        time.Time
	domainEvents     []event.DomainEvent
}

// NewLoan creates a loan at approval time and generates its installment
// table. The loan starts ACTIVE with every installment PENDING.
func NewLoan(
	borrowerID string,
	principal, annualRatePct decimal.Decimal,
	term int,
	startDate time.Time,
	frequency valueobject.PaymentFrequency,
	method valueobject.AmortizationMethod,
	moraRateOverride decimal.NullDecimal,
	now time.Time,
) (Loan, error) {
	if borrowerID == "" {
		return Loan{}, fmt.Errorf("%w: borrower ID is required", ErrInvalidInput)
	}
	if moraRateOverride.Valid && moraRateOverride.Decimal.IsNegative() {
		return Loan{}, fmt.Errorf("%w: mora rate override must not be negative, got %s",
			ErrInvalidInput, moraRateOverride.Decimal)
	}

	installments, summary, err := GenerateSchedule(principal, annualRatePct, term, startDate, frequency, method)
	if err != nil {
		return Loan{}, err
	}

	id := uuid.New().String()
	loan := Loan{
		id:               id,
		borrowerID:       borrowerID,
		principal:        principal,
		annualRatePct:    annualRatePct,
		term:             term,
		frequency:        frequency,
		method:           method,
		startDate:        startDate,
		moraRateOverride: moraRateOverride,
		status:           valueobject.LoanStatusActive,
		installments:     installments,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewScheduleGenerated(
		id, principal, annualRatePct, term,
		frequency.String(), method.String(),
		summary.TotalInterest, installments[0].DueDate,
	))

	return loan, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(
	id, borrowerID string,
	principal, annualRatePct decimal.Decimal,
	term int,
	startDate time.Time,
	frequency valueobject.PaymentFrequency,
	method valueobject.AmortizationMethod,
	moraRateOverride decimal.NullDecimal,
	status valueobject.LoanStatus,
	installments []Installment,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:               id,
		borrowerID:       borrowerID,
		principal:        principal,
		annualRatePct:    annualRatePct,
		term:             term,
		frequency:        frequency,
		method:           method,
		startDate:        startDate,
		moraRateOverride: moraRateOverride,
		status:           status,
		installments:     installments,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// WithAllocation replaces the installment table with the allocation
// engine's output, records the payment, and emits PaymentApplied (plus
// LoanSettled when everything is covered).
func (l Loan) WithAllocation(updated []Installment, payment Payment, now time.Time) (Loan, error) {
	if len(updated) != len(l.installments) {
		return l, fmt.Errorf("%w: allocation changed installment count from %d to %d",
			ErrInconsistentState, len(l.installments), len(updated))
	}

	next := l
	next.installments = CopyInstallments(updated)
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)

	next.refreshStatus()

	next.domainEvents = append(next.domainEvents, event.NewPaymentApplied(
		l.id, payment.ID(), payment.Amount(), payment.Remainder(),
		payment.Policy().String(), len(payment.Breakdown()), next.TotalPending(),
	))
	if next.status.Equal(valueobject.LoanStatusPaidOff) {
		next.domainEvents = append(next.domainEvents, event.NewLoanSettled(l.id, next.TotalPaid()))
	}
	return next, nil
}

// WithRecalculation replaces the installment table with the
// recalculation service's output and emits MoraRecalculated, plus one
// InstallmentOverdue per installment that crossed its due date in this
// pass.
func (l Loan) WithRecalculation(
	updated []Installment,
	asOf time.Time,
	changed int,
	moraDelta decimal.Decimal,
	newlyOverdue []int,
	now time.Time,
) (Loan, error) {
	if len(updated) != len(l.installments) {
		return l, fmt.Errorf("%w: recalculation changed installment count from %d to %d",
			ErrInconsistentState, len(l.installments), len(updated))
	}

	next := l
	next.installments = CopyInstallments(updated)
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)

	next.refreshStatus()

	byNumber := make(map[int]Installment, len(updated))
	for _, inst := range updated {
		byNumber[inst.Number] = inst
	}
	for _, number := range newlyOverdue {
		inst := byNumber[number]
		next.domainEvents = append(next.domainEvents,
			event.NewInstallmentOverdue(l.id, inst.Number, inst.DaysOverdue, inst.MoraAmount))
	}
	next.domainEvents = append(next.domainEvents,
		event.NewMoraRecalculated(l.id, asOf, changed, moraDelta))
	return next, nil
}

// WithMoraRateOverride sets or clears the per-loan daily mora rate. This
// is the only term that may change after schedule generation.
func (l Loan) WithMoraRateOverride(override decimal.NullDecimal, now time.Time) (Loan, error) {
	if override.Valid && override.Decimal.IsNegative() {
		return l, fmt.Errorf("%w: mora rate override must not be negative, got %s",
			ErrInvalidInput, override.Decimal)
	}
	next := l
	next.moraRateOverride = override
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	return next, nil
}

// refreshStatus derives the loan status from the installment states.
func (l *Loan) refreshStatus() {
	settled := true
	overdue := false
	for _, inst := range l.installments {
		if !inst.IsSettled() {
			settled = false
		}
		if inst.IsOverdue() {
			overdue = true
		}
	}
	switch {
	case settled:
		l.status = valueobject.LoanStatusPaidOff
	case overdue:
		l.status = valueobject.LoanStatusDelinquent
	default:
		l.status = valueobject.LoanStatusActive
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                              { return l.id }
func (l Loan) BorrowerID() string                      { return l.borrowerID }
func (l Loan) Principal() decimal.Decimal              { return l.principal }
func (l Loan) AnnualRatePct() decimal.Decimal          { return l.annualRatePct }
func (l Loan) Term() int                               { return l.term }
func (l Loan) Frequency() valueobject.PaymentFrequency { return l.frequency }
func (l Loan) Method() valueobject.AmortizationMethod  { return l.method }
func (l Loan) StartDate() time.Time                    { return l.startDate }
func (l Loan) MoraRateOverride() decimal.NullDecimal   { return l.moraRateOverride }
func (l Loan) Status() valueobject.LoanStatus          { return l.status }
func (l Loan) Version() int                            { return l.version }
func (l Loan) CreatedAt() time.Time                    { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                    { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent       { return l.domainEvents }

// DailyMoraRate resolves the daily mora rate for this loan: the per-loan
// override when set, otherwise the system-wide default supplied by the
// caller. The engine never reads configuration itself.
func (l Loan) DailyMoraRate(systemDefault decimal.Decimal) decimal.Decimal {
	if l.moraRateOverride.Valid {
		return l.moraRateOverride.Decimal
	}
	return systemDefault
}

// Installments returns a defensive copy of the installment table.
func (l Loan) Installments() []Installment {
	return CopyInstallments(l.installments)
}

// TotalPending returns the sum of pending capital, interest and mora
// across all installments.
func (l Loan) TotalPending() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range l.installments {
		total = total.Add(inst.PendingTotal())
	}
	return total
}

// TotalPaid returns everything received against this loan so far.
func (l Loan) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range l.installments {
		total = total.Add(inst.TotalPaid)
	}
	return total
}

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

func copyEvents(events []event.DomainEvent) []event.DomainEvent {
	if events == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(events))
	copy(out, events)
	return out
}
