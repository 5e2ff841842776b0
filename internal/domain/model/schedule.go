package model

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mashi007/pagos-sub005/internal/domain/period"
	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

// ScheduleSummary aggregates a freshly generated installment table.
type ScheduleSummary struct {
	TotalCapital   decimal.Decimal
	TotalInterest  decimal.Decimal
	TotalScheduled decimal.Decimal
}

// GenerateSchedule builds the full installment table for a loan.
//
// Methods:
//   - FRENCH:   level total payment; the capital portion grows as the
//     interest portion shrinks.
//   - GERMAN:   level capital portion; the total payment decreases.
//   - AMERICAN: interest-only periods with a balloon repayment of the
//     full principal on the final installment.
//
// Every stored figure is rounded half-up to 2 decimals as it is produced.
// Rounding drift is absorbed by the final installment's capital so that
// the capital column sums to the principal exactly; that adjustment is
// the only scheduled value derived from a running balance instead of the
// formula.
func GenerateSchedule(
	principal decimal.Decimal,
	annualRatePct decimal.Decimal,
	term int,
	startDate time.Time,
	frequency valueobject.PaymentFrequency,
	method valueobject.AmortizationMethod,
) ([]Installment, ScheduleSummary, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, ScheduleSummary{}, fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidInput, principal)
	}
	if term <= 0 {
		return nil, ScheduleSummary{}, fmt.Errorf("%w: term must be positive, got %d", ErrInvalidInput, term)
	}
	if annualRatePct.IsNegative() {
		return nil, ScheduleSummary{}, fmt.Errorf("%w: annual rate must not be negative, got %s", ErrInvalidInput, annualRatePct)
	}
	if frequency.IsZero() || frequency.PeriodsPerYear() == 0 {
		return nil, ScheduleSummary{}, fmt.Errorf("%w: unknown payment frequency %q", ErrInvalidInput, frequency.String())
	}
	if method.IsZero() {
		return nil, ScheduleSummary{}, fmt.Errorf("%w: unknown amortization method %q", ErrInvalidInput, method.String())
	}

	dueDates, err := period.SchedulePaymentDates(startDate, term, frequency)
	if err != nil {
		return nil, ScheduleSummary{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	periodicRate := annualRatePct.
		Div(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(frequency.PeriodsPerYear())))

	var installments []Installment
	switch {
	case method.Equal(valueobject.MethodFrench):
		installments = frenchSchedule(principal, periodicRate, term, dueDates)
	case method.Equal(valueobject.MethodGerman):
		installments = germanSchedule(principal, periodicRate, term, dueDates)
	case method.Equal(valueobject.MethodAmerican):
		installments = americanSchedule(principal, periodicRate, term, dueDates)
	}

	summary := ScheduleSummary{TotalCapital: decimal.Zero, TotalInterest: decimal.Zero, TotalScheduled: decimal.Zero}
	for _, inst := range installments {
		summary.TotalCapital = summary.TotalCapital.Add(inst.ScheduledCapital)
		summary.TotalInterest = summary.TotalInterest.Add(inst.ScheduledInterest)
		summary.TotalScheduled = summary.TotalScheduled.Add(inst.ScheduledTotal)
	}
	return installments, summary, nil
}

// levelPayment computes the fixed French-method payment. The power term
// uses float64, then the result returns to decimal for monetary math; the
// same approach the rest of the money pipeline relies on for (1+r)^n.
func levelPayment(principal, periodicRate decimal.Decimal, term int) decimal.Decimal {
	if periodicRate.IsZero() {
		return Round2(principal.Div(decimal.NewFromInt(int64(term))))
	}
	rf, _ := periodicRate.Float64()
	factor := math.Pow(1+rf, float64(term))
	payment := principal.InexactFloat64() * rf * factor / (factor - 1)
	return Round2(decimal.NewFromFloat(payment))
}

func frenchSchedule(principal, rate decimal.Decimal, term int, dueDates []time.Time) []Installment {
	payment := levelPayment(principal, rate, term)

	installments := make([]Installment, 0, term)
	balance := principal
	for n := 1; n <= term; n++ {
		interest := Round2(balance.Mul(rate))
		capital := Round2(payment.Sub(interest))
		if n == term {
			// Reconciliation: the last capital absorbs rounding drift.
			capital = balance
		}
		installments = append(installments, newDraft(n, dueDates[n-1], balance, capital, interest))
		balance = balance.Sub(capital)
	}
	return installments
}

func germanSchedule(principal, rate decimal.Decimal, term int, dueDates []time.Time) []Installment {
	baseCapital := Round2(principal.Div(decimal.NewFromInt(int64(term))))

	installments := make([]Installment, 0, term)
	balance := principal
	for n := 1; n <= term; n++ {
		interest := Round2(balance.Mul(rate))
		capital := baseCapital
		if n == term {
			capital = balance
		}
		installments = append(installments, newDraft(n, dueDates[n-1], balance, capital, interest))
		balance = balance.Sub(capital)
	}
	return installments
}

func americanSchedule(principal, rate decimal.Decimal, term int, dueDates []time.Time) []Installment {
	installments := make([]Installment, 0, term)
	for n := 1; n <= term; n++ {
		interest := Round2(principal.Mul(rate))
		capital := decimal.Zero
		if n == term {
			capital = principal
		}
		installments = append(installments, newDraft(n, dueDates[n-1], principal, capital, interest))
	}
	return installments
}

// newDraft builds a freshly scheduled installment with nothing paid.
func newDraft(number int, dueDate time.Time, opening, capital, interest decimal.Decimal) Installment {
	return Installment{
		Number:            number,
		DueDate:           dueDate,
		ScheduledCapital:  capital,
		ScheduledInterest: interest,
		ScheduledTotal:    Round2(capital.Add(interest)),
		OpeningBalance:    opening,
		ClosingBalance:    opening.Sub(capital),
		PaidCapital:       decimal.Zero,
		PaidInterest:      decimal.Zero,
		PaidMora:          decimal.Zero,
		TotalPaid:         decimal.Zero,
		PendingCapital:    capital,
		PendingInterest:   interest,
		MoraAmount:        decimal.Zero,
		MoraRateApplied:   decimal.Zero,
		Status:            valueobject.InstallmentStatusPending,
	}
}
