package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// GenerateScheduleRequest carries the terms of a newly approved loan.
// DailyMoraRatePct, when valid, becomes the per-loan override of the
// configured system-wide mora rate.
type GenerateScheduleRequest struct {
	BorrowerID       string              `json:"borrower_id"`
	Principal        decimal.Decimal     `json:"principal"`
	AnnualRatePct    decimal.Decimal     `json:"annual_rate_pct"`
	Term             int                 `json:"term"`
	StartDate        time.Time           `json:"start_date"`
	Frequency        string              `json:"frequency"`
	Method           string              `json:"method"`
	DailyMoraRatePct decimal.NullDecimal `json:"daily_mora_rate_pct,omitempty"`
}

// ApplyPaymentRequest carries an incoming payment. A zero PaymentDate
// means "today" per the service clock. InstallmentNumbers optionally
// restricts allocation to specific installments; empty means the policy
// selects over the whole table.
type ApplyPaymentRequest struct {
	LoanID             string          `json:"loan_id"`
	Amount             decimal.Decimal `json:"amount"`
	PaymentDate        time.Time       `json:"payment_date,omitempty"`
	Policy             string          `json:"policy"`
	InstallmentNumbers []int           `json:"installment_numbers,omitempty"`
}

// RecalculateMoraRequest refreshes a loan's mora fields. A zero AsOf
// means "today"; an unset DailyMoraRatePct falls back to the loan
// override and then the configured default.
type RecalculateMoraRequest struct {
	LoanID           string              `json:"loan_id"`
	AsOf             time.Time           `json:"as_of,omitempty"`
	DailyMoraRatePct decimal.NullDecimal `json:"daily_mora_rate_pct,omitempty"`
}

// ProjectPaymentRequest previews a hypothetical payment without touching
// stored state. An empty Policy defaults to OVERDUE_FIRST.
type ProjectPaymentRequest struct {
	LoanID         string          `json:"loan_id"`
	Amount         decimal.Decimal `json:"amount"`
	ProjectionDate time.Time       `json:"projection_date,omitempty"`
	Policy         string          `json:"policy,omitempty"`
}

// GetLoanRequest identifies a loan to retrieve.
type GetLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// InstallmentResponse is the external representation of one installment.
type InstallmentResponse struct {
	Number            int             `json:"number"`
	DueDate           time.Time       `json:"due_date"`
	ScheduledCapital  decimal.Decimal `json:"scheduled_capital"`
	ScheduledInterest decimal.Decimal `json:"scheduled_interest"`
	ScheduledTotal    decimal.Decimal `json:"scheduled_total"`
	OpeningBalance    decimal.Decimal `json:"opening_balance"`
	ClosingBalance    decimal.Decimal `json:"closing_balance"`
	PaidCapital       decimal.Decimal `json:"paid_capital"`
	PaidInterest      decimal.Decimal `json:"paid_interest"`
	PaidMora          decimal.Decimal `json:"paid_mora"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	PendingCapital    decimal.Decimal `json:"pending_capital"`
	PendingInterest   decimal.Decimal `json:"pending_interest"`
	PendingMora       decimal.Decimal `json:"pending_mora"`
	DaysOverdue       int             `json:"days_overdue"`
	MoraAmount        decimal.Decimal `json:"mora_amount"`
	MoraRateApplied   decimal.Decimal `json:"mora_rate_applied"`
	Status            string          `json:"status"`
	Notes             string          `json:"notes,omitempty"`
}

// ScheduleSummaryResponse totals a generated schedule.
type ScheduleSummaryResponse struct {
	TotalCapital   decimal.Decimal `json:"total_capital"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	TotalScheduled decimal.Decimal `json:"total_scheduled"`
}

// GenerateScheduleResponse returns the freshly built installment table.
type GenerateScheduleResponse struct {
	LoanID       string                  `json:"loan_id"`
	Installments []InstallmentResponse   `json:"installments"`
	Summary      ScheduleSummaryResponse `json:"summary"`
	Message      string                  `json:"message"`
}

// AllocationLineResponse is one row of a payment's breakdown.
type AllocationLineResponse struct {
	InstallmentNumber int             `json:"installment_number"`
	Mora              decimal.Decimal `json:"mora"`
	Interest          decimal.Decimal `json:"interest"`
	Capital           decimal.Decimal `json:"capital"`
}

// ApplyPaymentResponse reports the effect of a recorded payment.
type ApplyPaymentResponse struct {
	LoanID               string                   `json:"loan_id"`
	PaymentID            string                   `json:"payment_id"`
	AffectedInstallments []InstallmentResponse    `json:"affected_installments"`
	AppliedBreakdown     []AllocationLineResponse `json:"applied_breakdown"`
	Remainder            decimal.Decimal          `json:"remainder"`
	LoanStatus           string                   `json:"loan_status"`
	Message              string                   `json:"message"`
}

// RecalculateMoraResponse reports the effect of a recalculation pass.
type RecalculateMoraResponse struct {
	LoanID              string          `json:"loan_id"`
	InstallmentsUpdated int             `json:"installments_updated"`
	TotalMoraDelta      decimal.Decimal `json:"total_mora_delta"`
	LoanStatus          string          `json:"loan_status"`
	Message             string          `json:"message"`
}

// ProjectPaymentResponse previews a hypothetical payment.
type ProjectPaymentResponse struct {
	LoanID               string                   `json:"loan_id"`
	AffectedInstallments []InstallmentResponse    `json:"affected_installments"`
	AppliedBreakdown     []AllocationLineResponse `json:"applied_breakdown"`
	Remainder            decimal.Decimal          `json:"remainder"`
	NewPendingBalance    decimal.Decimal          `json:"new_pending_balance"`
	Message              string                   `json:"message"`
}

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	ID               string                `json:"id"`
	BorrowerID       string                `json:"borrower_id"`
	Principal        decimal.Decimal       `json:"principal"`
	AnnualRatePct    decimal.Decimal       `json:"annual_rate_pct"`
	Term             int                   `json:"term"`
	StartDate        time.Time             `json:"start_date"`
	Frequency        string                `json:"frequency"`
	Method           string                `json:"method"`
	DailyMoraRatePct decimal.NullDecimal   `json:"daily_mora_rate_pct,omitempty"`
	Status           string                `json:"status"`
	TotalPending     decimal.Decimal       `json:"total_pending"`
	TotalPaid        decimal.Decimal       `json:"total_paid"`
	Installments     []InstallmentResponse `json:"installments,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}
