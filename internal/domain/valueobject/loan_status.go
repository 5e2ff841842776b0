package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a serviced loan.
type LoanStatus struct {
	value string
}

const (
	loanStatusActive     = "ACTIVE"
	loanStatusDelinquent = "DELINQUENT"
	loanStatusPaidOff    = "PAID_OFF"
)

var (
	LoanStatusActive     = LoanStatus{value: loanStatusActive}
	LoanStatusDelinquent = LoanStatus{value: loanStatusDelinquent}
	LoanStatusPaidOff    = LoanStatus{value: loanStatusPaidOff}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusActive:     LoanStatusActive,
	loanStatusDelinquent: LoanStatusDelinquent,
	loanStatusPaidOff:    LoanStatusPaidOff,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// InstallmentStatus – immutable value object
// ---------------------------------------------------------------------------

// InstallmentStatus represents the lifecycle stage of a single installment.
// PENDING and ATRASADO are date-driven; PARTIAL and PAID are balance-driven.
type InstallmentStatus struct {
	value string
}

const (
	installmentStatusPending  = "PENDING"
	installmentStatusAtrasado = "ATRASADO"
	installmentStatusPartial  = "PARTIAL"
	installmentStatusPaid     = "PAID"
)

var (
	InstallmentStatusPending  = InstallmentStatus{value: installmentStatusPending}
	InstallmentStatusAtrasado = InstallmentStatus{value: installmentStatusAtrasado}
	InstallmentStatusPartial  = InstallmentStatus{value: installmentStatusPartial}
	InstallmentStatusPaid     = InstallmentStatus{value: installmentStatusPaid}
)

var validInstallmentStatuses = map[string]InstallmentStatus{
	installmentStatusPending:  InstallmentStatusPending,
	installmentStatusAtrasado: InstallmentStatusAtrasado,
	installmentStatusPartial:  InstallmentStatusPartial,
	installmentStatusPaid:     InstallmentStatusPaid,
}

// NewInstallmentStatus creates an InstallmentStatus from a raw string.
func NewInstallmentStatus(s string) (InstallmentStatus, error) {
	v, ok := validInstallmentStatuses[s]
	if !ok {
		return InstallmentStatus{}, fmt.Errorf("invalid installment status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s InstallmentStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s InstallmentStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s InstallmentStatus) Equal(other InstallmentStatus) bool { return s.value == other.value }

// IsTerminal returns true for PAID, the only terminal state.
func (s InstallmentStatus) IsTerminal() bool { return s.value == installmentStatusPaid }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
