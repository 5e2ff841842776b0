package port

import (
	"context"
	"time"

	"github.com/Mashi007/pagos-sub005/internal/domain/event"
	"github.com/Mashi007/pagos-sub005/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRepository persists and retrieves loans with their installments.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, id string) (model.Loan, error)
	FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.Loan, error)
	// FindActiveIDs lists loans that still carry pending balances, for
	// the periodic recalculation sweep.
	FindActiveIDs(ctx context.Context) ([]string, error)
}

// PaymentRepository persists payments with their allocation breakdown.
type PaymentRepository interface {
	Save(ctx context.Context, payment model.Payment) error
	FindByLoanID(ctx context.Context, loanID string) ([]model.Payment, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Clock port
// ---------------------------------------------------------------------------

// Clock supplies "today" when a caller omits an evaluation date. The
// engine itself never reads the wall clock.
type Clock interface {
	Now() time.Time
}
