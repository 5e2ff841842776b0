package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Mashi007/pagos-sub005/internal/application/dto"
	"github.com/Mashi007/pagos-sub005/internal/domain/port"
	"github.com/Mashi007/pagos-sub005/internal/domain/service"
)

// RecalculateMoraUseCase idempotently refreshes the mora and overdue
// fields of a loan's installments as of an evaluation date.
type RecalculateMoraUseCase struct {
	loanRepo           port.LoanRepository
	publisher          port.EventPublisher
	clock              port.Clock
	recalculator       *service.Recalculator
	defaultMoraRatePct decimal.Decimal
}

// NewRecalculateMoraUseCase wires dependencies.
func NewRecalculateMoraUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	clock port.Clock,
	recalculator *service.Recalculator,
	defaultMoraRatePct decimal.Decimal,
) *RecalculateMoraUseCase {
	return &RecalculateMoraUseCase{
		loanRepo:           loanRepo,
		publisher:          publisher,
		clock:              clock,
		recalculator:       recalculator,
		defaultMoraRatePct: defaultMoraRatePct,
	}
}

// Execute refreshes one loan. The rate resolution order is: explicit
// request rate, then the loan's override, then the configured default.
func (uc *RecalculateMoraUseCase) Execute(
	ctx context.Context,
	req dto.RecalculateMoraRequest,
) (dto.RecalculateMoraResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.RecalculateMoraResponse{}, fmt.Errorf("find loan: %w", err)
	}

	now := uc.clock.Now()
	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = now
	}
	rate := loan.DailyMoraRate(uc.defaultMoraRatePct)
	if req.DailyMoraRatePct.Valid {
		rate = req.DailyMoraRatePct.Decimal
	}

	result, err := uc.recalculator.Recalculate(loan.Installments(), asOf, rate)
	if err != nil {
		return dto.RecalculateMoraResponse{}, fmt.Errorf("recalculate: %w", err)
	}

	loan, err = loan.WithRecalculation(result.Installments, asOf, result.Changed, result.MoraDelta, result.NewlyOverdue, now)
	if err != nil {
		return dto.RecalculateMoraResponse{}, fmt.Errorf("apply recalculation: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.RecalculateMoraResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.RecalculateMoraResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.RecalculateMoraResponse{
		LoanID:              loan.ID(),
		InstallmentsUpdated: result.Changed,
		TotalMoraDelta:      result.MoraDelta,
		LoanStatus:          loan.Status().String(),
		Message: fmt.Sprintf("recalculated as of %s: %d installment(s) updated, mora delta %s",
			asOf.Format("2006-01-02"), result.Changed, result.MoraDelta),
	}, nil
}
