package usecase

import (
	"context"
	"fmt"

	"github.com/Mashi007/pagos-sub005/internal/application/dto"
	"github.com/Mashi007/pagos-sub005/internal/domain/model"
	"github.com/Mashi007/pagos-sub005/internal/domain/port"
	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

// GenerateScheduleUseCase builds the installment table for a newly
// approved loan and persists it.
type GenerateScheduleUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
	clock     port.Clock
}

// NewGenerateScheduleUseCase wires dependencies.
func NewGenerateScheduleUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *GenerateScheduleUseCase {
	return &GenerateScheduleUseCase{loanRepo: loanRepo, publisher: publisher, clock: clock}
}

// Execute validates the terms, generates the schedule and saves the loan.
func (uc *GenerateScheduleUseCase) Execute(
	ctx context.Context,
	req dto.GenerateScheduleRequest,
) (dto.GenerateScheduleResponse, error) {
	frequency, err := valueobject.NewPaymentFrequency(req.Frequency)
	if err != nil {
		return dto.GenerateScheduleResponse{}, fmt.Errorf("%w: %s", model.ErrInvalidInput, err)
	}
	method, err := valueobject.NewAmortizationMethod(req.Method)
	if err != nil {
		return dto.GenerateScheduleResponse{}, fmt.Errorf("%w: %s", model.ErrInvalidInput, err)
	}

	now := uc.clock.Now()
	loan, err := model.NewLoan(
		req.BorrowerID, req.Principal, req.AnnualRatePct, req.Term,
		req.StartDate, frequency, method, req.DailyMoraRatePct, now,
	)
	if err != nil {
		return dto.GenerateScheduleResponse{}, fmt.Errorf("create loan: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.GenerateScheduleResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.GenerateScheduleResponse{}, fmt.Errorf("publish events: %w", err)
	}

	installments := loan.Installments()
	summary := dto.ScheduleSummaryResponse{}
	for _, inst := range installments {
		summary.TotalCapital = summary.TotalCapital.Add(inst.ScheduledCapital)
		summary.TotalInterest = summary.TotalInterest.Add(inst.ScheduledInterest)
		summary.TotalScheduled = summary.TotalScheduled.Add(inst.ScheduledTotal)
	}

	return dto.GenerateScheduleResponse{
		LoanID:       loan.ID(),
		Installments: toInstallmentResponses(installments),
		Summary:      summary,
		Message: fmt.Sprintf("schedule generated: %d %s installments (%s), total %s",
			loan.Term(), frequency.String(), method.String(), summary.TotalScheduled),
	}, nil
}
