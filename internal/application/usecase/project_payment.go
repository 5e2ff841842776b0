package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Mashi007/pagos-sub005/internal/application/dto"
	"github.com/Mashi007/pagos-sub005/internal/domain/model"
	"github.com/Mashi007/pagos-sub005/internal/domain/port"
	"github.com/Mashi007/pagos-sub005/internal/domain/service"
	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

// ProjectPaymentUseCase answers "if I paid X today, what would change?"
// without persisting anything: the projection runs over copies.
type ProjectPaymentUseCase struct {
	loanRepo           port.LoanRepository
	clock              port.Clock
	projector          *service.Projector
	defaultMoraRatePct decimal.Decimal
}

// NewProjectPaymentUseCase wires dependencies.
func NewProjectPaymentUseCase(
	loanRepo port.LoanRepository,
	clock port.Clock,
	projector *service.Projector,
	defaultMoraRatePct decimal.Decimal,
) *ProjectPaymentUseCase {
	return &ProjectPaymentUseCase{
		loanRepo:           loanRepo,
		clock:              clock,
		projector:          projector,
		defaultMoraRatePct: defaultMoraRatePct,
	}
}

// Execute previews a hypothetical payment. The loan is only read.
func (uc *ProjectPaymentUseCase) Execute(
	ctx context.Context,
	req dto.ProjectPaymentRequest,
) (dto.ProjectPaymentResponse, error) {
	policy := valueobject.PolicyOverdueFirst
	if req.Policy != "" {
		parsed, err := valueobject.NewAllocationPolicy(req.Policy)
		if err != nil {
			return dto.ProjectPaymentResponse{}, fmt.Errorf("%w: %s", model.ErrInvalidPayment, err)
		}
		policy = parsed
	}

	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.ProjectPaymentResponse{}, fmt.Errorf("find loan: %w", err)
	}

	projectionDate := req.ProjectionDate
	if projectionDate.IsZero() {
		projectionDate = uc.clock.Now()
	}
	rate := loan.DailyMoraRate(uc.defaultMoraRatePct)

	projection, err := uc.projector.Project(loan.Installments(), req.Amount, projectionDate, policy, rate)
	if err != nil {
		return dto.ProjectPaymentResponse{}, fmt.Errorf("project payment: %w", err)
	}

	return dto.ProjectPaymentResponse{
		LoanID:               loan.ID(),
		AffectedInstallments: toInstallmentResponses(affectedOnly(projection.Installments, projection.Breakdown)),
		AppliedBreakdown:     toBreakdownResponses(projection.Breakdown),
		Remainder:            projection.Remainder,
		NewPendingBalance:    projection.NewPendingBalance,
		Message: fmt.Sprintf("a payment of %s on %s would cover %d installment bucket(s), leaving %s pending",
			req.Amount, projectionDate.Format("2006-01-02"), len(projection.Breakdown), projection.NewPendingBalance),
	}, nil
}
