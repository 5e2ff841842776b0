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

// ApplyPaymentUseCase records a payment against a loan: it brings mora
// current as of the payment date, runs the allocation waterfall, and
// persists the new installment state together with the payment record.
//
// Recalculation and allocation run as one logical unit against one loan
// snapshot; the repository's optimistic lock rejects concurrent writers.
type ApplyPaymentUseCase struct {
	loanRepo           port.LoanRepository
	paymentRepo        port.PaymentRepository
	publisher          port.EventPublisher
	clock              port.Clock
	recalculator       *service.Recalculator
	engine             *service.AllocationEngine
	defaultMoraRatePct decimal.Decimal
}

// NewApplyPaymentUseCase wires dependencies. defaultMoraRatePct is the
// system-wide daily mora rate used when a loan carries no override.
func NewApplyPaymentUseCase(
	loanRepo port.LoanRepository,
	paymentRepo port.PaymentRepository,
	publisher port.EventPublisher,
	clock port.Clock,
	recalculator *service.Recalculator,
	engine *service.AllocationEngine,
	defaultMoraRatePct decimal.Decimal,
) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{
		loanRepo:           loanRepo,
		paymentRepo:        paymentRepo,
		publisher:          publisher,
		clock:              clock,
		recalculator:       recalculator,
		engine:             engine,
		defaultMoraRatePct: defaultMoraRatePct,
	}
}

// Execute processes a payment.
func (uc *ApplyPaymentUseCase) Execute(
	ctx context.Context,
	req dto.ApplyPaymentRequest,
) (dto.ApplyPaymentResponse, error) {
	policy, err := valueobject.NewAllocationPolicy(req.Policy)
	if err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("%w: %s", model.ErrInvalidPayment, err)
	}

	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("find loan: %w", err)
	}

	now := uc.clock.Now()
	paymentDate := req.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = now
	}
	rate := loan.DailyMoraRate(uc.defaultMoraRatePct)

	// 1. Bring mora and overdue state current as of the payment date.
	recalc, err := uc.recalculator.Recalculate(loan.Installments(), paymentDate, rate)
	if err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("recalculate before payment: %w", err)
	}
	loan, err = loan.WithRecalculation(recalc.Installments, paymentDate, recalc.Changed, recalc.MoraDelta, recalc.NewlyOverdue, now)
	if err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("apply recalculation: %w", err)
	}

	// 2. Run the waterfall, over the whole table or a requested subset.
	table := loan.Installments()
	target := table
	if len(req.InstallmentNumbers) > 0 {
		target, err = subsetByNumber(table, req.InstallmentNumbers)
		if err != nil {
			return dto.ApplyPaymentResponse{}, err
		}
	}

	updated, breakdown, remainder, err := uc.engine.Apply(target, req.Amount, paymentDate, policy)
	if err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("allocate payment: %w", err)
	}
	merged := mergeByNumber(table, updated)

	// 3. Persist the new state and the payment record.
	payment := model.NewPayment(loan.ID(), req.Amount, paymentDate, policy, breakdown, remainder, now)
	loan, err = loan.WithAllocation(merged, payment, now)
	if err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("apply allocation: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.paymentRepo.Save(ctx, payment); err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("save payment: %w", err)
	}
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.ApplyPaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	message := fmt.Sprintf("payment of %s allocated across %d installment(s)", payment.Allocated(), len(breakdown))
	if remainder.IsPositive() {
		message += fmt.Sprintf("; %s left unallocated", remainder)
	}

	return dto.ApplyPaymentResponse{
		LoanID:               loan.ID(),
		PaymentID:            payment.ID(),
		AffectedInstallments: toInstallmentResponses(affectedOnly(loan.Installments(), breakdown)),
		AppliedBreakdown:     toBreakdownResponses(breakdown),
		Remainder:            remainder,
		LoanStatus:           loan.Status().String(),
		Message:              message,
	}, nil
}

// subsetByNumber picks the named installments out of the table.
func subsetByNumber(table []model.Installment, numbers []int) ([]model.Installment, error) {
	byNumber := make(map[int]model.Installment, len(table))
	for _, inst := range table {
		byNumber[inst.Number] = inst
	}
	out := make([]model.Installment, 0, len(numbers))
	for _, n := range numbers {
		inst, ok := byNumber[n]
		if !ok {
			return nil, fmt.Errorf("%w: installment %d not found", model.ErrInvalidInput, n)
		}
		out = append(out, inst)
	}
	return out, nil
}

// mergeByNumber writes the updated rows back into a copy of the full
// table.
func mergeByNumber(table, updated []model.Installment) []model.Installment {
	byNumber := make(map[int]model.Installment, len(updated))
	for _, inst := range updated {
		byNumber[inst.Number] = inst
	}
	merged := model.CopyInstallments(table)
	for i, inst := range merged {
		if u, ok := byNumber[inst.Number]; ok {
			merged[i] = u
		}
	}
	return merged
}
