package usecase

import (
	"context"
	"fmt"

	"github.com/Mashi007/pagos-sub005/internal/application/dto"
	"github.com/Mashi007/pagos-sub005/internal/domain/port"
)

// GetLoanUseCase retrieves a loan with its installment table.
type GetLoanUseCase struct {
	loanRepo port.LoanRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loanRepo port.LoanRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo}
}

// Execute fetches the loan.
func (uc *GetLoanUseCase) Execute(ctx context.Context, req dto.GetLoanRequest) (dto.LoanResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}
	return toLoanResponse(loan, true), nil
}
