package usecase

import (
	"github.com/Mashi007/pagos-sub005/internal/application/dto"
	"github.com/Mashi007/pagos-sub005/internal/domain/model"
)

func toInstallmentResponse(inst model.Installment) dto.InstallmentResponse {
	return dto.InstallmentResponse{
		Number:            inst.Number,
		DueDate:           inst.DueDate,
		ScheduledCapital:  inst.ScheduledCapital,
		ScheduledInterest: inst.ScheduledInterest,
		ScheduledTotal:    inst.ScheduledTotal,
		OpeningBalance:    inst.OpeningBalance,
		ClosingBalance:    inst.ClosingBalance,
		PaidCapital:       inst.PaidCapital,
		PaidInterest:      inst.PaidInterest,
		PaidMora:          inst.PaidMora,
		TotalPaid:         inst.TotalPaid,
		PendingCapital:    inst.PendingCapital,
		PendingInterest:   inst.PendingInterest,
		PendingMora:       inst.PendingMora(),
		DaysOverdue:       inst.DaysOverdue,
		MoraAmount:        inst.MoraAmount,
		MoraRateApplied:   inst.MoraRateApplied,
		Status:            inst.Status.String(),
		Notes:             inst.Notes,
	}
}

func toInstallmentResponses(installments []model.Installment) []dto.InstallmentResponse {
	out := make([]dto.InstallmentResponse, 0, len(installments))
	for _, inst := range installments {
		out = append(out, toInstallmentResponse(inst))
	}
	return out
}

func toBreakdownResponses(lines []model.AllocationLine) []dto.AllocationLineResponse {
	out := make([]dto.AllocationLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, dto.AllocationLineResponse{
			InstallmentNumber: line.InstallmentNumber,
			Mora:              line.Mora,
			Interest:          line.Interest,
			Capital:           line.Capital,
		})
	}
	return out
}

func toLoanResponse(loan model.Loan, withInstallments bool) dto.LoanResponse {
	resp := dto.LoanResponse{
		ID:               loan.ID(),
		BorrowerID:       loan.BorrowerID(),
		Principal:        loan.Principal(),
		AnnualRatePct:    loan.AnnualRatePct(),
		Term:             loan.Term(),
		StartDate:        loan.StartDate(),
		Frequency:        loan.Frequency().String(),
		Method:           loan.Method().String(),
		DailyMoraRatePct: loan.MoraRateOverride(),
		Status:           loan.Status().String(),
		TotalPending:     loan.TotalPending(),
		TotalPaid:        loan.TotalPaid(),
		CreatedAt:        loan.CreatedAt(),
		UpdatedAt:        loan.UpdatedAt(),
	}
	if withInstallments {
		resp.Installments = toInstallmentResponses(loan.Installments())
	}
	return resp
}

// affectedOnly filters the installment table down to the rows named in
// the breakdown, preserving table order.
func affectedOnly(installments []model.Installment, breakdown []model.AllocationLine) []model.Installment {
	touched := make(map[int]struct{}, len(breakdown))
	for _, line := range breakdown {
		touched[line.InstallmentNumber] = struct{}{}
	}
	var out []model.Installment
	for _, inst := range installments {
		if _, ok := touched[inst.Number]; ok {
			out = append(out, inst)
		}
	}
	return out
}
