package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Mashi007/pagos-sub005/internal/application/dto"
	"github.com/Mashi007/pagos-sub005/internal/application/usecase"
	"github.com/Mashi007/pagos-sub005/internal/domain/model"
	"github.com/Mashi007/pagos-sub005/internal/infrastructure/persistence/postgres"
)

// ServicingHandler exposes the servicing operations over gRPC.
type ServicingHandler struct {
	UnimplementedServicingServiceServer

	generateSchedule *usecase.GenerateScheduleUseCase
	applyPayment     *usecase.ApplyPaymentUseCase
	recalculateMora  *usecase.RecalculateMoraUseCase
	projectPayment   *usecase.ProjectPaymentUseCase
	getLoan          *usecase.GetLoanUseCase
	logger           *slog.Logger
}

// NewServicingHandler creates a handler with all use-case dependencies.
func NewServicingHandler(
	generateSchedule *usecase.GenerateScheduleUseCase,
	applyPayment *usecase.ApplyPaymentUseCase,
	recalculateMora *usecase.RecalculateMoraUseCase,
	projectPayment *usecase.ProjectPaymentUseCase,
	getLoan *usecase.GetLoanUseCase,
	logger *slog.Logger,
) *ServicingHandler {
	return &ServicingHandler{
		generateSchedule: generateSchedule,
		applyPayment:     applyPayment,
		recalculateMora:  recalculateMora,
		projectPayment:   projectPayment,
		getLoan:          getLoan,
		logger:           logger,
	}
}

// GenerateSchedule builds and persists the installment table for a loan.
func (h *ServicingHandler) GenerateSchedule(ctx context.Context, req *dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	resp, err := h.generateSchedule.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus("GenerateSchedule", err)
	}
	return &resp, nil
}

// ApplyPayment records a payment and returns the allocation breakdown.
func (h *ServicingHandler) ApplyPayment(ctx context.Context, req *dto.ApplyPaymentRequest) (*dto.ApplyPaymentResponse, error) {
	resp, err := h.applyPayment.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus("ApplyPayment", err)
	}
	return &resp, nil
}

// RecalculateMora refreshes mora and overdue state for one loan.
func (h *ServicingHandler) RecalculateMora(ctx context.Context, req *dto.RecalculateMoraRequest) (*dto.RecalculateMoraResponse, error) {
	resp, err := h.recalculateMora.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus("RecalculateMora", err)
	}
	return &resp, nil
}

// ProjectPayment previews a hypothetical payment.
func (h *ServicingHandler) ProjectPayment(ctx context.Context, req *dto.ProjectPaymentRequest) (*dto.ProjectPaymentResponse, error) {
	resp, err := h.projectPayment.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus("ProjectPayment", err)
	}
	return &resp, nil
}

// GetLoan retrieves a loan with its installment table.
func (h *ServicingHandler) GetLoan(ctx context.Context, req *dto.GetLoanRequest) (*dto.LoanResponse, error) {
	resp, err := h.getLoan.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus("GetLoan", err)
	}
	return &resp, nil
}

// toStatus maps domain errors onto gRPC status codes.
func (h *ServicingHandler) toStatus(method string, err error) error {
	h.logger.Warn("request failed", "method", method, "error", err)
	switch {
	case errors.Is(err, postgres.ErrLoanNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, model.ErrInvalidPayment):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrInconsistentState):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, postgres.ErrOptimisticLock):
		return status.Error(codes.Aborted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
