package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Mashi007/pagos-sub005/internal/application/dto"
	"github.com/Mashi007/pagos-sub005/internal/application/usecase"
	"github.com/Mashi007/pagos-sub005/internal/domain/port"
)

// sweepTimeout bounds one full pass over the active loan book.
const sweepTimeout = 15 * time.Minute

// RecalcScheduler runs the periodic mora sweep: every active or
// delinquent loan gets its overdue days and mora brought current. The
// sweep is idempotent per loan, so an overlapping or repeated run is
// harmless.
type RecalcScheduler struct {
	cron     *cron.Cron
	loanRepo port.LoanRepository
	recalc   *usecase.RecalculateMoraUseCase
	logger   *slog.Logger
}

// NewRecalcScheduler wires the sweep dependencies.
func NewRecalcScheduler(
	loanRepo port.LoanRepository,
	recalc *usecase.RecalculateMoraUseCase,
	logger *slog.Logger,
) *RecalcScheduler {
	return &RecalcScheduler{
		cron:     cron.New(),
		loanRepo: loanRepo,
		recalc:   recalc,
		logger:   logger,
	}
}

// Start registers the sweep under the given cron spec and starts the
// scheduler.
func (s *RecalcScheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runSweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("mora recalculation scheduler started", "cron", spec)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *RecalcScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunOnce executes a single sweep immediately. The startup path uses
// this so a service that was down over a due date catches up without
// waiting for the next cron fire.
func (s *RecalcScheduler) RunOnce(ctx context.Context) {
	s.sweep(ctx)
}

func (s *RecalcScheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	s.sweep(ctx)
}

func (s *RecalcScheduler) sweep(ctx context.Context) {
	started := time.Now()

	ids, err := s.loanRepo.FindActiveIDs(ctx)
	if err != nil {
		s.logger.Error("mora sweep: list active loans", "error", err)
		return
	}

	var failed int
	for _, id := range ids {
		if ctx.Err() != nil {
			s.logger.Warn("mora sweep aborted", "processed", len(ids)-failed, "error", ctx.Err())
			return
		}
		if _, err := s.recalc.Execute(ctx, dto.RecalculateMoraRequest{LoanID: id}); err != nil {
			// One bad loan must not stop the sweep.
			failed++
			s.logger.Error("mora sweep: recalculate loan", "loan_id", id, "error", err)
		}
	}

	s.logger.Info("mora sweep finished",
		"loans", len(ids),
		"failed", failed,
		"duration", time.Since(started).String(),
	)
}
