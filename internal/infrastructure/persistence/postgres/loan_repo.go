package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Mashi007/pagos-sub005/internal/domain/model"
	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
	pgdb "github.com/Mashi007/pagos-sub005/pkg/postgres"
)

var (
	// ErrOptimisticLock is returned when a concurrent writer updated the
	// loan between read and save.
	ErrOptimisticLock = errors.New("optimistic locking conflict on loan")
	// ErrLoanNotFound is returned when no loan matches the identifier.
	ErrLoanNotFound = errors.New("loan not found")
)

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Save persists a loan and its full installment table in one transaction.
// The upsert carries a version guard; a zero-row update means another
// writer won and the caller must re-read.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	return pgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		loanQuery := `
			INSERT INTO loans (
				id, borrower_id, principal, annual_rate_pct, term,
				frequency, method, start_date, daily_mora_rate_pct,
				status, version, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
			ON CONFLICT (id) DO UPDATE SET
				daily_mora_rate_pct = EXCLUDED.daily_mora_rate_pct,
				status              = EXCLUDED.status,
				version             = loans.version + 1,
				updated_at          = EXCLUDED.updated_at
			WHERE loans.version = $11
		`
		tag, err := tx.Exec(ctx, loanQuery,
			loan.ID(), loan.BorrowerID(), loan.Principal(), loan.AnnualRatePct(), loan.Term(),
			loan.Frequency().String(), loan.Method().String(), loan.StartDate(),
			fromNullDecimal(loan.MoraRateOverride()),
			loan.Status().String(), loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("save loan: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrOptimisticLock
		}

		// Installments are replaced wholesale; each row is small and the
		// table caps at MaxScheduleCount rows per loan.
		if _, err := tx.Exec(ctx, `DELETE FROM installments WHERE loan_id = $1`, loan.ID()); err != nil {
			return fmt.Errorf("clear installments: %w", err)
		}
		instQuery := `
			INSERT INTO installments (
				loan_id, number, due_date,
				scheduled_capital, scheduled_interest, scheduled_total,
				opening_balance, closing_balance,
				paid_capital, paid_interest, paid_mora, total_paid,
				pending_capital, pending_interest,
				days_overdue, mora_amount, mora_rate_applied,
				status, notes
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		`
		for _, inst := range loan.Installments() {
			_, err := tx.Exec(ctx, instQuery,
				loan.ID(), inst.Number, inst.DueDate,
				inst.ScheduledCapital, inst.ScheduledInterest, inst.ScheduledTotal,
				inst.OpeningBalance, inst.ClosingBalance,
				inst.PaidCapital, inst.PaidInterest, inst.PaidMora, inst.TotalPaid,
				inst.PendingCapital, inst.PendingInterest,
				inst.DaysOverdue, inst.MoraAmount, inst.MoraRateApplied,
				inst.Status.String(), inst.Notes,
			)
			if err != nil {
				return fmt.Errorf("save installment %d: %w", inst.Number, err)
			}
		}
		return nil
	})
}

// FindByID retrieves a loan and its installment table.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	query := loanSelect + ` WHERE id = $1`
	loan, err := scanLoanRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, fmt.Errorf("%w: %s", ErrLoanNotFound, id)
		}
		return model.Loan{}, err
	}
	return r.attachInstallments(ctx, loan)
}

// FindByBorrowerID retrieves all loans for a borrower, newest first.
func (r *LoanRepo) FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.Loan, error) {
	query := loanSelect + ` WHERE borrower_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoanRow(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, loan := range loans {
		withTable, err := r.attachInstallments(ctx, loan)
		if err != nil {
			return nil, err
		}
		loans[i] = withTable
	}
	return loans, nil
}

// FindActiveIDs lists loans that still carry pending balances.
func (r *LoanRepo) FindActiveIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM loans WHERE status IN ('ACTIVE', 'DELINQUENT') ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query active loans: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan loan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

const loanSelect = `
	SELECT id, borrower_id, principal, annual_rate_pct, term,
	       frequency, method, start_date, daily_mora_rate_pct,
	       status, version, created_at, updated_at
	FROM loans`

func scanLoanRow(s scannable) (model.Loan, error) {
	var (
		id, borrowerID       string
		principal            decimal.Decimal
		annualRatePct        decimal.Decimal
		term                 int
		frequencyStr         string
		methodStr            string
		startDate            time.Time
		moraOverride         *decimal.Decimal
		statusStr            string
		version              int
		createdAt, updatedAt time.Time
	)

	err := s.Scan(
		&id, &borrowerID, &principal, &annualRatePct, &term,
		&frequencyStr, &methodStr, &startDate, &moraOverride,
		&statusStr, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	frequency, err := valueobject.NewPaymentFrequency(frequencyStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse frequency: %w", err)
	}
	method, err := valueobject.NewAmortizationMethod(methodStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse method: %w", err)
	}
	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}

	return model.ReconstructLoan(
		id, borrowerID, principal, annualRatePct, term,
		startDate, frequency, method, toNullDecimal(moraOverride),
		status, nil, version, createdAt, updatedAt,
	), nil
}

func (r *LoanRepo) attachInstallments(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query := `
		SELECT number, due_date,
		       scheduled_capital, scheduled_interest, scheduled_total,
		       opening_balance, closing_balance,
		       paid_capital, paid_interest, paid_mora, total_paid,
		       pending_capital, pending_interest,
		       days_overdue, mora_amount, mora_rate_applied,
		       status, notes
		FROM installments
		WHERE loan_id = $1
		ORDER BY number
	`
	rows, err := r.pool.Query(ctx, query, loan.ID())
	if err != nil {
		return model.Loan{}, fmt.Errorf("query installments: %w", err)
	}
	defer rows.Close()

	var installments []model.Installment
	for rows.Next() {
		var (
			inst      model.Installment
			statusStr string
		)
		err := rows.Scan(
			&inst.Number, &inst.DueDate,
			&inst.ScheduledCapital, &inst.ScheduledInterest, &inst.ScheduledTotal,
			&inst.OpeningBalance, &inst.ClosingBalance,
			&inst.PaidCapital, &inst.PaidInterest, &inst.PaidMora, &inst.TotalPaid,
			&inst.PendingCapital, &inst.PendingInterest,
			&inst.DaysOverdue, &inst.MoraAmount, &inst.MoraRateApplied,
			&statusStr, &inst.Notes,
		)
		if err != nil {
			return model.Loan{}, fmt.Errorf("scan installment: %w", err)
		}
		inst.Status, err = valueobject.NewInstallmentStatus(statusStr)
		if err != nil {
			return model.Loan{}, fmt.Errorf("parse installment status: %w", err)
		}
		installments = append(installments, inst)
	}
	if err := rows.Err(); err != nil {
		return model.Loan{}, err
	}

	return model.ReconstructLoan(
		loan.ID(), loan.BorrowerID(), loan.Principal(), loan.AnnualRatePct(), loan.Term(),
		loan.StartDate(), loan.Frequency(), loan.Method(), loan.MoraRateOverride(),
		loan.Status(), installments, loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	), nil
}
