package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Mashi007/pagos-sub005/internal/domain/model"
	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

// PaymentRepo implements port.PaymentRepository.
type PaymentRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentRepo creates a new PostgreSQL-backed payment repository.
func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// allocationLineRow is the JSONB shape of one breakdown entry.
type allocationLineRow struct {
	InstallmentNumber int             `json:"installment_number"`
	Mora              decimal.Decimal `json:"mora"`
	Interest          decimal.Decimal `json:"interest"`
	Capital           decimal.Decimal `json:"capital"`
}

// Save persists a payment. Payments are append-only; a duplicate ID is
// an error, not an upsert.
func (r *PaymentRepo) Save(ctx context.Context, payment model.Payment) error {
	breakdown := make([]allocationLineRow, 0, len(payment.Breakdown()))
	for _, line := range payment.Breakdown() {
		breakdown = append(breakdown, allocationLineRow{
			InstallmentNumber: line.InstallmentNumber,
			Mora:              line.Mora,
			Interest:          line.Interest,
			Capital:           line.Capital,
		})
	}
	payload, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}

	query := `
		INSERT INTO payments (
			id, loan_id, amount, payment_date, policy,
			breakdown, remainder, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	_, err = r.pool.Exec(ctx, query,
		payment.ID(), payment.LoanID(), payment.Amount(), payment.PaymentDate(),
		payment.Policy().String(), payload, payment.Remainder(), payment.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	return nil
}

// FindByLoanID retrieves every payment recorded against a loan, oldest
// first.
func (r *PaymentRepo) FindByLoanID(ctx context.Context, loanID string) ([]model.Payment, error) {
	query := `
		SELECT id, loan_id, amount, payment_date, policy,
		       breakdown, remainder, created_at
		FROM payments
		WHERE loan_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var (
			id, loan    string
			amount      decimal.Decimal
			paymentDate time.Time
			policyStr   string
			payload     []byte
			remainder   decimal.Decimal
			createdAt   time.Time
		)
		if err := rows.Scan(&id, &loan, &amount, &paymentDate, &policyStr, &payload, &remainder, &createdAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}

		policy, err := valueobject.NewAllocationPolicy(policyStr)
		if err != nil {
			return nil, fmt.Errorf("parse policy: %w", err)
		}

		var lineRows []allocationLineRow
		if err := json.Unmarshal(payload, &lineRows); err != nil {
			return nil, fmt.Errorf("unmarshal breakdown: %w", err)
		}
		breakdown := make([]model.AllocationLine, 0, len(lineRows))
		for _, line := range lineRows {
			breakdown = append(breakdown, model.AllocationLine{
				InstallmentNumber: line.InstallmentNumber,
				Mora:              line.Mora,
				Interest:          line.Interest,
				Capital:           line.Capital,
			})
		}

		payments = append(payments, model.ReconstructPayment(
			id, loan, amount, paymentDate, policy, breakdown, remainder, createdAt,
		))
	}
	return payments, rows.Err()
}
