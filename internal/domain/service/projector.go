package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mashi007/pagos-sub005/internal/domain/model"
	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Projector – dry-run payment allocation for "what-if" queries
// ---------------------------------------------------------------------------

// Projection is the non-mutating answer to "if I paid X on this date,
// what would change?".
type Projection struct {
	Installments      []model.Installment
	Breakdown         []model.AllocationLine
	Remainder         decimal.Decimal
	NewPendingBalance decimal.Decimal
}

// Projector runs the allocation engine over a copy of the installment
// set. Callers keep their slice untouched; the projection is advisory
// and nothing is persisted.
type Projector struct {
	recalc *Recalculator
	engine *AllocationEngine
}

// NewProjector wires the recalculator and allocation engine.
func NewProjector(recalc *Recalculator, engine *AllocationEngine) *Projector {
	return &Projector{recalc: recalc, engine: engine}
}

// Project previews a hypothetical payment. The installments are first
// brought current as of the projection date (the same recalculate-then-
// allocate sequence a real payment goes through), then the payment is
// applied to the copy.
func (p *Projector) Project(
	installments []model.Installment,
	amount decimal.Decimal,
	projectionDate time.Time,
	policy valueobject.AllocationPolicy,
	dailyRatePct decimal.Decimal,
) (Projection, error) {
	working := model.CopyInstallments(installments)

	recalculated, err := p.recalc.Recalculate(working, projectionDate, dailyRatePct)
	if err != nil {
		return Projection{}, err
	}

	updated, breakdown, remainder, err := p.engine.Apply(recalculated.Installments, amount, projectionDate, policy)
	if err != nil {
		return Projection{}, err
	}

	balance := decimal.Zero
	for _, inst := range updated {
		balance = balance.Add(inst.PendingTotal())
	}

	return Projection{
		Installments:      updated,
		Breakdown:         breakdown,
		Remainder:         remainder,
		NewPendingBalance: balance,
	}, nil
}
