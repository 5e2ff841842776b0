package postgres

import (
	"github.com/shopspring/decimal"
)

// scannable covers pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// toNullDecimal converts a scanned *decimal.Decimal into the NullDecimal
// the domain uses for optional rates.
func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Valid: true, Decimal: *d}
}

// fromNullDecimal converts back for binding; nil maps to SQL NULL.
func fromNullDecimal(nd decimal.NullDecimal) *decimal.Decimal {
	if !nd.Valid {
		return nil
	}
	d := nd.Decimal
	return &d
}
