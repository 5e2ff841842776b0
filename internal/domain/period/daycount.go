package period

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DayCountConvention selects how interest days between two dates are
// counted and annualised.
type DayCountConvention string

const (
	// Thirty360 is 30/360 U.S. (bond basis).
	Thirty360 DayCountConvention = "30/360"
	// Act360 counts actual calendar days over a 360-day year.
	Act360 DayCountConvention = "ACT/360"
	// Act365 counts actual calendar days over a fixed 365-day year.
	Act365 DayCountConvention = "ACT/365"
)

// Days360 returns (numerator, denominator=360) under 30/360 U.S. rules:
// a start day of 31 counts as 30, and an end day of 31 counts as 30 when
// the start day is 30 or later.
func Days360(start, end time.Time) (int, int) {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()

	if d1 == 31 {
		d1 = 30
	}
	if d2 == 31 && d1 >= 30 {
		d2 = 30
	}
	return (y2-y1)*360 + int(m2-m1)*30 + (d2 - d1), 360
}

// DaysAct360 returns actual calendar days over 360.
func DaysAct360(start, end time.Time) (int, int) {
	return DaysBetween(start, end), 360
}

// DaysAct365 returns actual calendar days over 365, ignoring leap years.
func DaysAct365(start, end time.Time) (int, int) {
	return DaysBetween(start, end), 365
}

// YearFraction returns the fraction of a year between start and end under
// the given convention, as a decimal suitable for interest-day math.
func YearFraction(start, end time.Time, conv DayCountConvention) (decimal.Decimal, error) {
	var num, denom int
	switch conv {
	case Thirty360:
		num, denom = Days360(start, end)
	case Act360:
		num, denom = DaysAct360(start, end)
	case Act365:
		num, denom = DaysAct365(start, end)
	default:
		return decimal.Zero, fmt.Errorf("unsupported day-count convention: %q", conv)
	}
	return decimal.NewFromInt(int64(num)).Div(decimal.NewFromInt(int64(denom))), nil
}
