// Package period provides calendar arithmetic for installment schedules:
// due-date sequencing per payment frequency, overdue-day counting and the
// day-count conventions used for interest-day calculations.
//
// All functions are pure and operate on dates at day granularity; the
// time-of-day and location of the inputs are ignored.
package period

import (
	"fmt"
	"time"

	"github.com/Mashi007/pagos-sub005/internal/domain/valueobject"
)

// MaxScheduleCount bounds how many due dates a single schedule may carry.
const MaxScheduleCount = 600

// SchedulePaymentDates returns one due date per installment, starting one
// period after start. Month-based frequencies preserve the start's
// day-of-month, clipping to the last valid day of short months (a schedule
// anchored on the 31st falls due on Feb 28/29, Apr 30, and so on).
func SchedulePaymentDates(start time.Time, count int, frequency valueobject.PaymentFrequency) ([]time.Time, error) {
	if count <= 0 {
		return nil, fmt.Errorf("schedule count must be positive, got %d", count)
	}
	if count > MaxScheduleCount {
		return nil, fmt.Errorf("schedule count %d exceeds maximum %d", count, MaxScheduleCount)
	}
	stepDays, stepMonths := frequency.Step()
	if stepDays == 0 && stepMonths == 0 {
		return nil, fmt.Errorf("invalid payment frequency: %q", frequency.String())
	}

	anchor := truncateToDay(start)
	dates := make([]time.Time, 0, count)
	for i := 1; i <= count; i++ {
		if stepDays > 0 {
			dates = append(dates, anchor.AddDate(0, 0, i*stepDays))
			continue
		}
		dates = append(dates, addMonthsClipped(anchor, i*stepMonths))
	}
	return dates, nil
}

// DaysBetween returns the number of whole calendar days from a to b,
// ignoring time-of-day. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	da := truncateToDay(a)
	db := truncateToDay(b)
	return int(db.Sub(da).Hours() / 24)
}

// DaysOverdue returns how many days past due an obligation is as of asOf,
// or 0 when the due date has not yet passed.
func DaysOverdue(dueDate, asOf time.Time) int {
	if !truncateToDay(asOf).After(truncateToDay(dueDate)) {
		return 0
	}
	return DaysBetween(dueDate, asOf)
}

// addMonthsClipped advances t by the given number of calendar months,
// keeping the anchor day-of-month where the target month allows it.
// time.AddDate is avoided here because it normalises overflow instead of
// clipping (Jan 31 + 1 month would become Mar 3).
func addMonthsClipped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysInMonth(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
