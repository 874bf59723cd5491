package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// IsOverdue reports whether asOf is strictly after the start of the due date,
// evaluated in asOf's location.
func IsOverdue(due Date, asOf time.Time) bool {
	return asOf.After(due.StartIn(asOf.Location()))
}

// DaysLate returns the number of whole days elapsed since the start of the due
// date, or zero when the debt is not overdue.
func DaysLate(due Date, asOf time.Time) int64 {
	if !IsOverdue(due, asOf) {
		return 0
	}
	return int64(asOf.Sub(due.StartIn(asOf.Location())) / day)
}

// Interest is simple daily interest on the principal: linear in whole days
// late, never compounded.
func Interest(c Customer, asOf time.Time) decimal.Decimal {
	days := DaysLate(c.DueDate, asOf)
	if days == 0 {
		return decimal.Zero
	}
	return c.DebtAmount.Mul(c.DailyInterestRate).Mul(decimal.NewFromInt(days)).Shift(-2)
}

// TotalOwed is the principal plus accrued interest.
func TotalOwed(c Customer, asOf time.Time) decimal.Decimal {
	return c.DebtAmount.Add(Interest(c, asOf))
}
