package report

import (
	"time"

	"github.com/shopspring/decimal"

	"crediario/internal/core"
)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthName returns the pt-BR month name for month 1-12.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// MonthlyReport holds month-scoped cash figures next to global credit figures.
type MonthlyReport struct {
	MonthName     string          `json:"month_name"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	FinalProfit   decimal.Decimal `json:"final_profit"`
	// PayingCustomers counts distinct customers with an inflow in the month.
	PayingCustomers int `json:"paying_customers"`
	// OutstandingCredit and DefaultingCustomers reflect the whole book at asOf,
	// whatever month was requested.
	OutstandingCredit   decimal.Decimal `json:"outstanding_credit"`
	DefaultingCustomers int             `json:"defaulting_customers"`
}

// BuildMonthly filters transactions and expenses to the calendar month, both
// ends inclusive. Transaction timestamps are compared by their calendar date in
// asOf's location.
func BuildMonthly(customers []core.Customer, transactions []core.Transaction, expenses []core.Expense, month, year int, asOf time.Time) MonthlyReport {
	first, last := MonthRange(year, month)
	loc := asOf.Location()

	r := MonthlyReport{
		MonthName: MonthName(month),
		Month:     month,
		Year:      year,
	}

	payers := map[string]struct{}{}
	for _, t := range transactions {
		if !core.DateOf(t.OccurredAt.In(loc)).Between(first, last) {
			continue
		}
		if t.Type != core.Inflow {
			continue
		}
		r.TotalReceived = r.TotalReceived.Add(t.Amount)
		if t.CustomerID != "" {
			payers[t.CustomerID] = struct{}{}
		}
	}
	r.PayingCustomers = len(payers)

	for _, e := range expenses {
		if e.Date.Between(first, last) {
			r.TotalExpenses = r.TotalExpenses.Add(e.Amount)
		}
	}

	_, r.DefaultingCustomers, r.OutstandingCredit = creditPosition(customers, asOf)
	r.FinalProfit = r.TotalReceived.Sub(r.TotalExpenses)
	return r
}

// MonthRange returns the first and last calendar dates of the month.
func MonthRange(year, month int) (first, last core.Date) {
	first = core.NewDate(year, month, 1)
	last = core.DateOf(first.AddDate(0, 1, -1))
	return first, last
}
