// Package report aggregates customers, transactions and expenses into the
// summary and monthly figures shown on the dashboard and in exports.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"crediario/internal/core"
)

// CategoryAmount represents an amount aggregated by expense category.
type CategoryAmount struct {
	Category core.ExpenseCategory `json:"category"`
	Amount   decimal.Decimal      `json:"amount"`
}

// Summary is the all-time financial picture of the book.
type Summary struct {
	TotalInflows  decimal.Decimal `json:"total_inflows"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	// TotalOutflows combines outflow transactions and expenses.
	TotalOutflows      decimal.Decimal  `json:"total_outflows"`
	NetProfit          decimal.Decimal  `json:"net_profit"`
	ActiveCustomers    int              `json:"active_customers"`
	OverdueCustomers   int              `json:"overdue_customers"`
	OutstandingCredit  decimal.Decimal  `json:"outstanding_credit"`
	ExpensesByCategory []CategoryAmount `json:"expenses_by_category"`
}

// BuildSummary computes the summary at asOf. Expenses and outflow transactions
// are summed independently and then combined; callers that also record a
// mirror outflow transaction for each expense will count it twice.
func BuildSummary(customers []core.Customer, transactions []core.Transaction, expenses []core.Expense, asOf time.Time) Summary {
	s := Summary{ExpensesByCategory: []CategoryAmount{}}

	outflows := decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case core.Inflow:
			s.TotalInflows = s.TotalInflows.Add(t.Amount)
		case core.Outflow:
			outflows = outflows.Add(t.Amount)
		}
	}

	s.TotalExpenses = sumExpenses(expenses)
	s.ExpensesByCategory = byCategory(expenses)
	s.TotalOutflows = outflows.Add(s.TotalExpenses)
	s.NetProfit = s.TotalInflows.Sub(s.TotalOutflows)

	s.ActiveCustomers, s.OverdueCustomers, s.OutstandingCredit = creditPosition(customers, asOf)
	return s
}

// CollectionRate is the percentage of money received over money received plus
// money still outstanding. An empty book yields zero.
func (s Summary) CollectionRate() decimal.Decimal {
	base := s.TotalInflows.Add(s.OutstandingCredit)
	if base.IsZero() {
		return decimal.Zero
	}
	return s.TotalInflows.Div(base).Shift(2).Round(2)
}

// creditPosition counts active and overdue active customers and sums what the
// active ones owe with interest at asOf.
func creditPosition(customers []core.Customer, asOf time.Time) (active, overdue int, outstanding decimal.Decimal) {
	for _, c := range customers {
		if !c.IsActive() {
			continue
		}
		active++
		if c.IsOverdue(asOf) {
			overdue++
		}
		outstanding = outstanding.Add(core.TotalOwed(c, asOf))
	}
	return active, overdue, outstanding
}

func sumExpenses(expenses []core.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// byCategory keeps categories in first-seen order.
func byCategory(expenses []core.Expense) []CategoryAmount {
	out := []CategoryAmount{}
	index := map[core.ExpenseCategory]int{}
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			index[e.Category] = len(out)
			out = append(out, CategoryAmount{Category: e.Category, Amount: e.Amount})
			continue
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	return out
}
