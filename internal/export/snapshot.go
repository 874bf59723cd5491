// Package export renders a point-in-time view of the ledger as JSON, PDF,
// XLSX or a Google Sheets row.
package export

import (
	"time"

	"github.com/shopspring/decimal"

	"crediario/internal/core"
	"crediario/internal/report"
	"crediario/internal/store"
)

// Snapshot is everything an exported report contains.
type Snapshot struct {
	BusinessName    string               `json:"business_name"`
	Summary         report.Summary       `json:"summary"`
	Monthly         report.MonthlyReport `json:"monthly_report"`
	ActiveCustomers []CustomerLine       `json:"active_customers"`
	Expenses        []core.Expense       `json:"expenses"`
	ExportedAt      time.Time            `json:"exported_at"`
}

// CustomerLine is an active customer with its balance at export time.
type CustomerLine struct {
	core.Customer
	Overdue   bool            `json:"overdue"`
	DaysLate  int64           `json:"days_late"`
	Interest  decimal.Decimal `json:"interest"`
	TotalOwed decimal.Decimal `json:"total_owed"`
}

// NewSnapshot builds the snapshot for the given month. Expenses are not
// month-scoped; the export carries the whole expense book.
func NewSnapshot(cfg core.AppConfig, customers []core.Customer, transactions []core.Transaction, expenses []core.Expense, year, month int, asOf time.Time) Snapshot {
	s := Snapshot{
		BusinessName:    cfg.BusinessName,
		Summary:         report.BuildSummary(customers, transactions, expenses, asOf),
		Monthly:         report.BuildMonthly(customers, transactions, expenses, month, year, asOf),
		ActiveCustomers: []CustomerLine{},
		Expenses:        expenses,
		ExportedAt:      asOf,
	}
	if s.Expenses == nil {
		s.Expenses = []core.Expense{}
	}
	for _, c := range customers {
		if !c.IsActive() {
			continue
		}
		s.ActiveCustomers = append(s.ActiveCustomers, NewCustomerLine(c, asOf))
	}
	return s
}

// NewCustomerLine derives the customer's balance at asOf.
func NewCustomerLine(c core.Customer, asOf time.Time) CustomerLine {
	return CustomerLine{
		Customer:  c,
		Overdue:   c.IsActive() && c.IsOverdue(asOf),
		DaysLate:  core.DaysLate(c.DueDate, asOf),
		Interest:  core.Interest(c, asOf),
		TotalOwed: core.TotalOwed(c, asOf),
	}
}

// FromStore snapshots the current contents of st.
func FromStore(st *store.Store, year, month int, asOf time.Time) Snapshot {
	return NewSnapshot(
		st.Settings.Get(),
		st.Customers.List(),
		st.Transactions.List(),
		st.Expenses.List(),
		year, month, asOf,
	)
}
