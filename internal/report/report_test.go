package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crediario/internal/core"
)

var asOf = time.Date(2025, 3, 20, 14, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func customer(id, name string, debt string, due core.Date, status core.CustomerStatus) core.Customer {
	return core.Customer{
		ID:                id,
		Name:              name,
		DebtAmount:        dec(debt),
		DueDate:           due,
		DailyInterestRate: dec("2"),
		Status:            status,
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary(nil, nil, nil, asOf)

	assert.True(t, s.TotalInflows.IsZero())
	assert.True(t, s.TotalOutflows.IsZero())
	assert.True(t, s.TotalExpenses.IsZero())
	assert.True(t, s.NetProfit.IsZero())
	assert.True(t, s.OutstandingCredit.IsZero())
	assert.Zero(t, s.ActiveCustomers)
	assert.Zero(t, s.OverdueCustomers)
	assert.Empty(t, s.ExpensesByCategory)
	assert.True(t, s.CollectionRate().IsZero())
}

func TestBuildSummaryCombinesOutflowsAndExpenses(t *testing.T) {
	txs := []core.Transaction{
		{ID: "t1", Type: core.Inflow, Amount: dec("500")},
		{ID: "t2", Type: core.Outflow, Amount: dec("200")},
	}
	exps := []core.Expense{
		{ID: "e1", Category: core.CategoryFood, Amount: dec("50"), Date: core.NewDate(2025, 3, 1)},
	}

	s := BuildSummary(nil, txs, exps, asOf)

	assert.True(t, s.TotalInflows.Equal(dec("500")), s.TotalInflows.String())
	assert.True(t, s.TotalOutflows.Equal(dec("250")), s.TotalOutflows.String())
	assert.True(t, s.TotalExpenses.Equal(dec("50")))
	assert.True(t, s.NetProfit.Equal(dec("250")), s.NetProfit.String())
	assert.True(t, s.NetProfit.Equal(s.TotalInflows.Sub(s.TotalOutflows)))
}

func TestBuildSummaryCreditPosition(t *testing.T) {
	customers := []core.Customer{
		customer("c1", "Ana", "100", core.DateOf(asOf.AddDate(0, 0, -10)), core.StatusActive), // 120 owed
		customer("c2", "Bia", "80", core.NewDate(2025, 4, 1), core.StatusActive),              // not due
		customer("c3", "Caio", "999", core.NewDate(2024, 1, 1), core.StatusPaid),              // settled
	}

	s := BuildSummary(customers, nil, nil, asOf)

	assert.Equal(t, 2, s.ActiveCustomers)
	assert.Equal(t, 1, s.OverdueCustomers)
	assert.True(t, s.OutstandingCredit.Equal(dec("200")), s.OutstandingCredit.String())
}

func TestExpensesByCategoryKeepsFirstSeenOrder(t *testing.T) {
	exps := []core.Expense{
		{Category: core.CategoryRent, Amount: dec("1000")},
		{Category: core.CategoryWater, Amount: dec("80")},
		{Category: core.CategoryRent, Amount: dec("10")},
		{Category: core.CategoryOther, Amount: dec("5.5")},
	}

	s := BuildSummary(nil, nil, exps, asOf)

	require.Len(t, s.ExpensesByCategory, 3)
	assert.Equal(t, core.CategoryRent, s.ExpensesByCategory[0].Category)
	assert.True(t, s.ExpensesByCategory[0].Amount.Equal(dec("1010")))
	assert.Equal(t, core.CategoryWater, s.ExpensesByCategory[1].Category)
	assert.Equal(t, core.CategoryOther, s.ExpensesByCategory[2].Category)
}

func TestCollectionRate(t *testing.T) {
	s := Summary{TotalInflows: dec("300"), OutstandingCredit: dec("100")}
	assert.True(t, s.CollectionRate().Equal(dec("75")), s.CollectionRate().String())
}

func TestBuildMonthly(t *testing.T) {
	customers := []core.Customer{
		customer("c1", "Ana", "100", core.DateOf(asOf.AddDate(0, 0, -10)), core.StatusActive),
	}
	txs := []core.Transaction{
		{CustomerID: "c1", Type: core.Inflow, Amount: dec("40"), OccurredAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{CustomerID: "c1", Type: core.Inflow, Amount: dec("60"), OccurredAt: time.Date(2025, 2, 28, 23, 59, 0, 0, time.UTC)},
		{CustomerID: "c2", Type: core.Inflow, Amount: dec("10"), OccurredAt: time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)},
		{Type: core.Inflow, Amount: dec("5"), OccurredAt: time.Date(2025, 2, 11, 8, 0, 0, 0, time.UTC)},
		{CustomerID: "c1", Type: core.Outflow, Amount: dec("7"), OccurredAt: time.Date(2025, 2, 12, 8, 0, 0, 0, time.UTC)},
		{CustomerID: "c1", Type: core.Inflow, Amount: dec("1000"), OccurredAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	exps := []core.Expense{
		{Category: core.CategoryRent, Amount: dec("30"), Date: core.NewDate(2025, 2, 28)},
		{Category: core.CategoryRent, Amount: dec("30"), Date: core.NewDate(2025, 1, 31)},
	}

	r := BuildMonthly(customers, txs, exps, 2, 2025, asOf)

	assert.Equal(t, "fevereiro", r.MonthName)
	assert.Equal(t, 2025, r.Year)
	assert.True(t, r.TotalReceived.Equal(dec("115")), r.TotalReceived.String())
	assert.True(t, r.TotalExpenses.Equal(dec("30")))
	assert.True(t, r.FinalProfit.Equal(dec("85")))
	assert.Equal(t, 2, r.PayingCustomers)
	assert.Equal(t, 1, r.DefaultingCustomers)
	assert.True(t, r.OutstandingCredit.Equal(dec("120")), r.OutstandingCredit.String())
}

func TestBuildMonthlyEmptyMonthKeepsGlobalFigures(t *testing.T) {
	customers := []core.Customer{
		customer("c1", "Ana", "100", core.DateOf(asOf.AddDate(0, 0, -10)), core.StatusActive),
		customer("c2", "Bia", "50", core.NewDate(2026, 1, 1), core.StatusActive),
	}

	r := BuildMonthly(customers, nil, nil, 7, 2019, asOf)

	assert.True(t, r.TotalReceived.IsZero())
	assert.True(t, r.TotalExpenses.IsZero())
	assert.True(t, r.FinalProfit.IsZero())
	assert.Zero(t, r.PayingCustomers)
	assert.Equal(t, 1, r.DefaultingCustomers)
	assert.True(t, r.OutstandingCredit.Equal(dec("170")), r.OutstandingCredit.String())
}

func TestBuildMonthlyComparesCalendarDateInAsOfLocation(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	// 01:30 UTC on March 1st is still February 28th in Brazil.
	txs := []core.Transaction{
		{Type: core.Inflow, Amount: dec("10"), OccurredAt: time.Date(2025, 3, 1, 1, 30, 0, 0, time.UTC)},
	}

	feb := BuildMonthly(nil, txs, nil, 2, 2025, asOf.In(brt))
	mar := BuildMonthly(nil, txs, nil, 3, 2025, asOf.In(brt))

	assert.True(t, feb.TotalReceived.Equal(dec("10")))
	assert.True(t, mar.TotalReceived.IsZero())
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2024, 2)
	assert.Equal(t, core.NewDate(2024, 2, 1), first)
	assert.Equal(t, core.NewDate(2024, 2, 29), last)

	_, last = MonthRange(2025, 12)
	assert.Equal(t, core.NewDate(2025, 12, 31), last)
}
