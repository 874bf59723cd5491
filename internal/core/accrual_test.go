package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestInterest(t *testing.T) {
	c := validCustomer() // 100 principal, 2% per day, due 2025-01-10

	tests := []struct {
		name string
		asOf time.Time
		want string
	}{
		{"before due date", time.Date(2025, 1, 9, 12, 0, 0, 0, time.UTC), "0"},
		{"exactly at due midnight", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), "0"},
		{"due day afternoon - overdue but zero whole days", time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC), "0"},
		{"one day late", time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), "2"},
		{"partial second day is floored", time.Date(2025, 1, 12, 23, 59, 0, 0, time.UTC), "4"},
		{"ten days late", time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC), "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interest(c, tt.asOf)
			if got.String() != tt.want {
				t.Errorf("Interest() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestInterestIsSimpleNotCompound(t *testing.T) {
	c := validCustomer()
	c.DebtAmount = decimal.RequireFromString("33.33")
	c.DailyInterestRate = decimal.RequireFromString("2.5")

	asOf := c.DueDate.StartIn(time.UTC).Add(30 * day)
	want := decimal.RequireFromString("24.9975") // 33.33 * 0.025 * 30
	if got := Interest(c, asOf); !got.Equal(want) {
		t.Fatalf("Interest() = %s, want %s", got, want)
	}
	if got := TotalOwed(c, asOf); !got.Equal(want.Add(c.DebtAmount)) {
		t.Fatalf("TotalOwed() = %s", got)
	}
}

func TestInterestMonotonic(t *testing.T) {
	c := validCustomer()
	start := c.DueDate.StartIn(time.UTC).Add(-48 * time.Hour)
	prev := decimal.Zero
	for h := 0; h < 24*15; h += 7 {
		got := Interest(c, start.Add(time.Duration(h)*time.Hour))
		if got.LessThan(prev) {
			t.Fatalf("interest decreased at hour %d: %s < %s", h, got, prev)
		}
		prev = got
	}
}

func TestTotalOwedScenario(t *testing.T) {
	asOf := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	c := validCustomer()
	c.DueDate = DateOf(asOf.AddDate(0, 0, -10))

	if got := Interest(c, asOf); !got.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("Interest() = %s, want 20", got)
	}
	if got := TotalOwed(c, asOf); !got.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("TotalOwed() = %s, want 120", got)
	}
}

func TestIsOverdueUsesAsOfLocation(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	due := NewDate(2025, 1, 10)

	// 01:00 UTC on the 10th is still the 9th in São Paulo.
	asOf := time.Date(2025, 1, 10, 1, 0, 0, 0, time.UTC).In(saoPaulo)
	if IsOverdue(due, asOf) {
		t.Fatalf("should not be overdue before local midnight")
	}
	if !IsOverdue(due, asOf.Add(3*time.Hour)) {
		t.Fatalf("should be overdue after local midnight")
	}
	if DaysLate(due, asOf) != 0 {
		t.Fatalf("DaysLate must be zero when not overdue")
	}
}
