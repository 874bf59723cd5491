package core

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validCustomer() Customer {
	return Customer{
		Name:              "Maria",
		Phone:             "11912345678",
		DebtAmount:        decimal.NewFromInt(100),
		DueDate:           NewDate(2025, 1, 10),
		DailyInterestRate: decimal.NewFromInt(2),
		Status:            StatusActive,
	}
}

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-09")
	if err != nil || d != NewDate(2025, 3, 9) {
		t.Fatalf("unexpected parse: %v %v", d, err)
	}
	d, err = ParseDate("2025-03-09T23:30:00-03:00")
	if err != nil || d != NewDate(2025, 3, 9) {
		t.Fatalf("timestamp should keep its own calendar date, got %v %v", d, err)
	}
	if _, err := ParseDate("09/03/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDateJSON(t *testing.T) {
	b, err := NewDate(2024, 2, 29).MarshalJSON()
	if err != nil || string(b) != `"2024-02-29"` {
		t.Fatalf("unexpected marshal: %s %v", b, err)
	}
	var d Date
	if err := d.UnmarshalJSON([]byte(`"2024-02-29"`)); err != nil || d != NewDate(2024, 2, 29) {
		t.Fatalf("unexpected unmarshal: %v %v", d, err)
	}
	if err := d.UnmarshalJSON([]byte(`""`)); err != nil || !d.IsZero() {
		t.Fatalf("empty string should give zero date: %v %v", d, err)
	}
}

func TestCustomerValidate(t *testing.T) {
	if err := validCustomer().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	zeroDebt := validCustomer()
	zeroDebt.DebtAmount = decimal.Zero
	if err := zeroDebt.Validate(); err != nil {
		t.Fatalf("zero principal is allowed, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Customer)
		want   error
	}{
		{"empty name", func(c *Customer) { c.Name = "  " }, ErrEmptyName},
		{"negative debt", func(c *Customer) { c.DebtAmount = decimal.NewFromInt(-1) }, ErrInvalidAmount},
		{"negative rate", func(c *Customer) { c.DailyInterestRate = decimal.NewFromFloat(-0.5) }, ErrNegativeRate},
		{"overdue is not storable", func(c *Customer) { c.Status = "overdue" }, ErrInvalidStatus},
		{"zero due date", func(c *Customer) { c.DueDate = Date{} }, nil},
		{"long name", func(c *Customer) { c.Name = strings.Repeat("a", 201) }, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validCustomer()
			tc.mutate(&c)
			err := c.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Type: Inflow, Amount: decimal.NewFromInt(10), Description: "pagamento"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Type: "refund", Amount: decimal.NewFromInt(10), Description: "x"},
		{Type: Outflow, Amount: decimal.Zero, Description: "x"},
		{Type: Outflow, Amount: decimal.NewFromInt(10), Description: ""},
	}
	for i, tr := range bads {
		if err := tr.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Name:     "Conta de luz",
		Category: CategoryElectricity,
		Amount:   decimal.NewFromInt(150),
		Date:     NewDate(2025, 1, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Name: "", Category: CategoryFood, Amount: decimal.NewFromInt(1), Date: NewDate(2025, 1, 1)},
		{Name: "a", Category: "gym", Amount: decimal.NewFromInt(1), Date: NewDate(2025, 1, 1)},
		{Name: "a", Category: CategoryFood, Amount: decimal.Zero, Date: NewDate(2025, 1, 1)},
		{Name: "a", Category: CategoryFood, Amount: decimal.NewFromInt(1)},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCustomerPatchApply(t *testing.T) {
	c := validCustomer()
	if got := (CustomerPatch{}).Apply(c); got != c {
		t.Fatalf("empty patch must leave the record unchanged")
	}

	name := "Maria Souza"
	paid := StatusPaid
	got := CustomerPatch{Name: &name, Status: &paid}.Apply(c)
	if got.Name != name || got.Status != StatusPaid {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.Phone != c.Phone || !got.DebtAmount.Equal(c.DebtAmount) {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	if cfg.BusinessName != "Minha Loja" || !cfg.NotificationsEnabled {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.DefaultDailyInterestRate.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("unexpected default rate: %s", cfg.DefaultDailyInterestRate)
	}
	if !strings.Contains(cfg.CollectionMessageTemplate, "{nome}") {
		t.Fatalf("template should mention {nome}")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}
