package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"crediario/internal/core"
)

func TestCurrency(t *testing.T) {
	cases := map[string]string{
		"0":           "R$ 0,00",
		"5":           "R$ 5,00",
		"1234.5":      "R$ 1.234,50",
		"1234567.891": "R$ 1.234.567,89",
		"999.995":     "R$ 1.000,00",
		"-0.5":        "-R$ 0,50",
		"-0.001":      "R$ 0,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, Currency(decimal.RequireFromString(in)), in)
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, "05/03/2025", Date(core.NewDate(2025, 3, 5)))
	assert.Equal(t, "", Date(core.Date{}))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "(11) 91234-5678", Phone("11912345678"))
	assert.Equal(t, "(11) 91234-5678", Phone("(11) 9 1234-5678"))
	assert.Equal(t, "(11) 1234-5678", Phone("1112345678"))
	assert.Equal(t, "12345", Phone("12-345"))
}

func TestCPF(t *testing.T) {
	assert.Equal(t, "123.456.789-01", CPF("12345678901"))
	assert.Equal(t, "123.456.789-01", CPF("123.456.789-01"))
	assert.Equal(t, "1234", CPF("1234"))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Água", CategoryLabel(core.CategoryWater))
	assert.Equal(t, "Outros", CategoryLabel(core.CategoryOther))
	assert.Equal(t, "gym", CategoryLabel("gym"))
	for _, c := range core.ExpenseCategories {
		assert.NotEqual(t, string(c), CategoryLabel(c), "missing label for %s", c)
	}
}

func TestCollectionMessage(t *testing.T) {
	asOf := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	c := core.Customer{
		Name:              "Maria",
		DebtAmount:        decimal.NewFromInt(100),
		DailyInterestRate: decimal.NewFromInt(2),
		DueDate:           core.NewDate(2025, 1, 10),
		Status:            core.StatusActive,
	}

	got := CollectionMessage(core.DefaultCollectionMessage, c, asOf)
	assert.Equal(t, "Olá Maria, estamos lembrando que sua dívida de R$ 120,00 venceu em 10/01/2025. Podemos agendar o pagamento?", got)

	got = CollectionMessage("{nome} {nome} {saldo} {valor", c, asOf)
	assert.Equal(t, "Maria Maria {saldo} {valor", got)
}

func TestWhatsAppURL(t *testing.T) {
	assert.Equal(t, "https://wa.me/5511912345678?text=Ol%C3%A1%20Maria%21", WhatsAppURL("(11) 91234-5678", "Olá Maria!"))
	assert.Equal(t, "https://wa.me/5511912345678?text=a%26b", WhatsAppURL("5511912345678", "a&b"))
}
