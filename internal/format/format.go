// Package format renders values the way a Brazilian small business reads them.
package format

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"crediario/internal/core"
)

// Currency formats an amount as BRL, e.g. "R$ 1.234,56" or "-R$ 0,50".
func Currency(d decimal.Decimal) string {
	d = d.Round(2)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	intPart, frac, _ := strings.Cut(s, ".")
	out := "R$ " + groupThousands(intPart) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Date formats a calendar date as dd/mm/yyyy.
func Date(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("02/01/2006")
}

// Digits strips everything that is not an ASCII digit.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// Phone formats 10 and 11 digit Brazilian numbers with area code. Anything
// else is returned as bare digits.
func Phone(s string) string {
	n := Digits(s)
	switch len(n) {
	case 11:
		return "(" + n[:2] + ") " + n[2:7] + "-" + n[7:]
	case 10:
		return "(" + n[:2] + ") " + n[2:6] + "-" + n[6:]
	default:
		return n
	}
}

// CPF formats an 11 digit taxpayer id as 000.000.000-00.
func CPF(s string) string {
	n := Digits(s)
	if len(n) != 11 {
		return n
	}
	return n[:3] + "." + n[3:6] + "." + n[6:9] + "-" + n[9:]
}

var categoryLabels = map[core.ExpenseCategory]string{
	core.CategoryWater:       "Água",
	core.CategoryElectricity: "Luz",
	core.CategoryVehicle:     "Carro",
	core.CategoryFood:        "Alimentação",
	core.CategoryRent:        "Aluguel",
	core.CategoryInternet:    "Internet",
	core.CategoryPhone:       "Telefone",
	core.CategoryOther:       "Outros",
}

// CategoryLabel returns the display label of an expense category.
func CategoryLabel(c core.ExpenseCategory) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}
