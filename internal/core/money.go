// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts typed the way
// Brazilian users write them ("1.234,56", "R$ 12,50") as well as plain
// machine-formatted decimals ("1234.56").
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string to an exact decimal amount.
//
// A comma is the decimal separator when present, in which case dots are
// treated as thousands separators. Without a comma the dot is the decimal
// separator. The "R$" prefix and surrounding spaces are ignored. Ranges are
// not checked here; callers validate them on the resulting domain record.
//
// Examples:
//
//	ParseAmount("12.34")      -> 12.34
//	ParseAmount("12,34")      -> 12.34
//	ParseAmount("1.234,56")   -> 1234.56
//	ParseAmount("R$ 1.000,00") -> 1000
//
// "1.000" without a comma is ambiguous by construction and parses as one.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	if strings.Count(s, ".") > 1 {
		return decimal.Zero, ErrInvalidAmount
	}
	for i, r := range s {
		if r == '-' && i == 0 {
			continue
		}
		if r != '.' && !unicode.IsDigit(r) {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
