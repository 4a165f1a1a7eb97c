package models

import "fmt"

// CurrencyCode is one of the fixed set of currencies a listing can be priced in.
type CurrencyCode string

const (
	CurrencyUSD CurrencyCode = "USD"
	CurrencyEUR CurrencyCode = "EUR"
	CurrencyGBP CurrencyCode = "GBP"
	CurrencyCAD CurrencyCode = "CAD"
)

// DefaultCurrency is the base code used when a submission leaves currency unset.
const DefaultCurrency = CurrencyUSD

// ParseCurrencyCode converts a raw string into a CurrencyCode.
// An empty string yields DefaultCurrency.
func ParseCurrencyCode(s string) (CurrencyCode, error) {
	if s == "" {
		return DefaultCurrency, nil
	}
	switch CurrencyCode(s) {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyCAD:
		return CurrencyCode(s), nil
	}
	return "", fmt.Errorf("unknown currency code %q", s)
}

// String returns the underlying string value.
func (c CurrencyCode) String() string {
	return string(c)
}
